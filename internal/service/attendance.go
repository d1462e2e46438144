package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/wb-go/wbf/ginext"

	"eventattend/internal/dto"
	"eventattend/internal/model"
	"eventattend/internal/repo"
	"eventattend/pkg/validator"
)

// optionalIntQuery returns nil when the query parameter is absent, answering
// the request itself when the value is present but not an integer.
func optionalIntQuery(ctx *ginext.Context, name string) (*int, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Query parameter '"+name+"' must be an integer")
		return nil, false
	}
	return &v, true
}

func (s *service) GetAllAttendances(ctx *ginext.Context) {
	eventID, ok := optionalIntQuery(ctx, "event_id")
	if !ok {
		return
	}
	employeeID, ok := optionalIntQuery(ctx, "employee_id")
	if !ok {
		return
	}

	details, err := s.repos.EmployeeEvents.GetAll(ctx.Request.Context(), eventID, employeeID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list attendances")
		dto.InternalServerError(ctx)
		return
	}

	resp := make([]dto.EmployeeEventResponse, 0, len(details))
	for _, d := range details {
		resp = append(resp, dto.NewEmployeeEventResponse(d))
	}
	dto.SuccessResponse(ctx, resp)
}

func (s *service) GetAttendance(ctx *ginext.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	detail, err := s.repos.EmployeeEvents.GetOne(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrEmployeeEventNotFound) {
			dto.AttendanceNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to get attendance")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, dto.NewEmployeeEventResponse(detail))
}

// CreateAttendance is the capacity-enforcing workflow: both referenced
// entities must exist, the event must have a free seat, and the response
// carries the post-insert capacity flag so the caller can stop offering the
// event the moment it fills up.
func (s *service) CreateAttendance(ctx *ginext.Context) {
	var req dto.CreateEmployeeEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	reqCtx := ctx.Request.Context()

	employeeExists, err := s.repos.Employees.Exists(reqCtx, req.EmployeeID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to check employee existence")
		dto.InternalServerError(ctx)
		return
	}
	if !employeeExists {
		dto.EmployeeNotFoundError(ctx)
		return
	}

	eventExists, err := s.repos.Events.Exists(reqCtx, req.EventID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to check event existence")
		dto.InternalServerError(ctx)
		return
	}
	if !eventExists {
		dto.EventNotFoundError(ctx)
		return
	}

	createdID, err := s.repos.EmployeeEvents.BookTx(reqCtx, model.EmployeeEvent{
		EmployeeID: req.EmployeeID,
		EventID:    req.EventID,
	})
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrEventNotFound):
			dto.EventNotFoundError(ctx)
		case errors.Is(err, repo.ErrEventAtCapacity):
			dto.EventAtCapacityError(ctx)
		case errors.Is(err, repo.ErrDuplicateAttendance):
			dto.AttendanceDuplicateError(ctx)
		default:
			s.log.Error().Err(err).Msg("failed to book attendance")
			dto.InternalServerError(ctx)
		}
		return
	}

	detail, err := s.repos.EmployeeEvents.GetOne(reqCtx, createdID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load created attendance")
		dto.InternalServerError(ctx)
		return
	}

	atCapacity, err := s.repos.Events.IsAtCapacity(reqCtx, req.EventID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to re-check event capacity")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().
		Int("attendance_id", createdID).
		Int("event_id", req.EventID).
		Int("employee_id", req.EmployeeID).
		Bool("event_at_capacity", atCapacity).
		Msg("attendance created")

	s.notifyAttendance(dto.AttendanceOperateMessage{
		AttendanceID:     detail.ID,
		EventID:          detail.EventID,
		EventDescription: detail.EventDescription,
		EmployeeName:     detail.EmployeeFirstName + " " + detail.EmployeeLastName,
		Action:           "created",
		OccurredAt:       time.Now().UTC(),
	})

	ctx.JSON(201, dto.BookingResponse{
		Success:           true,
		Data:              dto.NewEmployeeEventResponse(detail),
		EventIsAtCapacity: atCapacity,
	})
}

func (s *service) DeleteAttendance(ctx *ginext.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	reqCtx := ctx.Request.Context()

	// Fetch before deleting so the notification can still name the employee
	// and the event.
	detail, err := s.repos.EmployeeEvents.GetOne(reqCtx, id)
	if err != nil {
		if errors.Is(err, repo.ErrEmployeeEventNotFound) {
			dto.AttendanceNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to load attendance for deletion")
		dto.InternalServerError(ctx)
		return
	}

	if err := s.repos.EmployeeEvents.Delete(reqCtx, id); err != nil {
		s.log.Error().Err(err).Msg("failed to delete attendance")
		dto.InternalServerError(ctx)
		return
	}

	s.notifyAttendance(dto.AttendanceOperateMessage{
		AttendanceID:     detail.ID,
		EventID:          detail.EventID,
		EventDescription: detail.EventDescription,
		EmployeeName:     detail.EmployeeFirstName + " " + detail.EmployeeLastName,
		Action:           "deleted",
		OccurredAt:       time.Now().UTC(),
	})

	dto.SuccessResponse(ctx, nil)
}

// GetEmployeeOptionsForEvent serves the eligible-attendee search widget with
// bare {id, text} option pairs.
func (s *service) GetEmployeeOptionsForEvent(ctx *ginext.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}
	searchTerm := ctx.Query("search")

	employees, err := s.repos.EmployeeEvents.GetAllEmployeesNotInEvent(ctx.Request.Context(), id, searchTerm)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list eligible employees")
		dto.InternalServerError(ctx)
		return
	}

	options := make([]model.SelectOption, 0, len(employees))
	for _, e := range employees {
		options = append(options, model.SelectOption{ID: e.ID, Text: e.FullName()})
	}
	ctx.JSON(200, options)
}

func takeQuery(ctx *ginext.Context) int {
	take, err := strconv.Atoi(ctx.Query("take"))
	if err != nil {
		return 0
	}
	return take
}

func (s *service) GetMostSocialEmployees(ctx *ginext.Context) {
	counts, err := s.repos.EmployeeEvents.GetMostSocialEmployees(ctx.Request.Context(), takeQuery(ctx))
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list most social employees")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, counts)
}

func (s *service) GetEventsWithNoEmployees(ctx *ginext.Context) {
	events, err := s.repos.EmployeeEvents.GetEventsWithNoEmployees(ctx.Request.Context(), takeQuery(ctx))
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list events without employees")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, eventResponses(events))
}

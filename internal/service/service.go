package service

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"eventattend/internal/dto"
	"eventattend/internal/model"
	"eventattend/internal/rabbit"
	"eventattend/internal/repo"
)

type Service interface {
	GetAllEmployees(ctx *ginext.Context)
	GetEmployee(ctx *ginext.Context)
	CreateEmployee(ctx *ginext.Context)
	UpdateEmployee(ctx *ginext.Context)
	DeleteEmployee(ctx *ginext.Context)

	GetAllEvents(ctx *ginext.Context)
	GetEvent(ctx *ginext.Context)
	CreateEvent(ctx *ginext.Context)
	UpdateEvent(ctx *ginext.Context)
	DeleteEvent(ctx *ginext.Context)

	GetAllAttendances(ctx *ginext.Context)
	GetAttendance(ctx *ginext.Context)
	CreateAttendance(ctx *ginext.Context)
	DeleteAttendance(ctx *ginext.Context)

	GetEmployeeOptionsForEvent(ctx *ginext.Context)
	GetMostSocialEmployees(ctx *ginext.Context)
	GetEventsWithNoEmployees(ctx *ginext.Context)
}

type service struct {
	repos *repo.Repositories
	log   *zerolog.Logger
	rbt   *rabbit.Client
}

// NewService wires the handlers. rbt may be nil, in which case attendance
// notifications are skipped.
func NewService(repos *repo.Repositories, logger *zerolog.Logger, rbt *rabbit.Client) Service {
	return &service{
		repos: repos,
		log:   logger,
		rbt:   rbt,
	}
}

// idParam parses the :id path parameter, answering the request itself when
// the value is not a positive integer.
func idParam(ctx *ginext.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid ID")
		return 0, false
	}
	return id, true
}

// notifyAttendance publishes a best-effort attendance notification.
func (s *service) notifyAttendance(msg dto.AttendanceOperateMessage) {
	if s.rbt == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal attendance notification")
		return
	}
	if err := s.rbt.Publish(payload); err != nil {
		s.log.Error().Err(err).Msg("failed to publish attendance notification")
	}
}

func employeeResponses(employees []model.Employee) []dto.EmployeeResponse {
	resp := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, dto.NewEmployeeResponse(e))
	}
	return resp
}

func eventResponses(events []model.Event) []dto.EventResponse {
	resp := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, dto.NewEventResponse(e))
	}
	return resp
}

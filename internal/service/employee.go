package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/wb-go/wbf/ginext"

	"eventattend/internal/dto"
	"eventattend/internal/model"
	"eventattend/internal/repo"
	"eventattend/pkg/validator"
)

func (s *service) GetAllEmployees(ctx *ginext.Context) {
	employees, err := s.repos.Employees.GetAll(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list employees")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, employeeResponses(employees))
}

func (s *service) GetEmployee(ctx *ginext.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	employee, err := s.repos.Employees.GetByID(ctx.Request.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get employee")
		dto.InternalServerError(ctx)
		return
	}
	if employee == nil {
		dto.EmployeeNotFoundError(ctx)
		return
	}
	dto.SuccessResponse(ctx, dto.NewEmployeeResponse(*employee))
}

// employeeFromRequest validates the request and converts the date-only birth
// date. The bool result reports whether the response was already written.
func employeeFromRequest(ctx *ginext.Context, req dto.CreateEmployeeRequest) (model.Employee, bool) {
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return model.Employee{}, false
	}

	dob, err := time.Parse(model.DateOnlyFormat, req.DateOfBirth)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldBadFormat, "Field 'date_of_birth' must be formatted as "+model.DateOnlyFormat)
		return model.Employee{}, false
	}

	return model.Employee{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DateOfBirth:    dob,
		FavouriteDrink: req.FavouriteDrink,
	}, true
}

func (s *service) CreateEmployee(ctx *ginext.Context) {
	var req dto.CreateEmployeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	employee, ok := employeeFromRequest(ctx, req)
	if !ok {
		return
	}

	created, err := s.repos.Employees.Create(ctx.Request.Context(), employee)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create employee")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int("employee_id", created.ID).Msg("employee created")
	dto.SuccessCreatedResponse(ctx, dto.NewEmployeeResponse(created))
}

func (s *service) UpdateEmployee(ctx *ginext.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	var req dto.CreateEmployeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	employee, ok := employeeFromRequest(ctx, req)
	if !ok {
		return
	}
	employee.ID = id

	updated, err := s.repos.Employees.Update(ctx.Request.Context(), employee)
	if err != nil {
		if errors.Is(err, repo.ErrEmployeeNotFound) {
			dto.EmployeeNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to update employee")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.NewEmployeeResponse(updated))
}

func (s *service) DeleteEmployee(ctx *ginext.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	if err := s.repos.Employees.Delete(ctx.Request.Context(), id); err != nil {
		s.log.Error().Err(err).Msg("failed to delete employee")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, nil)
}

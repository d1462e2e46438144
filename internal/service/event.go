package service

import (
	"errors"
	"fmt"

	"github.com/wb-go/wbf/ginext"

	"eventattend/internal/dto"
	"eventattend/internal/model"
	"eventattend/internal/repo"
	"eventattend/pkg/validator"
)

func (s *service) GetAllEvents(ctx *ginext.Context) {
	includeHistoric := ctx.Query("include_historic") == "true"

	events, err := s.repos.Events.GetAll(ctx.Request.Context(), includeHistoric)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list events")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, eventResponses(events))
}

func (s *service) GetEvent(ctx *ginext.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	event, err := s.repos.Events.GetByID(ctx.Request.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get event")
		dto.InternalServerError(ctx)
		return
	}
	if event == nil {
		dto.EventNotFoundError(ctx)
		return
	}
	dto.SuccessResponse(ctx, dto.NewEventResponse(*event))
}

func (s *service) CreateEvent(ctx *ginext.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	event := model.Event{
		Description:     req.Description,
		StartDateTime:   req.StartDateTime,
		EndDateTime:     req.EndDateTime,
		MaximumCapacity: req.MaximumCapacity,
	}

	created, err := s.repos.Events.Create(ctx.Request.Context(), event)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create event")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int("event_id", created.ID).Msg("event created")
	dto.SuccessCreatedResponse(ctx, dto.NewEventResponse(created))
}

func (s *service) UpdateEvent(ctx *ginext.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	event := model.Event{
		ID:              id,
		Description:     req.Description,
		StartDateTime:   req.StartDateTime,
		EndDateTime:     req.EndDateTime,
		MaximumCapacity: req.MaximumCapacity,
	}

	updated, err := s.repos.Events.Update(ctx.Request.Context(), event)
	if err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to update event")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, dto.NewEventResponse(updated))
}

func (s *service) DeleteEvent(ctx *ginext.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	if err := s.repos.Events.Delete(ctx.Request.Context(), id); err != nil {
		s.log.Error().Err(err).Msg("failed to delete event")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, nil)
}

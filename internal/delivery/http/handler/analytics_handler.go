package handler

import (
	"errors"
	"time"

	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/response"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AnalyticsHandler struct {
	uc usecase.AnalyticsUsecase
}

type recordEventRequest struct {
	EventType string         `json:"event_type"`
	Payload   map[string]any `json:"payload"`
}

func NewAnalyticsHandler(uc usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/analytics/events", h.RecordEvent)
	r.Get("/analytics/activity", h.Activity)
}

func (h *AnalyticsHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/analytics/summary", h.Summary)
}

func (h *AnalyticsHandler) RecordEvent(c fiber.Ctx) error {
	var req recordEventRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var userID *uuid.UUID
	if id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID); ok {
		userID = &id
	}

	ev, err := h.uc.RecordEvent(c.Context(), userID, req.EventType, req.Payload)
	if err != nil {
		return mapAnalyticsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Event recorded", dto.NewAnalyticsEventResponse(ev))
}

func (h *AnalyticsHandler) Activity(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	activity, err := h.uc.UserActivity(c.Context(), userID)
	if err != nil {
		return mapAnalyticsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserActivityResponse(activity))
}

func (h *AnalyticsHandler) Summary(c fiber.Ctx) error {
	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "since must be RFC3339", nil, err)
		}
		since = &t
	}

	summary, err := h.uc.Summary(c.Context(), since)
	if err != nil {
		return mapAnalyticsUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAnalyticsSummaryResponse(summary))
}

func mapAnalyticsUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Event type is required", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

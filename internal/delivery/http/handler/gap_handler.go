package handler

import (
	"errors"

	"career-compass/internal/delivery/http/dto"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/response"
	"career-compass/internal/repository"
	"career-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type GapHandler struct {
	uc usecase.GapUsecase
}

func NewGapHandler(uc usecase.GapUsecase) *GapHandler {
	return &GapHandler{uc: uc}
}

func (h *GapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/careers/:id/gap-analysis", h.Analyze)
}

func (h *GapHandler) Analyze(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	careerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	analysis, err := h.uc.AnalyzeCareer(c.Context(), userID, careerID)
	if err != nil {
		return mapGapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewGapAnalysisResponse(analysis))
}

func mapGapUsecaseError(err error) error {
	switch {
	case errors.Is(err, repository.ErrCareerNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Career not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

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

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/recommendations")
	grp.Post("/generate", h.Generate)
	grp.Get("/", h.List)
	grp.Delete("/:id", h.Delete)
}

func (h *RecommendationHandler) Generate(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.Generate(c.Context(), userID, limit)
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Recommendations generated", dto.NewRecommendationDetailResponses(items))
}

func (h *RecommendationHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.GetRecommendations(c.Context(), userID)
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecommendationDetailResponses(items))
}

func (h *RecommendationHandler) Delete(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeleteRecommendation(c.Context(), id, userID); err != nil {
		return mapRecommendationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Recommendation deleted", nil)
}

func mapRecommendationUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrNoSkillsRegistered):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Register at least one skill before generating recommendations", nil, err)
	case errors.Is(err, usecase.ErrNoRecommendationsFound):
		return middleware.NewAppError(fiber.StatusNotFound, "No recommendations found", nil, err)
	case errors.Is(err, repository.ErrRecommendationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Recommendation not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

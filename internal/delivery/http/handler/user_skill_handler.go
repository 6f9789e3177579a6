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

type UserSkillHandler struct {
	uc usecase.UserSkillUsecase
}

type addUserSkillRequest struct {
	SkillID uuid.UUID `json:"skill_id"`
	Level   string    `json:"level"`
}

type updateUserSkillRequest struct {
	Level string `json:"level"`
}

type bulkAddUserSkillsRequest struct {
	Skills []addUserSkillRequest `json:"skills"`
}

func NewUserSkillHandler(uc usecase.UserSkillUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Add)
	grp.Post("/bulk", h.BulkAdd)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *UserSkillHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/skills/:id/users", h.UsersBySkill)
}

func (h *UserSkillHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListForUser(c.Context(), userID)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserSkillResponses(items))
}

func (h *UserSkillHandler) Add(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req addUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Add(c.Context(), userID, req.SkillID, req.Level)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill added", dto.NewUserSkillResponse(created))
}

func (h *UserSkillHandler) BulkAdd(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req bulkAddUserSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items := make([]usecase.BulkSkillInput, 0, len(req.Skills))
	for _, s := range req.Skills {
		items = append(items, usecase.BulkSkillInput{SkillID: s.SkillID, Level: s.Level})
	}

	result, err := h.uc.BulkAdd(c.Context(), userID, items)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Provide a non-empty skills array", nil, err)
		}
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skills processed", dto.NewBulkAddUserSkillsResponse(result))
}

func (h *UserSkillHandler) UsersBySkill(c fiber.Ctx) error {
	skillID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	result, err := h.uc.FindUsersBySkill(c.Context(), skillID, c.Query("level"))
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUsersBySkillResponse(result))
}

func (h *UserSkillHandler) Update(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateLevel(c.Context(), id, userID, req.Level)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserSkillResponse(updated))
}

func (h *UserSkillHandler) Delete(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Remove(c.Context(), id, userID); err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill removed", nil)
}

func mapUserSkillUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnknownProficiencyLevel):
		return middleware.NewAppError(fiber.StatusBadRequest, "Level must be BEGINNER, INTERMEDIATE or ADVANCED", nil, err)
	case errors.Is(err, usecase.ErrSkillAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already registered", nil, err)
	case errors.Is(err, repository.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, repository.ErrUserSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User skill not found", nil, err)
	case errors.Is(err, repository.ErrUserSkillForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

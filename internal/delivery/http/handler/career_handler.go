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

type CareerHandler struct {
	uc usecase.CareerUsecase
}

type careerRequest struct {
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Industry      string      `json:"industry"`
	AverageSalary int64       `json:"average_salary"`
	GrowthRate    float64     `json:"growth_rate"`
	SkillIDs      []uuid.UUID `json:"skill_ids"`
}

func NewCareerHandler(uc usecase.CareerUsecase) *CareerHandler {
	return &CareerHandler{uc: uc}
}

func (h *CareerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/careers")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
}

func (h *CareerHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/careers")
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *CareerHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	f := repository.CareerFilter{
		Industry: c.Query("industry"),
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   offset,
	}

	items, total, err := h.uc.List(c.Context(), f)
	if err != nil {
		return mapCareerUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CareerListResponse{
		Items:  dto.NewCareerResponses(items),
		Total:  total,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
}

func (h *CareerHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	career, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapCareerUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCareerResponse(career))
}

func (h *CareerHandler) Create(c fiber.Ctx) error {
	var req careerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), careerInputFromRequest(req))
	if err != nil {
		return mapCareerUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Career created", dto.NewCareerResponse(created))
}

func (h *CareerHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req careerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.Update(c.Context(), id, careerInputFromRequest(req))
	if err != nil {
		return mapCareerUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCareerResponse(updated))
}

func (h *CareerHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapCareerUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Career deleted", nil)
}

func careerInputFromRequest(req careerRequest) usecase.CareerInput {
	return usecase.CareerInput{
		Title:         req.Title,
		Description:   req.Description,
		Industry:      req.Industry,
		AverageSalary: req.AverageSalary,
		GrowthRate:    req.GrowthRate,
		SkillIDs:      req.SkillIDs,
	}
}

func mapCareerUsecaseError(err error) error {
	switch {
	case errors.Is(err, repository.ErrCareerNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Career not found", nil, err)
	case errors.Is(err, repository.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "One or more skills do not exist", nil, err)
	case errors.Is(err, usecase.ErrCareerTitleTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Career title already exists", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Career title is required", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

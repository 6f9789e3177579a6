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

type CourseHandler struct {
	uc usecase.CourseUsecase
}

type courseRequest struct {
	Title      string      `json:"title"`
	Provider   string      `json:"provider"`
	URL        string      `json:"url"`
	Difficulty string      `json:"difficulty"`
	SkillIDs   []uuid.UUID `json:"skill_ids"`
}

func NewCourseHandler(uc usecase.CourseUsecase) *CourseHandler {
	return &CourseHandler{uc: uc}
}

func (h *CourseHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/courses")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
}

func (h *CourseHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/courses")
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *CourseHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	f := repository.CourseFilter{
		Provider:   c.Query("provider"),
		Difficulty: c.Query("difficulty"),
		Limit:      limit,
		Offset:     offset,
	}

	items, total, err := h.uc.List(c.Context(), f)
	if err != nil {
		return mapCourseUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CourseListResponse{
		Items:  dto.NewCourseResponses(items),
		Total:  total,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
}

func (h *CourseHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	course, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapCourseUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCourseResponse(course))
}

func (h *CourseHandler) Create(c fiber.Ctx) error {
	var req courseRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), courseInputFromRequest(req))
	if err != nil {
		return mapCourseUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Course created", dto.NewCourseResponse(created))
}

func (h *CourseHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req courseRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.Update(c.Context(), id, courseInputFromRequest(req))
	if err != nil {
		return mapCourseUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCourseResponse(updated))
}

func (h *CourseHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapCourseUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Course deleted", nil)
}

func courseInputFromRequest(req courseRequest) usecase.CourseInput {
	return usecase.CourseInput{
		Title:      req.Title,
		Provider:   req.Provider,
		URL:        req.URL,
		Difficulty: req.Difficulty,
		SkillIDs:   req.SkillIDs,
	}
}

func mapCourseUsecaseError(err error) error {
	switch {
	case errors.Is(err, repository.ErrCourseNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Course not found", nil, err)
	case errors.Is(err, repository.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "One or more skills do not exist", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Course title and a valid difficulty are required", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

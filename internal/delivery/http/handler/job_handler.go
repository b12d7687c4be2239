package handler

import (
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

type jobRequest struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ApplyLink   string `json:"apply_link"`
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterPublicRoutes exposes job browsing without authentication.
func (h *JobHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

// RegisterProtectedRoutes exposes the company-side job management surface.
func (h *JobHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
	r.Post("/:id/extract", h.Extract)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	filter := repository.JobFilter{
		Query:  fiber.Query[string](c, "q"),
		Limit:  fiber.Query[int](c, "limit", 20),
		Offset: fiber.Query[int](c, "offset", 0),
	}
	if raw := fiber.Query[string](c, "company_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid company id", nil, err)
		}
		filter.CompanyID = id
	}

	jobs, err := h.uc.ListJobs(c.Context(), filter)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	res := dto.JobListResponse{Jobs: make([]dto.JobResponse, 0, len(jobs))}
	for _, j := range jobs {
		res.Jobs = append(res.Jobs, jobResponse(j, nil))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	job, skills, err := h.uc.GetJob(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, jobResponse(job, skills))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	job, skills, err := h.uc.CreateJob(c.Context(), actor, usecase.JobInput{
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
		ApplyLink:   req.ApplyLink,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, jobResponse(job, skills))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	job, skills, err := h.uc.UpdateJob(c.Context(), actor, id, usecase.JobInput{
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
		ApplyLink:   req.ApplyLink,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, jobResponse(job, skills))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	if err := h.uc.DeleteJob(c.Context(), actor, id); err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *JobHandler) Extract(c fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	skills, err := h.uc.ExtractSkills(c.Context(), actor, id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"job_id": id,
		"skills": skillItems(skills),
	})
}

func jobResponse(j repository.Job, skills []repository.WeightedSkill) dto.JobResponse {
	return dto.JobResponse{
		ID:              j.ID,
		CompanyID:       j.CompanyID,
		Title:           j.Title,
		Location:        j.Location,
		Description:     j.Description,
		ApplyLink:       j.ApplyLink,
		SkillsExtracted: j.SkillsExtracted,
		PostedAt:        j.PostedAt,
		Skills:          skillItems(skills),
	}
}

func skillItems(skills []repository.WeightedSkill) []dto.SkillItem {
	if skills == nil {
		return nil
	}
	out := make([]dto.SkillItem, 0, len(skills))
	for _, s := range skills {
		out = append(out, dto.SkillItem{SkillName: s.SkillName, Weight: s.Weight})
	}
	return out
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

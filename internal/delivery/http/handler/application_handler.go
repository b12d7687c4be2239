package handler

import (
	"errors"
	"io"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/document"
	"jobboard/internal/pkg/response"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jobs/:id/apply", h.Apply)
	r.Get("/applications/me", h.ListMine)
	r.Get("/applications/company", h.ListForCompany)
	r.Patch("/applications/:id/status", h.UpdateStatus)
}

// Apply accepts a multipart form: cover_letter (text field) and resume
// (optional file part, pdf/doc/docx up to 5MB).
func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	in := usecase.ApplyInput{CoverLetter: c.FormValue("cover_letter")}

	if fh, err := c.FormFile("resume"); err == nil && fh != nil {
		if fh.Size > document.MaxResumeSize {
			return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "Resume exceeds 5MB limit", nil, nil)
		}

		f, err := fh.Open()
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable resume upload", nil, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, document.MaxResumeSize+1))
		_ = f.Close()
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable resume upload", nil, err)
		}

		in.ResumeFilename = fh.Filename
		in.Resume = data
	}

	app, err := h.uc.Apply(c.Context(), actor, jobID, in)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, applicationResponse(app))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListMine(c.Context(), actor)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	res := dto.ApplicationListResponse{Applications: make([]dto.ApplicationListItem, 0, len(items))}
	for _, it := range items {
		res.Applications = append(res.Applications, dto.ApplicationListItem{
			ID:        it.ID,
			JobID:     it.JobID,
			JobTitle:  it.JobTitle,
			Status:    it.Status,
			AppliedAt: it.AppliedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

// ListForCompany shows every application received across the caller's
// postings so companies can review candidates in one place.
func (h *ApplicationHandler) ListForCompany(c fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListForCompany(c.Context(), actor)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	res := dto.CompanyApplicationListResponse{Applications: make([]dto.CompanyApplicationItem, 0, len(items))}
	for _, it := range items {
		res.Applications = append(res.Applications, dto.CompanyApplicationItem{
			ID:             it.ID,
			JobID:          it.JobID,
			JobTitle:       it.JobTitle,
			ApplicantID:    it.ApplicantID,
			ApplicantEmail: it.ApplicantEmail,
			Status:         it.Status,
			AppliedAt:      it.AppliedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	var req updateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	app, err := h.uc.UpdateStatus(c.Context(), actor, id, req.Status)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, applicationResponse(app))
}

func applicationResponse(a repository.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:             a.ID,
		JobID:          a.JobID,
		ApplicantID:    a.ApplicantID,
		ResumeFilename: a.ResumeFilename,
		Status:         a.Status,
		AppliedAt:      a.AppliedAt,
	}
}

func mapApplicationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, repository.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrDuplicateApplication):
		return middleware.NewAppError(fiber.StatusConflict, "Already applied to this job", nil, err)
	case errors.Is(err, usecase.ErrUnsupportedResume):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unsupported resume format", nil, err)
	case errors.Is(err, usecase.ErrResumeTooLarge):
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "Resume exceeds 5MB limit", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

package handler

import (
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

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

	r.Get("/jobs/:id/recommendations", h.Recommend)
}

func (h *RecommendationHandler) Recommend(c fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	ranked, err := h.uc.RankCandidates(c.Context(), actor, jobID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrJobNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
		case errors.Is(err, usecase.ErrForbidden):
			return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
		case errors.Is(err, usecase.ErrSkillsNotExtracted):
			return middleware.NewAppError(fiber.StatusConflict, "Job skills not extracted yet", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}

	res := dto.RecommendationResponse{
		JobID:      ranked.JobID,
		JobSkills:  skillItems(ranked.JobSkills),
		Candidates: make([]dto.RankedCandidateItem, 0, len(ranked.Candidates)),
	}
	for _, cand := range ranked.Candidates {
		res.Candidates = append(res.Candidates, dto.RankedCandidateItem{
			CandidateID:   cand.CandidateID,
			Email:         cand.Email,
			FitScore:      cand.FitScore,
			MatchedWeight: cand.MatchedWeight,
			TotalWeight:   cand.TotalWeight,
			MatchedSkills: cand.MatchedSkills,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

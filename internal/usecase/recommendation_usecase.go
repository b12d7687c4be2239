package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"jobboard/internal/domain/matching"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

var ErrSkillsNotExtracted = errors.New("job skills not extracted yet")

type RankedCandidate struct {
	CandidateID   uuid.UUID `json:"candidate_id"`
	Email         string    `json:"email"`
	FitScore      int       `json:"fit_score"`
	MatchedWeight int       `json:"matched_weight"`
	TotalWeight   int       `json:"total_weight"`
	MatchedSkills []string  `json:"matched_skills"`
}

type RankedCandidates struct {
	JobID      uuid.UUID                  `json:"job_id"`
	JobSkills  []repository.WeightedSkill `json:"job_skills"`
	Candidates []RankedCandidate          `json:"candidates"`
}

type RecommendationUsecase interface {
	RankCandidates(ctx context.Context, actor Actor, jobID uuid.UUID) (RankedCandidates, error)
}

type RecommendationService struct {
	jobs            repository.JobRepository
	jobSkills       repository.JobSkillRepository
	applications    repository.ApplicationRepository
	candidateSkills repository.CandidateSkillRepository
	cache           RecommendationCache
	cacheTTL        time.Duration
	logger          *log.Logger
}

func NewRecommendationUsecase(
	jobs repository.JobRepository,
	jobSkills repository.JobSkillRepository,
	applications repository.ApplicationRepository,
	candidateSkills repository.CandidateSkillRepository,
	recCache RecommendationCache,
	cacheTTL time.Duration,
	logger *log.Logger,
) *RecommendationService {
	if logger == nil {
		logger = log.Default()
	}
	return &RecommendationService{
		jobs:            jobs,
		jobSkills:       jobSkills,
		applications:    applications,
		candidateSkills: candidateSkills,
		cache:           recCache,
		cacheTTL:        cacheTTL,
		logger:          logger,
	}
}

// RankCandidates ranks the company's own applicant pool against one of its
// postings. The pool never crosses company boundaries: only candidates who
// applied to at least one of the requesting company's jobs are considered.
func (s *RecommendationService) RankCandidates(ctx context.Context, actor Actor, jobID uuid.UUID) (RankedCandidates, error) {
	if actor.Role != repository.RoleCompany && actor.Role != repository.RoleAdmin {
		return RankedCandidates{}, ErrForbidden
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return RankedCandidates{}, ErrJobNotFound
		}
		return RankedCandidates{}, ErrInternal
	}
	if actor.Role == repository.RoleCompany && job.CompanyID != actor.ID {
		return RankedCandidates{}, ErrForbidden
	}

	key := cache.RecommendationKey(job.CompanyID, job.ID)
	if s.cache != nil {
		var cached RankedCandidates
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	jobSkills, err := s.jobSkills.FindByJobID(ctx, jobID)
	if err != nil {
		return RankedCandidates{}, ErrInternal
	}
	if !job.SkillsExtracted && len(jobSkills) == 0 {
		return RankedCandidates{}, ErrSkillsNotExtracted
	}

	pool, err := s.applications.ListCompanyApplicants(ctx, job.CompanyID)
	if err != nil {
		return RankedCandidates{}, ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(pool))
	emails := make(map[uuid.UUID]string, len(pool))
	for _, p := range pool {
		ids = append(ids, p.ID)
		emails[p.ID] = p.Email
	}

	skillsByCandidate, err := s.candidateSkills.FindByCandidateIDs(ctx, ids)
	if err != nil {
		return RankedCandidates{}, ErrInternal
	}

	candidates := make([]matching.Candidate, 0, len(pool))
	for _, p := range pool {
		candidates = append(candidates, matching.Candidate{
			ID:     p.ID,
			Skills: mergeSkillNames(skillsByCandidate[p.ID]),
		})
	}

	weighted := make([]matching.JobSkill, 0, len(jobSkills))
	for _, js := range jobSkills {
		weighted = append(weighted, matching.JobSkill{SkillName: js.SkillName, Weight: js.Weight})
	}

	ranked := matching.Rank(weighted, candidates)

	result := RankedCandidates{
		JobID:      job.ID,
		JobSkills:  jobSkills,
		Candidates: make([]RankedCandidate, 0, len(ranked)),
	}
	for _, r := range ranked {
		result.Candidates = append(result.Candidates, RankedCandidate{
			CandidateID:   r.CandidateID,
			Email:         emails[r.CandidateID],
			FitScore:      r.FitScore,
			MatchedWeight: r.MatchedWeight,
			TotalWeight:   r.TotalWeight,
			MatchedSkills: r.MatchedSkills,
		})
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, result, s.cacheTTL); err != nil {
			s.logger.Printf("recommendation cache write failed | key=%s err=%v", key, err)
		}
	}

	return result, nil
}

// mergeSkillNames deduplicates skill names across sources; a skill found in
// both the cover letter and the resume counts once for matching.
func mergeSkillNames(skills []repository.CandidateSkill) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if _, ok := seen[s.SkillName]; ok {
			continue
		}
		seen[s.SkillName] = struct{}{}
		out = append(out, s.SkillName)
	}
	return out
}

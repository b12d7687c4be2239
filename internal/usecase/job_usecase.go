package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"jobboard/internal/extraction"
	"jobboard/internal/repository"
	"jobboard/internal/ws"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("job not found")

type JobInput struct {
	Title       string
	Location    string
	Description string
	ApplyLink   string
}

type JobUsecase interface {
	CreateJob(ctx context.Context, actor Actor, in JobInput) (repository.Job, []repository.WeightedSkill, error)
	UpdateJob(ctx context.Context, actor Actor, jobID uuid.UUID, in JobInput) (repository.Job, []repository.WeightedSkill, error)
	DeleteJob(ctx context.Context, actor Actor, jobID uuid.UUID) error
	GetJob(ctx context.Context, jobID uuid.UUID) (repository.Job, []repository.WeightedSkill, error)
	ListJobs(ctx context.Context, f repository.JobFilter) ([]repository.Job, error)
	ExtractSkills(ctx context.Context, actor Actor, jobID uuid.UUID) ([]repository.WeightedSkill, error)
}

type JobService struct {
	jobs      repository.JobRepository
	jobSkills repository.JobSkillRepository
	engine    *extraction.Engine
	cache     RecommendationCache
	logger    *log.Logger
}

func NewJobUsecase(
	jobs repository.JobRepository,
	jobSkills repository.JobSkillRepository,
	engine *extraction.Engine,
	cache RecommendationCache,
	logger *log.Logger,
) *JobService {
	if logger == nil {
		logger = log.Default()
	}
	return &JobService{jobs: jobs, jobSkills: jobSkills, engine: engine, cache: cache, logger: logger}
}

func (s *JobService) CreateJob(ctx context.Context, actor Actor, in JobInput) (repository.Job, []repository.WeightedSkill, error) {
	if actor.Role != repository.RoleCompany && actor.Role != repository.RoleAdmin {
		return repository.Job{}, nil, ErrForbidden
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return repository.Job{}, nil, ErrInvalidInput
	}

	job, err := s.jobs.Create(ctx, repository.Job{
		CompanyID:   actor.ID,
		Title:       strings.TrimSpace(in.Title),
		Location:    strings.TrimSpace(in.Location),
		Description: in.Description,
		ApplyLink:   strings.TrimSpace(in.ApplyLink),
	})
	if err != nil {
		return repository.Job{}, nil, ErrInternal
	}

	skills := s.analyze(ctx, job)
	job.SkillsExtracted = skills != nil
	return job, skills, nil
}

func (s *JobService) UpdateJob(ctx context.Context, actor Actor, jobID uuid.UUID, in JobInput) (repository.Job, []repository.WeightedSkill, error) {
	job, err := s.ownedJob(ctx, actor, jobID)
	if err != nil {
		return repository.Job{}, nil, err
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return repository.Job{}, nil, ErrInvalidInput
	}

	job.Title = strings.TrimSpace(in.Title)
	job.Location = strings.TrimSpace(in.Location)
	job.Description = in.Description
	job.ApplyLink = strings.TrimSpace(in.ApplyLink)

	updated, err := s.jobs.Update(ctx, job)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, nil, ErrJobNotFound
		}
		return repository.Job{}, nil, ErrInternal
	}

	skills := s.analyze(ctx, updated)
	updated.SkillsExtracted = skills != nil
	return updated, skills, nil
}

func (s *JobService) DeleteJob(ctx context.Context, actor Actor, jobID uuid.UUID) error {
	job, err := s.ownedJob(ctx, actor, jobID)
	if err != nil {
		return err
	}

	// job_skills rows cascade with the job.
	if err := s.jobs.Delete(ctx, job.ID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}

	if s.cache != nil {
		_ = s.cache.InvalidateCompany(ctx, job.CompanyID)
	}
	return nil
}

func (s *JobService) GetJob(ctx context.Context, jobID uuid.UUID) (repository.Job, []repository.WeightedSkill, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, nil, ErrJobNotFound
		}
		return repository.Job{}, nil, ErrInternal
	}

	skills, err := s.jobSkills.FindByJobID(ctx, jobID)
	if err != nil {
		return repository.Job{}, nil, ErrInternal
	}
	return job, skills, nil
}

func (s *JobService) ListJobs(ctx context.Context, f repository.JobFilter) ([]repository.Job, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	jobs, err := s.jobs.ListJobs(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	return jobs, nil
}

// ExtractSkills re-runs extraction on demand for a job the actor owns.
func (s *JobService) ExtractSkills(ctx context.Context, actor Actor, jobID uuid.UUID) ([]repository.WeightedSkill, error) {
	job, err := s.ownedJob(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, job), nil
}

func (s *JobService) ownedJob(ctx context.Context, actor Actor, jobID uuid.UUID) (repository.Job, error) {
	if actor.Role != repository.RoleCompany && actor.Role != repository.RoleAdmin {
		return repository.Job{}, ErrForbidden
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, ErrJobNotFound
		}
		return repository.Job{}, ErrInternal
	}

	if actor.Role == repository.RoleCompany && job.CompanyID != actor.ID {
		return repository.Job{}, ErrForbidden
	}
	return job, nil
}

// analyze extracts and stores the job's skill set. Extraction is best-effort:
// a storage failure is logged and leaves the posting itself intact.
func (s *JobService) analyze(ctx context.Context, job repository.Job) []repository.WeightedSkill {
	weights := s.engine.ExtractSkills(job.Description, extraction.Options{Title: job.Title})

	skills := make([]repository.WeightedSkill, 0, len(weights))
	for name, w := range weights {
		skills = append(skills, repository.WeightedSkill{SkillName: name, Weight: w})
	}
	repository.SortWeightedSkills(skills)

	if err := s.jobSkills.ReplaceForJob(ctx, job.ID, skills); err != nil {
		s.logger.Printf("job skill extraction failed | job_id=%s err=%v", job.ID, err)
		return nil
	}

	if s.cache != nil {
		_ = s.cache.InvalidateCompany(ctx, job.CompanyID)
	}
	ws.NotifySkillsExtracted(job.CompanyID, "job", job.ID, len(skills))

	s.logger.Printf("job skills extracted | job_id=%s skills=%d", job.ID, len(skills))
	return skills
}

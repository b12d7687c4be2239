package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"jobboard/internal/document"
	"jobboard/internal/extraction"
	"jobboard/internal/repository"
	"jobboard/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrDuplicateApplication = errors.New("application already exists for this job")
	ErrUnsupportedResume    = errors.New("unsupported resume format")
	ErrResumeTooLarge       = errors.New("resume exceeds size limit")
	ErrInvalidStatus        = errors.New("invalid application status")
)

type ApplyInput struct {
	CoverLetter    string
	ResumeFilename string
	Resume         []byte
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, actor Actor, jobID uuid.UUID, in ApplyInput) (repository.Application, error)
	ListMine(ctx context.Context, actor Actor) ([]repository.ApplicationListItem, error)
	ListForCompany(ctx context.Context, actor Actor) ([]repository.CompanyApplicationItem, error)
	UpdateStatus(ctx context.Context, actor Actor, applicationID uuid.UUID, status string) (repository.Application, error)
}

type ApplicationService struct {
	applications    repository.ApplicationRepository
	jobs            repository.JobRepository
	candidateSkills repository.CandidateSkillRepository
	engine          *extraction.Engine
	cache           RecommendationCache
	logger          *log.Logger
}

func NewApplicationUsecase(
	applications repository.ApplicationRepository,
	jobs repository.JobRepository,
	candidateSkills repository.CandidateSkillRepository,
	engine *extraction.Engine,
	cache RecommendationCache,
	logger *log.Logger,
) *ApplicationService {
	if logger == nil {
		logger = log.Default()
	}
	return &ApplicationService{
		applications:    applications,
		jobs:            jobs,
		candidateSkills: candidateSkills,
		engine:          engine,
		cache:           cache,
		logger:          logger,
	}
}

// Apply records the application first, then runs skill extraction over the
// cover letter and resume. Extraction never blocks the submission: a resume
// that fails to parse degrades to an empty skill set for that source.
func (s *ApplicationService) Apply(ctx context.Context, actor Actor, jobID uuid.UUID, in ApplyInput) (repository.Application, error) {
	if actor.Role != repository.RoleApplicant {
		return repository.Application{}, ErrForbidden
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Application{}, ErrJobNotFound
		}
		return repository.Application{}, ErrInternal
	}

	exists, err := s.applications.ExistsByJobAndApplicant(ctx, jobID, actor.ID)
	if err != nil {
		return repository.Application{}, ErrInternal
	}
	if exists {
		return repository.Application{}, ErrDuplicateApplication
	}

	if in.ResumeFilename != "" {
		if !document.AllowedResume(in.ResumeFilename) {
			return repository.Application{}, ErrUnsupportedResume
		}
		if len(in.Resume) > document.MaxResumeSize {
			return repository.Application{}, ErrResumeTooLarge
		}
	}

	app, err := s.applications.Create(ctx, repository.Application{
		JobID:          jobID,
		ApplicantID:    actor.ID,
		CoverLetter:    in.CoverLetter,
		ResumeFilename: in.ResumeFilename,
	})
	if err != nil {
		return repository.Application{}, ErrInternal
	}

	s.extractSource(ctx, job.CompanyID, actor.ID, repository.SourceCoverLetter, in.CoverLetter)

	if in.ResumeFilename != "" {
		text, err := document.ExtractText(in.ResumeFilename, in.Resume)
		if err != nil {
			s.logger.Printf("resume text extraction failed | applicant_id=%s file=%s err=%v",
				actor.ID, in.ResumeFilename, err)
			text = ""
		}
		s.extractSource(ctx, job.CompanyID, actor.ID, repository.SourceResume, text)
	}

	if s.cache != nil {
		_ = s.cache.InvalidateCompany(ctx, job.CompanyID)
	}

	return app, nil
}

func (s *ApplicationService) ListMine(ctx context.Context, actor Actor) ([]repository.ApplicationListItem, error) {
	if actor.Role != repository.RoleApplicant {
		return nil, ErrForbidden
	}
	items, err := s.applications.ListByApplicant(ctx, actor.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// ListForCompany returns every application across the actor's own postings,
// newest first.
func (s *ApplicationService) ListForCompany(ctx context.Context, actor Actor) ([]repository.CompanyApplicationItem, error) {
	if actor.Role != repository.RoleCompany && actor.Role != repository.RoleAdmin {
		return nil, ErrForbidden
	}
	items, err := s.applications.ListByCompany(ctx, actor.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, actor Actor, applicationID uuid.UUID, status string) (repository.Application, error) {
	if actor.Role != repository.RoleCompany && actor.Role != repository.RoleAdmin {
		return repository.Application{}, ErrForbidden
	}
	if !repository.ValidStatus(strings.ToLower(strings.TrimSpace(status))) {
		return repository.Application{}, ErrInvalidStatus
	}
	status = strings.ToLower(strings.TrimSpace(status))

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return repository.Application{}, repository.ErrApplicationNotFound
		}
		return repository.Application{}, ErrInternal
	}

	if actor.Role == repository.RoleCompany {
		job, err := s.jobs.GetByID(ctx, app.JobID)
		if err != nil {
			return repository.Application{}, ErrInternal
		}
		if job.CompanyID != actor.ID {
			return repository.Application{}, ErrForbidden
		}
	}

	if err := s.applications.UpdateStatus(ctx, applicationID, status); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return repository.Application{}, repository.ErrApplicationNotFound
		}
		return repository.Application{}, ErrInternal
	}

	app.Status = status
	return app, nil
}

// extractSource replaces one source's skill rows; failures are logged and
// swallowed so the surrounding flow keeps going. companyID scopes the
// websocket event to the company whose posting triggered the extraction.
func (s *ApplicationService) extractSource(ctx context.Context, companyID, candidateID uuid.UUID, source, text string) {
	weights := s.engine.ExtractSkills(text, extraction.Options{})

	skills := make([]repository.WeightedSkill, 0, len(weights))
	for name, w := range weights {
		skills = append(skills, repository.WeightedSkill{SkillName: name, Weight: w})
	}
	repository.SortWeightedSkills(skills)

	if err := s.candidateSkills.ReplaceForCandidateSource(ctx, candidateID, source, skills); err != nil {
		s.logger.Printf("candidate skill replace failed | candidate_id=%s source=%s err=%v",
			candidateID, source, err)
		return
	}

	ws.NotifySkillsExtracted(companyID, "candidate", candidateID, len(skills))
	s.logger.Printf("candidate skills extracted | candidate_id=%s source=%s skills=%d",
		candidateID, source, len(skills))
}

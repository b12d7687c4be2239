package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"jobboard/internal/document"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

func applicationFixture(t *testing.T) (*ApplicationService, *mockJobRepo, *mockApplicationRepo, *mockCandidateSkillRepo, *mockCache) {
	t.Helper()
	jobs := newMockJobRepo()
	apps := newMockApplicationRepo()
	candSkills := newMockCandidateSkillRepo()
	cache := newMockCache()
	uc := NewApplicationUsecase(apps, jobs, candSkills, testExtractionEngine(t), cache, quietLogger())
	return uc, jobs, apps, candSkills, cache
}

func TestApplicationUsecase_Apply_ExtractsCoverLetterSkills(t *testing.T) {
	uc, jobs, _, candSkills, cache := applicationFixture(t)

	companyID := uuid.New()
	job, _ := jobs.Create(context.Background(), repository.Job{CompanyID: companyID, Title: "Backend", Description: "d"})
	applicant := Actor{ID: uuid.New(), Role: repository.RoleApplicant}

	app, err := uc.Apply(context.Background(), applicant, job.ID, ApplyInput{
		CoverLetter: "I have five years of Python and Django experience, plus PostgreSQL.",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if app.Status != repository.StatusPending {
		t.Fatalf("status = %q, want pending", app.Status)
	}

	stored := candSkills.replaced[applicant.ID.String()+"/"+repository.SourceCoverLetter]
	byName := map[string]int{}
	for _, s := range stored {
		byName[s.SkillName] = s.Weight
	}
	for _, want := range []string{"Python", "Django", "PostgreSQL"} {
		if byName[want] == 0 {
			t.Fatalf("missing %s in stored cover letter skills %v", want, byName)
		}
	}

	// No resume part: only the cover letter source is touched.
	if _, ok := candSkills.replaced[applicant.ID.String()+"/"+repository.SourceResume]; ok {
		t.Fatalf("resume source should be untouched")
	}

	if len(cache.invalidated) != 1 || cache.invalidated[0] != companyID {
		t.Fatalf("expected invalidation for job's company, got %v", cache.invalidated)
	}
}

func TestApplicationUsecase_Apply_DuplicateRejected(t *testing.T) {
	uc, jobs, _, _, _ := applicationFixture(t)

	job, _ := jobs.Create(context.Background(), repository.Job{CompanyID: uuid.New(), Title: "Backend", Description: "d"})
	applicant := Actor{ID: uuid.New(), Role: repository.RoleApplicant}

	if _, err := uc.Apply(context.Background(), applicant, job.ID, ApplyInput{CoverLetter: "x"}); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	_, err := uc.Apply(context.Background(), applicant, job.ID, ApplyInput{CoverLetter: "x"})
	if !errors.Is(err, ErrDuplicateApplication) {
		t.Fatalf("expected ErrDuplicateApplication, got %v", err)
	}
}

func TestApplicationUsecase_Apply_ResumeValidation(t *testing.T) {
	uc, jobs, _, _, _ := applicationFixture(t)

	job, _ := jobs.Create(context.Background(), repository.Job{CompanyID: uuid.New(), Title: "Backend", Description: "d"})
	applicant := Actor{ID: uuid.New(), Role: repository.RoleApplicant}

	_, err := uc.Apply(context.Background(), applicant, job.ID, ApplyInput{
		ResumeFilename: "resume.odt",
		Resume:         []byte("x"),
	})
	if !errors.Is(err, ErrUnsupportedResume) {
		t.Fatalf("expected ErrUnsupportedResume, got %v", err)
	}

	_, err = uc.Apply(context.Background(), applicant, job.ID, ApplyInput{
		ResumeFilename: "resume.pdf",
		Resume:         bytes.Repeat([]byte("a"), document.MaxResumeSize+1),
	})
	if !errors.Is(err, ErrResumeTooLarge) {
		t.Fatalf("expected ErrResumeTooLarge, got %v", err)
	}
}

func TestApplicationUsecase_Apply_CorruptResumeDegrades(t *testing.T) {
	uc, jobs, apps, candSkills, _ := applicationFixture(t)

	job, _ := jobs.Create(context.Background(), repository.Job{CompanyID: uuid.New(), Title: "Backend", Description: "d"})
	applicant := Actor{ID: uuid.New(), Role: repository.RoleApplicant}

	app, err := uc.Apply(context.Background(), applicant, job.ID, ApplyInput{
		CoverLetter:    "Kubernetes and Terraform.",
		ResumeFilename: "resume.pdf",
		Resume:         []byte("not a real pdf"),
	})
	if err != nil {
		t.Fatalf("submission must survive a corrupt resume: %v", err)
	}
	if _, ok := apps.apps[app.ID]; !ok {
		t.Fatalf("application not persisted")
	}

	// Resume source degrades to an empty skill set, cover letter still extracted.
	resumeSkills, ok := candSkills.replaced[applicant.ID.String()+"/"+repository.SourceResume]
	if !ok {
		t.Fatalf("resume source should have been replaced with empty set")
	}
	if len(resumeSkills) != 0 {
		t.Fatalf("expected empty resume skills, got %v", resumeSkills)
	}
	clSkills := candSkills.replaced[applicant.ID.String()+"/"+repository.SourceCoverLetter]
	if len(clSkills) == 0 {
		t.Fatalf("cover letter skills missing")
	}
}

func TestApplicationUsecase_Apply_RoleAndJobChecks(t *testing.T) {
	uc, jobs, _, _, _ := applicationFixture(t)

	job, _ := jobs.Create(context.Background(), repository.Job{CompanyID: uuid.New(), Title: "Backend", Description: "d"})

	company := Actor{ID: uuid.New(), Role: repository.RoleCompany}
	if _, err := uc.Apply(context.Background(), company, job.ID, ApplyInput{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for company actor, got %v", err)
	}

	applicant := Actor{ID: uuid.New(), Role: repository.RoleApplicant}
	if _, err := uc.Apply(context.Background(), applicant, uuid.New(), ApplyInput{}); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestApplicationUsecase_UpdateStatus(t *testing.T) {
	uc, jobs, apps, _, _ := applicationFixture(t)

	owner := Actor{ID: uuid.New(), Role: repository.RoleCompany}
	job, _ := jobs.Create(context.Background(), repository.Job{CompanyID: owner.ID, Title: "Backend", Description: "d"})
	app, _ := apps.Create(context.Background(), repository.Application{JobID: job.ID, ApplicantID: uuid.New()})

	if _, err := uc.UpdateStatus(context.Background(), owner, app.ID, "promoted"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	other := Actor{ID: uuid.New(), Role: repository.RoleCompany}
	if _, err := uc.UpdateStatus(context.Background(), other, app.ID, repository.StatusReviewed); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other company, got %v", err)
	}

	updated, err := uc.UpdateStatus(context.Background(), owner, app.ID, "Shortlisted")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != repository.StatusShortlisted {
		t.Fatalf("status = %q", updated.Status)
	}
	if apps.apps[app.ID].Status != repository.StatusShortlisted {
		t.Fatalf("status not persisted")
	}
}

func TestApplicationUsecase_ListMine(t *testing.T) {
	uc, jobs, apps, _, _ := applicationFixture(t)

	job, _ := jobs.Create(context.Background(), repository.Job{CompanyID: uuid.New(), Title: "Backend", Description: "d"})
	applicant := Actor{ID: uuid.New(), Role: repository.RoleApplicant}
	_, _ = apps.Create(context.Background(), repository.Application{JobID: job.ID, ApplicantID: applicant.ID})

	items, err := uc.ListMine(context.Background(), applicant)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 application, got %d", len(items))
	}

	if _, err := uc.ListMine(context.Background(), Actor{ID: uuid.New(), Role: repository.RoleCompany}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApplicationUsecase_ListForCompany(t *testing.T) {
	uc, jobs, apps, _, _ := applicationFixture(t)

	company := Actor{ID: uuid.New(), Role: repository.RoleCompany}
	job, _ := jobs.Create(context.Background(), repository.Job{CompanyID: company.ID, Title: "Backend", Description: "d"})
	_, _ = apps.Create(context.Background(), repository.Application{JobID: job.ID, ApplicantID: uuid.New()})

	items, err := uc.ListForCompany(context.Background(), company)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 application, got %d", len(items))
	}

	if _, err := uc.ListForCompany(context.Background(), Actor{ID: uuid.New(), Role: repository.RoleApplicant}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

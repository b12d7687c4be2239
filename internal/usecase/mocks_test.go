package usecase

import (
	"context"
	"encoding/json"
	"time"

	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type mockUserRepo struct {
	users map[uuid.UUID]repository.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[uuid.UUID]repository.User{}}
}

func (m *mockUserRepo) Create(_ context.Context, u repository.User) (repository.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	m.users[u.ID] = u
	return u, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return repository.User{}, repository.ErrUserNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (repository.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrUserNotFound
}

type mockJobRepo struct {
	jobs map[uuid.UUID]repository.Job
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{jobs: map[uuid.UUID]repository.Job{}}
}

func (m *mockJobRepo) Create(_ context.Context, j repository.Job) (repository.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	j.PostedAt = time.Now()
	m.jobs[j.ID] = j
	return j, nil
}

func (m *mockJobRepo) Update(_ context.Context, j repository.Job) (repository.Job, error) {
	if _, ok := m.jobs[j.ID]; !ok {
		return repository.Job{}, repository.ErrJobNotFound
	}
	m.jobs[j.ID] = j
	return j, nil
}

func (m *mockJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.jobs[id]; !ok {
		return repository.ErrJobNotFound
	}
	delete(m.jobs, id)
	return nil
}

func (m *mockJobRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Job, error) {
	if j, ok := m.jobs[id]; ok {
		return j, nil
	}
	return repository.Job{}, repository.ErrJobNotFound
}

func (m *mockJobRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.jobs[id]
	return ok, nil
}

func (m *mockJobRepo) ListJobs(_ context.Context, f repository.JobFilter) ([]repository.Job, error) {
	out := make([]repository.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		if f.CompanyID != uuid.Nil && j.CompanyID != f.CompanyID {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

type mockJobSkillRepo struct {
	byJob      map[uuid.UUID][]repository.WeightedSkill
	replaceErr error
	replaces   int
}

func newMockJobSkillRepo() *mockJobSkillRepo {
	return &mockJobSkillRepo{byJob: map[uuid.UUID][]repository.WeightedSkill{}}
}

func (m *mockJobSkillRepo) FindByJobID(_ context.Context, jobID uuid.UUID) ([]repository.WeightedSkill, error) {
	return m.byJob[jobID], nil
}

func (m *mockJobSkillRepo) ReplaceForJob(_ context.Context, jobID uuid.UUID, skills []repository.WeightedSkill) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaces++
	m.byJob[jobID] = skills
	return nil
}

type mockApplicationRepo struct {
	apps       map[uuid.UUID]repository.Application
	applicants []repository.CompanyApplicant
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{apps: map[uuid.UUID]repository.Application{}}
}

func (m *mockApplicationRepo) Create(_ context.Context, a repository.Application) (repository.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = repository.StatusPending
	}
	a.AppliedAt = time.Now()
	m.apps[a.ID] = a
	return a, nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Application, error) {
	if a, ok := m.apps[id]; ok {
		return a, nil
	}
	return repository.Application{}, repository.ErrApplicationNotFound
}

func (m *mockApplicationRepo) ExistsByJobAndApplicant(_ context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	for _, a := range m.apps {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	a, ok := m.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	a.Status = status
	m.apps[id] = a
	return nil
}

func (m *mockApplicationRepo) ListByApplicant(_ context.Context, applicantID uuid.UUID) ([]repository.ApplicationListItem, error) {
	out := make([]repository.ApplicationListItem, 0)
	for _, a := range m.apps {
		if a.ApplicantID == applicantID {
			out = append(out, repository.ApplicationListItem{ID: a.ID, JobID: a.JobID, Status: a.Status, AppliedAt: a.AppliedAt})
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) ListByCompany(_ context.Context, _ uuid.UUID) ([]repository.CompanyApplicationItem, error) {
	out := make([]repository.CompanyApplicationItem, 0, len(m.apps))
	for _, a := range m.apps {
		out = append(out, repository.CompanyApplicationItem{
			ID: a.ID, JobID: a.JobID, ApplicantID: a.ApplicantID,
			Status: a.Status, AppliedAt: a.AppliedAt,
		})
	}
	return out, nil
}

func (m *mockApplicationRepo) ListCompanyApplicants(_ context.Context, _ uuid.UUID) ([]repository.CompanyApplicant, error) {
	return m.applicants, nil
}

type mockCandidateSkillRepo struct {
	byCandidate map[uuid.UUID][]repository.CandidateSkill
	replaced    map[string][]repository.WeightedSkill
}

func newMockCandidateSkillRepo() *mockCandidateSkillRepo {
	return &mockCandidateSkillRepo{
		byCandidate: map[uuid.UUID][]repository.CandidateSkill{},
		replaced:    map[string][]repository.WeightedSkill{},
	}
}

func (m *mockCandidateSkillRepo) FindByCandidateID(_ context.Context, id uuid.UUID) ([]repository.CandidateSkill, error) {
	return m.byCandidate[id], nil
}

func (m *mockCandidateSkillRepo) FindByCandidateIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]repository.CandidateSkill, error) {
	out := map[uuid.UUID][]repository.CandidateSkill{}
	for _, id := range ids {
		if s, ok := m.byCandidate[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (m *mockCandidateSkillRepo) ReplaceForCandidateSource(_ context.Context, id uuid.UUID, source string, skills []repository.WeightedSkill) error {
	m.replaced[id.String()+"/"+source] = skills

	kept := m.byCandidate[id][:0]
	for _, s := range m.byCandidate[id] {
		if s.Source != source {
			kept = append(kept, s)
		}
	}
	for _, s := range skills {
		kept = append(kept, repository.CandidateSkill{SkillName: s.SkillName, Source: source, Confidence: s.Weight})
	}
	m.byCandidate[id] = kept
	return nil
}

type mockCache struct {
	data        map[string][]byte
	invalidated []uuid.UUID
	sets        int
	hits        int
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	m.hits++
	return true, nil
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	m.sets++
	return nil
}

func (m *mockCache) InvalidateCompany(_ context.Context, companyID uuid.UUID) error {
	m.invalidated = append(m.invalidated, companyID)
	for k := range m.data {
		delete(m.data, k)
	}
	return nil
}

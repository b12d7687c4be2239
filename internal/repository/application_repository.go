package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobboard/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	StatusPending     = "pending"
	StatusReviewed    = "reviewed"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
	StatusHired       = "hired"
)

var ErrApplicationNotFound = errors.New("application not found")

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusRejected, StatusHired:
		return true
	}
	return false
}

type Application struct {
	ID             uuid.UUID
	JobID          uuid.UUID
	ApplicantID    uuid.UUID
	CoverLetter    string
	ResumeFilename string
	Status         string
	AppliedAt      time.Time
}

// ApplicationListItem is an application joined with its job for listings.
type ApplicationListItem struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	JobTitle  string
	Status    string
	AppliedAt time.Time
}

// CompanyApplicationItem is an application joined with its job and applicant
// for the company-side review listing.
type CompanyApplicationItem struct {
	ID             uuid.UUID
	JobID          uuid.UUID
	JobTitle       string
	ApplicantID    uuid.UUID
	ApplicantEmail string
	Status         string
	AppliedAt      time.Time
}

// CompanyApplicant is a distinct candidate who has applied to at least one of
// a company's postings. This is the only pool recommendations rank over:
// applicants of other companies are invisible here.
type CompanyApplicant struct {
	ID    uuid.UUID
	Email string
}

type ApplicationRepository interface {
	Create(ctx context.Context, a Application) (Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ExistsByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]ApplicationListItem, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]CompanyApplicationItem, error)
	ListCompanyApplicants(ctx context.Context, companyID uuid.UUID) ([]CompanyApplicant, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a Application) (Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, job_id, applicant_id, cover_letter, resume_filename, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.JobID, a.ApplicantID, a.CoverLetter, a.ResumeFilename, a.Status,
	)
	if err != nil {
		return Application{}, err
	}
	return r.GetByID(ctx, a.ID)
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, job_id, applicant_id, cover_letter, resume_filename, status, applied_at
		 FROM applications WHERE id = $1`, id)

	var a Application
	if err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.CoverLetter, &a.ResumeFilename, &a.Status, &a.AppliedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Application{}, ErrApplicationNotFound
		}
		return Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) ExistsByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]ApplicationListItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, j.title, a.status, a.applied_at
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.applicant_id = $1
		 ORDER BY a.applied_at DESC, a.id ASC`,
		applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ApplicationListItem, 0)
	for rows.Next() {
		var it ApplicationListItem
		if err := rows.Scan(&it.ID, &it.JobID, &it.JobTitle, &it.Status, &it.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]CompanyApplicationItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, j.title, a.applicant_id, u.email, a.status, a.applied_at
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN users u ON u.id = a.applicant_id
		 WHERE j.company_id = $1
		 ORDER BY a.applied_at DESC, a.id ASC`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CompanyApplicationItem, 0)
	for rows.Next() {
		var it CompanyApplicationItem
		if err := rows.Scan(&it.ID, &it.JobID, &it.JobTitle, &it.ApplicantID, &it.ApplicantEmail, &it.Status, &it.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListCompanyApplicants(ctx context.Context, companyID uuid.UUID) ([]CompanyApplicant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT u.id, u.email
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN users u ON u.id = a.applicant_id
		 WHERE j.company_id = $1
		 ORDER BY u.id ASC`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CompanyApplicant, 0)
	for rows.Next() {
		var it CompanyApplicant
		if err := rows.Scan(&it.ID, &it.Email); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID             uuid.UUID `json:"id"`
	JobID          uuid.UUID `json:"job_id"`
	ApplicantID    uuid.UUID `json:"applicant_id"`
	ResumeFilename string    `json:"resume_filename,omitempty"`
	Status         string    `json:"status"`
	AppliedAt      time.Time `json:"applied_at"`
}

type ApplicationListItem struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	JobTitle  string    `json:"job_title"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"applied_at"`
}

type ApplicationListResponse struct {
	Applications []ApplicationListItem `json:"applications"`
}

type CompanyApplicationItem struct {
	ID             uuid.UUID `json:"id"`
	JobID          uuid.UUID `json:"job_id"`
	JobTitle       string    `json:"job_title"`
	ApplicantID    uuid.UUID `json:"applicant_id"`
	ApplicantEmail string    `json:"applicant_email"`
	Status         string    `json:"status"`
	AppliedAt      time.Time `json:"applied_at"`
}

type CompanyApplicationListResponse struct {
	Applications []CompanyApplicationItem `json:"applications"`
}

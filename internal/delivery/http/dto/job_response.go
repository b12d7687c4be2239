package dto

import (
	"time"

	"github.com/google/uuid"
)

type SkillItem struct {
	SkillName string `json:"skill_name"`
	Weight    int    `json:"weight"`
}

type JobResponse struct {
	ID              uuid.UUID   `json:"id"`
	CompanyID       uuid.UUID   `json:"company_id"`
	Title           string      `json:"title"`
	Location        string      `json:"location"`
	Description     string      `json:"description"`
	ApplyLink       string      `json:"apply_link,omitempty"`
	SkillsExtracted bool        `json:"skills_extracted"`
	PostedAt        time.Time   `json:"posted_at"`
	Skills          []SkillItem `json:"skills,omitempty"`
}

type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

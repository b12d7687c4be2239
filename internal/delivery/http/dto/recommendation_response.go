package dto

import "github.com/google/uuid"

type RankedCandidateItem struct {
	CandidateID   uuid.UUID `json:"candidate_id"`
	Email         string    `json:"email"`
	FitScore      int       `json:"fit_score"`
	MatchedWeight int       `json:"matched_weight"`
	TotalWeight   int       `json:"total_weight"`
	MatchedSkills []string  `json:"matched_skills"`
}

type RecommendationResponse struct {
	JobID      uuid.UUID             `json:"job_id"`
	JobSkills  []SkillItem           `json:"job_skills"`
	Candidates []RankedCandidateItem `json:"candidates"`
}

package repository

import (
	"context"

	"jobboard/internal/database"

	"github.com/google/uuid"
)

const (
	SourceCoverLetter = "cover_letter"
	SourceResume      = "resume"
)

// CandidateSkill keeps the extraction source as part of its identity: the
// same skill found in both the cover letter and the resume yields two rows.
type CandidateSkill struct {
	SkillName  string
	Source     string
	Confidence int
}

type CandidateSkillRepository interface {
	FindByCandidateID(ctx context.Context, candidateID uuid.UUID) ([]CandidateSkill, error)
	FindByCandidateIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]CandidateSkill, error)
	// ReplaceForCandidateSource swaps the rows for exactly one
	// (candidate, source) pair in one transaction; the other source's rows
	// stay untouched.
	ReplaceForCandidateSource(ctx context.Context, candidateID uuid.UUID, source string, skills []WeightedSkill) error
}

type PostgresCandidateSkillRepository struct {
	db database.DB
}

func NewPostgresCandidateSkillRepository(db database.DB) *PostgresCandidateSkillRepository {
	return &PostgresCandidateSkillRepository{db: db}
}

func (r *PostgresCandidateSkillRepository) FindByCandidateID(ctx context.Context, candidateID uuid.UUID) ([]CandidateSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT skill_name, source, confidence FROM candidate_skills
		 WHERE candidate_id = $1
		 ORDER BY skill_name ASC, source ASC`,
		candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CandidateSkill, 0)
	for rows.Next() {
		var s CandidateSkill
		if err := rows.Scan(&s.SkillName, &s.Source, &s.Confidence); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateSkillRepository) FindByCandidateIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]CandidateSkill, error) {
	out := make(map[uuid.UUID][]CandidateSkill, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT candidate_id, skill_name, source, confidence FROM candidate_skills
		 WHERE candidate_id = ANY($1)
		 ORDER BY skill_name ASC, source ASC`,
		ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var s CandidateSkill
		if err := rows.Scan(&id, &s.SkillName, &s.Source, &s.Confidence); err != nil {
			return nil, err
		}
		out[id] = append(out[id], s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateSkillRepository) ReplaceForCandidateSource(ctx context.Context, candidateID uuid.UUID, source string, skills []WeightedSkill) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx,
		`DELETE FROM candidate_skills WHERE candidate_id = $1 AND source = $2`,
		candidateID, source,
	); err != nil {
		return err
	}

	ordered := make([]WeightedSkill, len(skills))
	copy(ordered, skills)
	SortWeightedSkills(ordered)

	for _, s := range ordered {
		if _, err := tx.Exec(ctx,
			`INSERT INTO candidate_skills (id, candidate_id, skill_name, source, confidence)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), candidateID, s.SkillName, source, s.Weight,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

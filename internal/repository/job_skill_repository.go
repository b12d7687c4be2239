package repository

import (
	"context"
	"sort"

	"jobboard/internal/database"

	"github.com/google/uuid"
)

// WeightedSkill is one extracted (skill, weight) pair for an entity.
type WeightedSkill struct {
	SkillName string `json:"skill_name"`
	Weight    int    `json:"weight"`
}

// SortWeightedSkills orders by weight descending, name ascending, the stable
// order used for persistence and ranked output.
func SortWeightedSkills(skills []WeightedSkill) {
	sort.SliceStable(skills, func(i, j int) bool {
		if skills[i].Weight == skills[j].Weight {
			return skills[i].SkillName < skills[j].SkillName
		}
		return skills[i].Weight > skills[j].Weight
	})
}

type JobSkillRepository interface {
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]WeightedSkill, error)
	// ReplaceForJob swaps the job's entire skill set in one transaction. A
	// concurrent reader sees either the old set or the new one, never a mix.
	ReplaceForJob(ctx context.Context, jobID uuid.UUID, skills []WeightedSkill) error
}

type PostgresJobSkillRepository struct {
	db database.DB
}

func NewPostgresJobSkillRepository(db database.DB) *PostgresJobSkillRepository {
	return &PostgresJobSkillRepository{db: db}
}

func (r *PostgresJobSkillRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]WeightedSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT skill_name, weight FROM job_skills
		 WHERE job_id = $1
		 ORDER BY weight DESC, skill_name ASC`,
		jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]WeightedSkill, 0)
	for rows.Next() {
		var s WeightedSkill
		if err := rows.Scan(&s.SkillName, &s.Weight); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobSkillRepository) ReplaceForJob(ctx context.Context, jobID uuid.UUID, skills []WeightedSkill) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM job_skills WHERE job_id = $1`, jobID); err != nil {
		return err
	}

	ordered := make([]WeightedSkill, len(skills))
	copy(ordered, skills)
	SortWeightedSkills(ordered)

	for _, s := range ordered {
		if _, err := tx.Exec(ctx,
			`INSERT INTO job_skills (id, job_id, skill_name, weight) VALUES ($1, $2, $3, $4)`,
			uuid.New(), jobID, s.SkillName, s.Weight,
		); err != nil {
			return err
		}
	}

	// skills_extracted marks that analysis ran, even when it found nothing:
	// a zero-skill job ranks every candidate at 0 instead of refusing.
	if _, err := tx.Exec(ctx,
		`UPDATE jobs SET skills_extracted = true, updated_at = now() WHERE id = $1`,
		jobID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type Job struct {
	ID              uuid.UUID
	CompanyID       uuid.UUID
	Title           string
	Location        string
	Description     string
	ApplyLink       string
	SkillsExtracted bool
	PostedAt        time.Time
}

// JobFilter narrows a listing. Query matches title or location as a
// case-insensitive substring; a zero CompanyID means all companies.
type JobFilter struct {
	Query     string
	CompanyID uuid.UUID
	Limit     int
	Offset    int
}

type JobRepository interface {
	Create(ctx context.Context, j Job) (Job, error)
	Update(ctx context.Context, j Job) (Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListJobs(ctx context.Context, f JobFilter) ([]Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, company_id, title, location, description, COALESCE(apply_link, ''), skills_extracted, posted_at`

func (r *PostgresJobRepository) Create(ctx context.Context, j Job) (Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, company_id, title, location, description, apply_link)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))`,
		j.ID, j.CompanyID, j.Title, j.Location, j.Description, j.ApplyLink,
	)
	if err != nil {
		return Job{}, err
	}
	return r.GetByID(ctx, j.ID)
}

func (r *PostgresJobRepository) Update(ctx context.Context, j Job) (Job, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET title = $1, location = $2, description = $3, apply_link = NULLIF($4, ''), updated_at = now()
		 WHERE id = $5`,
		j.Title, j.Location, j.Description, j.ApplyLink, j.ID,
	)
	if err != nil {
		return Job{}, err
	}
	if affected == 0 {
		return Job{}, ErrJobNotFound
	}
	return r.GetByID(ctx, j.ID)
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) ListJobs(ctx context.Context, f JobFilter) ([]Job, error) {
	query, args := buildJobListQuery(f)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Job, 0)
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Location, &j.Description, &j.ApplyLink, &j.SkillsExtracted, &j.PostedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func buildJobListQuery(f JobFilter) (string, []any) {
	var (
		b    strings.Builder
		args []any
	)
	b.WriteString(`SELECT ` + jobColumns + ` FROM jobs`)

	var conds []string
	if f.CompanyID != uuid.Nil {
		args = append(args, f.CompanyID)
		conds = append(conds, fmt.Sprintf("company_id = $%d", len(args)))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, "%"+q+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR location ILIKE $%d)", len(args), len(args)))
	}
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	args = append(args, f.Limit)
	fmt.Fprintf(&b, " ORDER BY posted_at DESC, id ASC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	fmt.Fprintf(&b, " OFFSET $%d", len(args))

	return b.String(), args
}

func scanJob(row database.Row) (Job, error) {
	var j Job
	if err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Location, &j.Description, &j.ApplyLink, &j.SkillsExtracted, &j.PostedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

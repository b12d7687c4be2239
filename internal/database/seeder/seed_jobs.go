package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"
)

// JobsSeeder attaches a few demo postings to the seeded company account.
// Skill extraction for them runs afterwards in the seed command, not here.
type JobsSeeder struct{}

func (JobsSeeder) Name() string { return "jobs" }

func (JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "jobs", "id", "company_id", "title", "location", "description", "skills_extracted", "posted_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Title       string
		Location    string
		Description string
	}{
		{
			Title:    "Senior Backend Engineer",
			Location: "Remote",
			Description: "We are looking for a backend engineer with strong Python and Django " +
				"experience. PostgreSQL and Docker knowledge required. REST API design is a " +
				"daily part of the job.",
		},
		{
			Title:    "Platform Engineer",
			Location: "Jakarta",
			Description: "Kubernetes and Terraform expertise is essential. You will build " +
				"CI/CD pipelines and operate AWS infrastructure alongside Go services.",
		},
		{
			Title:    "Frontend Developer",
			Location: "Remote",
			Description: "React and TypeScript developer for our hiring dashboard. " +
				"Experience with Node.js tooling preferred.",
		},
	}

	for _, it := range items {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO jobs (id, company_id, title, location, description)
			 SELECT gen_random_uuid(), u.id, $1, $2, $3
			 FROM users u
			 WHERE u.email = 'acme@example.com'
			 AND NOT EXISTS (SELECT 1 FROM jobs j WHERE j.title = $1 AND j.company_id = u.id)`,
			it.Title,
			it.Location,
			it.Description,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

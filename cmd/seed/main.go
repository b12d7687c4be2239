package main

import (
	"context"
	"log"
	"os"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database/seeder"
	"jobboard/internal/extraction"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds demo accounts and postings, then runs skill extraction over any
// posting that has never been analyzed.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags|log.LUTC)

	container, err := app.NewContainer(cfg, logger)
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer func() {
		_ = container.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	runner := seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}
	if err := runner.Run(ctx, container.DB); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	logger.Printf("seed complete")

	if err := extractPendingJobs(ctx, container, logger); err != nil {
		log.Fatalf("seed extraction failed: %v", err)
	}
}

func extractPendingJobs(ctx context.Context, c *app.Container, logger *log.Logger) error {
	rows, err := c.DB.Query(ctx,
		`SELECT id, title, description FROM jobs WHERE skills_extracted = false`)
	if err != nil {
		return err
	}
	defer rows.Close()

	type pending struct {
		ID          uuid.UUID
		Title       string
		Description string
	}
	var jobs []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.ID, &p.Title, &p.Description); err != nil {
			return err
		}
		jobs = append(jobs, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	jobSkills := repository.NewPostgresJobSkillRepository(c.DB)
	for _, j := range jobs {
		weights := c.Engine.ExtractSkills(j.Description, extraction.Options{Title: j.Title})

		skills := make([]repository.WeightedSkill, 0, len(weights))
		for name, w := range weights {
			skills = append(skills, repository.WeightedSkill{SkillName: name, Weight: w})
		}
		repository.SortWeightedSkills(skills)

		if err := jobSkills.ReplaceForJob(ctx, j.ID, skills); err != nil {
			return err
		}
		logger.Printf("seed extraction | job_id=%s skills=%d", j.ID, len(skills))
	}
	return nil
}

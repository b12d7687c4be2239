package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"

	"jobboard/internal/database"
)

// Runner executes seeders in declaration order and stops at the first
// failure so later seeders never run against half-seeded data.
type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("seeder: nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("seeded | name=%s", s.Name())
		}
	}
	return nil
}

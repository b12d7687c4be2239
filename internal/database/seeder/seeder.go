package seeder

import (
	"context"

	"jobboard/internal/database"
)

// Seeder populates one slice of reference data. Implementations must be
// idempotent because the seed command may run against a live database.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

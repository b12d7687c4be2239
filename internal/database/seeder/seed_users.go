package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"

	"golang.org/x/crypto/bcrypt"
)

// UsersSeeder creates a demo account for each role. Passwords are for local
// development only.
type UsersSeeder struct{}

func (UsersSeeder) Name() string { return "users" }

func (UsersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "users", "id", "email", "password_hash", "role", "created_at"); err != nil {
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
		Email    string
		Password string
		Role     string
	}{
		{Email: "admin@example.com", Password: "admin-password", Role: "admin"},
		{Email: "acme@example.com", Password: "company-password", Role: "company"},
		{Email: "alice@example.com", Password: "applicant-password", Role: "applicant"},
		{Email: "bob@example.com", Password: "applicant-password", Role: "applicant"},
	}

	for _, it := range items {
		hash, err := bcrypt.GenerateFromPassword([]byte(it.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO users (id, email, password_hash, role) VALUES (gen_random_uuid(), $1, $2, $3) ON CONFLICT (email) DO NOTHING`,
			it.Email,
			string(hash),
			it.Role,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

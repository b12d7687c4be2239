package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"
)

// RequireColumns fails fast when the live schema is missing columns a seeder
// is about to write, turning a confusing INSERT error into a clear one.
func RequireColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("seeder: nil db")
	}
	if table == "" {
		return fmt.Errorf("seeder: empty table name")
	}

	existing, err := tableColumns(ctx, db, table)
	if err != nil {
		return err
	}
	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("seeder: empty column name for table %s", table)
		}
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}

func tableColumns(ctx context.Context, db database.DB, table string) (map[string]struct{}, error) {
	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`,
		table,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := map[string]struct{}{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = struct{}{}
	}
	return cols, rows.Err()
}

package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Advisory lock key guarding concurrent schema changes. Arbitrary but must
// stay stable across releases.
const schemaLockKey = 582931407

var scriptNameRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

// Runner applies versioned SQL scripts (V<version>__<name>.sql) in order and
// records each in schema_migrations with a checksum, so editing an already
// applied script fails loudly instead of silently diverging.
type Runner struct {
	Dir    string
	Logger *log.Logger
}

type script struct {
	version  int64
	name     string
	filename string
	body     string
	checksum string
}

func (r Runner) Run(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("migration: nil db")
	}

	dir, err := r.scriptsDir()
	if err != nil {
		return err
	}
	scripts, err := discoverScripts(dir)
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		return nil
	}

	if err := ensureLedger(ctx, db); err != nil {
		return err
	}

	return withSchemaLock(ctx, db, func() error {
		applied, err := ledgerChecksums(ctx, db)
		if err != nil {
			return err
		}
		for _, s := range scripts {
			if sum, ok := applied[s.version]; ok {
				if sum != s.checksum {
					return fmt.Errorf("migration %s changed after being applied (checksum mismatch)", s.filename)
				}
				continue
			}
			if err := r.apply(ctx, db, s); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r Runner) scriptsDir() (string, error) {
	if strings.TrimSpace(r.Dir) != "" {
		return r.Dir, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), "migrations"), nil
}

func discoverScripts(dir string) ([]script, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	seen := map[int64]string{}
	scripts := make([]script, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		s, ok, err := parseScript(dir, e.Name())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if prev, dup := seen[s.version]; dup {
			return nil, fmt.Errorf("migration version %d declared twice: %s and %s", s.version, prev, s.filename)
		}
		seen[s.version] = s.filename
		scripts = append(scripts, s)
	}

	sort.Slice(scripts, func(i, j int) bool { return scripts[i].version < scripts[j].version })
	return scripts, nil
}

func parseScript(dir, filename string) (script, bool, error) {
	m := scriptNameRe.FindStringSubmatch(filename)
	if m == nil {
		return script{}, false, nil
	}
	version, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return script{}, false, fmt.Errorf("migration %s: bad version: %w", filename, err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return script{}, false, err
	}
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return script{}, false, fmt.Errorf("migration %s is empty", filename)
	}
	sum := sha256.Sum256([]byte(body))
	return script{
		version:  version,
		name:     m[2],
		filename: filename,
		body:     body,
		checksum: hex.EncodeToString(sum[:]),
	}, true, nil
}

func ensureLedger(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

func withSchemaLock(ctx context.Context, db *sql.DB, fn func() error) error {
	if _, err := db.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, schemaLockKey); err != nil {
		return err
	}
	defer func() {
		_, _ = db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, schemaLockKey)
	}()
	return fn()
}

func ledgerChecksums(ctx context.Context, db *sql.DB) (map[int64]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := map[int64]string{}
	for rows.Next() {
		var version int64
		var checksum string
		if err := rows.Scan(&version, &checksum); err != nil {
			return nil, err
		}
		applied[version] = checksum
	}
	return applied, rows.Err()
}

func (r Runner) apply(ctx context.Context, db *sql.DB, s script) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.body); err != nil {
		return fmt.Errorf("apply migration %s: %w", s.filename, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		s.version, s.name, s.checksum,
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	if r.Logger != nil {
		r.Logger.Printf("migration applied | version=%d file=%s", s.version, s.filename)
	}
	return nil
}

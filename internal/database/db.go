package database

import (
	"context"
	"database/sql"
)

// Querier is the statement surface shared by the pool and an open
// transaction, so the same SQL helpers run in either scope.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

// DB is the pool-backed handle handed to repositories. SQLDB exposes a
// database/sql view for tooling built on the standard driver interface,
// such as the migration runner.
type DB interface {
	Querier

	Ping(ctx context.Context) error
	Close() error

	Begin(ctx context.Context) (Tx, error)

	SQLDB() *sql.DB
}

// Tx is an open transaction. Rollback after a successful Commit is a no-op.
type Tx interface {
	Querier

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}

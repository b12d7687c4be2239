package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

var errPoolClosed = errors.New("postgres: pool is not connected")

// Pool adapts pgxpool to the database.DB interface and keeps a database/sql
// view alive for tooling built on the standard driver interface.
type Pool struct {
	pool  *pgxpool.Pool
	sqlDB *sql.DB
}

// Connect opens a pgx pool against the configured database and verifies it
// with a ping before handing it out. The returned handle owns both the pool
// and its database/sql view; Close releases the two together.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (database.DB, error) {
	pcfg, err := pgxpool.ParseConfig(connString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	tunePool(pcfg, cfg)

	p, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	if err := pingWithDeadline(ctx, p); err != nil {
		p.Close()
		return nil, err
	}
	return &Pool{pool: p, sqlDB: stdlib.OpenDBFromPool(p)}, nil
}

func connString(cfg config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		strings.TrimSpace(cfg.DBHost),
		strings.TrimSpace(cfg.DBPort),
		strings.TrimSpace(cfg.DBUser),
		cfg.DBPassword,
		strings.TrimSpace(cfg.DBName),
		strings.TrimSpace(cfg.DBSSLMode),
	)
}

func tunePool(pcfg *pgxpool.Config, cfg config.DatabaseConfig) {
	if cfg.ConnectTimeout > 0 {
		pcfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.PoolMaxConns > 0 {
		pcfg.MaxConns = cfg.PoolMaxConns
	}
	if cfg.PoolMinConns > 0 {
		pcfg.MinConns = cfg.PoolMinConns
	}
	if cfg.PoolMaxConnLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.PoolMaxConnLifetime
	}
	if cfg.PoolMaxConnIdleTime > 0 {
		pcfg.MaxConnIdleTime = cfg.PoolMaxConnIdleTime
	}
}

// pingWithDeadline bounds the startup ping so a wedged database fails fast
// even when the caller passed an open-ended context.
func pingWithDeadline(ctx context.Context, p *pgxpool.Pool) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	return p.Ping(ctx)
}

func (p *Pool) ready() bool {
	return p != nil && p.pool != nil
}

func (p *Pool) Ping(ctx context.Context) error {
	if !p.ready() {
		return errPoolClosed
	}
	return p.pool.Ping(ctx)
}

func (p *Pool) Close() error {
	if p == nil {
		return nil
	}
	if p.sqlDB != nil {
		_ = p.sqlDB.Close()
	}
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Pool) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if !p.ready() {
		return 0, errPoolClosed
	}
	tag, err := p.pool.Exec(ctx, query, args...)
	return tag.RowsAffected(), err
}

func (p *Pool) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	if !p.ready() {
		return nil, errPoolClosed
	}
	r, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rowsAdapter{r}, nil
}

func (p *Pool) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	if !p.ready() {
		return failedRow{errPoolClosed}
	}
	return rowAdapter{p.pool.QueryRow(ctx, query, args...)}
}

func (p *Pool) Begin(ctx context.Context) (database.Tx, error) {
	if !p.ready() {
		return nil, errPoolClosed
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return poolTx{tx}, nil
}

func (p *Pool) SQLDB() *sql.DB {
	if p == nil {
		return nil
	}
	return p.sqlDB
}

type poolTx struct {
	tx pgx.Tx
}

func (t poolTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (t poolTx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	r, err := t.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rowsAdapter{r}, nil
}

func (t poolTx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return rowAdapter{t.tx.QueryRow(ctx, query, args...)}
}

func (t poolTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t poolTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

type rowsAdapter struct {
	rows pgx.Rows
}

func (r rowsAdapter) Close()                 { r.rows.Close() }
func (r rowsAdapter) Next() bool             { return r.rows.Next() }
func (r rowsAdapter) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r rowsAdapter) Err() error             { return r.rows.Err() }

type rowAdapter struct {
	row pgx.Row
}

func (r rowAdapter) Scan(dest ...any) error { return r.row.Scan(dest...) }

// failedRow defers a connection error until Scan so QueryRow keeps its
// error-free signature.
type failedRow struct {
	err error
}

func (r failedRow) Scan(_ ...any) error { return r.err }

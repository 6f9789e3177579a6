// Package database defines the narrow SQL surface the repositories
// depend on, so they never import a driver directly.
package database

import (
	"context"
	"database/sql"
)

// DB is the pooled connection handle shared by the repositories, the
// migration runner and the seeders.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	Begin(ctx context.Context) (Tx, error)

	// SQLDB exposes the wrapped *sql.DB for the migration runner.
	SQLDB() *sql.DB
}

// Tx mirrors the DB query surface inside a transaction. The
// recommendation replace-on-regenerate runs through it.
type Tx interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

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

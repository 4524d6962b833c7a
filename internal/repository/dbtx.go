package repository

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql operations shared by *sql.DB and
// *sql.Tx. Every repository runs against a DBTX, so the write coordinator
// can rebind them to a transaction and execute foreign-key validation,
// reference resolution and the entity insert atomically.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Runner executes a function inside a transaction. Rollback on error or
// panic, commit otherwise. A cancelled context rolls back via the driver.
type Runner struct{ DB *sql.DB }

func NewRunner(db *sql.DB) *Runner { return &Runner{DB: db} }

func (r *Runner) RunInTx(ctx context.Context, fn func(q DBTX) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

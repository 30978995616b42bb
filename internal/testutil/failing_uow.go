package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danivilar/atelier/internal/db"
)

// FaultyUoW is a UnitOfWork whose transactions fail on a chosen write,
// for asserting that multi-write operations roll back cleanly. Writes
// are counted from 1 per transaction; reads always pass through.
type FaultyUoW struct {
	DB         *sql.DB
	FailOnExec int
	Err        error
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if fnErr := fn(ctx, &faultyTx{DBTX: tx, failOn: u.FailOnExec, err: u.Err}); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type faultyTx struct {
	db.DBTX
	execs  int
	failOn int
	err    error
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.execs++
	if f.execs == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

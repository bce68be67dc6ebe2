package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/evaluador/internal/db"
)

// FailOnNthExecUoW wraps the SQLite unit of work and makes the FailOn-th
// write inside a transaction return Err, counting from 1. Reads are not
// counted. Execs reports how many writes were attempted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error

	Execs int
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	u.Execs = 0
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingTx{DBTX: tx, uow: u})
	})
}

type failingTx struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.uow.Execs++
	if f.uow.Execs == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

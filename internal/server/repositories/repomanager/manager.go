// Package repomanager vends repository implementations bound to a database
// handle or transaction, runs schema migrations and executes units of work
// atomically.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/focusflow/internal/dbx"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/tasks"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context, db *sql.DB) error
	// WithTx runs fn atomically; repositories obtained from the tx handle
	// passed to fn take part in the same unit of work.
	WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error
	Accounts(db dbx.DBTX) accounts.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}

package repomanager

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/focusflow/internal/dbx"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/memstore"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/tasks"
)

// InMemoryRepositoryManager keeps all data in process memory. The db and
// tx handles passed to it are ignored and may be nil. Units of work run
// one at a time.
type InMemoryRepositoryManager struct {
	store *memstore.Store
	txMu  sync.Mutex
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{store: memstore.New()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Ping(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, _ *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}

func (m *InMemoryRepositoryManager) Accounts(dbx.DBTX) accounts.Repository {
	return accounts.NewMemoryRepository(m.store)
}

func (m *InMemoryRepositoryManager) Tasks(dbx.DBTX) tasks.Repository {
	return tasks.NewMemoryRepository(m.store)
}

func (m *InMemoryRepositoryManager) Sessions(dbx.DBTX) sessions.Repository {
	return sessions.NewMemoryRepository(m.store)
}

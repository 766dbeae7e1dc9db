package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/server/models"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/memstore"
)

type MemoryRepository struct {
	store *memstore.Store
}

func NewMemoryRepository(store *memstore.Store) *MemoryRepository {
	return &MemoryRepository{store: store}
}

func (r *MemoryRepository) Create(_ context.Context, s *models.Session) error {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()

	if _, ok := r.store.Accounts[s.AccountID]; !ok {
		return fmt.Errorf("owner %d: %w", s.AccountID, common.ErrorNotFound)
	}
	if _, ok := r.store.Sessions[s.ID]; ok {
		return fmt.Errorf("db error: duplicate session id %s", s.ID)
	}

	s.CreatedAt = time.Now().UTC()
	r.store.Sessions[s.ID] = *s
	return nil
}

func (r *MemoryRepository) Find(_ context.Context, id string) (*models.Session, error) {
	r.store.Mu.RLock()
	defer r.store.Mu.RUnlock()

	s, ok := r.store.Sessions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	a, ok := r.store.Accounts[s.AccountID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	s.Username = a.Username
	return &s, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()

	delete(r.store.Sessions, id)
	return nil
}

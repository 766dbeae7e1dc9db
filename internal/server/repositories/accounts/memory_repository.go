package accounts

import (
	"context"
	"sort"
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

func (r *MemoryRepository) Create(_ context.Context, account *models.Account) (*models.Account, error) {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()

	// email is checked across all accounts before username
	for _, a := range r.store.Accounts {
		if a.Email == account.Email {
			return nil, common.ErrEmailTaken
		}
	}
	for _, a := range r.store.Accounts {
		if a.Username == account.Username {
			return nil, common.ErrUsernameTaken
		}
	}

	account.ID = r.store.NextAccountID()
	account.CreatedAt = time.Now().UTC()
	r.store.Accounts[account.ID] = *account

	return account, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*models.Account, error) {
	r.store.Mu.RLock()
	defer r.store.Mu.RUnlock()

	a, ok := r.store.Accounts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.store.Mu.RLock()
	defer r.store.Mu.RUnlock()

	for _, a := range r.store.Accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) FindByEmailOrUsername(_ context.Context, email, username string) ([]models.Account, error) {
	r.store.Mu.RLock()
	defer r.store.Mu.RUnlock()

	var result []models.Account
	for _, a := range r.store.Accounts {
		if a.Email == email || a.Username == username {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

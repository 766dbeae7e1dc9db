package tasks

import (
	"context"
	"fmt"
	"sort"

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

func (r *MemoryRepository) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()

	if _, ok := r.store.Accounts[task.AccountID]; !ok {
		return nil, fmt.Errorf("owner %d: %w", task.AccountID, common.ErrorNotFound)
	}

	task.ID = r.store.NextTaskID()
	r.store.Tasks[task.ID] = *task

	return task, nil
}

func (r *MemoryRepository) ListByOwner(_ context.Context, accountID int64) ([]models.Task, error) {
	r.store.Mu.RLock()
	defer r.store.Mu.RUnlock()

	result := make([]models.Task, 0)
	for _, t := range r.store.Tasks {
		if t.AccountID == accountID {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

func (r *MemoryRepository) GetForUpdate(_ context.Context, accountID, id int64) (*models.Task, error) {
	r.store.Mu.RLock()
	defer r.store.Mu.RUnlock()

	t, ok := r.store.Tasks[id]
	if !ok || t.AccountID != accountID {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *MemoryRepository) Update(_ context.Context, task *models.Task) error {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()

	cur, ok := r.store.Tasks[task.ID]
	if !ok || cur.AccountID != task.AccountID {
		return common.ErrorNotFound
	}

	cur.Name = task.Name
	cur.Description = task.Description
	cur.Done = task.Done
	cur.LastModified = task.LastModified
	r.store.Tasks[task.ID] = cur

	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, accountID, id int64) error {
	r.store.Mu.Lock()
	defer r.store.Mu.Unlock()

	t, ok := r.store.Tasks[id]
	if !ok || t.AccountID != accountID {
		return common.ErrorNotFound
	}
	delete(r.store.Tasks, id)

	return nil
}

func (r *MemoryRepository) Stats(_ context.Context, accountID int64) (models.TaskStats, error) {
	r.store.Mu.RLock()
	defer r.store.Mu.RUnlock()

	var s models.TaskStats
	for _, t := range r.store.Tasks {
		if t.AccountID != accountID {
			continue
		}
		s.Count++
		if t.ID > s.LatestID {
			s.LatestID = t.ID
		}
	}
	return s, nil
}

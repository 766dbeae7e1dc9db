package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/dbx"
	"github.com/dmitrijs2005/focusflow/internal/server/models"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/focusflow/internal/server/validation"
)

// TaskService performs task operations on behalf of an authenticated
// account. A task owned by another account is indistinguishable from an
// absent one: both yield common.ErrorNotFound.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{
		db:          db,
		repomanager: m,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func requireIdentity(identity models.Identity) error {
	if identity.AccountID <= 0 {
		return common.ErrorUnauthorized
	}
	return nil
}

// List returns the caller's tasks in id order. If any stored record fails
// validation the whole call fails with common.ErrCorruptRecord.
func (s *TaskService) List(ctx context.Context, identity models.Identity) ([]models.Task, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	list, err := s.repomanager.Tasks(s.db).ListByOwner(ctx, identity.AccountID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	for i := range list {
		if err := validation.StoredTask(&list[i]); err != nil {
			return nil, err
		}
	}

	return list, nil
}

func (s *TaskService) Create(ctx context.Context, identity models.Identity, in validation.TaskInput) (*models.Task, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	task := &models.Task{
		AccountID:    identity.AccountID,
		Name:         in.Name,
		Description:  in.Description,
		Done:         false,
		LastModified: s.now(),
	}

	created, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return created, nil
}

// Edit overwrites name and description of one of the caller's tasks. The
// done flag and owner are left as they are.
func (s *TaskService) Edit(ctx context.Context, identity models.Identity, in validation.TaskEditInput) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}

	return s.repomanager.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		task, err := repo.GetForUpdate(ctx, identity.AccountID, in.ID)
		if err != nil {
			return err
		}

		task.Name = in.Name
		task.Description = in.Description
		task.LastModified = s.now()

		return repo.Update(ctx, task)
	})
}

// Delete removes one of the caller's tasks permanently.
func (s *TaskService) Delete(ctx context.Context, identity models.Identity, taskID int64) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}
	return s.repomanager.Tasks(s.db).Delete(ctx, identity.AccountID, taskID)
}

// SetDone sets the done flag. Setting it to its current value succeeds.
func (s *TaskService) SetDone(ctx context.Context, identity models.Identity, taskID int64, done bool) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}

	return s.repomanager.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		task, err := repo.GetForUpdate(ctx, identity.AccountID, taskID)
		if err != nil {
			return err
		}

		task.Done = done
		task.LastModified = s.now()

		return repo.Update(ctx, task)
	})
}

// Count reports how many tasks the caller owns and the highest id among
// them. An account without tasks yields common.ErrorNotFound.
func (s *TaskService) Count(ctx context.Context, identity models.Identity) (models.TaskStats, error) {
	if err := requireIdentity(identity); err != nil {
		return models.TaskStats{}, err
	}

	stats, err := s.repomanager.Tasks(s.db).Stats(ctx, identity.AccountID)
	if err != nil {
		return models.TaskStats{}, fmt.Errorf("error counting tasks: %w", err)
	}
	if stats.Count == 0 {
		return models.TaskStats{}, common.ErrorNotFound
	}
	return stats, nil
}

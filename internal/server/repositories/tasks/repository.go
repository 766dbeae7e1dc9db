// Package tasks stores tasks. Every lookup and mutation is scoped by the
// owning account id so that one account can never observe or modify
// another account's tasks.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/focusflow/internal/server/models"
)

type Repository interface {
	// Create inserts the task and fills its ID. An unknown owner yields
	// common.ErrorNotFound.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	// ListByOwner returns the owner's tasks ordered by id.
	ListByOwner(ctx context.Context, accountID int64) ([]models.Task, error)
	// GetForUpdate loads one task owned by accountID, locking the row when
	// called inside a transaction.
	GetForUpdate(ctx context.Context, accountID, id int64) (*models.Task, error)
	// Update persists name, description, done and last_modified of an
	// existing task belonging to task.AccountID.
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, accountID, id int64) error
	Stats(ctx context.Context, accountID int64) (models.TaskStats, error)
}

// Package accounts stores registered FocusFlow accounts.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/focusflow/internal/server/models"
)

type Repository interface {
	// Create inserts the account and fills its ID and CreatedAt. A taken
	// email or username yields common.ErrEmailTaken / common.ErrUsernameTaken.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// FindByEmailOrUsername returns every account matching either value,
	// ordered by id. An empty result is not an error.
	FindByEmailOrUsername(ctx context.Context, email, username string) ([]models.Account, error)
}

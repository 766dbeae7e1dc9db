// Package sessions stores server-side session records. A session row is
// the authority for whether a signed session cookie is still honoured.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/focusflow/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, session *models.Session) error
	// Find loads a session with the owning account's username filled in.
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// Package services contains server-side business logic. Every operation
// takes the caller's models.Identity explicitly and reports failures with
// the sentinels from internal/common.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/server/auth"
	"github.com/dmitrijs2005/focusflow/internal/server/config"
	"github.com/dmitrijs2005/focusflow/internal/server/models"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// OpenedSession is what the transport needs to set the session cookie.
type OpenedSession struct {
	Token      string
	ExpiresAt  time.Time
	Persistent bool
}

// SessionService establishes, resolves and terminates sign-in sessions.
// The cookie carries a signed token naming a server-side session row; the
// row decides whether the session is still live.
type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	secret      []byte
	lifetime    time.Duration
	now         func() time.Time
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *SessionService {
	return &SessionService{
		db:          db,
		repomanager: m,
		secret:      []byte(cfg.SecretKey),
		lifetime:    cfg.SessionLifetime,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Open creates a session for accountID. Persistent sessions are meant to be
// stored by the browser across restarts; both kinds expire server-side
// after the configured lifetime.
func (s *SessionService) Open(ctx context.Context, accountID int64, persistent bool) (*OpenedSession, error) {
	session := &models.Session{
		ID:         uuid.NewString(),
		AccountID:  accountID,
		Persistent: persistent,
		ExpiresAt:  s.now().Add(s.lifetime),
	}

	if err := s.repomanager.Sessions(s.db).Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	token, err := auth.GenerateSessionToken(session.ID, accountID, session.ExpiresAt, s.secret)
	if err != nil {
		return nil, err
	}

	return &OpenedSession{Token: token, ExpiresAt: session.ExpiresAt, Persistent: persistent}, nil
}

// Resolve maps a session token to the identity it authenticates. Every
// failure wraps common.ErrorUnauthorized.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := auth.ParseSessionToken(token, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	repo := s.repomanager.Sessions(s.db)

	session, err := repo.Find(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: session closed", common.ErrorUnauthorized)
		}
		return nil, fmt.Errorf("error loading session: %w", err)
	}

	if session.AccountID != claims.AccountID {
		return nil, fmt.Errorf("%w: session owner mismatch", common.ErrorUnauthorized)
	}

	if !s.now().Before(session.ExpiresAt) {
		if err := repo.Delete(ctx, session.ID); err != nil {
			return nil, fmt.Errorf("error deleting expired session: %w", err)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrTokenExpired)
	}

	return &models.Identity{
		AccountID: session.AccountID,
		Username:  session.Username,
		SessionID: session.ID,
	}, nil
}

// Close terminates the identity's session. Closing an already closed
// session succeeds.
func (s *SessionService) Close(ctx context.Context, identity models.Identity) error {
	if identity.SessionID == "" {
		return common.ErrorUnauthorized
	}
	if err := s.repomanager.Sessions(s.db).Delete(ctx, identity.SessionID); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

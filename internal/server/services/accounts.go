package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/server/auth"
	"github.com/dmitrijs2005/focusflow/internal/server/models"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/focusflow/internal/server/validation"
)

// AccountService handles signup, login and logout.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    *SessionService
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, sessions *SessionService) *AccountService {
	return &AccountService{db: db, repomanager: m, sessions: sessions}
}

// Signup registers a new account and signs it in with a non-persistent
// session. A taken email is reported before a taken username.
func (s *AccountService) Signup(ctx context.Context, in validation.SignupInput) (*models.Account, *OpenedSession, error) {
	repo := s.repomanager.Accounts(s.db)

	existing, err := repo.FindByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("error checking account uniqueness: %w", err)
	}
	for _, a := range existing {
		if a.Email == in.Email {
			return nil, nil, common.ErrEmailTaken
		}
	}
	if len(existing) > 0 {
		return nil, nil, common.ErrUsernameTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	// a concurrent signup can still win the race; the store reports it
	account, err := repo.Create(ctx, &models.Account{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) || errors.Is(err, common.ErrUsernameTaken) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("error creating account: %w", err)
	}

	session, err := s.sessions.Open(ctx, account.ID, false)
	if err != nil {
		return nil, nil, err
	}
	return account, session, nil
}

// Login verifies credentials and opens a persistent session. An unknown
// email and a wrong password are reported distinctly.
func (s *AccountService) Login(ctx context.Context, in validation.LoginInput) (*models.Account, *OpenedSession, error) {
	account, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrNoSuchUser
		}
		return nil, nil, fmt.Errorf("error loading account: %w", err)
	}

	ok, err := auth.CheckPassword(account.PasswordHash, in.Password)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, common.ErrIncorrectPassword
	}

	session, err := s.sessions.Open(ctx, account.ID, true)
	if err != nil {
		return nil, nil, err
	}
	return account, session, nil
}

// Logout terminates the caller's session unconditionally.
func (s *AccountService) Logout(ctx context.Context, identity models.Identity) error {
	return s.sessions.Close(ctx, identity)
}

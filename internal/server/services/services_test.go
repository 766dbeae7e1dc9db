package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/dbx"
	"github.com/dmitrijs2005/focusflow/internal/server/config"
	"github.com/dmitrijs2005/focusflow/internal/server/models"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/focusflow/internal/server/validation"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

type fixture struct {
	rm       *repomanager.InMemoryRepositoryManager
	sessions *SessionService
	accounts *AccountService
	tasks    *TaskService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{SecretKey: "k", SessionLifetime: 50 * time.Minute}
	rm := repomanager.NewInMemoryRepositoryManager()
	sessions := NewSessionService(nil, rm, cfg)
	return &fixture{
		rm:       rm,
		sessions: sessions,
		accounts: NewAccountService(nil, rm, sessions),
		tasks:    NewTaskService(nil, rm),
	}
}

// signup registers an account and resolves its fresh session.
func (f *fixture) signup(t *testing.T, username string) models.Identity {
	t.Helper()
	ctx := context.Background()

	_, sess, err := f.accounts.Signup(ctx, validation.SignupInput{
		Email:    username + "@example.com",
		Username: username,
		Password: "pw-" + username,
	})
	require.NoError(t, err)

	id, err := f.sessions.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	return *id
}

// fakeTasksManager serves a canned task list and delegates everything else.
type fakeTasksManager struct {
	*repomanager.InMemoryRepositoryManager
	list []models.Task
}

func (m *fakeTasksManager) Tasks(db dbx.DBTX) tasks.Repository {
	return &cannedTasks{Repository: m.InMemoryRepositoryManager.Tasks(db), list: m.list}
}

type cannedTasks struct {
	tasks.Repository
	list []models.Task
}

func (c *cannedTasks) ListByOwner(context.Context, int64) ([]models.Task, error) {
	return c.list, nil
}

package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/focusflow/internal/client/api"
	"github.com/dmitrijs2005/focusflow/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	pingErr   error
	authErr   error
	taskErr   error
	tasks     []api.Task
	stats     api.Stats
	nextID    int64
	lastEmail string
	lastUser  string
	lastPass  string
	calls     []string
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }
func (f *fakeAPI) Signup(_ context.Context, email, username string, password []byte) error {
	f.lastEmail, f.lastUser, f.lastPass = email, username, string(password)
	return f.authErr
}
func (f *fakeAPI) Login(_ context.Context, email string, password []byte) error {
	f.lastEmail, f.lastPass = email, string(password)
	return f.authErr
}
func (f *fakeAPI) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	return nil
}
func (f *fakeAPI) List(context.Context) ([]api.Task, error) { return f.tasks, f.taskErr }
func (f *fakeAPI) Add(_ context.Context, name, description string) (int64, error) {
	f.calls = append(f.calls, fmt.Sprintf("add %s/%s", name, description))
	return f.nextID, f.taskErr
}
func (f *fakeAPI) Edit(_ context.Context, id int64, name, description string) error {
	f.calls = append(f.calls, fmt.Sprintf("edit %d %s/%s", id, name, description))
	return f.taskErr
}
func (f *fakeAPI) SetDone(_ context.Context, id int64, done bool) error {
	f.calls = append(f.calls, fmt.Sprintf("done %d %t", id, done))
	return f.taskErr
}
func (f *fakeAPI) Delete(_ context.Context, id int64) error {
	f.calls = append(f.calls, fmt.Sprintf("delete %d", id))
	return f.taskErr
}
func (f *fakeAPI) Count(context.Context) (api.Stats, error) { return f.stats, f.taskErr }

func newTestApp(t *testing.T, f *fakeAPI, input string) (*App, *bytes.Buffer) {
	t.Helper()

	oldPw := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("pw"), nil }
	t.Cleanup(func() { readPassword = oldPw })

	out := &bytes.Buffer{}
	return &App{
		config: &config.Config{ServerURL: "http://test"},
		api:    f,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}, out
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(&config.Config{ServerURL: "http://127.0.0.1:5000"})
	require.NoError(t, err)
	assert.False(t, app.isLoggedIn())

	_, err = NewApp(&config.Config{ServerURL: "gopher://x"})
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	f := &fakeAPI{}
	app, out := newTestApp(t, f, "alice@example.com\nalice\n")

	require.NoError(t, app.Register(context.Background()))
	assert.Equal(t, "alice@example.com", f.lastEmail)
	assert.Equal(t, "alice", f.lastUser)
	assert.Equal(t, "pw", f.lastPass)
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "(alice) ", app.getStatus())
	assert.Contains(t, out.String(), "Success!")
}

func TestLogin_Failure(t *testing.T) {
	f := &fakeAPI{authErr: fmt.Errorf("%w: Incorrect password!", api.ErrRejected)}
	app, out := newTestApp(t, f, "alice@example.com\n")

	err := app.Login(context.Background())
	require.ErrorIs(t, err, api.ErrRejected)
	assert.False(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Incorrect password!")
}

func TestTaskCommands(t *testing.T) {
	f := &fakeAPI{
		nextID: 7,
		tasks:  []api.Task{{ID: 7, Name: "Write report", Description: "Q3", Done: true, Date: "2026-10-18 09:30"}},
		stats:  api.Stats{Amount: 1, LatestID: 7},
	}
	app, out := newTestApp(t, f, "Write report\nQ3\nNew name\nNew desc\n")
	app.userName = "alice"
	ctx := context.Background()

	require.NoError(t, app.Add(ctx))
	require.NoError(t, app.Edit(ctx, []string{"7"}))
	require.NoError(t, app.SetDone(ctx, []string{"7"}, true))
	require.NoError(t, app.SetDone(ctx, []string{"7"}, false))
	require.NoError(t, app.Delete(ctx, []string{"7"}))
	require.NoError(t, app.List(ctx))
	require.NoError(t, app.Count(ctx))

	assert.Equal(t, []string{
		"add Write report/Q3",
		"edit 7 New name/New desc",
		"done 7 true",
		"done 7 false",
		"delete 7",
	}, f.calls)

	text := out.String()
	assert.Contains(t, text, "Task 7 added.")
	assert.Contains(t, text, "[x]")
	assert.Contains(t, text, "2026-10-18 09:30")
	assert.Contains(t, text, "1 task(s), latest id 7.")
}

func TestTaskCommands_BadArgs(t *testing.T) {
	f := &fakeAPI{}
	app, out := newTestApp(t, f, "")
	app.userName = "alice"
	ctx := context.Background()

	assert.Error(t, app.Delete(ctx, nil))
	assert.Error(t, app.SetDone(ctx, []string{"abc"}, true))
	assert.Error(t, app.Edit(ctx, []string{"0"}))
	assert.Empty(t, f.calls)
	assert.Contains(t, out.String(), "Usage: delete <id>")
	assert.Contains(t, out.String(), `invalid task id "abc"`)
}

func TestTaskCommands_SessionExpired(t *testing.T) {
	f := &fakeAPI{taskErr: api.ErrUnauthorized}
	app, out := newTestApp(t, f, "")
	app.userName = "alice"

	assert.ErrorIs(t, app.List(context.Background()), api.ErrUnauthorized)
	assert.False(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Session expired")
}

func TestCount_Empty(t *testing.T) {
	app, out := newTestApp(t, &fakeAPI{}, "")
	require.NoError(t, app.Count(context.Background()))
	assert.Contains(t, out.String(), "No tasks yet.")
}

func TestRun_WarnsWhenUnreachableAndLogsOut(t *testing.T) {
	f := &fakeAPI{pingErr: errors.New("dial tcp: refused")}
	app, out := newTestApp(t, f, "login\nalice@example.com\nexit\n")

	app.Run(context.Background())

	assert.Contains(t, out.String(), "is not reachable")
	assert.Equal(t, []string{"logout"}, f.calls)
	assert.False(t, app.isLoggedIn())
}


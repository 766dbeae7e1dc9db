package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/focusflow/internal/client/api"
	"github.com/dmitrijs2005/focusflow/internal/client/config"
)

// taskAPI is the part of api.Client the commands use.
type taskAPI interface {
	Ping(ctx context.Context) error
	Signup(ctx context.Context, email, username string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	List(ctx context.Context) ([]api.Task, error)
	Add(ctx context.Context, name, description string) (int64, error)
	Edit(ctx context.Context, id int64, name, description string) error
	SetDone(ctx context.Context, id int64, done bool) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (api.Stats, error)
}

type App struct {
	config   *config.Config
	api      taskAPI
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(c *config.Config) (*App, error) {
	client, err := api.New(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return &App{config: c, api: client, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.userName)
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to FocusFlow CLI (type 'help' for commands)")

	if err := a.api.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: %s is not reachable: %v\n", a.config.ServerURL, err)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)

	if a.isLoggedIn() {
		_ = a.Logout(ctx)
	}
}

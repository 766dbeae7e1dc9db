// Package server wires FocusFlow together: it opens the store, runs the
// schema migrations, builds the services and serves the HTTP API and the
// gRPC health endpoint until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/logging"
	"github.com/dmitrijs2005/focusflow/internal/server/config"
	"github.com/dmitrijs2005/focusflow/internal/server/httpapi"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/focusflow/internal/server/services"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	gs "github.com/dmitrijs2005/focusflow/internal/server/grpc"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	repos  repomanager.RepositoryManager
	router http.Handler
	tracer *sdktrace.TracerProvider
}

func NewApp(c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	app := &App{config: c, logger: logger}

	if c.TraceStdout {
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("tracer init error: %w", err)
		}
		app.tracer = sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
		otel.SetTracerProvider(app.tracer)
	}

	if c.UsesMemoryStore() {
		logger.Warn(context.Background(), "using the in-memory store; data is lost on exit")
		app.repos = repomanager.NewInMemoryRepositoryManager()
	} else {
		db, err := sql.Open("pgx", c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.db = db
		app.repos = repomanager.NewPostgresRepositoryManager()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		app.closeDB()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	sessions := services.NewSessionService(app.db, app.repos, c)

	app.router = httpapi.NewRouter(httpapi.Deps{
		Accounts:     services.NewAccountService(app.db, app.repos, sessions),
		Sessions:     sessions,
		Tasks:        services.NewTaskService(app.db, app.repos),
		Metrics:      httpapi.NewMetrics(),
		Logger:       logger,
		CookieSecure: c.CookieSecure,
		Ping:         app.ping,
	})

	return app, nil
}

func (app *App) ping(ctx context.Context) error {
	return app.repos.Ping(ctx, app.db)
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	srv := &http.Server{
		Addr:              app.config.EndpointAddrHTTP,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddrHTTP)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger, app.ping)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails,
// then releases the database and flushes pending spans.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.closeDB()

	if app.tracer != nil {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.tracer.Shutdown(flushCtx); err != nil {
			app.logger.Error(flushCtx, "tracer shutdown error", "error", err)
		}
	}

	app.logger.Info(context.Background(), "App stopped")
}

func (app *App) closeDB() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}
}

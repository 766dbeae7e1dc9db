// Package httpapi is the HTTP surface of FocusFlow: server-rendered pages
// for signup, login and the dashboard, and a JSON API for tasks. Handlers
// translate sentinel errors from the services into status codes.
package httpapi

import (
	"context"

	"github.com/dmitrijs2005/focusflow/internal/logging"
	"github.com/dmitrijs2005/focusflow/internal/server/services"
)

const (
	loginPath     = "/auth/login_page"
	signupPath    = "/auth/signup"
	dashboardPath = "/task/dashboard/view"
)

// Handler carries the dependencies shared by every route.
type Handler struct {
	accounts     *services.AccountService
	sessions     *services.SessionService
	tasks        *services.TaskService
	metrics      *Metrics
	log          logging.Logger
	cookieSecure bool
	ping         func(ctx context.Context) error
}

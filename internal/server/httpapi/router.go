package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/focusflow/internal/logging"
	"github.com/dmitrijs2005/focusflow/internal/server/services"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	Accounts *services.AccountService
	Sessions *services.SessionService
	Tasks    *services.TaskService
	Metrics  *Metrics
	Logger   logging.Logger

	// CookieSecure sets the Secure attribute on every cookie issued.
	CookieSecure bool

	// Ping reports store reachability for /health. Nil means always healthy.
	Ping func(ctx context.Context) error
}

// NewRouter wires middleware and routes into a gin engine.
func NewRouter(d Deps) *gin.Engine {
	if d.Metrics == nil {
		d.Metrics = NewMetrics()
	}
	if d.Logger == nil {
		d.Logger = logging.Nop{}
	}

	h := &Handler{
		accounts:     d.Accounts,
		sessions:     d.Sessions,
		tasks:        d.Tasks,
		metrics:      d.Metrics,
		log:          d.Logger.With("module", "http"),
		cookieSecure: d.CookieSecure,
		ping:         d.Ping,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("focusflow"))
	r.Use(accessLog(h.log, d.Metrics))
	r.Use(h.authenticate())
	r.SetHTMLTemplate(loadTemplates())

	r.GET("/", h.home)
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	authGroup := r.Group("/auth")
	{
		authGroup.GET("/signup", h.signupPage)
		authGroup.POST("/signup", h.signup)
		authGroup.GET("/login_page", h.loginPage)
		authGroup.POST("/login_page", h.login)
		authGroup.POST("/logout", h.requirePage(), h.logout)
	}

	taskGroup := r.Group("/task")
	{
		taskGroup.GET("/dashboard/view", h.requirePage(), h.dashboardPage)

		api := taskGroup.Group("", requireAPI())
		api.GET("/dashboard", h.listTasks)
		api.GET("/tasks", h.listTasks)
		api.POST("/tasks", h.createTask)
		api.PATCH("/tasks", h.editTask)
		api.DELETE("/delete/:id", h.deleteTask)
		api.GET("/getTasksLength/", h.countTasks)
		api.PATCH("/done/:id", h.setDone)
	}

	return r
}

func (h *Handler) health(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			h.log.Warn(c.Request.Context(), "store unreachable", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

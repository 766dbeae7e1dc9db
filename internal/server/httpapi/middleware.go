package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/logging"
	"github.com/dmitrijs2005/focusflow/internal/server/models"
	"github.com/gin-gonic/gin"
)

const identityKey = "focusflow_identity"

// SetIdentity stores the resolved identity on the request context.
func SetIdentity(c *gin.Context, id *models.Identity) {
	c.Set(identityKey, id)
}

// GetIdentity returns the identity resolved for this request, or nil.
func GetIdentity(c *gin.Context) *models.Identity {
	if v, exists := c.Get(identityKey); exists {
		if id, ok := v.(*models.Identity); ok {
			return id
		}
	}
	return nil
}

// accessLog logs each request once it completes and feeds the HTTP metrics.
// Cookies and bodies are never logged.
func accessLog(log logging.Logger, m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		m.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(elapsed.Seconds())

		args := []any{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency_ms", elapsed.Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		switch {
		case status >= http.StatusInternalServerError:
			log.Error(c.Request.Context(), "request", args...)
		case status >= http.StatusBadRequest:
			log.Warn(c.Request.Context(), "request", args...)
		default:
			log.Info(c.Request.Context(), "request", args...)
		}
	}
}

// authenticate resolves the session cookie, when present, into an identity.
// A cookie that no longer resolves is cleared; the request continues
// anonymously and the route guards decide what to do.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(common.SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		id, err := h.sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, common.ErrorUnauthorized) {
				h.log.Error(c.Request.Context(), "session lookup failed", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				return
			}
			h.log.Debug(c.Request.Context(), "session rejected", "reason", err.Error())
			h.clearSessionCookie(c)
			c.Next()
			return
		}

		SetIdentity(c, id)
		c.Next()
	}
}

// requireAPI rejects anonymous API calls with 401.
func requireAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetIdentity(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// requirePage sends anonymous page visitors to the login page.
func (h *Handler) requirePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetIdentity(c) == nil {
			h.setFlash(c, "Please log in to access this page.")
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

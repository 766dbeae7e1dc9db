package httpapi

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/server/services"
	"github.com/gin-gonic/gin"
)

// setSessionCookie stores the session token. Non-persistent sessions get a
// browser-session cookie; persistent ones carry an explicit expiry.
func (h *Handler) setSessionCookie(c *gin.Context, s *services.OpenedSession) {
	cookie := &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    s.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.Persistent {
		cookie.Expires = s.ExpiresAt
		cookie.MaxAge = int(time.Until(s.ExpiresAt).Seconds())
	}
	http.SetCookie(c.Writer, cookie)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// setFlash queues a one-shot message for the next rendered page.
func (h *Handler) setFlash(c *gin.Context, msg string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     common.FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(msg)),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the queued message, if any, and clears it.
func (h *Handler) popFlash(c *gin.Context) string {
	raw, err := c.Cookie(common.FlashCookieName)
	if err != nil || raw == "" {
		return ""
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     common.FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	msg, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return ""
	}
	return string(msg)
}

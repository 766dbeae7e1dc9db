// Package common contains shared constants and sentinel errors used across
// FocusFlow components.
package common

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "focusflow_session"

	// FlashCookieName carries a one-shot message for the next rendered page.
	FlashCookieName = "focusflow_flash"

	// TaskDateLayout is the wire format of task timestamps (YYYY-MM-DD HH:MM).
	TaskDateLayout = "2006-01-02 15:04"
)

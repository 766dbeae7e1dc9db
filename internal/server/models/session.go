package models

import "time"

type Session struct {
	ID         string
	AccountID  int64
	Persistent bool
	ExpiresAt  time.Time
	CreatedAt  time.Time

	// Username is filled by lookups that join the owning account.
	Username string
}

// Identity is the authenticated caller of a request. Its absence is the only
// "unauthenticated" signal; services take it as an explicit argument.
type Identity struct {
	AccountID int64
	Username  string
	SessionID string
}

// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is a registered user. Username and email are unique across the
// store; PasswordHash is a bcrypt digest and never leaves the server.
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

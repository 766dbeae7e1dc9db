// Package common defines shared constants and sentinel errors used across
// the repository, service and transport layers of FocusFlow. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Malformed request: body absent, not JSON, or not a JSON object.
	ErrMalformedBody = errors.New("malformed request body")

	// Validation errors.
	ErrValidation  = errors.New("validation error")
	ErrMissingKeys = errors.New("missing keys")
	ErrWrongType   = errors.New("wrong data types")
	ErrEmptyFields = errors.New("empty fields")
	ErrBadPayload  = errors.New("bad payload")

	// Account conflicts.
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already registered")

	// Authentication failures.
	ErrNoSuchUser        = errors.New("no such user")
	ErrIncorrectPassword = errors.New("incorrect password")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// A stored record failed structural validation on read.
	ErrCorruptRecord = errors.New("stored record failed validation")
)

// Package common defines shared constants and sentinel errors used across
// the Forevo server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already in use")
	ErrDuplicateUsername = errors.New("username already taken")

	// Storage-level errors. Wrapped around the underlying I/O or decode
	// cause by the repositories.
	ErrStorageRead  = errors.New("storage read error")
	ErrStorageWrite = errors.New("storage write error")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrMissingParameter = errors.New("missing parameter")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)

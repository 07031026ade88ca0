// Package common defines shared constants and sentinel errors used across
// client and server layers of GophNotes. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid, malformed or mis-signed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors. Always reported together with ErrInvalidToken.
	ErrTokenExpired = errors.New("token expired")
)

// Package common contains shared constants and sentinel errors used across
// GophNotes components.
package common

// AuthTokenHeaderName is the HTTP header used to carry the access token on
// requests to protected routes.
const AuthTokenHeaderName = "auth-token"

// MinPasswordHashCost is the lowest bcrypt work factor the server accepts.
const MinPasswordHashCost = 10

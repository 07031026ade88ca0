// Package client contains client-side building blocks for GophNotes.
//
// # Overview
//
// The package provides:
//  1. HTTPClient, a thin JSON client for the GophNotes HTTP API: Signup,
//     Login, Ping and the note operations. Protected calls take the access
//     token explicitly and send it in the auth-token header.
//  2. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the CLI, wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError carrying the server message.
// They also match a sentinel via errors.Is: ErrUnauthorized (401),
// ErrNotFound (404), ErrRejected (400), ErrTooManyRequests (429).
// Transport failures and 5xx answers match ErrUnavailable.
//
// All operations accept context.Context and honor cancellation/timeouts.
package client

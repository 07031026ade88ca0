package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrRejected        = errors.New("request rejected")
	ErrTooManyRequests = errors.New("too many requests")
	ErrNotLoggedIn     = errors.New("not logged in")
)

// APIError is a non-2xx answer from the server. Message is the text the
// server put into its "error" field; errors.Is matches the sentinel that
// corresponds to Status.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.kind != nil:
		return e.kind.Error()
	default:
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
}

func (e *APIError) Unwrap() error {
	return e.kind
}

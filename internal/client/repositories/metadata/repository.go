// Package metadata is a small key/value store in the local client database.
// The CLI keeps its session (access token, signed-in email) here.
package metadata

import "context"

type Repository interface {
	// Get returns the stored value; ok is false when key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

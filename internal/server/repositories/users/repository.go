package users

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

// Repository is the credential store.
type Repository interface {
	// Create stores user, assigning an id when empty. Returns
	// common.ErrorConflict when the email is already registered.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByEmail returns common.ErrorNotFound when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

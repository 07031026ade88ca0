package notes

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

// Repository is the note collection. Lookups of a missing id return
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	FindByID(ctx context.Context, id string) (*models.Note, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Note, error)
	Update(ctx context.Context, id string, upd models.NoteUpdate) (*models.Note, error)
	Delete(ctx context.Context, id string) error
}

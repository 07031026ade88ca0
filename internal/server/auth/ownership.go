package auth

import (
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

// CheckOwnership allows access to note only for its owner. A nil note is
// common.ErrorNotFound; a note owned by someone else is
// common.ErrorUnauthorized.
func CheckOwnership(note *models.Note, requesterID string) error {
	if note == nil {
		return common.ErrorNotFound
	}
	if requesterID == "" || note.UserID != requesterID {
		return common.ErrorUnauthorized
	}
	return nil
}

package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/events"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// NoteService implements note CRUD for an authenticated user. Every method
// takes the caller's user id as resolved by the authorization gate.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	events      events.Publisher
	logger      logging.Logger
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, pub events.Publisher, logger logging.Logger) *NoteService {
	return &NoteService{
		db:          db,
		repomanager: m,
		events:      pub,
		logger:      logger.With("module", "notes"),
	}
}

// List returns the user's notes, possibly none.
func (s *NoteService) List(ctx context.Context, userID string) ([]*models.Note, error) {
	items, err := s.repomanager.Notes(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, s.internal(ctx, "list notes", err)
	}
	return items, nil
}

// Get returns one note. A note owned by someone else is
// common.ErrorUnauthorized.
func (s *NoteService) Get(ctx context.Context, userID, noteID string) (*models.Note, error) {
	if !validID(noteID) {
		return nil, common.ErrorNotFound
	}

	note, err := s.repomanager.Notes(s.db).FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, s.internal(ctx, "get note", err)
	}

	if err := auth.CheckOwnership(note, userID); err != nil {
		return nil, err
	}
	return note, nil
}

// Create stores a new note owned by userID.
func (s *NoteService) Create(ctx context.Context, userID, title, body string) (*models.Note, error) {
	note, err := s.repomanager.Notes(s.db).Create(ctx, &models.Note{UserID: userID, Title: title, Body: body})
	if err != nil {
		return nil, s.internal(ctx, "create note", err)
	}

	s.events.Publish(events.Event{Kind: events.KindCreateNote, SubjectID: note.ID, UserID: userID})
	return note, nil
}

// Update applies upd to the caller's note. Lookup, ownership check and write
// share one transaction. Notes that are missing or owned by someone else are
// both common.ErrorNotFound.
func (s *NoteService) Update(ctx context.Context, userID, noteID string, upd models.NoteUpdate) (*models.Note, error) {
	if !validID(noteID) {
		return nil, common.ErrorNotFound
	}

	var result *models.Note
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)

		note, err := repo.FindByID(ctx, noteID)
		if err != nil {
			return err
		}
		if err := auth.CheckOwnership(note, userID); err != nil {
			return hideForeign(err)
		}

		if upd.Empty() {
			result = note
			return nil
		}

		result, err = repo.Update(ctx, noteID, upd)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, s.internal(ctx, "update note", err)
	}

	s.events.Publish(events.Event{Kind: events.KindUpdateNote, SubjectID: noteID, UserID: userID})
	return result, nil
}

// Delete removes the caller's note, with the same visibility rules as Update.
func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	if !validID(noteID) {
		return common.ErrorNotFound
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)

		note, err := repo.FindByID(ctx, noteID)
		if err != nil {
			return err
		}
		if err := auth.CheckOwnership(note, userID); err != nil {
			return hideForeign(err)
		}
		return repo.Delete(ctx, noteID)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return s.internal(ctx, "delete note", err)
	}

	s.events.Publish(events.Event{Kind: events.KindDeleteNote, SubjectID: noteID, UserID: userID})
	return nil
}

func (s *NoteService) internal(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}

// hideForeign turns "exists but not yours" into "not found" on mutating
// paths.
func hideForeign(err error) error {
	if errors.Is(err, common.ErrorUnauthorized) {
		return common.ErrorNotFound
	}
	return err
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

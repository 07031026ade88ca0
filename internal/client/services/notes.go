package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/metadata"
)

// NotesAPI is the part of the server API the note service needs.
type NotesAPI interface {
	ListNotes(ctx context.Context, token string) ([]models.Note, error)
	GetNote(ctx context.Context, token, id string) (*models.Note, error)
	CreateNote(ctx context.Context, token, title, body string) (*models.Note, error)
	UpdateNote(ctx context.Context, token, id string, changes models.NoteChanges) (*models.Note, error)
	DeleteNote(ctx context.Context, token, id string) error
	Export(ctx context.Context, token string) (string, error)
}

// NoteService runs note operations on behalf of the signed-in user. Every
// method fails with client.ErrNotLoggedIn when no session is cached.
type NoteService interface {
	List(ctx context.Context) ([]models.Note, error)
	Get(ctx context.Context, id string) (*models.Note, error)
	Create(ctx context.Context, title, body string) (*models.Note, error)
	Update(ctx context.Context, id string, changes models.NoteChanges) (*models.Note, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context) (string, error)
}

type noteService struct {
	api NotesAPI
	db  *sql.DB
}

func NewNoteService(api NotesAPI, db *sql.DB) NoteService {
	return &noteService{api: api, db: db}
}

func (s *noteService) token(ctx context.Context) (string, error) {
	token, ok, err := metadata.NewSQLiteRepository(s.db).Get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	if !ok || token == "" {
		return "", client.ErrNotLoggedIn
	}
	return token, nil
}

func (s *noteService) List(ctx context.Context) ([]models.Note, error) {
	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}
	return s.api.ListNotes(ctx, token)
}

func (s *noteService) Get(ctx context.Context, id string) (*models.Note, error) {
	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}
	return s.api.GetNote(ctx, token, id)
}

func (s *noteService) Create(ctx context.Context, title, body string) (*models.Note, error) {
	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}
	return s.api.CreateNote(ctx, token, title, body)
}

func (s *noteService) Update(ctx context.Context, id string, changes models.NoteChanges) (*models.Note, error) {
	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateNote(ctx, token, id, changes)
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	token, err := s.token(ctx)
	if err != nil {
		return err
	}
	return s.api.DeleteNote(ctx, token, id)
}

func (s *noteService) Export(ctx context.Context) (string, error) {
	token, err := s.token(ctx)
	if err != nil {
		return "", err
	}
	return s.api.Export(ctx, token)
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setMeta(t *testing.T, db *sql.DB, k, v string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES(?, ?)`, k, v)
	require.NoError(t, err)
}

func countMeta(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	return n
}

// fakeAPI records the token it was called with and returns canned results.
type fakeAPI struct {
	token string
	err   error

	lastToken    string
	lastEmail    string
	lastPassword string
	lastName     string
	lastID       string
	lastChanges  models.NoteChanges

	notes []models.Note
	note  *models.Note
	url   string
}

func (f *fakeAPI) Signup(ctx context.Context, name, email, password string) (string, error) {
	f.lastName, f.lastEmail, f.lastPassword = name, email, password
	return f.token, f.err
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (string, error) {
	f.lastEmail, f.lastPassword = email, password
	return f.token, f.err
}

func (f *fakeAPI) Ping(ctx context.Context) error { return f.err }

func (f *fakeAPI) ListNotes(ctx context.Context, token string) ([]models.Note, error) {
	f.lastToken = token
	return f.notes, f.err
}

func (f *fakeAPI) GetNote(ctx context.Context, token, id string) (*models.Note, error) {
	f.lastToken, f.lastID = token, id
	return f.note, f.err
}

func (f *fakeAPI) CreateNote(ctx context.Context, token, title, body string) (*models.Note, error) {
	f.lastToken = token
	return &models.Note{ID: "new", Title: title, Body: body}, f.err
}

func (f *fakeAPI) UpdateNote(ctx context.Context, token, id string, changes models.NoteChanges) (*models.Note, error) {
	f.lastToken, f.lastID, f.lastChanges = token, id, changes
	return f.note, f.err
}

func (f *fakeAPI) DeleteNote(ctx context.Context, token, id string) error {
	f.lastToken, f.lastID = token, id
	return f.err
}

func (f *fakeAPI) Export(ctx context.Context, token string) (string, error) {
	f.lastToken = token
	return f.url, f.err
}

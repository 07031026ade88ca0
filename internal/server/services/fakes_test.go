package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/events"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	notesrepo "github.com/dmitrijs2005/gophnotes/internal/server/repositories/notes"
	usersrepo "github.com/dmitrijs2005/gophnotes/internal/server/repositories/users"
	"github.com/google/uuid"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeUsersRepo is an in-memory credential store with a unique email index.
type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User

	getErr    error
	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorConflict
	}
	cp := *u
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	cp.CreatedAt = time.Now()
	f.byEmail[cp.Email] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsersRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUsersRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byEmail)
}

// fakeNotesRepo is an in-memory note collection.
type fakeNotesRepo struct {
	mu    sync.Mutex
	items map[string]*models.Note
	order []string

	listErr   error
	findErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeNotesRepo() *fakeNotesRepo {
	return &fakeNotesRepo{items: map[string]*models.Note{}}
}

func (f *fakeNotesRepo) Create(_ context.Context, n *models.Note) (*models.Note, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *n
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	cp.CreatedAt = time.Now()
	f.items[cp.ID] = &cp
	f.order = append(f.order, cp.ID)
	out := cp
	return &out, nil
}

func (f *fakeNotesRepo) FindByID(_ context.Context, id string) (*models.Note, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *n
	return &out, nil
}

func (f *fakeNotesRepo) ListByUser(_ context.Context, userID string) ([]*models.Note, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Note
	for _, id := range f.order {
		if n, ok := f.items[id]; ok && n.UserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeNotesRepo) Update(_ context.Context, id string, upd models.NoteUpdate) (*models.Note, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Body != nil {
		n.Body = *upd.Body
	}
	out := *n
	return &out, nil
}

func (f *fakeNotesRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	n *fakeNotesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.u }
func (m *fakeRepoManager) Notes(dbx.DBTX) notesrepo.Repository          { return m.n }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) kinds() []events.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.Kind
	for _, e := range p.events {
		out = append(out, e.Kind)
	}
	return out
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func noteFor(userID, title string) *models.Note {
	return &models.Note{UserID: userID, Title: title, Body: title + " body"}
}

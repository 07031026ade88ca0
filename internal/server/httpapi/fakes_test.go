package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/google/uuid"
)

type fakeUsers struct {
	codec *auth.TokenCodec

	mu    sync.Mutex
	users map[string]string // email -> password
	ids   map[string]string // email -> id

	err error
}

func newFakeUsers(codec *auth.TokenCodec) *fakeUsers {
	return &fakeUsers{codec: codec, users: map[string]string{}, ids: map[string]string{}}
}

func (f *fakeUsers) Signup(_ context.Context, name, email, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[email]; ok {
		return "", common.ErrorConflict
	}
	f.users[email] = password
	f.ids[email] = uuid.NewString()
	return f.codec.Issue(f.ids[email], email)
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	pw, ok := f.users[email]
	if !ok || pw != password {
		return "", common.ErrorInvalidCredentials
	}
	return f.codec.Issue(f.ids[email], email)
}

type fakeNotes struct {
	mu    sync.Mutex
	items map[string]*models.Note
	order []string

	panicOnList bool
}

func newFakeNotes() *fakeNotes {
	return &fakeNotes{items: map[string]*models.Note{}}
}

func (f *fakeNotes) List(_ context.Context, userID string) ([]*models.Note, error) {
	if f.panicOnList {
		panic("list exploded")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Note
	for _, id := range f.order {
		if n := f.items[id]; n != nil && n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotes) Get(_ context.Context, userID, noteID string) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.items[noteID]
	if err := auth.CheckOwnership(n, userID); err != nil {
		return nil, err
	}
	return n, nil
}

func (f *fakeNotes) Create(_ context.Context, userID, title, body string) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := &models.Note{ID: uuid.NewString(), UserID: userID, Title: title, Body: body, CreatedAt: time.Now()}
	f.items[n.ID] = n
	f.order = append(f.order, n.ID)
	return n, nil
}

func (f *fakeNotes) Update(_ context.Context, userID, noteID string, upd models.NoteUpdate) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.items[noteID]
	if err := auth.CheckOwnership(n, userID); err != nil {
		return nil, common.ErrorNotFound
	}
	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Body != nil {
		n.Body = *upd.Body
	}
	return n, nil
}

func (f *fakeNotes) Delete(_ context.Context, userID, noteID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.items[noteID]
	if err := auth.CheckOwnership(n, userID); err != nil {
		return common.ErrorNotFound
	}
	delete(f.items, noteID)
	return nil
}

type fakeExports struct {
	url string
	err error
	got string
}

func (f *fakeExports) Export(_ context.Context, userID string) (string, error) {
	f.got = userID
	return f.url, f.err
}

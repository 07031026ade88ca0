package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_SavesSession(t *testing.T) {
	db := setupDB(t)
	api := &fakeAPI{token: "tok-1"}
	svc := NewAuthService(api, db)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ann", "ann@x.io", []byte("secret1")))

	assert.Equal(t, "Ann", api.lastName)
	assert.Equal(t, "ann@x.io", api.lastEmail)
	assert.Equal(t, "secret1", api.lastPassword)

	email, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.io", email)

	token, err := NewNoteService(api, db).(*noteService).token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestLogin_ReplacesPreviousSession(t *testing.T) {
	db := setupDB(t)
	setMeta(t, db, keyEmail, "old@x.io")
	setMeta(t, db, keyToken, "old-token")
	setMeta(t, db, "stale", "value")

	svc := NewAuthService(&fakeAPI{token: "tok-2"}, db)
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "bob@x.io", []byte("secret2")))

	email, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob@x.io", email)
	assert.Equal(t, 2, countMeta(t, db))
}

func TestLogin_FailureKeepsSessionUntouched(t *testing.T) {
	db := setupDB(t)
	setMeta(t, db, keyEmail, "ann@x.io")
	setMeta(t, db, keyToken, "tok")

	svc := NewAuthService(&fakeAPI{err: client.ErrRejected}, db)

	err := svc.Login(context.Background(), "ann@x.io", []byte("wrong"))
	assert.ErrorIs(t, err, client.ErrRejected)
	assert.Equal(t, 2, countMeta(t, db))
}

func TestRegister_APIError(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(&fakeAPI{err: errBoom}, db)

	err := svc.Register(context.Background(), "Ann", "ann@x.io", []byte("secret1"))
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, countMeta(t, db))
}

func TestRegister_SessionSaveError(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(&fakeAPI{token: "tok"}, db)
	require.NoError(t, db.Close())

	err := svc.Register(context.Background(), "Ann", "ann@x.io", []byte("secret1"))
	assert.ErrorContains(t, err, "session saving error")
}

func TestLogout_ClearsSession(t *testing.T) {
	db := setupDB(t)
	setMeta(t, db, keyEmail, "ann@x.io")
	setMeta(t, db, keyToken, "tok")

	svc := NewAuthService(&fakeAPI{}, db)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx))

	_, err := svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, client.ErrNotLoggedIn)
}

func TestPing(t *testing.T) {
	db := setupDB(t)

	assert.NoError(t, NewAuthService(&fakeAPI{}, db).Ping(context.Background()))
	assert.ErrorIs(t, NewAuthService(&fakeAPI{err: client.ErrUnavailable}, db).Ping(context.Background()), client.ErrUnavailable)
}

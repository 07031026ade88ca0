package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, users *fakeUsersRepo) (*UserService, *auth.TokenCodec, *recordingPublisher) {
	t.Helper()
	codec, err := auth.NewTokenCodec("k", time.Hour)
	require.NoError(t, err)

	pub := &recordingPublisher{}
	rm := &fakeRepoManager{u: users, n: newFakeNotesRepo()}
	svc := NewUserService((*sql.DB)(nil), rm, codec, auth.NewPasswordHasher(common.MinPasswordHashCost), pub, logging.NewNopLogger())
	return svc, codec, pub
}

func TestSignupAndLogin_Scenario(t *testing.T) {
	users := newFakeUsersRepo()
	s, codec, pub := newUserService(t, users)
	ctx := context.Background()

	t1, err := s.Signup(ctx, "Ann", "ann@x.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, t1)

	stored, err := users.GetUserByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	t2, err := s.Login(ctx, "ann@x.com", "secret1")
	require.NoError(t, err)

	id, err := codec.Verify(t2)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, id.UserID)
	assert.Equal(t, "ann@x.com", id.Email)

	assert.Equal(t, []events.Kind{events.KindSignup, events.KindLogin}, pub.kinds())
	assert.Equal(t, stored.ID, pub.events[0].SubjectID)
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	users := newFakeUsersRepo()
	s, _, pub := newUserService(t, users)
	ctx := context.Background()

	_, err := s.Signup(ctx, "Ann", "ann@x.com", "secret1")
	require.NoError(t, err)

	_, wrongPw := s.Login(ctx, "ann@x.com", "wrong")
	_, noUser := s.Login(ctx, "nobody@x.com", "x")

	assert.ErrorIs(t, wrongPw, common.ErrorInvalidCredentials)
	assert.ErrorIs(t, noUser, common.ErrorInvalidCredentials)
	assert.Equal(t, wrongPw.Error(), noUser.Error())

	assert.Equal(t, []events.Kind{events.KindSignup}, pub.kinds())
}

func TestSignup_DuplicateEmail(t *testing.T) {
	users := newFakeUsersRepo()
	s, _, _ := newUserService(t, users)
	ctx := context.Background()

	_, err := s.Signup(ctx, "Ann", "ann@x.com", "secret1")
	require.NoError(t, err)

	_, err = s.Signup(ctx, "Ann 2", "ann@x.com", "other12")
	assert.ErrorIs(t, err, common.ErrorConflict)
	assert.Equal(t, 1, users.count())
}

func TestSignup_ConcurrentSameEmail(t *testing.T) {
	users := newFakeUsersRepo()
	s, _, _ := newUserService(t, users)

	const n = 4
	start := make(chan struct{})
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = s.Signup(context.Background(), "Ann", "race@x.com", "secret1")
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, common.ErrorConflict):
			conflict++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflict)
	assert.Equal(t, 1, users.count())
}

func TestSignup_StoreConflictOnCreate(t *testing.T) {
	users := newFakeUsersRepo()
	users.createErr = common.ErrorConflict
	s, _, pub := newUserService(t, users)

	_, err := s.Signup(context.Background(), "Ann", "ann@x.com", "secret1")
	assert.ErrorIs(t, err, common.ErrorConflict)
	assert.Empty(t, pub.kinds())
}

func TestSignup_InternalErrors(t *testing.T) {
	t.Run("lookup", func(t *testing.T) {
		users := newFakeUsersRepo()
		users.getErr = errBoom{}
		s, _, _ := newUserService(t, users)

		_, err := s.Signup(context.Background(), "Ann", "ann@x.com", "secret1")
		assert.ErrorIs(t, err, common.ErrorInternal)
	})
	t.Run("create", func(t *testing.T) {
		users := newFakeUsersRepo()
		users.createErr = errBoom{}
		s, _, _ := newUserService(t, users)

		_, err := s.Signup(context.Background(), "Ann", "ann@x.com", "secret1")
		assert.ErrorIs(t, err, common.ErrorInternal)
		assert.NotContains(t, err.Error(), "boom")
	})
}

func TestLogin_LookupError(t *testing.T) {
	users := newFakeUsersRepo()
	users.getErr = errBoom{}
	s, _, _ := newUserService(t, users)

	_, err := s.Login(context.Background(), "ann@x.com", "secret1")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

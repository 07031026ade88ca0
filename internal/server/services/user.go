// Package services contains server-side business logic. This file implements
// UserService, the authenticator: signup and login against the credential
// store, issuing access tokens on success.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/events"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Signup: create a user and return an access token
// - Login: verify credentials and return an access token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *auth.TokenCodec
	hasher      *auth.PasswordHasher
	events      events.Publisher
	logger      logging.Logger
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.TokenCodec,
	hasher *auth.PasswordHasher, pub events.Publisher, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		codec:       codec,
		hasher:      hasher,
		events:      pub,
		logger:      logger.With("module", "users"),
	}
}

// Signup registers a new user and returns a token bound to it. An email that
// is already registered yields common.ErrorConflict. The lookup beforehand
// only saves a bcrypt round for the common case; the unique constraint in
// the store decides concurrent signups.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return "", common.ErrorConflict
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "signup lookup failed", "error", err)
		return "", common.ErrorInternal
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return "", common.ErrorInternal
	}

	user, err := repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return "", common.ErrorConflict
		}
		s.logger.Error(ctx, "user create failed", "error", err)
		return "", common.ErrorInternal
	}

	token, err := s.codec.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "user_id", user.ID, "error", err)
		return "", common.ErrorInternal
	}

	s.events.Publish(events.Event{Kind: events.KindSignup, SubjectID: user.ID, UserID: user.ID})
	s.logger.Info(ctx, "user registered", "user_id", user.ID)

	return token, nil
}

// Login verifies the credentials and returns a fresh token. Unknown email
// and wrong password both return common.ErrorInvalidCredentials, and both
// pay for one bcrypt comparison.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(password)
			return "", common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "login lookup failed", "error", err)
		return "", common.ErrorInternal
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return "", common.ErrorInvalidCredentials
	}

	token, err := s.codec.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "user_id", user.ID, "error", err)
		return "", common.ErrorInternal
	}

	s.events.Publish(events.Event{Kind: events.KindLogin, SubjectID: user.ID, UserID: user.ID})

	return token, nil
}

// Package services contains application services for the GophNotes client.
// This file defines the authentication service: register, login, logout,
// liveness probe, and the locally cached session.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
)

// Session keys in the metadata table.
const (
	keyToken = "token"
	keyEmail = "email"
)

// AuthAPI is the part of the server API the auth service needs.
type AuthAPI interface {
	Signup(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Ping(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create an account on the server and start a session.
//   - Login: authenticate against the server and cache the access token.
//   - Logout: forget the cached session. The token itself stays valid on
//     the server until it expires.
//   - CurrentUser: email of the signed-in user, or client.ErrNotLoggedIn.
//   - Ping: check server liveness.
type AuthService interface {
	Register(ctx context.Context, name, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
}

type authService struct {
	api AuthAPI
	db  *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(api AuthAPI, db *sql.DB) AuthService {
	return &authService{api: api, db: db}
}

func (a *authService) Register(ctx context.Context, name, email string, password []byte) error {
	token, err := a.api.Signup(ctx, name, email, string(password))
	if err != nil {
		return err
	}
	if err := a.saveSession(ctx, email, token); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	token, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	if err := a.saveSession(ctx, email, token); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

// saveSession replaces whatever session was cached before.
func (a *authService) saveSession(ctx context.Context, email, token string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyEmail, email); err != nil {
			return err
		}
		return repo.Set(ctx, keyToken, token)
	})
}

func (a *authService) Logout(ctx context.Context) error {
	return metadata.NewSQLiteRepository(a.db).Clear(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (string, error) {
	email, ok, err := metadata.NewSQLiteRepository(a.db).Get(ctx, keyEmail)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", client.ErrNotLoggedIn
	}
	return email, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.api.Ping(ctx)
}

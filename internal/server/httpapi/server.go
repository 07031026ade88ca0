// Package httpapi exposes the note service over HTTP+JSON. Protected routes
// sit behind an authorization gate that reads the access token from the
// auth-token header.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

// UserService is the authenticator used by /signup and /login.
type UserService interface {
	Signup(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// NoteService serves the /notes routes for the authenticated user.
type NoteService interface {
	List(ctx context.Context, userID string) ([]*models.Note, error)
	Get(ctx context.Context, userID, noteID string) (*models.Note, error)
	Create(ctx context.Context, userID, title, body string) (*models.Note, error)
	Update(ctx context.Context, userID, noteID string, upd models.NoteUpdate) (*models.Note, error)
	Delete(ctx context.Context, userID, noteID string) error
}

// ExportService serves POST /notes/export.
type ExportService interface {
	Export(ctx context.Context, userID string) (string, error)
}

// TokenVerifier resolves an access token to an identity.
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// HTTPServer wires handlers, middleware and the listener.
type HTTPServer struct {
	address         string
	users           UserService
	notes           NoteService
	exports         ExportService
	tokens          TokenVerifier
	limiter         *loginLimiter
	logger          logging.Logger
	shutdownTimeout time.Duration
}

// Option customises an HTTPServer.
type Option func(*HTTPServer)

// WithLoginRateLimit allows limit login attempts per client IP per window.
func WithLoginRateLimit(limit int, window time.Duration) Option {
	return func(s *HTTPServer) { s.limiter = newLoginLimiter(limit, window) }
}

// WithShutdownTimeout bounds how long Run waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *HTTPServer) { s.shutdownTimeout = d }
}

func NewHTTPServer(address string, l logging.Logger, us UserService, ns NoteService, es ExportService,
	tv TokenVerifier, opts ...Option) *HTTPServer {
	s := &HTTPServer{
		address:         address,
		logger:          l.With("module", "http_server"),
		users:           us,
		notes:           ns,
		exports:         es,
		tokens:          tv,
		limiter:         newLoginLimiter(defaultLoginLimit, defaultLoginWindow),
		shutdownTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

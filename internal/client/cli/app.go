package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

type App struct {
	config      *config.Config
	db          *sql.DB
	authService services.AuthService
	noteService services.NoteService
	logger      logging.Logger
	userEmail   string
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	db, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:      c,
		db:          db,
		authService: services.NewAuthService(apiClient, db),
		noteService: services.NewNoteService(apiClient, db),
		logger:      logger.With("module", "cli"),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run restores a cached session, warns when the server is unreachable and
// hands control to the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	fmt.Fprintln(a.out, "Welcome to GophNotes CLI (type 'help' for commands)")

	if email, err := a.authService.CurrentUser(ctx); err == nil {
		a.userEmail = email
	} else if !errors.Is(err, client.ErrNotLoggedIn) {
		a.logger.Warn(ctx, "cannot read local session", "error", err)
	}

	if err := a.authService.Ping(ctx); err != nil {
		a.logger.Warn(ctx, "server is not reachable", "url", a.config.ServerURL, "error", err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.userEmail != ""
}

func (a *App) getStatus() string {
	if a.userEmail == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userEmail)
}

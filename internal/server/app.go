// Package server assembles and runs the GophNotes server: PostgreSQL,
// migrations, the token codec, services, the event bus and the HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/config"
	"github.com/dmitrijs2005/gophnotes/internal/server/events"
	"github.com/dmitrijs2005/gophnotes/internal/server/httpapi"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	bus    *events.Bus
	server *httpapi.HTTPServer
}

const startupTimeout = 30 * time.Second

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	codec, err := auth.NewTokenCodec(c.SecretKey, c.AccessTokenValidityDuration)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	hasher := auth.NewPasswordHasher(c.PasswordHashCost)

	bus := events.NewBus(c.EventBufferSize, logger)
	bus.Subscribe(events.NewAuditListener(logger))

	us := services.NewUserService(db, rm, codec, hasher, bus, logger)
	ns := services.NewNoteService(db, rm, bus, logger)
	es := services.NewExportService(db, rm, c, logger)

	srv := httpapi.NewHTTPServer(c.EndpointAddrHTTP, logger, us, ns, es, codec,
		httpapi.WithLoginRateLimit(c.LoginRateLimit, c.LoginRateWindow),
		httpapi.WithShutdownTimeout(c.ShutdownTimeout),
	)

	return &App{config: c, logger: logger, db: db, bus: bus, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives or ctx is done, then stops
// the HTTP server, flushes pending events and closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	// The bus outlives the HTTP server so events from requests finishing
	// during shutdown still reach the listeners.
	busCtx, stopBus := context.WithCancel(context.WithoutCancel(ctx))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.bus.Run(busCtx)
	}()

	app.startHTTPServer(ctx, cancelFunc)

	stopBus()
	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}

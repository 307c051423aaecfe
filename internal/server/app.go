// Package server initializes and runs the authentication service: it opens
// the database, runs migrations, wires the credential lifecycle components,
// starts the HTTP endpoint, and handles graceful shutdown.
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

	"github.com/campuskit/campusauth/internal/logging"
	"github.com/campuskit/campusauth/internal/server/auth"
	"github.com/campuskit/campusauth/internal/server/config"
	"github.com/campuskit/campusauth/internal/server/httpapi"
	"github.com/campuskit/campusauth/internal/server/passwords"
	"github.com/campuskit/campusauth/internal/server/repositories/repomanager"
	"github.com/campuskit/campusauth/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	hasher := passwords.NewBcryptHasher(c.BcryptCost, int64(c.MaxConcurrentHashes))
	issuer := auth.NewIssuer([]byte(c.SecretKey), c.TokenValidityDuration)
	accountService := services.NewAccountService(db, rm, hasher, issuer, logger)

	httpServer := httpapi.NewServer(c.EndpointAddrHTTP, accountService, issuer, logger)

	return &App{config: c, logger: logger, db: db, httpServer: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		s := <-sigs
		app.logger.Info(context.Background(), "Received signal", "signal", s.String())
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}

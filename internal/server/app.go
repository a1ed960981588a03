// Package server initializes and runs the studiokeeper application server.
// It wires the database handle, lazy storage provisioning, the services
// layer, and the HTTP endpoint, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ronin-designs/studiokeeper/internal/logging"
	"github.com/ronin-designs/studiokeeper/internal/server/admins"
	"github.com/ronin-designs/studiokeeper/internal/server/config"
	"github.com/ronin-designs/studiokeeper/internal/server/httpapi"
	"github.com/ronin-designs/studiokeeper/internal/server/provision"
	"github.com/ronin-designs/studiokeeper/internal/server/repositories/repomanager"
	"github.com/ronin-designs/studiokeeper/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	// The backend may come up after us; provisioning is lazy, so a failed
	// initial ping is reported but not fatal.
	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.DBConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Warn(pingCtx, "database not reachable yet", "error", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	provisioner := provision.NewManager(db, rm, logger)
	allowlist := admins.NewAllowlist(cfg.AdminEmails)

	srv := httpapi.NewServer(
		services.NewAuthService(db, rm, provisioner, allowlist, logger, cfg),
		services.NewMemberService(db, rm, provisioner, logger),
		services.NewMessageService(db, rm, provisioner, logger),
		services.NewProjectService(db, rm, provisioner, logger),
		logger,
	)

	return &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		handler: httpapi.NewRouter(srv),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the HTTP server and blocks until the context is cancelled or an
// OS signal arrives, then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	httpServer := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "http server starting", "addr", app.config.EndpointAddrHTTP)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		app.logger.Error(ctx, "http server failed", "error", err)
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err)
	}

	return nil
}

// Package app wires configuration, storage, services, and the HTTP server
// into a runnable grantlink process.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/grantlink/grantlink/internal/grantlink/http"
	"github.com/grantlink/grantlink/internal/grantlink/service"
	"github.com/grantlink/grantlink/internal/grantlink/store"
	"github.com/grantlink/grantlink/internal/grantlink/store/drivers/postgres"
	"github.com/grantlink/grantlink/internal/grantlink/store/drivers/sqlite"
	"github.com/grantlink/grantlink/internal/obs"
	"github.com/grantlink/grantlink/pkg/jwtx"
	"github.com/grantlink/grantlink/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the grantlink service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	codec *jwtx.Codec

	tokenService        *service.TokenService
	redeemService       *service.RedeemService
	sessionService      *service.SessionService
	auditService        *service.AuditService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "grantlink",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.usingDevSecrets() {
		app.logger.Warn("running with built-in dev secrets; set GRANTLINK_SIGNING_SECRET and GRANTLINK_ISSUER_API_KEY for anything beyond local development")
	}

	codec, err := jwtx.NewCodec([]byte(cfg.SigningSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	obs.Init()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("grantlink service starting",
		"addr", app.cfg.Addr,
		"driver", app.cfg.DBDriver,
		"version", BuildVersion,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down grantlink service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("grantlink service stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations.
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DBDriver {
	case "postgres":
		db, err = postgres.NewStore(app.cfg.DBDSN)
	default:
		db, err = sqlite.NewStore(app.cfg.DBDSN)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Store: app.db,
		TTL:   app.cfg.SessionTTL,
	}

	app.tokenService = &service.TokenService{
		Store:          app.db,
		Codec:          app.codec,
		DefaultMaxUses: app.cfg.DefaultMaxUses,
		SessionTTL:     app.cfg.SessionTokenTTL,
	}

	app.redeemService = &service.RedeemService{
		Store:    app.db,
		Codec:    app.codec,
		Sessions: app.sessionService,
	}

	app.auditService = &service.AuditService{
		Store:         app.db,
		LogUses:       app.cfg.AuditEnabled,
		LogRejections: app.cfg.AuditRejections,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.AuditRetention,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.cfg.IssuerAPIKey,
		app.cfg.PublicURL,
		app.cfg.TokenParam,
		app.db,
		app.logger,
	)

	router.TokenService = app.tokenService
	router.RedeemService = app.redeemService
	router.SessionService = app.sessionService
	router.AuditService = app.auditService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              app.cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

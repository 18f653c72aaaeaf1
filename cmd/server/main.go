package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mknox/bookshelf/internal/auth"
	"github.com/mknox/bookshelf/internal/config"
	"github.com/mknox/bookshelf/internal/service"
	"github.com/mknox/bookshelf/internal/session"
	"github.com/mknox/bookshelf/internal/storage"
	"github.com/mknox/bookshelf/internal/storage/postgres"
	"github.com/mknox/bookshelf/internal/storage/sqlite"
	"github.com/mknox/bookshelf/internal/web"
	"github.com/mknox/bookshelf/pkg/logging"
)

func main() {
	logging.Setup()
	logger := slog.Default()

	cfg := config.Load()
	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize storage", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("storage initialized", "driver", cfg.DBDriver)

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	authenticator := auth.NewPasswordAuthenticator(store, hasher, logger)
	sessions := session.NewManager(store, cfg.SessionSecret, cfg.SessionTTL)
	accounts := service.NewAccountService(authenticator, store, hasher, logger)
	reviews := service.NewReviewService(store, logger)

	if err := sessions.CleanupExpired(ctx); err != nil {
		logger.Warn("failed to clean up expired sessions", "error", err)
	}

	app, err := web.New(logger, store, accounts, reviews, sessions)
	if err != nil {
		logger.Error("failed to initialize web app", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logger.Info("server starting", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return sqlite.New(cfg.SQLitePath)
	default:
		return postgres.New(ctx, cfg.PostgresDSN())
	}
}

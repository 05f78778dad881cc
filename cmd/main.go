package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/govu-ux/Tournament-Tracker/config"
	"github.com/govu-ux/Tournament-Tracker/handlers"
	"github.com/govu-ux/Tournament-Tracker/notify"
	"github.com/govu-ux/Tournament-Tracker/repositories"
	api "github.com/govu-ux/Tournament-Tracker/routes"
	"github.com/govu-ux/Tournament-Tracker/services"
	"github.com/govu-ux/Tournament-Tracker/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage_backend", string(cfg.StorageBackend)))

	blobStore, closeStore, err := openStorage(cfg)
	if err != nil {
		logger.Error("failed to initialize storage", slog.Any("error", err))
		os.Exit(1)
	}
	if closeStore != nil {
		defer func() {
			if err := closeStore(); err != nil {
				logger.Error("failed to close storage", slog.Any("error", err))
			}
		}()
	}
	logger.Info("storage initialized")

	wsHub := notify.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	repo := repositories.NewBlobTournamentRepository(blobStore, logger)

	tournamentService, err := services.NewTournamentService(context.Background(), repo, wsHub, logger)
	if err != nil {
		logger.Error("failed to initialize tournament service", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("tournament state restored",
		slog.Int("teams", len(tournamentService.Teams())),
		slog.Int("matches", len(tournamentService.Matches())))

	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	teamHandler := handlers.NewTeamHandler(tournamentService)
	matchHandler := handlers.NewMatchHandler(tournamentService)
	playoffHandler := handlers.NewPlayoffHandler(tournamentService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.AllowedOrigins,
		tournamentHandler,
		teamHandler,
		matchHandler,
		playoffHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

// openStorage builds the configured blob store backend. The returned closer
// may be nil for backends without local resources.
func openStorage(cfg *config.Config) (storage.BlobStore, func() error, error) {
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		return storage.NewSQLiteStore(cfg.SQLitePath)
	case config.BackendPostgres:
		return storage.NewPostgresStore(cfg.DatabaseURL, 5*time.Second)
	case config.BackendR2:
		store, err := storage.NewCloudflareR2Store(storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
		})
		return store, nil, err
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

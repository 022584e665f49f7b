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

	"github.com/Dosada05/tournament-ops/config"
	"github.com/Dosada05/tournament-ops/db"
	"github.com/Dosada05/tournament-ops/handlers"
	"github.com/Dosada05/tournament-ops/realtime"
	"github.com/Dosada05/tournament-ops/repositories"
	api "github.com/Dosada05/tournament-ops/routes"
	"github.com/Dosada05/tournament-ops/services"
	"github.com/Dosada05/tournament-ops/storage"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("application exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных и миграции
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	if err := db.Migrate(ctx, dbConn); err != nil {
		return err
	}
	logger.Info("database ready")

	// Архив листов составов (Cloudflare R2), опционально
	var archive storage.FileUploader
	if cfg.R2Enabled() {
		archive, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return err
		}
		logger.Info("lineup archive enabled", slog.String("bucket", cfg.R2BucketName))
	}

	fixedSeed, err := cfg.FixedSeed()
	if err != nil {
		return err
	}
	if fixedSeed != nil {
		logger.Warn("fixed assembly seed configured", slog.Int64("seed", *fixedSeed))
	}

	wsHub := realtime.NewHub(logger)

	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)

	playerService := services.NewPlayerService(playerRepo)
	lineupService := services.NewLineupService(
		playerRepo,
		services.NewRoomNotifier(wsHub),
		wsHub,
		archive,
		logger,
		services.LineupServiceConfig{FixedSeed: fixedSeed},
	)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Config{JWTSecretKey: cfg.JWTSecretKey, AllowedOrigins: cfg.CORSAllowedOrigins},
		handlers.NewPlayerHandler(playerService),
		handlers.NewLineupHandler(lineupService),
		handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return wsHub.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application exited")
	return nil
}

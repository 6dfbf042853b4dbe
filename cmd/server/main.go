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

	"holocron/internal/config"
	"holocron/internal/handlers"
	"holocron/internal/pkg/httpretry"
	"holocron/internal/repository"
	"holocron/internal/services"
	"holocron/internal/swapi"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Setup Logger
	var handler slog.Handler
	if cfg.AppEnv == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 3. Initialize Database
	db, err := repository.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// 4. Run Migrations
	if err := repository.Migrate(db, cfg, logger); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// 5. Initialize Redis (optional, only used for the seed lock)
	rdb, err := repository.InitRedis(cfg.RedisURL, cfg.RedisPassword, 0)
	if err != nil {
		logger.Warn("Failed to connect to Redis, seed lock is process-local", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// 6. Initialize Services
	upstream := httpretry.NewRetryClient(&http.Client{Timeout: cfg.SWAPITimeout}, cfg.SWAPIRetries).
		WithLogger(logger)
	dataset := swapi.NewClient(cfg.SWAPIBaseURL, upstream, cfg.SWAPIMaxPages)

	auditService := services.NewAuditService(db, logger)
	userService := services.NewUserService(db, auditService)
	catalogService := services.NewCatalogService(db)
	favoriteService := services.NewFavoriteService(db, catalogService, auditService)
	seedService := services.NewSeedService(db, logger, dataset, rdb, auditService, cfg.SeedLockTTL, cfg.SeedLockWait)

	var rateLimiter *services.IPRateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = services.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, logger)
	}

	// 7. Initialize Handler
	h := handlers.NewHandler(logger, db, userService, catalogService, favoriteService, seedService)

	// 8. Setup Router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := h.SetupRouter(rateLimiter)

	// 9. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.TrimTrailingSlash(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	auditDone := make(chan struct{})
	go func() {
		defer close(auditDone)
		auditService.Start(workerCtx)
	}()
	if rateLimiter != nil {
		rateLimiter.StartCleanup(workerCtx, 10*time.Minute, 30*time.Minute)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "database", dbKind(cfg), "redis", rdb != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	workerCancel()
	select {
	case <-auditDone:
	case <-shutdownCtx.Done():
		logger.Warn("Audit worker did not stop in time")
	}

	logger.Info("Server exiting")
	return runErr
}

func dbKind(cfg config.Config) string {
	if cfg.IsPostgres() {
		return "postgres"
	}
	return "sqlite"
}

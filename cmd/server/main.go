package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/light-bringer/rategrid-service/internal/services"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load configuration: .env for local development, then environment
	_ = godotenv.Load()
	config := loadConfig()

	logger, err := newLogger(config.Env)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting rate grid service",
		zap.String("spanner_database", config.SpannerDB),
		zap.String("http_port", config.HTTPPort),
		zap.Int("matrix_workers", config.MatrixWorkers),
	)

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, config.SpannerDB, logger, config.MatrixWorkers)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Create HTTP server
	httpServer := &http.Server{
		Addr:              ":" + config.HTTPPort,
		Handler:           serviceOpts.Router.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 4. Start HTTP server in background
	go func() {
		logger.Info("http server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
		}
	}()

	// 5. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", zap.Error(err))
	}

	return nil
}

// Config holds application configuration.
type Config struct {
	Env           string
	SpannerDB     string
	HTTPPort      string
	MatrixWorkers int
}

// loadConfig loads configuration from environment variables with defaults.
func loadConfig() Config {
	spannerDB := os.Getenv("SPANNER_DATABASE")
	if spannerDB == "" {
		// Default for local development with emulator
		spannerDB = "projects/test-project/instances/dev-instance/databases/rate-grid-db"
	}

	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	matrixWorkers := 0
	if v := os.Getenv("MATRIX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			matrixWorkers = n
		}
	}

	return Config{
		Env:           os.Getenv("APP_ENV"),
		SpannerDB:     spannerDB,
		HTTPPort:      httpPort,
		MatrixWorkers: matrixWorkers,
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// Package main is the entry point for the book rental service.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jsamuelsen/book-rental/internal/adapters/http"
	"github.com/jsamuelsen/book-rental/internal/adapters/http/handlers"
	"github.com/jsamuelsen/book-rental/internal/adapters/memory"
	"github.com/jsamuelsen/book-rental/internal/app"
	"github.com/jsamuelsen/book-rental/internal/platform/config"
	"github.com/jsamuelsen/book-rental/internal/platform/logging"
	"github.com/jsamuelsen/book-rental/internal/platform/metrics"
	"github.com/jsamuelsen/book-rental/internal/platform/telemetry"
	"github.com/jsamuelsen/book-rental/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile and config directory from environment
	profile := envOr("APP_ENVIRONMENT", "local")
	configDir := envOr("APP_CONFIG_DIR", "configs")

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(configDir, profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.Int("max_rental_lines", cfg.Rentals.MaxLines),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Prometheus registry for the /-/metrics endpoint
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rentalMetrics := metrics.New(reg)

	// 6. Stores, registered as readiness checks
	books := memory.NewBookStore()
	users := memory.NewUserStore()
	rentals := memory.NewRentalStore()
	stores := []interface {
		ports.HealthChecker
		io.Closer
	}{books, users, rentals}

	healthRegistry := ports.NewHealthRegistry()
	for _, s := range stores {
		if err := healthRegistry.Register(s); err != nil {
			return fmt.Errorf("registering %s health check: %w", s.Name(), err)
		}
	}

	defer func() {
		for _, s := range stores {
			if closeErr := s.Close(); closeErr != nil {
				logger.Error("store close error", slog.String("store", s.Name()), slog.Any("error", closeErr))
			}
		}
	}()

	// 7. Application services
	clock := func() time.Time { return time.Now().UTC() }

	bookService := app.NewBookService(app.BookServiceConfig{
		Books:  books,
		Logger: logger,
	})
	userService := app.NewUserService(app.UserServiceConfig{
		Users:   users,
		Logger:  logger,
		Clock:   clock,
		Metrics: rentalMetrics,
	})
	rentalService := app.NewRentalService(app.RentalServiceConfig{
		Users:    users,
		Books:    books,
		Rentals:  rentals,
		Executor: app.NewExecutor(logger),
		Logger:   logger,
		Clock:    clock,
		Metrics:  rentalMetrics,
		MaxLines: cfg.Rentals.MaxLines,
	})

	// 8. HTTP server with all middleware and routes
	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.App.Name,
		Timeout:       cfg.Server.RequestTimeout,
		HealthHandler: handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo(Version, Commit, BuildTime), reg),
		BookHandler:   handlers.NewBookHandler(bookService),
		UserHandler:   handlers.NewUserHandler(userService),
		RentalHandler: handlers.NewRentalHandler(rentalService),
	})

	// 9. Start server (non-blocking)
	serverErr := server.Start()

	// 10. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

// waitForShutdown blocks until a shutdown signal is received or the server fails.
// It then drains in-flight requests within shutdownTimeout.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if !ok {
			return errors.New("server stopped unexpectedly")
		}

		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

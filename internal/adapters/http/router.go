package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/book-rental/internal/adapters/http/handlers"
	"github.com/jsamuelsen/book-rental/internal/adapters/http/middleware"
	"github.com/jsamuelsen/book-rental/internal/platform/telemetry"
)

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger seeded into every request.
	Logger *slog.Logger

	// ServiceName names the server span.
	ServiceName string

	// Timeout is the deadline applied to /api/v1 requests. Zero disables it.
	Timeout time.Duration

	HealthHandler *handlers.HealthHandler
	BookHandler   *handlers.BookHandler
	UserHandler   *handlers.UserHandler
	RentalHandler *handlers.RentalHandler
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request scope - base logger and request context
//  3. Request ID - generate/extract request ID
//  4. Correlation ID - handle correlation across calls
//  5. OpenTelemetry - tracing and metrics
//  6. Logging - request logging (skips health endpoints)
//  7. Timeout - request deadline on /api/v1 only
//
// Route groups:
//   - /-/ (internal): probes, build info and metrics
//   - /api/v1/: books, users and rentals
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestScope(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging(cfg.Logger))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	apiV1.Use(middleware.Timeout(cfg.Timeout))

	setupAPIRoutes(apiV1, cfg)
}

func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.BookHandler != nil {
		cfg.BookHandler.RegisterBookRoutes(rg)
	}

	if cfg.UserHandler != nil {
		cfg.UserHandler.RegisterUserRoutes(rg)
	}

	if cfg.RentalHandler != nil {
		cfg.RentalHandler.RegisterRentalRoutes(rg)
	}
}

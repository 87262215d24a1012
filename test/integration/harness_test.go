//go:build integration

package integration

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	httpadapter "github.com/jsamuelsen/book-rental/internal/adapters/http"
	"github.com/jsamuelsen/book-rental/internal/adapters/http/handlers"
	"github.com/jsamuelsen/book-rental/internal/adapters/memory"
	"github.com/jsamuelsen/book-rental/internal/app"
	"github.com/jsamuelsen/book-rental/internal/platform/config"
	"github.com/jsamuelsen/book-rental/internal/platform/metrics"
	"github.com/jsamuelsen/book-rental/internal/ports"
)

// harness is an in-process instance of the service backed by fresh stores.
type harness struct {
	server   *httptest.Server
	registry *prometheus.Registry
	rentals  *memory.RentalStore
}

// newHarness wires the service the way cmd/service does, using cfg for the
// rental limits and request timeout.
func newHarness(cfg *config.Config) *harness {
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := func() time.Time { return time.Now().UTC() }

	books := memory.NewBookStore()
	users := memory.NewUserStore()
	rentals := memory.NewRentalStore()

	healthRegistry := ports.NewHealthRegistry()
	_ = healthRegistry.Register(books)
	_ = healthRegistry.Register(users)
	_ = healthRegistry.Register(rentals)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.App.Name,
		Timeout:       cfg.Server.RequestTimeout,
		HealthHandler: handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo("test", "", ""), reg),
		BookHandler:   handlers.NewBookHandler(app.NewBookService(app.BookServiceConfig{Books: books, Logger: logger})),
		UserHandler: handlers.NewUserHandler(app.NewUserService(app.UserServiceConfig{
			Users: users, Logger: logger, Clock: clock, Metrics: m,
		})),
		RentalHandler: handlers.NewRentalHandler(app.NewRentalService(app.RentalServiceConfig{
			Users:    users,
			Books:    books,
			Rentals:  rentals,
			Logger:   logger,
			Clock:    clock,
			Metrics:  m,
			MaxLines: cfg.Rentals.MaxLines,
		})),
	})

	return &harness{
		server:   httptest.NewServer(engine),
		registry: reg,
		rentals:  rentals,
	}
}

// loadTestConfig loads the repository's configs with the test profile.
func loadTestConfig() (*config.Config, error) {
	cfg, err := config.Load("../../configs", "test")
	if err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

func (h *harness) URL() string {
	return h.server.URL
}

func (h *harness) Close() {
	h.server.Close()
}

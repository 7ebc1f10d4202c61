package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/climate-dashboard/internal/domain"
	"github.com/couchcryptid/climate-dashboard/internal/observability"
)

// Server serves the dashboard pages plus health, readiness, and metrics endpoints.
type Server struct {
	echo       *echo.Echo
	httpServer *http.Server
	repo       domain.Repository
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer wires routes, middleware and the error handler. metrics may be nil.
func NewServer(addr string, repo domain.Repository, ready sharedobs.ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo: e,
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      e,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		repo:    repo,
		logger:  logger,
		metrics: metrics,
	}

	e.Renderer = newTemplateRenderer()
	e.HTTPErrorHandler = s.handleError

	e.Use(s.requestLogger())
	e.Use(s.observeRequests)
	e.Use(middleware.Recover())

	e.GET("/healthz", echo.WrapHandler(sharedobs.LivenessHandler()))
	e.GET("/readyz", echo.WrapHandler(sharedobs.ReadinessHandler(ready)))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.registerDashboardRoutes()

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// Package http provides the HTTP gateway server, its middleware and the metrics server.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountHTTP "github.com/allisson/accounts/internal/account/http"
	"github.com/allisson/accounts/internal/config"
	eventstoreHTTP "github.com/allisson/accounts/internal/eventstore/http"
	"github.com/allisson/accounts/internal/metrics"
)

// ReadinessCheck reports whether a dependency can serve requests.
type ReadinessCheck func(ctx context.Context) error

// Server is the public HTTP gateway.
type Server struct {
	server *http.Server
	router *gin.Engine
	checks map[string]ReadinessCheck
	logger *slog.Logger
}

// NewServer creates a server listening on host:port. checks are run by /ready,
// keyed by the component name reported in the response.
func NewServer(host string, port int, logger *slog.Logger, checks map[string]ReadinessCheck) *Server {
	return &Server{
		server: newHTTPServer(host, port),
		checks: checks,
		logger: logger,
	}
}

// newHTTPServer returns a server for host:port with the shared timeouts. The
// caller sets the handler.
func newHTTPServer(host string, port int) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// SetupRouter builds the route table. ctx bounds background work started by
// middleware, such as rate limiter cleanup.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	registerHandler *accountHTTP.RegisterHandler,
	eventHandler *eventstoreHTTP.EventHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		register := []gin.HandlerFunc{}
		if cfg.RateLimitRegisterEnabled {
			register = append(register, accountHTTP.RegisterRateLimitMiddleware(
				ctx,
				cfg.RateLimitRegisterRequestsPerSec,
				cfg.RateLimitRegisterBurst,
				s.logger,
			))
		}
		register = append(register, registerHandler.RegisterHandler)
		auth.POST("/register", register...)

		v1.GET("/events/:aggregate_id", eventHandler.ListHandler)
	}

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start serves until Shutdown. SetupRouter must have been called.
func (s *Server) Start(ctx context.Context) error {
	if s.server.Handler == nil {
		return errors.New("router not configured")
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	ready := true
	components := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if check == nil {
			components[name] = "error"
			ready = false
			continue
		}
		if err := check(ctx); err != nil {
			s.logger.WarnContext(ctx, "readiness check failed", slog.String("component", name), slog.Any("error", err))
			components[name] = "error"
			ready = false
			continue
		}
		components[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

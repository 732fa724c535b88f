// Package http provides the HTTP server and route registration.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	catalogHTTP "github.com/openshelf/openshelf/internal/catalog/http"
	loanHTTP "github.com/openshelf/openshelf/internal/loan/http"
	"github.com/openshelf/openshelf/internal/metrics"
	userHTTP "github.com/openshelf/openshelf/internal/user/http"
)

// Server represents the HTTP API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The database handle is used by the
// readiness endpoint; pass nil only in tests.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries the handlers and middleware settings for route registration.
type RouterConfig struct {
	BookHandler *catalogHTTP.BookHandler
	UserHandler *userHTTP.UserHandler
	LoanHandler *loanHTTP.LoanHandler

	CORSEnabled      bool
	CORSAllowOrigins string

	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int

	MeterProvider    metric.MeterProvider
	MetricsNamespace string
}

// SetupRouter builds the Gin router with middleware and registers all API routes.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.RateLimitEnabled {
		router.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	books := v1.Group("/books")
	books.POST("", cfg.BookHandler.CreateHandler)
	books.GET("", cfg.BookHandler.ListHandler)
	books.GET("/isbn/:isbn", cfg.BookHandler.GetByISBNHandler)
	books.GET("/:id", cfg.BookHandler.GetHandler)
	books.PUT("/:id", cfg.BookHandler.UpdateHandler)
	books.DELETE("/:id", cfg.BookHandler.DeleteHandler)
	books.GET("/:id/availability", cfg.BookHandler.AvailabilityHandler)
	books.GET("/:id/loans", cfg.LoanHandler.ListByBookHandler)

	users := v1.Group("/users")
	users.POST("", cfg.UserHandler.CreateHandler)
	users.GET("", cfg.UserHandler.ListHandler)
	users.GET("/email/:email", cfg.UserHandler.GetByEmailHandler)
	users.GET("/:id", cfg.UserHandler.GetHandler)
	users.PUT("/:id", cfg.UserHandler.UpdateHandler)
	users.DELETE("/:id", cfg.UserHandler.DeleteHandler)
	users.GET("/:id/loans", cfg.LoanHandler.ListByUserHandler)

	loans := v1.Group("/loans")
	loans.POST("", cfg.LoanHandler.CreateHandler)
	loans.GET("", cfg.LoanHandler.ListHandler)
	loans.GET("/:id", cfg.LoanHandler.GetHandler)
	loans.POST("/:id/return", cfg.LoanHandler.ReturnHandler)
	loans.DELETE("/:id", cfg.LoanHandler.DeleteHandler)

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic by pinging
// its dependencies.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(pingCtx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

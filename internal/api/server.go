package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rgehrsitz/rtgo/internal/calculation"
	"github.com/rgehrsitz/rtgo/internal/legal"
	"go.uber.org/zap"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
}

// DefaultServerConfig listens on localhost:8080.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "localhost",
		Port:         8080,
		ReadTimeout:  30,
		WriteTimeout: 30,
	}
}

// Server represents the HTTP API server.
type Server struct {
	router  *chi.Mux
	handler *Handler
	server  *http.Server
	config  ServerConfig
}

// NewServer creates a new API server. A nil logger disables request logging.
func NewServer(cfg ServerConfig, registry *legal.Registry, iss calculation.ISSLookup, logger *zap.Logger, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := NewHandler(registry, iss, logger, version)
	router := chi.NewRouter()

	router.Use(RecoverMiddleware(logger))
	router.Use(TracingMiddleware)
	router.Use(LoggingMiddleware(logger))
	router.Use(middleware.RealIP)
	router.Use(middleware.Compress(5))

	router.Get("/health", handler.Health)

	router.Route("/v1", func(r chi.Router) {
		r.Post("/scenarios", handler.Scenarios)
		r.Post("/compare", handler.Compare)
		r.Post("/breakeven", handler.Breakeven)
		r.Get("/constants", handler.ListConstants)
		r.Get("/constants/{year}", handler.GetConstants)
	})

	return &Server{
		router:  router,
		handler: handler,
		config:  cfg,
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

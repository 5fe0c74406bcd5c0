// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer. It connects handlers and middleware to routes
// and owns the repository's lifecycle (opened in New, closed when Start returns).
//
// DEPENDENCY INJECTION FLOW:
//
//	config.Config → OpenRepository → service.AlumniService → handler.AlumniHandler
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/alumni-search/internal/config"
	"github.com/sakif/alumni-search/internal/handler"
	"github.com/sakif/alumni-search/internal/middleware"
	"github.com/sakif/alumni-search/internal/repository"
	"github.com/sakif/alumni-search/internal/repository/jsonfile"
	sqliteRepo "github.com/sakif/alumni-search/internal/repository/sqlite"
	"github.com/sakif/alumni-search/internal/service"
)

// Server represents the HTTP server and all its dependencies.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	repo   repository.AlumniRepository
}

// OpenRepository opens the backend named by cfg.Driver.
func OpenRepository(cfg config.Store) (repository.AlumniRepository, error) {
	switch cfg.Driver {
	case config.DriverJSON, "":
		return jsonfile.New(cfg.DataFile), nil
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
			}
		}
		db, err := sqliteRepo.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// New creates a Server: opens the configured repository and registers routes.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	repo, err := OpenRepository(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	return NewWithRepository(cfg, logger, repo), nil
}

// NewWithRepository builds a Server around an already-open repository.
// Tests use it to inject a temp-dir store.
func NewWithRepository(cfg *config.Config, logger *slog.Logger, repo repository.AlumniRepository) *Server {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		repo:   repo,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTES (each also answers on its sub-paths, e.g. /search/):
// GET  /          → liveness text
// GET  /search    → filtered records
// GET  /contact   → contact card for ?id=
// GET  /stats     → aggregated counts
// POST /add       → append one record
// POST /add-bulk  → append many records
// GET  /download  → records for ?id= or ?batch=
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID: assigns unique ID to each request (for tracing)
// 2. RealIP: extracts real client IP from proxy headers
// 3. Logger: logs each request, including answered preflights
// 4. CORS: sets headers on everything below it; answers OPTIONS with 204
// 5. Recoverer: catches panics and returns 500 instead of crashing
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.CORS)
	s.router.Use(chimiddleware.Recoverer)

	s.router.NotFound(handler.NotFound)
	s.router.MethodNotAllowed(handler.MethodNotAllowed)

	alumniService := service.NewAlumniService(s.repo, s.logger)
	alumniHandler := handler.NewAlumniHandler(alumniService, s.logger)

	s.router.Get("/", handler.HandleHealth)
	s.prefix(http.MethodGet, "/search", alumniHandler.HandleSearch)
	s.prefix(http.MethodGet, "/contact", alumniHandler.HandleContact)
	s.prefix(http.MethodGet, "/stats", alumniHandler.HandleStats)
	s.prefix(http.MethodPost, "/add", alumniHandler.HandleAdd)
	s.prefix(http.MethodPost, "/add-bulk", alumniHandler.HandleAddBulk)
	s.prefix(http.MethodGet, "/download", alumniHandler.HandleDownload)
}

// prefix registers h for path and everything below it, so /search/ and
// /search/anything reach the same handler as /search.
func (s *Server) prefix(method, path string, h http.HandlerFunc) {
	s.router.Method(method, path, h)
	s.router.Method(method, path+"/*", h)
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully and closes the repository.
func (s *Server) Start() error {
	defer s.repo.Close()

	srv := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("store", s.config.Store.Driver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		// Port bind failures land here.
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

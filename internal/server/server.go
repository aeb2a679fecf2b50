// Package server provides the HTTP API for the erabu catalog.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/erabu/internal/catalog"
	"github.com/hyperjump/erabu/internal/config"
	"github.com/hyperjump/erabu/internal/guide"
	"github.com/hyperjump/erabu/internal/ranking"
	"go.uber.org/zap"
)

// Server is the HTTP server for the erabu API.
type Server struct {
	engine   *ranking.Engine
	store    *catalog.Store
	browse   *catalog.BrowseIndex
	sessions *guide.Manager
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies. browse may be nil;
// the browse endpoint then reports that browsing is unavailable.
func NewServer(
	engine *ranking.Engine,
	store *catalog.Store,
	browse *catalog.BrowseIndex,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:   engine,
		store:    store,
		browse:   browse,
		sessions: guide.NewManager(),
		config:   cfg,
		logger:   logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/query", s.handleQuery)
	r.Get("/api/v1/products/{id}", s.handleGetProduct)
	r.Get("/api/v1/products/search", s.handleBrowse)
	r.Post("/api/v1/sessions", s.handleCreateSession)
	r.Post("/api/v1/sessions/{id}/query", s.handleSessionQuery)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

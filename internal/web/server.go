// Package web serves the server-rendered front-end.
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ppiankov/libris/internal/library"
	"github.com/ppiankov/libris/internal/model"
	"github.com/ppiankov/libris/internal/pills"
	"github.com/ppiankov/libris/internal/richtext"
)

// ContentStore is the subset of the store client the pages need.
// PostBySlug returns nil, nil for an unknown slug.
type ContentStore interface {
	LibraryPosts(ctx context.Context) ([]model.Post, error)
	CategoryPosts(ctx context.Context) ([]model.Post, error)
	PostBySlug(ctx context.Context, slug string) (*model.Post, error)
}

// Server renders the home, library and post pages
type Server struct {
	cfg      *model.Config
	store    ContentStore
	logger   *slog.Logger
	renderer *richtext.Renderer
	cards    *library.CardBuilder
	pages    pages
	robots   []byte
	handler  http.Handler
}

// NewServer wires the router. The robots.txt rules are validated here so a
// bad configuration fails at startup.
func NewServer(cfg *model.Config, store ContentStore, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	parsed, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	robots, err := buildRobots(cfg.Server.RobotsDisallow)
	if err != nil {
		return nil, err
	}

	renderer := richtext.NewRenderer()
	measurer := pills.NewFontMeasurer(cfg.Layout.PillPadding)

	s := &Server{
		cfg:      cfg,
		store:    store,
		logger:   logger,
		renderer: renderer,
		cards:    library.NewCardBuilder(renderer, cfg.Catalog.Badges, measurer, cfg.Layout.MaxWidth),
		pages:    parsed,
		robots:   robots,
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	if s.cfg.Server.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	}

	r.Get("/", s.handleHome)
	r.Get("/library", s.handleLibrary)
	r.Get("/post/{slug}", s.handlePost)
	r.Get("/healthz", s.handleHealth)
	r.Get("/robots.txt", s.handleRobots)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.NotFound(s.handleNotFound)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve is ListenAndServe on an existing listener
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", "addr", listener.Addr().String())
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

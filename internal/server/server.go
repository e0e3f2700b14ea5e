// Package server is the composition root: it opens the store, builds the
// service and handler layers on top of it, mounts the routes and runs the
// HTTP server until a shutdown signal arrives.
//
//	config -> Store (sqlite | postgres)
//	       -> ArticleService, CommentService, TopicService, UserService
//	       -> handlers -> chi routes under /api
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
	"github.com/go-chi/render"

	"github.com/sakif/nc-news/internal/config"
	"github.com/sakif/nc-news/internal/handler"
	"github.com/sakif/nc-news/internal/middleware"
	"github.com/sakif/nc-news/internal/repository"
	"github.com/sakif/nc-news/internal/repository/postgres"
	sqliteRepo "github.com/sakif/nc-news/internal/repository/sqlite"
	"github.com/sakif/nc-news/internal/seed"
	"github.com/sakif/nc-news/internal/service"
)

const shutdownTimeout = 30 * time.Second

// Server owns the store and closes it when Start returns.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  repository.Store
}

// OpenStore connects to PostgreSQL when cfg.DatabaseURL is set and to the
// SQLite file at cfg.DBPath otherwise. Both run their migrations.
func OpenStore(ctx context.Context, cfg config.Config) (repository.Store, error) {
	if cfg.DatabaseURL != "" {
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	if cfg.DBPath != ":memory:" {
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// New opens the configured store, seeds it when cfg.SeedOnStart is set and
// wires the routes.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Backend(), err)
	}

	if cfg.SeedOnStart {
		if err := store.Seed(ctx, seed.Default()); err != nil {
			store.Close()
			return nil, fmt.Errorf("seeding store: %w", err)
		}
		logger.Info("database seeded", slog.String("backend", cfg.Backend()))
	}

	return NewWithStore(cfg, store, logger), nil
}

// NewWithStore wires the routes over an already open store. The server
// takes ownership of store.
func NewWithStore(cfg config.Config, store repository.Store, logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, for tests and for route documentation.
func (s *Server) Handler() chi.Router {
	return s.router
}

// setupRoutes mounts every endpoint.
//
//	GET    /api
//	GET    /api/topics
//	GET    /api/topics/{slug}
//	GET    /api/articles
//	GET    /api/articles/{article_id}
//	PATCH  /api/articles/{article_id}
//	GET    /api/articles/{article_id}/comments
//	POST   /api/articles/{article_id}/comments
//	PATCH  /api/comments/{comment_id}
//	DELETE /api/comments/{comment_id}
//	GET    /api/users
//	GET    /api/users/{username}
//
// Middleware order: request id first so the logger can print it, recoverer
// inside the logger so a panic is logged as the 500 it becomes.
func (s *Server) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	articles := handler.NewArticleHandler(
		service.NewArticleService(s.store.Articles(), s.store.Users(), s.store.Topics(), s.logger),
		s.logger,
	)
	comments := handler.NewCommentHandler(
		service.NewCommentService(s.store.Comments(), s.store.Articles(), s.store.Users(), s.logger),
		s.logger,
	)
	topics := handler.NewTopicHandler(service.NewTopicService(s.store.Topics(), s.logger), s.logger)
	users := handler.NewUserHandler(service.NewUserService(s.store.Users(), s.logger), s.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", handler.APIIndex(s.router))

		r.Route("/topics", func(r chi.Router) {
			r.Get("/", topics.HandleList)
			r.Get("/{slug}", topics.HandleGetBySlug)
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", articles.HandleList)
			r.Route("/{article_id}", func(r chi.Router) {
				r.Get("/", articles.HandleGetByID)
				r.Patch("/", articles.HandleUpdateVotes)
				r.Get("/comments", comments.HandleListByArticle)
				r.Post("/comments", comments.HandleCreate)
			})
		})

		r.Route("/comments/{comment_id}", func(r chi.Router) {
			r.Patch("/", comments.HandleUpdateVotes)
			r.Delete("/", comments.HandleDelete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", users.HandleList)
			r.Get("/{username}", users.HandleGetByUsername)
		})
	})
}

// Start serves HTTP until SIGINT/SIGTERM, then gives in-flight requests
// shutdownTimeout to finish and closes the store.
func (s *Server) Start() error {
	defer s.store.Close()

	srv := &http.Server{
		Addr:         s.config.Addr,
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
			slog.String("addr", s.config.Addr),
			slog.String("backend", s.config.Backend()),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

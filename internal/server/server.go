package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"songblog/internal/models"
	"songblog/internal/repositories"
	"songblog/internal/shared"
)

// SongResolver resolves a catalog link to song metadata. Implemented by
// [catalog.Client]; tests substitute a local double.
type SongResolver interface {
	Resolve(ctx context.Context, link string) (models.Song, error)
}

// Server wires repositories, the catalog resolver, and configuration into an
// HTTP handler tree.
type Server struct {
	logger   *log.Logger
	cfg      *shared.Config
	db       *sql.DB
	users    *repositories.UserRepository
	blogs    *repositories.BlogRepository
	comments *repositories.CommentRepository
	resolver SongResolver
	validate *validator.Validate
}

// New creates a [Server] backed by the given database and resolver.
func New(cfg *shared.Config, db *sql.DB, resolver SongResolver, logger *log.Logger) *Server {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Server{
		logger:   logger,
		cfg:      cfg,
		db:       db,
		users:    repositories.NewUserRepository(db),
		blogs:    repositories.NewBlogRepository(db),
		comments: repositories.NewCommentRepository(db),
		resolver: resolver,
		validate: newValidator(),
	}
}

// Routes builds the full handler tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.logRequests)
	r.Use(s.recoverer)

	// credential endpoints, rate limited per IP
	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit(5, 10))
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
	})

	// bearer-protected surface
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/users/profile", s.handleGetProfile)
		r.Put("/users/profile", s.handleUpdateProfile)
		r.Post("/blogs", s.handleCreateBlog)
		r.Get("/blogs", s.handleListMyBlogs)
		r.Put("/blogs/{id}", s.handleUpdateBlog)
		r.Delete("/blogs/{id}", s.handleDeleteBlog)
		r.Post("/comments", s.handleCreateComment)
	})

	// public surface
	r.Get("/blogs/all", s.handleListAllBlogs)
	r.Get("/blogs/{id}", s.handleGetBlog)
	r.Get("/comments/{postId}", s.handleListComments)
	r.Get("/healthz", s.handleHealth)

	if s.cfg.Server.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.cfg.Server.StaticDir)))
	}

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr(),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// handleHealth reports liveness, including a database ping.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.respond(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

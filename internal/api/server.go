package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/briefpress/internal/config"
	"github.com/dgallion1/briefpress/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for briefpress.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(runner *pipeline.Runner, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		runner: runner,
		log:    log,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.ServiceAPIKey, s.log))

		r.Post("/api/format", s.handleFormat)
		r.Post("/api/format/upload", s.handleFormatUpload)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

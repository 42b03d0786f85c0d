package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/sentchunk/internal/config"
	"github.com/dgallion1/sentchunk/internal/pipeline"
	"github.com/dgallion1/sentchunk/internal/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for sentchunk: the HTML page and the JSON API.
type Server struct {
	router   chi.Router
	analyzer *pipeline.Analyzer
	renderer *render.Renderer
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(analyzer *pipeline.Analyzer, renderer *render.Renderer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		analyzer: analyzer,
		renderer: renderer,
		log:      log,
		cfg:      cfg,
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
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	// HTML page.
	r.Get("/", s.handleIndex)
	r.Post("/", s.handleUpload)
	r.Get("/documents/{docID}", s.handleDocumentPage)

	r.Route("/api", func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/documents", s.handleCreateDocument)
		r.Get("/documents/{docID}", s.handleGetDocument)
		r.Get("/documents/{docID}/sentences", s.handleSentences)
		r.Get("/documents/{docID}/raw", s.handleRawText)
		r.Get("/documents/{docID}/sample", s.handleSample)
		r.Post("/tokenize", s.handleTokenize)
		r.Get("/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

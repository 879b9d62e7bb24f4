// Package server provides the HTTP server and routing for stockchart.
package server

import (
	"context"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	chartshandlers "github.com/aristath/stockchart/internal/modules/charts/handlers"
	"github.com/aristath/stockchart/internal/modules/controls"
	"github.com/aristath/stockchart/internal/modules/dataset"
	"github.com/aristath/stockchart/internal/scheduler"
	"github.com/aristath/stockchart/pkg/embedded"
)

// Config holds server dependencies
type Config struct {
	Log       zerolog.Logger
	Port      int
	DevMode   bool
	Title     string
	Surface   *controls.Surface
	Store     *dataset.Store
	Scheduler *scheduler.Scheduler // optional, reported by /health

	// ReloadTimeout bounds POST /api/dataset/reload; zero leaves only the
	// request timeout
	ReloadTimeout time.Duration
}

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	port      int
	title     string
	surface   *controls.Surface
	store     *dataset.Store
	scheduler *scheduler.Scheduler
	reloadTTL time.Duration
	page      *template.Template
	startedAt time.Time
}

// New creates a new HTTP server
func New(cfg Config) (*Server, error) {
	// Register common MIME types to ensure correct Content-Type headers
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")

	page, err := embedded.PageTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	title := cfg.Title
	if title == "" {
		title = "Stock Prices"
	}

	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		port:      cfg.Port,
		title:     title,
		surface:   cfg.Surface,
		store:     cfg.Store,
		scheduler: cfg.Scheduler,
		reloadTTL: cfg.ReloadTimeout,
		page:      page,
		startedAt: time.Now(),
	}

	s.setupMiddleware(cfg.DevMode)
	if err := s.setupRoutes(); err != nil {
		return nil, err
	}

	s.server = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the live chart channel is long-lived
		IdleTimeout: 60 * time.Second,
	}

	return s, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "If-None-Match"},
		ExposedHeaders:   []string{"ETag", "X-Record-Count"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() error {
	s.router.Get("/health", s.handleHealth)

	chartsHandler := chartshandlers.NewHandler(s.surface, s.store, s.reloadTTL, s.log)
	chartsHandler.RegisterRoutes(s.router)

	static, err := embedded.Static()
	if err != nil {
		return fmt.Errorf("failed to open embedded static files: %w", err)
	}
	fileServer := http.FileServer(http.FS(static))
	s.router.Handle("/static/*", http.StripPrefix("/static/", s.assetsHandler(fileServer)))

	s.router.Get("/", s.handlePage)
	return nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// assetsHandler wraps the file server to set correct MIME types
func (s *Server) assetsHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ext := filepath.Ext(r.URL.Path)

		contentType := mime.TypeByExtension(ext)
		if contentType == "" {
			switch ext {
			case ".js":
				contentType = "application/javascript"
			case ".css":
				contentType = "text/css"
			default:
				contentType = "application/octet-stream"
			}
		}
		w.Header().Set("Content-Type", contentType)

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

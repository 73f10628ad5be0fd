// Package internal implements the asset dashboard: a server-rendered web UI
// in front of the remote asset management API. The dashboard keeps no domain
// data of its own; every page is built from live API responses, and the only
// local state is the session store.
package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Avina-dox/DasavenaTI/internal/apiclient"
	"github.com/Avina-dox/DasavenaTI/internal/config"
	"github.com/Avina-dox/DasavenaTI/internal/session"
)

const lookupCacheTTL = 5 * time.Minute

type Server struct {
	Router *chi.Mux

	cfg      *config.Config
	api      *apiclient.Client
	sessions *session.Store
	tmpl     *Templates
	lookups  *lookupCache
	metrics  *Metrics
	logger   *slog.Logger
}

func NewServer(cfg *config.Config, api *apiclient.Client, sessions *session.Store, logger *slog.Logger) (*Server, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		Router:   chi.NewRouter(),
		cfg:      cfg,
		api:      api,
		sessions: sessions,
		tmpl:     tmpl,
		lookups:  newLookupCache(lookupCacheTTL),
		metrics:  NewMetrics(),
		logger:   logger,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.Router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.cfg.EnableMetrics {
		r.Use(s.metrics.Middleware())
	}

	r.Get("/health", s.handleHealth)
	r.Get("/apiping", s.handleAPIPing)
	if s.cfg.EnableMetrics {
		r.Get("/metrics", s.metrics.Handler().ServeHTTP)
	}

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticFS())))

	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	// Shareable QR pages, no login required.
	r.Get("/a/{id}", s.handlePublicAsset)
	r.Get("/a/{id}/qr.png", s.handleAssetQR)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)

		r.Get("/", s.handleDashboard)

		r.Get("/activos", s.handleAssetList)
		r.Get("/activos/nuevo", s.handleAssetNew)
		r.Post("/activos/nuevo", s.handleAssetCreate)
		r.Get("/activos/export.xlsx", s.handleExportXLSX)
		r.Get("/activos/export.pdf", s.handleExportPDF)
		r.Get("/activos/preview-valor", s.handleDepreciationPreview)
		r.Get("/activos/{id}", s.handleAssetEdit)
		r.Post("/activos/{id}", s.handleAssetUpdate)
		r.Post("/activos/{id}/eliminar", s.handleAssetDelete)

		r.Get("/asignar", s.handleAssignPage)
		r.Post("/asignar", s.handleBulkAssign)
		r.Get("/asignaciones", s.handleAssignmentHistory)
		r.Post("/asignaciones/{id}/devolver", s.handleAssignmentReturn)

		r.Get("/usuarios", s.handleUsers)
		r.Get("/usuarios/{id}", s.handleUserDetail)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rw, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.code,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleAPIPing reports whether the remote API is reachable.
func (s *Server) handleAPIPing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.api.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"status":"unreachable"}`))
		return
	}
	w.Write([]byte(`{"status":"ok"}`))
}

// siteBaseURL is the externally reachable base of this dashboard, used to
// build shareable links and QR payloads.
func (s *Server) siteBaseURL(r *http.Request) string {
	if s.cfg.PublicURL != "" {
		return s.cfg.PublicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

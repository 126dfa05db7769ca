// Package api exposes the statistical services over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hypotest/app"
	"hypotest/internal"
	"hypotest/internal/config"
	"hypotest/ports"
)

// Server wires the services into a chi router.
type Server struct {
	router *chi.Mux
	tests  *app.TestService
	sweeps *app.SweepService
	repo   ports.ResultRepository
	cfg    config.StatsConfig
	logger *internal.ComponentLogger
}

// NewServer creates the HTTP server. The repository may be nil when
// the application runs without persistence.
func NewServer(tests *app.TestService, sweeps *app.SweepService, repo ports.ResultRepository, cfg config.StatsConfig, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}

	s := &Server{
		router: chi.NewRouter(),
		tests:  tests,
		sweeps: sweeps,
		repo:   repo,
		cfg:    cfg,
		logger: logger.Component("api"),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Post("/api/tests", s.handleRunTest)
	s.router.Get("/api/results", s.handleListResults)
	s.router.Get("/api/results/{id}", s.handleGetResult)

	s.router.Post("/api/sweep", s.handleSweep)
	s.router.Post("/api/describe", s.handleDescribe)

	s.router.Get("/api/critical/chi-square", s.handleChiSquareCritical)
	s.router.Get("/api/critical/mann-whitney", s.handleUCritical)
	s.router.Get("/api/critical/wilcoxon", s.handleWCritical)
}

// Handler returns the root handler for use by http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts serving on the given port.
func (s *Server) ListenAndServe(port string) error {
	s.logger.Info("listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

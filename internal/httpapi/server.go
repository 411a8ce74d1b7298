package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	apimw "github.com/hamed0406/archivemon/internal/httpapi/middleware"
	"github.com/hamed0406/archivemon/internal/registry"
	"github.com/hamed0406/archivemon/internal/report"
	"github.com/hamed0406/archivemon/internal/repo"
	"github.com/hamed0406/archivemon/internal/scheduler"
)

// Server exposes the check and status operations over HTTP. Status reads
// recorded state only; check runs one full probe cycle.
type Server struct {
	Logger   *zap.Logger
	Registry *registry.Registry
	Store    repo.ObservationStore
	Runner   *scheduler.Runner
}

func NewServer(l *zap.Logger, reg *registry.Registry, store repo.ObservationStore, runner *scheduler.Runner) *Server {
	return &Server{Logger: l, Registry: reg, Store: store, Runner: runner}
}

func (s *Server) Router(adminKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/api/endpoints", s.handleEndpoints)
	r.Get("/api/status", s.handleStatus)
	r.Get("/metrics", s.handleMetrics)
	r.With(apimw.RequireAdmin(adminKeys)).Post("/api/check", s.handleCheck)

	return r
}

func (s *Server) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Registry.Endpoints())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	rep, err := report.Generate(r.Context(), s.Registry, s.Store)
	if err != nil {
		s.Logger.Warn("report_error", zap.Error(err))
		http.Error(w, "report error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rep)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	sum := s.Runner.RunCycle(r.Context())
	s.Logger.Info("check_requested",
		zap.Int("checked", sum.Checked),
		zap.Int("succeeded", sum.Succeeded),
	)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sum)
}

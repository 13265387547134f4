// internal/server/server.go

// Package server exposes the pipeline's HTTP surface: the batch trigger,
// the single-record improvement endpoint, health probes and metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"estate-pipeline/internal/batch"
	"estate-pipeline/internal/common/config"
	"estate-pipeline/internal/common/logger"
	"estate-pipeline/internal/models"
)

// BatchService is the runner surface the server drives.
type BatchService interface {
	Run(ctx context.Context) (*models.BatchResult, error)
	ImproveBySlug(ctx context.Context, slug string) (*models.ImprovementResult, bool, error)
}

// ReadinessChecker reports whether a backing dependency is reachable.
type ReadinessChecker func(ctx context.Context) error

// Server wires the HTTP routes over the batch service. The runner itself
// admits one run at a time; a trigger while one is in flight gets a 409.
type Server struct {
	httpServer *http.Server
	batch      BatchService
	ready      []ReadinessChecker
	logger     logger.Logger
}

func New(cfg config.ServerConfig, batch BatchService, ready []ReadinessChecker, log logger.Logger) *Server {
	s := &Server{
		batch:  batch,
		ready:  ready,
		logger: log,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/pipeline", func(r chi.Router) {
		r.Post("/batch", s.handleBatch)
		r.Post("/improve", s.handleImprove)
	})

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) ListenAndServe() error { return s.httpServer.ListenAndServe() }

func (s *Server) Shutdown(ctx context.Context) error { return s.httpServer.Shutdown(ctx) }

// handleBatch triggers a full run. The response is always 200 with counts
// when the batch mechanism itself ran: partial failure shows up in the
// errors count, never in the status code.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	result, err := s.batch.Run(r.Context())
	if err != nil {
		if errors.Is(err, batch.ErrRunInProgress) {
			writeJSON(w, http.StatusConflict, map[string]string{
				"error": "bir parti zaten çalışıyor",
			})
			return
		}
		// Only infrastructure-level listing failures land here.
		s.logger.WithError(err).Error("batch run could not start", nil)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "depolama listelenemedi",
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type improveRequest struct {
	Slug string `json:"slug"`
}

type improveResponse struct {
	Persisted bool                      `json:"persisted"`
	Result    *models.ImprovementResult `json:"result"`
}

func (s *Server) handleImprove(w http.ResponseWriter, r *http.Request) {
	var req improveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Slug == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "slug alanı zorunlu",
		})
		return
	}

	result, persisted, err := s.batch.ImproveBySlug(r.Context(), req.Slug)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, improveResponse{Persisted: persisted, Result: result})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	for _, check := range s.ready {
		if err := check(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Package server is the thin HTTP boundary over the engine. It maps the
// evaluation report 1:1 onto the response body and owns nothing but
// transport concerns.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/dinesafe/dinesafe/internal/audit"
	"github.com/dinesafe/dinesafe/internal/catalog"
	"github.com/dinesafe/dinesafe/internal/engine"
	"github.com/dinesafe/dinesafe/internal/models"
)

type Server struct {
	engine   *engine.Engine
	source   catalog.Source
	recorder *audit.Recorder
}

func New(eng *engine.Engine, source catalog.Source, recorder *audit.Recorder) *Server {
	return &Server{engine: eng, source: source, recorder: recorder}
}

// EvaluateRequest is the evaluation input. Profile must be present; an empty
// profile object is legal and means "no restrictions".
type EvaluateRequest struct {
	Profile     *models.DinerProfile `json:"profile"`
	Tolerance   models.Tolerance     `json:"tolerance,omitempty"`
	PerAllergen bool                 `json:"per_allergen,omitempty"`
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/v1/evaluate", s.handleEvaluate)
	mux.HandleFunc("/api/v1/catalog/reload", s.handleReload)
	return recoverPanics(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Profile == nil {
		writeError(w, http.StatusBadRequest, "profile is required")
		return
	}

	start := time.Now()
	report := s.engine.Evaluate(*req.Profile, engine.Options{
		Tolerance:   req.Tolerance,
		PerAllergen: req.PerAllergen,
	})
	s.recorder.Record(report, time.Since(start))

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snapshot, err := s.source.Load(r.Context())
	if err != nil {
		log.Printf("catalog reload failed: %v", err)
		writeError(w, http.StatusInternalServerError, "catalog reload failed")
		return
	}
	s.engine.ReplaceCatalog(snapshot)
	writeJSON(w, http.StatusOK, map[string]int{"items": len(snapshot.Items)})
}

// recoverPanics turns an unexpected failure into a 500 envelope without
// leaking internals to the client.
func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

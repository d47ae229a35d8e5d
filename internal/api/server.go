package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/songzhibin97/tokenlens/internal/data"
	"github.com/songzhibin97/tokenlens/internal/pipeline"
	"github.com/songzhibin97/tokenlens/internal/usage"
)

// Server is the thin HTTP front over the analysis pipeline. It renders and
// consumes JSON only; all semantics live below it.
type Server struct {
	pipeline *pipeline.Pipeline
	tracker  *usage.Tracker
	store    data.AssessmentStore // optional
	logger   *slog.Logger
	defaults pipeline.Options
}

func NewServer(p *pipeline.Pipeline, tracker *usage.Tracker, store data.AssessmentStore, defaults pipeline.Options, logger *slog.Logger) *Server {
	return &Server{
		pipeline: p,
		tracker:  tracker,
		store:    store,
		logger:   logger,
		defaults: defaults,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/analyze", s.handleAnalyze).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/history/{token}", s.handleHistory).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/quota", s.handleQuota).Methods(http.MethodGet)
	return r
}

type analyzeRequest struct {
	Query                    string `json:"query"`
	AllowQuotaLimitedSources *bool  `json:"allow_quota_limited_sources"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Query == "" {
		s.writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	opts := s.defaults
	if req.AllowQuotaLimitedSources != nil {
		opts.AllowQuotaLimitedSources = *req.AllowQuotaLimitedSources
	}

	result := s.pipeline.Run(r.Context(), req.Query, opts)
	s.writeJSON(w, http.StatusOK, result)
}

// handleHistory returns the latest persisted assessments for a token.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	token := mux.Vars(r)["token"]
	assessments, err := s.store.RecentAssessments(r.Context(), token, limit)
	if err != nil {
		s.logger.Error("failed to load assessment history", "token", token, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":       token,
		"assessments": assessments,
	})
}

func (s *Server) handleQuota(w http.ResponseWriter, r *http.Request) {
	counts := s.tracker.Snapshot()

	// Best effort: the audit trail keeps the reading, the response does not
	// depend on it.
	if s.store != nil {
		if err := s.store.SaveUsageSnapshot(r.Context(), time.Now(), counts); err != nil {
			s.logger.Warn("failed to persist usage snapshot", "err", err)
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"usage": counts,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

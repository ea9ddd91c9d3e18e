package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/hiresense/internal/analysis"
	"github.com/jonathan/hiresense/internal/db"
)

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status           string    `json:"status"`
	GeminiConfigured bool      `json:"gemini_configured"`
	StoreConfigured  bool      `json:"store_configured"`
	Timestamp        time.Time `json:"timestamp"`
}

// handleAnalyze runs an analysis and returns the response envelope
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseAnalyzeRequest(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, err)
		return
	}

	resp := analysis.Run(r.Context(), s.producer, req)
	if !resp.Success {
		s.jsonResponse(w, http.StatusInternalServerError, resp)
		return
	}

	if s.store != nil {
		// history is best effort; the caller still gets the analysis
		if err := s.store.Save(r.Context(), req, resp); err != nil {
			slog.Error("failed to save analysis", slog.String("id", resp.ID.String()), slog.Any("error", err))
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListAnalyses returns recent analyses, newest first
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, ErrStoreDisabled)
		return
	}

	limit := db.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.errorResponse(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	summaries, err := s.store.List(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list analyses", slog.Any("error", err))
		s.errorResponse(w, errors.New("failed to list analyses"))
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"analyses": summaries,
		"count":    len(summaries),
	})
}

// handleGetAnalysis returns one stored analysis
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, ErrStoreDisabled)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	resp, err := s.store.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			slog.Error("failed to get analysis", slog.String("id", id.String()), slog.Any("error", err))
			err = errors.New("failed to get analysis")
		}
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{
		Status:           "healthy",
		GeminiConfigured: s.aiConfigured,
		StoreConfigured:  s.store != nil,
		Timestamp:        time.Now().UTC(),
	})
}

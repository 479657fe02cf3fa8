// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/pollbase/pollbase/engine"
	"github.com/pollbase/pollbase/middleware"
	"github.com/pollbase/pollbase/models"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

type ResultsHandler struct {
	db  *sql.DB
	eng *engine.Engine
}

func NewResultsHandler(db *sql.DB, eng *engine.Engine) *ResultsHandler {
	return &ResultsHandler{db: db, eng: eng}
}

// GetResults handles GET /polls/{id}/results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	results, err := h.eng.Results(r.Context(), pollID)
	if err != nil {
		engineError(w, err, "Failed to compute results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// Statistics handles GET /statistics
func (h *ResultsHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.eng.Stats(r.Context())
	if err != nil {
		engineError(w, err, "Failed to compute statistics")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// Health handles GET /health
func (h *ResultsHandler) Health(w http.ResponseWriter, r *http.Request) {
	health := "healthy"
	dbStatus := "connected"
	status := http.StatusOK
	if err := h.db.Ping(); err != nil {
		health = "unhealthy"
		dbStatus = "unavailable"
		status = http.StatusServiceUnavailable
	}

	middleware.JSONResponse(w, status, models.HealthResponse{
		Status:    health,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
		Database:  dbStatus,
	})
}

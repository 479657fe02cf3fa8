// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/pollbase/pollbase/engine"
	"github.com/pollbase/pollbase/middleware"
	"github.com/pollbase/pollbase/models"
)

type PollHandler struct {
	db  *sql.DB
	eng *engine.Engine
}

func NewPollHandler(db *sql.DB, eng *engine.Engine) *PollHandler {
	return &PollHandler{db: db, eng: eng}
}

// ListPolls handles GET /polls
// Supports ?search= substring matching and ?status=active|expired.
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != "active" && status != "expired" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be active or expired")
		return
	}

	polls, err := h.eng.ListPolls(r.Context(), engine.ListOptions{
		Search: r.URL.Query().Get("search"),
		Status: status,
	})
	if err != nil {
		engineError(w, err, "Failed to list polls")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := h.eng.CreatePoll(r.Context(), engine.CreatePollInput{
		Title:              req.Title,
		Description:        req.Description,
		Options:            req.Options,
		ExpiresAt:          req.ExpiresAt,
		AllowMultipleVotes: req.AllowMultipleVotes,
		OwnerID:            middleware.UserID(r),
	})
	if err != nil {
		engineError(w, err, "Failed to create poll")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var poll models.Poll
	var expiresAt sql.NullTime
	err := h.db.QueryRow(`
		SELECT id, title, description, created_by, created_at, updated_at,
		       expires_at, is_active, allow_multiple_votes
		FROM poll
		WHERE id = $1
	`, pollID).Scan(
		&poll.ID, &poll.Title, &poll.Description, &poll.CreatedBy,
		&poll.CreatedAt, &poll.UpdatedAt, &expiresAt,
		&poll.IsActive, &poll.AllowMultipleVotes,
	)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		poll.ExpiresAt = &t
	}

	rows, err := h.db.Query(`
		SELECT id, poll_id, text, display_order
		FROM option
		WHERE poll_id = $1
		ORDER BY display_order
	`, pollID)
	if err != nil {
		slog.Error("failed to query options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.DisplayOrder); err != nil {
			slog.Error("failed to scan option", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var totalVotes int
	err = h.db.QueryRow(`SELECT COUNT(*) FROM vote WHERE poll_id = $1`, pollID).Scan(&totalVotes)
	if err != nil {
		slog.Error("failed to count votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollWithOptions{
		Poll:       poll,
		Options:    options,
		TotalVotes: totalVotes,
		IsExpired:  poll.ExpiresAt != nil && time.Now().UTC().After(*poll.ExpiresAt),
	})
}

// UpdatePoll handles PUT /polls/{id}
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := h.eng.UpdatePoll(r.Context(), pollID, middleware.UserID(r), engine.UpdatePollInput{
		Title:              req.Title,
		Description:        req.Description,
		ExpiresAt:          req.ExpiresAt,
		IsActive:           req.IsActive,
		AllowMultipleVotes: req.AllowMultipleVotes,
	})
	if err != nil {
		engineError(w, err, "Failed to update poll")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	if err := h.eng.DeletePoll(r.Context(), pollID, middleware.UserID(r)); err != nil {
		engineError(w, err, "Failed to delete poll")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleStatus handles POST /polls/{id}/toggle-status
// Without a body (or with is_active omitted) the flag is flipped.
func (h *PollHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var req models.ToggleStatusRequest
	if r.ContentLength > 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}

	poll, err := h.eng.TogglePoll(r.Context(), pollID, middleware.UserID(r), req.IsActive)
	if err != nil {
		engineError(w, err, "Failed to toggle poll status")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// UserPolls handles GET /user/polls
func (h *PollHandler) UserPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.eng.UserPolls(r.Context(), middleware.UserID(r))
	if err != nil {
		engineError(w, err, "Failed to list user polls")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

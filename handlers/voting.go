// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/pollbase/pollbase/engine"
	"github.com/pollbase/pollbase/middleware"
	"github.com/pollbase/pollbase/models"
)

type VotingHandler struct {
	db  *sql.DB
	eng *engine.Engine
}

func NewVotingHandler(db *sql.DB, eng *engine.Engine) *VotingHandler {
	return &VotingHandler{db: db, eng: eng}
}

// CastVote handles POST /vote
// Identity is optional; anonymous votes are tracked by source address.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.OptionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_id is required")
		return
	}

	voteID, err := h.eng.CastVote(r.Context(), req.OptionID,
		middleware.UserID(r), middleware.GetClientIP(r), r.UserAgent())
	if err != nil {
		engineError(w, err, "Failed to record vote")
		return
	}

	// The poll ID is resolved from the option for the response body.
	var pollID string
	if err := h.db.QueryRow(`SELECT poll_id FROM option WHERE id = $1`, req.OptionID).Scan(&pollID); err != nil {
		pollID = ""
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID:   voteID,
		PollID:   pollID,
		OptionID: req.OptionID,
		Message:  "Vote recorded successfully",
	})
}

// UserVotes handles GET /user/votes
func (h *VotingHandler) UserVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := h.eng.UserVotes(r.Context(), middleware.UserID(r))
	if err != nil {
		engineError(w, err, "Failed to list user votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, votes)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/pollbase/pollbase/cliparse"
	"github.com/pollbase/pollbase/engine"
	"github.com/pollbase/pollbase/handlers"
	"github.com/pollbase/pollbase/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, eng *engine.Engine) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(db, eng)
	votingHandler := handlers.NewVotingHandler(db, eng)
	resultsHandler := handlers.NewResultsHandler(db, eng)

	secret := []byte(cfg.JWTSecret)
	requireAuth := middleware.RequireIdentity(secret)
	optionalAuth := middleware.Identity(secret)
	voteLimiter := middleware.NewRateLimiter(cfg.VoteRateLimit, time.Minute)

	// Health check
	mux.HandleFunc("GET /health", middleware.WithLogging(resultsHandler.Health))

	// Poll management
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("POST /polls", middleware.WithLogging(requireAuth(pollHandler.CreatePoll)))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("PUT /polls/{id}", middleware.WithLogging(requireAuth(pollHandler.UpdatePoll)))
	mux.HandleFunc("DELETE /polls/{id}", middleware.WithLogging(requireAuth(pollHandler.DeletePoll)))
	mux.HandleFunc("POST /polls/{id}/toggle-status", middleware.WithLogging(requireAuth(pollHandler.ToggleStatus)))

	// Voting (public, optionally authenticated, rate limited per IP)
	mux.HandleFunc("POST /vote", middleware.WithLogging(voteLimiter.Wrap(optionalAuth(votingHandler.CastVote))))

	// Results and statistics (public)
	mux.HandleFunc("GET /polls/{id}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /statistics", middleware.WithLogging(resultsHandler.Statistics))

	// Per-user history
	mux.HandleFunc("GET /user/votes", middleware.WithLogging(requireAuth(votingHandler.UserVotes)))
	mux.HandleFunc("GET /user/polls", middleware.WithLogging(requireAuth(pollHandler.UserPolls)))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pollbase API v1"))
	})

	return mux
}

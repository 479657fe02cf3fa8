// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs method, path, status, client address and duration_ms on completion.

# Identity

Two JWT bearer-token middlewares share the same context slot:

	middleware.Identity(secret)(handler)        // optional, anonymous allowed
	middleware.RequireIdentity(secret)(handler) // 401 without a valid token

Inside a handler the resolved user is read with:

	userID := middleware.UserID(r) // "" when anonymous

A present-but-invalid token is always rejected with 401, even on optional
routes.

# Rate Limiting

Per-IP sliding-window limiting:

	rl := middleware.NewRateLimiter(10, time.Minute)
	mux.HandleFunc("POST /vote", rl.Wrap(handler))

Requests over the limit receive 429.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for duplicate-vote detection and rate limiting.
*/
package middleware

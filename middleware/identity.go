// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pollbase/pollbase/auth"
)

type contextKey int

const userIDKey contextKey = iota

// UserID returns the authenticated user ID stored by the identity
// middleware, or "" for anonymous requests.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// Identity resolves an optional Authorization bearer token. Requests
// without one pass through anonymously; requests with a bad token are
// rejected rather than silently downgraded.
func Identity(secret []byte) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next(w, r)
				return
			}

			userID, err := auth.ParseToken(token, secret)
			if err != nil {
				ErrorResponse(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			next(w, withUserID(r, userID))
		}
	}
}

// RequireIdentity rejects requests without a valid bearer token.
func RequireIdentity(secret []byte) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				ErrorResponse(w, http.StatusUnauthorized, "Authorization required")
				return
			}

			userID, err := auth.ParseToken(token, secret)
			if err != nil {
				ErrorResponse(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			next(w, withUserID(r, userID))
		}
	}
}

func withUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pollbase/pollbase/engine"
	"github.com/pollbase/pollbase/middleware"
)

// engineError maps engine failures onto HTTP responses. fallback is the
// 500 message for errors that are not part of the engine's taxonomy.
func engineError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case engine.IsValidation(err):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrPollNotFound),
		errors.Is(err, engine.ErrOptionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrNotOwner):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, engine.ErrPollInactive),
		errors.Is(err, engine.ErrPollExpired),
		errors.Is(err, engine.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		slog.Error(fallback, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}

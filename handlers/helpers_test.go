// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"

	"github.com/pollbase/pollbase/cache"
	"github.com/pollbase/pollbase/engine"
)

func newTestEngine(db *sql.DB) *engine.Engine {
	return engine.New(db, engine.NewInvalidator(cache.NewMemory()))
}

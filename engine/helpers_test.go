// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"database/sql"

	"github.com/pollbase/pollbase/cache"
)

// newTestEngine builds an engine with an in-memory cache, returning both
// so tests can inspect cache state.
func newTestEngine(db *sql.DB) (*Engine, *cache.Memory) {
	mem := cache.NewMemory()
	return New(db, NewInvalidator(mem)), mem
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"context"
	"time"
)

// Well-known cache keys for derived aggregates.
const (
	KeyPollStats   = "poll_stats"
	KeyPollList    = "poll_list"
	KeyTopPolls    = "top_polls"
	KeyActivePolls = "active_polls"
)

// ResultsKey returns the cache key for a poll's aggregated results.
func ResultsKey(pollID string) string {
	return "poll_results_" + pollID
}

// Cache is the key-value collaborator used for derived aggregates.
// Implementations must treat a missing key as (nil, false, nil), not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys ...string) error
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"log/slog"

	"github.com/pollbase/pollbase/cache"
)

// Invalidator drops derived cache entries after successful commits. It is
// invoked synchronously from the mutation paths at exactly three trigger
// points: vote insert, poll insert/update, and poll delete.
//
// Invalidation failures are logged, never surfaced: a stale cache entry
// expires via TTL, and the write that triggered the invalidation has
// already committed.
type Invalidator struct {
	cache cache.Cache
}

func NewInvalidator(c cache.Cache) *Invalidator {
	return &Invalidator{cache: c}
}

// VoteCommitted runs after a vote insert commits for poll pollID.
func (inv *Invalidator) VoteCommitted(ctx context.Context, pollID string) {
	inv.drop(ctx,
		cache.ResultsKey(pollID),
		cache.KeyPollStats,
		cache.KeyTopPolls,
	)
}

// PollSaved runs after a poll insert or update commits.
func (inv *Invalidator) PollSaved(ctx context.Context) {
	inv.drop(ctx,
		cache.KeyPollList,
		cache.KeyActivePolls,
		cache.KeyPollStats,
	)
}

// PollDeleted runs after a poll delete commits.
func (inv *Invalidator) PollDeleted(ctx context.Context, pollID string) {
	inv.drop(ctx,
		cache.ResultsKey(pollID),
		cache.KeyPollList,
		cache.KeyActivePolls,
		cache.KeyPollStats,
		cache.KeyTopPolls,
	)
}

func (inv *Invalidator) drop(ctx context.Context, keys ...string) {
	if inv == nil || inv.cache == nil {
		return
	}
	if err := inv.cache.DeleteMany(ctx, keys...); err != nil {
		slog.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pollbase/pollbase/cache"
	"github.com/pollbase/pollbase/models"
)

const (
	statsTTL    = 5 * time.Minute
	topPollsMax = 5
)

// Stats aggregates platform-wide counters: total polls and votes, the count
// of active unexpired polls, votes in the last 24 hours, and the five most
// voted polls with a humanized age. The whole payload is cached under
// poll_stats and dropped whenever a poll or vote changes.
//
// A poll with no expiry never counts as active here even while it accepts
// votes; the active counter tracks polls with a live deadline.
func (e *Engine) Stats(ctx context.Context) (models.VoteStats, error) {
	if cached, ok := e.inv.cachedStats(ctx); ok {
		return cached, nil
	}

	now := time.Now().UTC()
	var stats models.VoteStats

	if err := e.db.QueryRow(`SELECT COUNT(*) FROM poll`).Scan(&stats.TotalPolls); err != nil {
		return models.VoteStats{}, fmt.Errorf("count polls: %w", err)
	}
	if err := e.db.QueryRow(`SELECT COUNT(*) FROM vote`).Scan(&stats.TotalVotes); err != nil {
		return models.VoteStats{}, fmt.Errorf("count votes: %w", err)
	}

	err := e.db.QueryRow(`
		SELECT COUNT(*) FROM poll
		WHERE is_active AND expires_at IS NOT NULL AND expires_at > $1
	`, now).Scan(&stats.ActivePolls)
	if err != nil {
		return models.VoteStats{}, fmt.Errorf("count active polls: %w", err)
	}

	err = e.db.QueryRow(`
		SELECT COUNT(*) FROM vote WHERE created_at > $1
	`, now.Add(-24*time.Hour)).Scan(&stats.RecentVotes)
	if err != nil {
		return models.VoteStats{}, fmt.Errorf("count recent votes: %w", err)
	}

	rows, err := e.db.Query(`
		SELECT p.id, p.title, p.created_at, COUNT(v.id)
		FROM poll p
		LEFT JOIN vote v ON v.poll_id = p.id
		GROUP BY p.id, p.title, p.created_at
		ORDER BY COUNT(v.id) DESC, p.created_at DESC
		LIMIT $1
	`, topPollsMax)
	if err != nil {
		return models.VoteStats{}, fmt.Errorf("query top polls: %w", err)
	}
	defer rows.Close()

	stats.TopPolls = []models.TopPoll{}
	for rows.Next() {
		var top models.TopPoll
		if err := rows.Scan(&top.ID, &top.Title, &top.CreatedAt, &top.VoteCount); err != nil {
			return models.VoteStats{}, fmt.Errorf("scan top poll: %w", err)
		}
		top.CreatedAgo = humanize.Time(top.CreatedAt)
		stats.TopPolls = append(stats.TopPolls, top)
	}
	if err := rows.Err(); err != nil {
		return models.VoteStats{}, fmt.Errorf("iterate top polls: %w", err)
	}

	e.inv.storeStats(ctx, stats)

	return stats, nil
}

func (inv *Invalidator) cachedStats(ctx context.Context) (models.VoteStats, bool) {
	if inv == nil || inv.cache == nil {
		return models.VoteStats{}, false
	}
	raw, ok, err := inv.cache.Get(ctx, cache.KeyPollStats)
	if err != nil {
		slog.Warn("cache read failed", "key", cache.KeyPollStats, "error", err)
		return models.VoteStats{}, false
	}
	if !ok {
		return models.VoteStats{}, false
	}
	var stats models.VoteStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		slog.Warn("cache entry corrupt", "key", cache.KeyPollStats, "error", err)
		return models.VoteStats{}, false
	}
	return stats, true
}

func (inv *Invalidator) storeStats(ctx context.Context, stats models.VoteStats) {
	if inv == nil || inv.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := inv.cache.Set(ctx, cache.KeyPollStats, raw, statsTTL); err != nil {
		slog.Warn("cache write failed", "key", cache.KeyPollStats, "error", err)
	}
}

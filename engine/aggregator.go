// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/pollbase/pollbase/cache"
	"github.com/pollbase/pollbase/models"
)

// resultsTTL bounds staleness if an invalidation is ever missed; deletes on
// vote commit are the real freshness mechanism.
const resultsTTL = time.Minute

// Results computes per-option counts and percentages for a poll.
//
// Counts come from a single GROUP BY statement, so one call always sees one
// consistent snapshot. Options are ordered by descending count with ties
// broken by display order; percentages are rounded to two decimals and all
// zero when there are no votes.
func (e *Engine) Results(ctx context.Context, pollID string) (models.PollResults, error) {
	if cached, ok := e.inv.cachedResults(ctx, pollID); ok {
		return cached, nil
	}

	poll, err := loadPoll(e.db, pollID)
	if err != nil {
		return models.PollResults{}, err
	}

	rows, err := e.db.Query(`
		SELECT o.id, o.text, COUNT(v.id)
		FROM option o
		LEFT JOIN vote v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id, o.text, o.display_order
		ORDER BY COUNT(v.id) DESC, o.display_order ASC
	`, pollID)
	if err != nil {
		return models.PollResults{}, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	options := []models.OptionResult{}
	total := 0
	for rows.Next() {
		var opt models.OptionResult
		if err := rows.Scan(&opt.OptionID, &opt.Text, &opt.VoteCount); err != nil {
			return models.PollResults{}, fmt.Errorf("scan result row: %w", err)
		}
		total += opt.VoteCount
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return models.PollResults{}, fmt.Errorf("iterate result rows: %w", err)
	}

	for i := range options {
		options[i].Percentage = percentage(options[i].VoteCount, total)
	}

	results := models.PollResults{
		PollID:     poll.ID,
		PollTitle:  poll.Title,
		TotalVotes: total,
		Options:    options,
		IsExpired:  isExpired(poll.ExpiresAt, time.Now().UTC()),
		CreatedAt:  poll.CreatedAt,
		ExpiresAt:  poll.ExpiresAt,
	}

	e.inv.storeResults(ctx, pollID, results)

	return results, nil
}

// percentage returns count/total as a percent rounded to two decimals,
// or 0 when there are no votes.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*10000) / 100
}

// cachedResults reads the poll_results_{id} entry, tolerating cache errors.
func (inv *Invalidator) cachedResults(ctx context.Context, pollID string) (models.PollResults, bool) {
	if inv == nil || inv.cache == nil {
		return models.PollResults{}, false
	}
	raw, ok, err := inv.cache.Get(ctx, cache.ResultsKey(pollID))
	if err != nil {
		slog.Warn("cache read failed", "key", cache.ResultsKey(pollID), "error", err)
		return models.PollResults{}, false
	}
	if !ok {
		return models.PollResults{}, false
	}
	var results models.PollResults
	if err := json.Unmarshal(raw, &results); err != nil {
		slog.Warn("cache entry corrupt", "key", cache.ResultsKey(pollID), "error", err)
		return models.PollResults{}, false
	}
	return results, true
}

func (inv *Invalidator) storeResults(ctx context.Context, pollID string, results models.PollResults) {
	if inv == nil || inv.cache == nil {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := inv.cache.Set(ctx, cache.ResultsKey(pollID), raw, resultsTTL); err != nil {
		slog.Warn("cache write failed", "key", cache.ResultsKey(pollID), "error", err)
	}
}

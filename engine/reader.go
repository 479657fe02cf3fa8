// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pollbase/pollbase/cache"
	"github.com/pollbase/pollbase/models"
)

const listTTL = 2 * time.Minute

// ListOptions filters the poll listing. Search matches title or description
// substrings; Status is "", "active" or "expired"; OwnerID restricts to one
// creator's polls.
type ListOptions struct {
	Search  string
	Status  string
	OwnerID string
}

// ListPolls returns active polls newest first, with vote and option counts.
//
// The two hot listings, unfiltered and status=active, are served from the
// poll_list and active_polls cache entries. Filtered listings always hit
// the database.
func (e *Engine) ListPolls(ctx context.Context, opts ListOptions) ([]models.PollSummary, error) {
	cacheKey := listCacheKey(opts)
	if cacheKey != "" {
		if cached, ok := e.inv.cachedList(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	now := time.Now().UTC()

	query := `
		SELECT p.id, p.title, p.description, p.created_by, p.created_at,
		       p.updated_at, p.expires_at, p.is_active, p.allow_multiple_votes,
		       COUNT(DISTINCT v.id), COUNT(DISTINCT o.id)
		FROM poll p
		LEFT JOIN option o ON o.poll_id = p.id
		LEFT JOIN vote v ON v.poll_id = p.id
		WHERE p.is_active`
	args := []any{}
	n := 0

	next := func() string {
		n++
		return fmt.Sprintf("$%d", n)
	}

	if opts.OwnerID != "" {
		query += " AND p.created_by = " + next()
		args = append(args, opts.OwnerID)
	}
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query += " AND (p.title LIKE " + next()
		args = append(args, pattern)
		query += " OR p.description LIKE " + next() + ")"
		args = append(args, pattern)
	}
	switch opts.Status {
	case "active":
		query += " AND (p.expires_at IS NULL OR p.expires_at > " + next() + ")"
		args = append(args, now)
	case "expired":
		query += " AND p.expires_at IS NOT NULL AND p.expires_at <= " + next()
		args = append(args, now)
	}

	query += `
		GROUP BY p.id, p.title, p.description, p.created_by, p.created_at,
		         p.updated_at, p.expires_at, p.is_active, p.allow_multiple_votes
		ORDER BY p.created_at DESC`

	rows, err := e.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.PollSummary{}
	for rows.Next() {
		var s models.PollSummary
		var expiresAt sql.NullTime
		err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.CreatedBy,
			&s.CreatedAt, &s.UpdatedAt, &expiresAt, &s.IsActive,
			&s.AllowMultipleVotes, &s.TotalVotes, &s.OptionCount)
		if err != nil {
			return nil, fmt.Errorf("scan poll row: %w", err)
		}
		if expiresAt.Valid {
			t := expiresAt.Time
			s.ExpiresAt = &t
		}
		s.IsExpired = isExpired(s.ExpiresAt, now)
		polls = append(polls, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate poll rows: %w", err)
	}

	if cacheKey != "" {
		e.inv.storeList(ctx, cacheKey, polls)
	}

	return polls, nil
}

// UserPolls lists every poll created by userID, including inactive ones.
func (e *Engine) UserPolls(ctx context.Context, userID string) ([]models.PollSummary, error) {
	now := time.Now().UTC()

	rows, err := e.db.Query(`
		SELECT p.id, p.title, p.description, p.created_by, p.created_at,
		       p.updated_at, p.expires_at, p.is_active, p.allow_multiple_votes,
		       COUNT(DISTINCT v.id), COUNT(DISTINCT o.id)
		FROM poll p
		LEFT JOIN option o ON o.poll_id = p.id
		LEFT JOIN vote v ON v.poll_id = p.id
		WHERE p.created_by = $1
		GROUP BY p.id, p.title, p.description, p.created_by, p.created_at,
		         p.updated_at, p.expires_at, p.is_active, p.allow_multiple_votes
		ORDER BY p.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query user polls: %w", err)
	}
	defer rows.Close()

	polls := []models.PollSummary{}
	for rows.Next() {
		var s models.PollSummary
		var expiresAt sql.NullTime
		err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.CreatedBy,
			&s.CreatedAt, &s.UpdatedAt, &expiresAt, &s.IsActive,
			&s.AllowMultipleVotes, &s.TotalVotes, &s.OptionCount)
		if err != nil {
			return nil, fmt.Errorf("scan user poll row: %w", err)
		}
		if expiresAt.Valid {
			t := expiresAt.Time
			s.ExpiresAt = &t
		}
		s.IsExpired = isExpired(s.ExpiresAt, now)
		polls = append(polls, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user poll rows: %w", err)
	}

	return polls, nil
}

// UserVotes lists userID's votes newest first.
func (e *Engine) UserVotes(ctx context.Context, userID string) ([]models.UserVote, error) {
	rows, err := e.db.Query(`
		SELECT v.id, v.option_id, o.text, p.id, p.title, v.created_at
		FROM vote v
		JOIN option o ON o.id = v.option_id
		JOIN poll p ON p.id = v.poll_id
		WHERE v.user_id = $1
		ORDER BY v.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query user votes: %w", err)
	}
	defer rows.Close()

	votes := []models.UserVote{}
	for rows.Next() {
		var v models.UserVote
		err := rows.Scan(&v.ID, &v.OptionID, &v.OptionText, &v.PollID,
			&v.PollTitle, &v.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan user vote row: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user vote rows: %w", err)
	}

	return votes, nil
}

func listCacheKey(opts ListOptions) string {
	if opts.Search != "" || opts.OwnerID != "" {
		return ""
	}
	switch opts.Status {
	case "":
		return cache.KeyPollList
	case "active":
		return cache.KeyActivePolls
	}
	return ""
}

func (inv *Invalidator) cachedList(ctx context.Context, key string) ([]models.PollSummary, bool) {
	if inv == nil || inv.cache == nil {
		return nil, false
	}
	raw, ok, err := inv.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var polls []models.PollSummary
	if err := json.Unmarshal(raw, &polls); err != nil {
		slog.Warn("cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return polls, true
}

func (inv *Invalidator) storeList(ctx context.Context, key string, polls []models.PollSummary) {
	if inv == nil || inv.cache == nil {
		return
	}
	raw, err := json.Marshal(polls)
	if err != nil {
		return
	}
	if err := inv.cache.Set(ctx, key, raw, listTTL); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
}

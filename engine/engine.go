// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"database/sql"
	"time"

	"github.com/pollbase/pollbase/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx so validation can run at
// request time and again inside the recording transaction.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// Engine is the vote-integrity and result-aggregation core. It owns the
// business rules for poll mutation, vote acceptance, and results; the
// handlers layer is plumbing around it.
type Engine struct {
	db  *sql.DB
	inv *Invalidator
}

func New(db *sql.DB, inv *Invalidator) *Engine {
	return &Engine{db: db, inv: inv}
}

// loadPoll fetches one poll row or ErrPollNotFound.
func loadPoll(q querier, pollID string) (models.Poll, error) {
	var poll models.Poll
	var expiresAt sql.NullTime
	err := q.QueryRow(`
		SELECT id, title, description, created_by, created_at, updated_at,
		       expires_at, is_active, allow_multiple_votes
		FROM poll
		WHERE id = $1
	`, pollID).Scan(
		&poll.ID, &poll.Title, &poll.Description, &poll.CreatedBy,
		&poll.CreatedAt, &poll.UpdatedAt, &expiresAt,
		&poll.IsActive, &poll.AllowMultipleVotes,
	)
	if err == sql.ErrNoRows {
		return poll, ErrPollNotFound
	}
	if err != nil {
		return poll, err
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		poll.ExpiresAt = &t
	}
	return poll, nil
}

func isExpired(expiresAt *time.Time, now time.Time) bool {
	return expiresAt != nil && now.After(*expiresAt)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"database/sql"
	"fmt"
	"time"
)

// voteTarget is the poll state a prospective vote is checked against.
type voteTarget struct {
	PollID        string
	IsActive      bool
	ExpiresAt     sql.NullTime
	AllowMultiple bool
}

// Validate runs the acceptance checks for a prospective vote without
// recording anything. userID is empty for anonymous voters.
func (e *Engine) Validate(optionID, userID, sourceAddr string) error {
	_, err := validateVote(e.db, optionID, userID, sourceAddr, time.Now().UTC())
	return err
}

// validateVote applies the acceptance checks in order, short-circuiting on
// the first failure: option resolves to a poll, poll active, poll not
// expired, then - for single-vote polls - no prior vote by the same identity
// and none from the same source address.
//
// The address check is a heuristic: NAT and shared proxies collide. It is
// kept as-is to permit anonymous voting without session infrastructure.
func validateVote(q querier, optionID, userID, sourceAddr string, now time.Time) (voteTarget, error) {
	var t voteTarget
	err := q.QueryRow(`
		SELECT p.id, p.is_active, p.expires_at, p.allow_multiple_votes
		FROM option o
		JOIN poll p ON p.id = o.poll_id
		WHERE o.id = $1
	`, optionID).Scan(&t.PollID, &t.IsActive, &t.ExpiresAt, &t.AllowMultiple)

	if err == sql.ErrNoRows {
		return t, ErrOptionNotFound
	}
	if err != nil {
		return t, fmt.Errorf("query vote target: %w", err)
	}

	if !t.IsActive {
		return t, ErrPollInactive
	}
	if t.ExpiresAt.Valid && now.After(t.ExpiresAt.Time) {
		return t, ErrPollExpired
	}
	if t.AllowMultiple {
		return t, nil
	}

	if userID != "" {
		var exists bool
		err := q.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM vote WHERE poll_id = $1 AND user_id = $2)
		`, t.PollID, userID).Scan(&exists)
		if err != nil {
			return t, fmt.Errorf("check identity vote: %w", err)
		}
		if exists {
			return t, ErrDuplicateUserVote
		}
	}

	var exists bool
	err = q.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM vote WHERE poll_id = $1 AND ip_address = $2)
	`, t.PollID, sourceAddr).Scan(&exists)
	if err != nil {
		return t, fmt.Errorf("check address vote: %w", err)
	}
	if exists {
		return t, ErrDuplicateAddressVote
	}

	return t, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// CastVote validates and records one vote, returning the new vote ID.
// userID is empty for anonymous voters; userAgent is stored as the client
// signature.
//
// Validation runs twice: once up front for a fast rejection, and again
// inside the insert transaction. Two concurrent votes from the same
// identity or address can still pass both checks, so the vote table's
// unique guard constraints are the final arbiter - the losing insert is
// translated to a duplicate-vote rejection.
func (e *Engine) CastVote(ctx context.Context, optionID, userID, sourceAddr, userAgent string) (string, error) {
	now := time.Now().UTC()

	if _, err := validateVote(e.db, optionID, userID, sourceAddr, now); err != nil {
		return "", err
	}

	tx, err := e.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin vote transaction: %w", err)
	}
	defer tx.Rollback()

	target, err := validateVote(tx, optionID, userID, sourceAddr, now)
	if err != nil {
		return "", err
	}

	voteID := uuid.NewString()

	var userVal any
	if userID != "" {
		userVal = userID
	}

	// Guard columns are set only when the poll disallows multiple votes so
	// the UNIQUE constraints never fire for multi-vote polls.
	var voterID, voterAddr any
	if !target.AllowMultiple {
		if userID != "" {
			voterID = userID
		}
		voterAddr = sourceAddr
	}

	_, err = tx.Exec(`
		INSERT INTO vote (id, poll_id, option_id, user_id, ip_address, user_agent,
		                  voter_id, voter_addr, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, voteID, target.PollID, optionID, userVal, sourceAddr, userAgent,
		voterID, voterAddr, now)

	if err != nil {
		if dup := duplicateVoteError(err); dup != nil {
			return "", dup
		}
		return "", fmt.Errorf("insert vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if dup := duplicateVoteError(err); dup != nil {
			return "", dup
		}
		return "", fmt.Errorf("commit vote: %w", err)
	}

	slog.Info("vote recorded", "vote_id", voteID, "poll_id", target.PollID, "option_id", optionID, "anonymous", userID == "")

	e.inv.VoteCommitted(ctx, target.PollID)

	return voteID, nil
}

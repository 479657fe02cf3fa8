// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Sentinel errors surfaced to the request layer. Handlers map them onto
// HTTP status codes with errors.Is.
var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrOptionNotFound = errors.New("option not found")
	ErrPollInactive   = errors.New("poll is not active")
	ErrPollExpired    = errors.New("poll has expired")
	ErrNotOwner       = errors.New("poll can only be modified by its creator")

	// ErrDuplicateVote is the parent of both duplicate rejections so callers
	// can match either with a single errors.Is check.
	ErrDuplicateVote        = errors.New("duplicate vote")
	ErrDuplicateUserVote    = fmt.Errorf("%w: user has already voted in this poll", ErrDuplicateVote)
	ErrDuplicateAddressVote = fmt.Errorf("%w: a vote from this address already exists for this poll", ErrDuplicateVote)
)

// ValidationError reports malformed input (title, options, expiry).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a malformed-input rejection.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// duplicateVoteError translates a storage-level unique-constraint violation
// on the vote guard columns into the matching duplicate rejection. The race
// window between the validation check and the insert is closed by these
// constraints, not by the validator alone. Returns nil for unrelated errors.
func duplicateVoteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if strings.Contains(pqErr.Constraint, "voter_addr") {
			return ErrDuplicateAddressVote
		}
		if strings.Contains(pqErr.Constraint, "voter_id") {
			return ErrDuplicateUserVote
		}
		return nil
	}

	// modernc.org/sqlite reports constraint violations as plain error text.
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		if strings.Contains(msg, "vote.voter_addr") {
			return ErrDuplicateAddressVote
		}
		if strings.Contains(msg, "vote.voter_id") {
			return ErrDuplicateUserVote
		}
	}
	return nil
}

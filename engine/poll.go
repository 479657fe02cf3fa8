// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pollbase/pollbase/models"
)

const (
	minOptions = 2
	maxOptions = 10
)

type CreatePollInput struct {
	Title              string
	Description        string
	Options            []string
	ExpiresAt          *time.Time
	AllowMultipleVotes bool
	OwnerID            string
}

// UpdatePollInput carries partial updates; nil fields are left unchanged.
type UpdatePollInput struct {
	Title              *string
	Description        *string
	ExpiresAt          *time.Time
	IsActive           *bool
	AllowMultipleVotes *bool
}

// CreatePoll validates and persists a poll with its options.
func (e *Engine) CreatePoll(ctx context.Context, in CreatePollInput) (models.PollWithOptions, error) {
	now := time.Now().UTC()

	title := strings.TrimSpace(in.Title)
	if len(title) < 5 {
		return models.PollWithOptions{}, invalidf("poll title must be at least 5 characters long")
	}
	if in.OwnerID == "" {
		return models.PollWithOptions{}, invalidf("poll owner is required")
	}
	if err := validateExpiry(in.ExpiresAt, now); err != nil {
		return models.PollWithOptions{}, err
	}
	texts, err := validateOptions(in.Options)
	if err != nil {
		return models.PollWithOptions{}, err
	}

	pollID := uuid.NewString()

	tx, err := e.db.Begin()
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("begin poll transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO poll (id, title, description, created_by, created_at, updated_at,
		                  expires_at, is_active, allow_multiple_votes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, pollID, title, strings.TrimSpace(in.Description), in.OwnerID, now, now,
		nullableTime(in.ExpiresAt), true, in.AllowMultipleVotes)
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("insert poll: %w", err)
	}

	options := make([]models.Option, 0, len(texts))
	for i, text := range texts {
		opt := models.Option{
			ID:           uuid.NewString(),
			PollID:       pollID,
			Text:         text,
			DisplayOrder: i + 1,
		}
		_, err = tx.Exec(`
			INSERT INTO option (id, poll_id, text, display_order)
			VALUES ($1, $2, $3, $4)
		`, opt.ID, opt.PollID, opt.Text, opt.DisplayOrder)
		if err != nil {
			return models.PollWithOptions{}, fmt.Errorf("insert option: %w", err)
		}
		options = append(options, opt)
	}

	if err := tx.Commit(); err != nil {
		return models.PollWithOptions{}, fmt.Errorf("commit poll: %w", err)
	}

	slog.Info("poll created", "poll_id", pollID, "owner", in.OwnerID, "options", len(options))

	e.inv.PollSaved(ctx)

	return models.PollWithOptions{
		Poll: models.Poll{
			ID:                 pollID,
			Title:              title,
			Description:        strings.TrimSpace(in.Description),
			CreatedBy:          in.OwnerID,
			CreatedAt:          now,
			UpdatedAt:          now,
			ExpiresAt:          in.ExpiresAt,
			IsActive:           true,
			AllowMultipleVotes: in.AllowMultipleVotes,
		},
		Options: options,
	}, nil
}

// UpdatePoll applies a partial update. Only the poll's creator may mutate it.
func (e *Engine) UpdatePoll(ctx context.Context, pollID, ownerID string, in UpdatePollInput) (models.Poll, error) {
	now := time.Now().UTC()

	poll, err := loadPoll(e.db, pollID)
	if err != nil {
		return models.Poll{}, err
	}
	if poll.CreatedBy != ownerID {
		return models.Poll{}, ErrNotOwner
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if len(title) < 5 {
			return models.Poll{}, invalidf("poll title must be at least 5 characters long")
		}
		poll.Title = title
	}
	if in.Description != nil {
		poll.Description = strings.TrimSpace(*in.Description)
	}
	if in.ExpiresAt != nil {
		if err := validateExpiry(in.ExpiresAt, now); err != nil {
			return models.Poll{}, err
		}
		poll.ExpiresAt = in.ExpiresAt
	}
	if in.IsActive != nil {
		poll.IsActive = *in.IsActive
	}
	if in.AllowMultipleVotes != nil {
		poll.AllowMultipleVotes = *in.AllowMultipleVotes
	}
	poll.UpdatedAt = now

	_, err = e.db.Exec(`
		UPDATE poll
		SET title = $1, description = $2, expires_at = $3, is_active = $4,
		    allow_multiple_votes = $5, updated_at = $6
		WHERE id = $7
	`, poll.Title, poll.Description, nullableTime(poll.ExpiresAt),
		poll.IsActive, poll.AllowMultipleVotes, poll.UpdatedAt, pollID)
	if err != nil {
		return models.Poll{}, fmt.Errorf("update poll: %w", err)
	}

	slog.Info("poll updated", "poll_id", pollID)

	e.inv.PollSaved(ctx)

	return poll, nil
}

// TogglePoll flips the active flag, or sets it when isActive is non-nil.
func (e *Engine) TogglePoll(ctx context.Context, pollID, ownerID string, isActive *bool) (models.Poll, error) {
	poll, err := loadPoll(e.db, pollID)
	if err != nil {
		return models.Poll{}, err
	}
	if poll.CreatedBy != ownerID {
		return models.Poll{}, ErrNotOwner
	}

	next := !poll.IsActive
	if isActive != nil {
		next = *isActive
	}
	now := time.Now().UTC()

	_, err = e.db.Exec(`
		UPDATE poll SET is_active = $1, updated_at = $2 WHERE id = $3
	`, next, now, pollID)
	if err != nil {
		return models.Poll{}, fmt.Errorf("toggle poll: %w", err)
	}

	poll.IsActive = next
	poll.UpdatedAt = now

	slog.Info("poll status toggled", "poll_id", pollID, "is_active", next)

	e.inv.PollSaved(ctx)

	return poll, nil
}

// DeletePoll removes a poll with its options and votes in one transaction.
// Only the poll's creator may delete it.
func (e *Engine) DeletePoll(ctx context.Context, pollID, ownerID string) error {
	poll, err := loadPoll(e.db, pollID)
	if err != nil {
		return err
	}
	if poll.CreatedBy != ownerID {
		return ErrNotOwner
	}

	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	// Explicit cascade: sqlite does not enforce foreign keys by default.
	if _, err := tx.Exec(`DELETE FROM vote WHERE poll_id = $1`, pollID); err != nil {
		return fmt.Errorf("delete votes: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM option WHERE poll_id = $1`, pollID); err != nil {
		return fmt.Errorf("delete options: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM poll WHERE id = $1`, pollID); err != nil {
		return fmt.Errorf("delete poll: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}

	slog.Info("poll deleted", "poll_id", pollID)

	e.inv.PollDeleted(ctx, pollID)

	return nil
}

func validateExpiry(expiresAt *time.Time, now time.Time) error {
	if expiresAt != nil && !expiresAt.After(now) {
		return invalidf("expiration date must be in the future")
	}
	return nil
}

// validateOptions trims option texts and enforces count and
// case-insensitive uniqueness.
func validateOptions(options []string) ([]string, error) {
	if len(options) < minOptions {
		return nil, invalidf("poll must have at least %d options", minOptions)
	}
	if len(options) > maxOptions {
		return nil, invalidf("poll cannot have more than %d options", maxOptions)
	}

	texts := make([]string, 0, len(options))
	seen := make(map[string]bool, len(options))
	for _, raw := range options {
		text := strings.TrimSpace(raw)
		if len(text) < 2 {
			return nil, invalidf("option text must be at least 2 characters long")
		}
		key := strings.ToLower(text)
		if seen[key] {
			return nil, invalidf("poll options must be unique")
		}
		seen[key] = true
		texts = append(texts, text)
	}
	return texts, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

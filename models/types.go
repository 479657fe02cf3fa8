// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type CreatePollRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Options            []string   `json:"options"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	AllowMultipleVotes bool       `json:"allow_multiple_votes"`
}

// UpdatePollRequest carries partial updates; nil fields are left unchanged.
type UpdatePollRequest struct {
	Title              *string    `json:"title,omitempty"`
	Description        *string    `json:"description,omitempty"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	IsActive           *bool      `json:"is_active,omitempty"`
	AllowMultipleVotes *bool      `json:"allow_multiple_votes,omitempty"`
}

type ToggleStatusRequest struct {
	IsActive *bool `json:"is_active,omitempty"`
}

type CastVoteRequest struct {
	OptionID string `json:"option_id"`
}

// Response types

type CastVoteResponse struct {
	VoteID   string `json:"vote_id"`
	PollID   string `json:"poll_id"`
	OptionID string `json:"option_id"`
	Message  string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Database  string `json:"database"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Poll struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	CreatedBy          string     `json:"created_by"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	IsActive           bool       `json:"is_active"`
	AllowMultipleVotes bool       `json:"allow_multiple_votes"`
}

type Option struct {
	ID           string `json:"id"`
	PollID       string `json:"poll_id"`
	Text         string `json:"text"`
	DisplayOrder int    `json:"display_order"`
}

type Vote struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	OptionID  string    `json:"option_id"`
	UserID    *string   `json:"user_id,omitempty"`
	IPAddress string    `json:"-"` // Never expose in JSON
	UserAgent string    `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}

type PollWithOptions struct {
	Poll       Poll     `json:"poll"`
	Options    []Option `json:"options"`
	TotalVotes int      `json:"total_votes"`
	IsExpired  bool     `json:"is_expired"`
}

// PollSummary is the list-view projection of a poll.
type PollSummary struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	CreatedBy          string     `json:"created_by"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	IsActive           bool       `json:"is_active"`
	AllowMultipleVotes bool       `json:"allow_multiple_votes"`
	TotalVotes         int        `json:"total_votes"`
	OptionCount        int        `json:"option_count"`
	IsExpired          bool       `json:"is_expired"`
}

// Result types

type OptionResult struct {
	OptionID   string  `json:"id"`
	Text       string  `json:"text"`
	VoteCount  int     `json:"vote_count"`
	Percentage float64 `json:"percentage"`
}

type PollResults struct {
	PollID     string         `json:"poll_id"`
	PollTitle  string         `json:"poll_title"`
	TotalVotes int            `json:"total_votes"`
	Options    []OptionResult `json:"options"`
	IsExpired  bool           `json:"is_expired"`
	CreatedAt  time.Time      `json:"created_at"`
	ExpiresAt  *time.Time     `json:"expires_at,omitempty"`
}

// Statistics types

type TopPoll struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	VoteCount  int       `json:"vote_count"`
	CreatedAt  time.Time `json:"created_at"`
	CreatedAgo string    `json:"created_ago"`
}

type VoteStats struct {
	TotalPolls  int       `json:"total_polls"`
	TotalVotes  int       `json:"total_votes"`
	ActivePolls int       `json:"active_polls"`
	RecentVotes int       `json:"recent_votes"`
	TopPolls    []TopPoll `json:"top_polls"`
}

// UserVote is a row in a user's voting history.
type UserVote struct {
	ID         string    `json:"id"`
	OptionID   string    `json:"option_id"`
	OptionText string    `json:"option_text"`
	PollID     string    `json:"poll_id"`
	PollTitle  string    `json:"poll_title"`
	CreatedAt  time.Time `json:"created_at"`
}

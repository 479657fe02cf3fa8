// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, description, options, expires_at, allow_multiple_votes
  - UpdatePollRequest: partial poll update (nil fields untouched)
  - ToggleStatusRequest: is_active
  - CastVoteRequest: option_id

# Response Types

Types for JSON responses:

  - CastVoteResponse: vote_id, poll_id, option_id, message
  - HealthResponse: status, timestamp, version, database
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Poll: poll metadata, active flag, optional expiry, multiple-vote policy
  - Option: selectable choice with display order
  - Vote: recorded choice; IP address and user agent are never serialized
  - PollWithOptions: detail view with vote totals
  - PollSummary: list view projection
  - PollResults: aggregated counts and percentages per option
  - VoteStats / TopPoll: site-wide statistics
  - UserVote: voting-history row
*/
package models

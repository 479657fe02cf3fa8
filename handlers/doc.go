// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the poll API.

# Handler Types

Each handler is a struct with database and engine dependencies:

  - PollHandler: Poll lifecycle (list, create, get, update, delete, toggle)
  - VotingHandler: Vote casting and per-user vote history
  - ResultsHandler: Result aggregation, statistics and health

Handlers are created via constructor functions that accept *sql.DB and the
engine:

	pollHandler := handlers.NewPollHandler(db, eng)

Handlers parse requests, resolve the caller identity and client address,
and map engine errors onto status codes; the business rules live in the
engine package.

# Poll Management

	GET    /polls                    → ListPolls (?search=, ?status=)
	POST   /polls                    → CreatePoll (auth required)
	GET    /polls/{id}               → GetPoll
	PUT    /polls/{id}               → UpdatePoll (owner only)
	DELETE /polls/{id}               → DeletePoll (owner only)
	POST   /polls/{id}/toggle-status → ToggleStatus (owner only)

# Voting and Results

	POST /vote               → CastVote (optional auth, rate limited)
	GET  /polls/{id}/results → GetResults
	GET  /statistics         → Statistics
	GET  /user/votes         → UserVotes (auth required)
	GET  /user/polls         → UserPolls (auth required)

# Error Mapping

Engine errors translate to JSON error responses:

	validation failure        → 400
	unknown poll or option    → 404
	not the poll owner        → 403
	inactive/expired poll     → 409
	duplicate vote            → 409

Anything outside the taxonomy logs and returns 500.
*/
package handlers

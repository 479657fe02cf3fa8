// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pollbase API server.

Pollbase is a poll backend with duplicate-vote prevention, cached result
aggregation, and platform statistics. Votes are accepted anonymously or
under a JWT identity; single-vote polls enforce one vote per user and per
source address with database constraints, so concurrent duplicates lose
cleanly.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:polls.db JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8000 -d "postgres://..." -t postgres

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): Secret for bearer-token verification

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - REDIS_URL (-r): Redis cache; omitted means in-process caching
  - VOTE_RATE_LIMIT (--vote-rate-limit): Votes per IP per minute (default: 10)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - engine: Poll lifecycle, vote validation/recording, results, invalidation
  - handlers: HTTP request handlers (polls, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, identity, rate limiting, JSON helpers
  - cache: Redis and in-memory cache implementations
  - models: Request/response types
  - auth: JWT parsing and signing
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8000)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - RedisURL: Redis connection URL; empty disables Redis caching
  - JWTSecret: Secret for bearer-token verification (required)
  - VoteRateLimit: Votes allowed per IP per minute (default: 10)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-r                Redis URL
	--jwt-secret      JWT signing secret
	--vote-rate-limit Votes per IP per minute

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	REDIS_URL       → -r
	JWT_SECRET      → --jwt-secret
	VOTE_RATE_LIMIT → --vote-rate-limit

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided
  - DATABASE_TYPE, when set, must be sqlite or postgres
*/
package cliparse

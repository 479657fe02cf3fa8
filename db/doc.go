// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema

Three tables with TEXT (uuid) primary keys:

  - poll: metadata, active flag, optional expiry, multiple-vote policy
  - option: choices with display order, unique text per poll
  - vote: recorded choices with voter identity and source address

# Duplicate-Vote Constraints

The vote table carries two guard columns, voter_id and voter_addr, populated
by the engine only when the owning poll disallows multiple votes. The
composite UNIQUE constraints (poll_id, voter_id) and (poll_id, voter_addr)
make the second of two racing inserts fail at the storage layer, which the
engine translates into a duplicate-vote rejection.

# Portability

The DDL and all queries use $1-style placeholders and CURRENT_TIMESTAMP
defaults, which both supported drivers (lib/pq and modernc.org/sqlite)
accept. Cascading deletes are performed explicitly in transactions rather
than relying on foreign-key enforcement, which sqlite disables by default.

# Usage

	dbConn, err := sql.Open("postgres", databaseURL)
	// ...
	err = db.CreateSchema(dbConn)

Safe to call on every startup - all statements use IF NOT EXISTS.
*/
package db

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine implements the voting core: poll lifecycle, vote validation
and recording, result aggregation, and cache invalidation.

# Construction

The engine wraps the database handle and a cache invalidator:

	inv := engine.NewInvalidator(cacheImpl)
	eng := engine.New(db, inv)

A nil invalidator (or one built over a nil cache) disables caching without
changing any other behavior.

# Poll Lifecycle

	poll, err := eng.CreatePoll(ctx, engine.CreatePollInput{...})
	poll, err = eng.UpdatePoll(ctx, pollID, ownerID, engine.UpdatePollInput{...})
	poll, err = eng.TogglePoll(ctx, pollID, ownerID, nil)
	err = eng.DeletePoll(ctx, pollID, ownerID)

Mutations are owner-only and return ErrNotOwner otherwise. Input rules:
title at least 5 characters after trimming, 2 to 10 options each at least
2 characters and case-insensitively distinct, expiry strictly in the
future. Violations come back as *ValidationError.

# Voting

	voteID, err := eng.CastVote(ctx, optionID, userID, sourceAddr, userAgent)

Acceptance checks run in order: option exists, poll active, poll not
expired, and for single-vote polls no prior vote by the same user or from
the same address. Checks run again inside the insert transaction, and the
vote table's unique guard constraints settle races between concurrent
inserts; every duplicate path surfaces as an error wrapping
ErrDuplicateVote.

# Results and Statistics

	results, err := eng.Results(ctx, pollID)
	stats, err := eng.Stats(ctx)

Results are a single consistent aggregation snapshot with percentages
rounded to two decimals. Both payloads are cached (poll_results_{id},
poll_stats) and invalidated on the mutations that affect them.

# Cache Invalidation

The Invalidator runs synchronously after successful commits at exactly
three trigger points:

	vote insert  → poll_results_{id}, poll_stats, top_polls
	poll save    → poll_list, active_polls, poll_stats
	poll delete  → all five

Invalidation failures are logged and swallowed; TTLs bound staleness.
*/
package engine

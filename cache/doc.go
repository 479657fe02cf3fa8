// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cache provides the key-value store for derived poll aggregates.

Two implementations of the Cache interface:

  - Redis: production backend (redis/go-redis), constructed from a
    redis:// URL
  - Memory: in-process map with TTL, used in tests and when no REDIS_URL
    is configured

# Keys

	poll_results_{id}  aggregated results for one poll
	poll_stats         site-wide statistics
	poll_list          poll list view
	top_polls          top polls by vote count
	active_polls       active poll projections

The engine's Invalidator deletes these keys after commits; readers treat
the cache as advisory and fall back to the database on a miss.
*/
package cache

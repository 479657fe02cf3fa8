// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the poll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, eng)

# Endpoints

Health:

	GET /health

Poll management (mutations require Authorization: Bearer <token>):

	GET    /polls                    - List polls (?search=, ?status=)
	POST   /polls                    - Create poll
	GET    /polls/{id}               - Poll detail with options
	PUT    /polls/{id}               - Update poll (owner only)
	DELETE /polls/{id}               - Delete poll (owner only)
	POST   /polls/{id}/toggle-status - Flip or set is_active (owner only)

Voting (public, optional bearer token, per-IP rate limited):

	POST /vote - Cast a vote by option_id

Results and statistics (public):

	GET /polls/{id}/results - Aggregated results
	GET /statistics         - Platform-wide counters

Per-user history (requires bearer token):

	GET /user/votes - Caller's votes
	GET /user/polls - Caller's polls

# Middleware

Every route is wrapped with request logging. Mutating poll routes and the
/user routes run behind RequireIdentity; POST /vote runs behind the
sliding-window rate limiter and the optional Identity middleware.
*/
package router

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth handles bearer-token identity.

Tokens are HS256 JWTs whose sub claim carries the user ID. The server only
parses tokens - issuance belongs to the external auth service - but
IssueToken is provided for tests and local tooling.

	userID, err := auth.ParseToken(tokenStr, secret)

ParseToken rejects non-HMAC signing methods, bad signatures, expired tokens,
and tokens without a sub claim, always returning ErrInvalidToken.
*/
package auth

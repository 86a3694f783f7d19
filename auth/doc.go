// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token generation utilities.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(electionID, salt)
	err := auth.ValidateAdminKey(electionID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same election ID and salt always produce the same key. This allows
validation without storing the key anywhere.

# Voter Tokens

Voter session tokens are HS256-signed JWTs carrying the username:

	token, err := auth.GenerateVoterToken(username, secret, 12*time.Hour)
	username, err := auth.VoterFromToken(token, secret)

A token proves the voter authenticated against the credential store. It
does not by itself grant a vote: eligibility (registered, not yet voted,
session open) is re-checked by the coordinator on every cast.

# ID Generation

Random hex IDs for ledger entries and fixtures:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth

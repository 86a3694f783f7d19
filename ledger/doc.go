// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger records every committed election action as an ordered,
immutable, tamper-evident entry.

# Entries

Each entry carries a sequence number (the canonical total order), a
caller-assigned entry ID, the signer identity, an action payload, and a
hash chained over the previous entry:

	hash = SHA-256(prev_hash ‖ id ‖ signer ‖ payload)

Rewriting or reordering history breaks the chain; Adapter.Verify walks
it end to end.

# Actions

Six action kinds cover every mutation:

	user_registered   username + derived credential hash
	candidate_added   candidate id + name
	candidate_removed candidate id + name
	voting_opened     no payload
	voting_closed     no payload
	vote_cast         username + candidate id

user_registered records the derived hash (never the raw credential) so
replaying the ledger reproduces the credential store byte for byte.

# Adapter

Adapter wraps a Store with chaining and idempotent appends:

	adapter := ledger.NewAdapter(store, "coordinator")
	err := adapter.Init(ctx)
	entry, err := adapter.Append(ctx, entryID, action)
	events, err := adapter.FetchEvents(ctx, 1, 0) // 0 = through latest

Append is one attempt; errors are classified as ErrUnavailable
(transient, retried by the coordinator with bounded backoff) or
ErrRejected (fatal for the request, never retried). A caller whose
append timed out calls Confirm(entryID) before assuming failure.

# Stores

SQLStore persists entries via database/sql (sqlite or postgres).
MemStore is the in-memory equivalent for tests, with failure injection
(FailNext, FailAfterCommit) for the retry and rollback paths. Both are
idempotent by entry ID: re-appending a committed ID returns the existing
entry.
*/
package ledger

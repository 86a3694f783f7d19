// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles ledger schema creation.

# Schema Creation

CreateSchema initializes the ledger table for the configured database
type:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# The ledger_entry Table

All durable state lives in one append-only table:

  - seq: database-assigned sequence number, the canonical event order
  - id: caller-assigned entry ID (unique), makes appends idempotent
  - signer: identity that submitted the entry
  - kind: action kind (user_registered, vote_cast, ...)
  - payload: JSON action payload
  - prev_hash / entry_hash: tamper-evidence hash chain
  - recorded_at: commit timestamp

There are no tables for users, candidates or votes: that state is
rebuilt in memory by replaying the ledger at startup.
*/
package db

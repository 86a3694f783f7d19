// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Chain Ballot API server.

Chain Ballot is a small-election coordination service: voters register
with a password-policed credential, an admin manages candidates and the
voting window, and every state change is committed to an append-only,
hash-chained ledger that the whole election can be replayed from.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:ballot.db go run main.go

Or with flags:

	go run main.go -p 3419 -t sqlite -d "file:ballot.db"

# Configuration

Required settings:

  - DATABASE_URL (-d): Ledger database connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - JWT_SECRET (--jwt-secret): Secret for voter login tokens

Optional settings:

  - PORT (-p): Server port (default: 3419)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ELECTION_ID (--election): Election identifier (default: general)
  - LEDGER_SIGNER (--signer): Signer name on ledger entries

The admin key is derived from ELECTION_ID and ADMIN_KEY_SALT and printed
in the boot log; it is never stored.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (voting, election admin, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Admin keys and voter tokens
  - coordinator: Serializes all state mutations and commits them to the ledger
  - credentials, registry, session: In-memory election state, rebuilt by replay
  - ledger: Hash-chained append-only event log (SQL or in-memory)
  - db: Schema creation
  - cliparse: Configuration parsing

At startup the ledger chain is verified and replayed; the in-memory
state is exactly what the recorded history produces.

See package documentation for each component.
*/
package main

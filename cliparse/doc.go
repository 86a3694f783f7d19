// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3419)
  - DatabaseURL: Ledger database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - ElectionID: Identifier of the single election instance (default: general)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - JWTSecret: Secret for signing voter session tokens (required)
  - Signer: Ledger signer identity recorded on every entry

# CLI Flags

	-p          Server port
	-d          Ledger database URL
	-t          Ledger database type
	-election   Election identifier
	-admin-salt Admin key salt
	-jwt-secret Voter token signing secret
	-signer     Ledger signer identity

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ELECTION_ID    → -election
	ADMIN_KEY_SALT → -admin-salt
	JWT_SECRET     → -jwt-secret
	LEDGER_SIGNER  → -signer

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - ADMIN_KEY_SALT must be provided
  - JWT_SECRET must be provided
*/
package cliparse

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Chain Ballot API.

# Handler Types

Each handler is a struct with coordinator and config dependencies:

  - VotingHandler: Voter registration, login and vote casting
  - ElectionHandler: Candidate management and session transitions
  - ResultsHandler: Candidates, tally, session state and the audit feed

Handlers are created via constructor functions that accept a
*coordinator.Coordinator and Config:

	votingHandler := handlers.NewVotingHandler(coord, cfg)

# Election Lifecycle

The session progresses through three states: registration → open → closed

	POST /admin/candidates          → AddCandidate (registration only)
	DELETE /admin/candidates/{name} → RemoveCandidate (registration only)
	POST /admin/open                → OpenVoting
	POST /admin/close               → CloseVoting

Admin operations require the X-Admin-Key header; the key is derived from
the election id at startup and printed in the boot log.

# Voting Flow

	POST /register → Register (password policy enforced)
	POST /login    → Login (returns a bearer token)
	POST /votes    → CastVote (one per voter, open session only)

CastVote requires the Authorization: Bearer header with the login token.

# Error Mapping

Domain errors map onto HTTP statuses in errors.go: validation failures
are 400, authentication failures 401, unknown candidates 404, state
conflicts and duplicate actions 409. Ledger rejections surface as 502
and ledger outages as 503, so a client can tell a bad request apart
from a backend worth retrying.
*/
package handlers

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Chain Ballot API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(coord, cfg)

# Endpoints

Health:

	GET /health

Voter operations (public):

	POST /register - Register voter (password policy enforced)
	POST /login    - Authenticate, returns bearer token
	POST /votes    - Cast vote (requires Authorization: Bearer)

Election management (admin, requires X-Admin-Key):

	POST   /admin/candidates        - Add candidate
	DELETE /admin/candidates/{name} - Remove candidate
	POST   /admin/open              - Open voting
	POST   /admin/close             - Close voting

Results and audit (public):

	GET /candidates    - Candidate list with session state
	GET /tally         - Vote counts per candidate
	GET /session       - Current session state
	GET /ledger/events - Committed ledger entries (?from=N&to=M)

# Handler Initialization

The router creates handler instances with dependency injection:

	votingHandler := handlers.NewVotingHandler(coord, cfg)
	electionHandler := handlers.NewElectionHandler(coord, cfg)
	resultsHandler := handlers.NewResultsHandler(coord, cfg)

All handlers receive the coordinator and configuration.
*/
package router

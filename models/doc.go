// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: username, password
  - LoginRequest: username, password
  - AddCandidateRequest: name
  - CastVoteRequest: candidate_id

# Response Types

Types for JSON responses:

  - RegisterResponse: username, seq
  - LoginResponse: token
  - AddCandidateResponse: candidate_id, name, seq
  - RemoveCandidateResponse: name, seq
  - SessionResponse: state
  - TransitionResponse: state, seq
  - CastVoteResponse: candidate_id, seq, message
  - CandidateListResponse: state, candidates
  - TallyResponse: state, as_of_seq, total_votes, counts
  - ErrorResponse: error, message

Every mutating response carries the ledger sequence number (seq) the
action was committed at, so clients can correlate responses with the
event log.

# Domain Types

  - Candidate: id, name and vote counter

# Constants

Session state values:

	StateRegistration = "registration"
	StateOpen         = "open"
	StateClosed       = "closed"
*/
package models

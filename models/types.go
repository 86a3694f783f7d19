// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Session state constants
const (
	StateRegistration = "registration"
	StateOpen         = "open"
	StateClosed       = "closed"
)

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AddCandidateRequest struct {
	Name string `json:"name"`
}

type CastVoteRequest struct {
	CandidateID uint64 `json:"candidate_id"`
}

// Response types

type RegisterResponse struct {
	Username string `json:"username"`
	Seq      uint64 `json:"seq"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type AddCandidateResponse struct {
	CandidateID uint64 `json:"candidate_id"`
	Name        string `json:"name"`
	Seq         uint64 `json:"seq"`
}

type RemoveCandidateResponse struct {
	Name string `json:"name"`
	Seq  uint64 `json:"seq"`
}

type SessionResponse struct {
	State string `json:"state"`
}

type TransitionResponse struct {
	State string `json:"state"`
	Seq   uint64 `json:"seq"`
}

type CastVoteResponse struct {
	CandidateID uint64 `json:"candidate_id"`
	Seq         uint64 `json:"seq"`
	Message     string `json:"message"`
}

type CandidateListResponse struct {
	State      string      `json:"state"`
	Candidates []Candidate `json:"candidates"`
}

type TallyResponse struct {
	State      string            `json:"state"`
	AsOfSeq    uint64            `json:"as_of_seq"`
	TotalVotes uint64            `json:"total_votes"`
	Counts     map[uint64]uint64 `json:"counts"`
}

// Domain types

type Candidate struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	VoteCount uint64 `json:"vote_count"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Action kinds recorded on the ledger
const (
	KindUserRegistered   = "user_registered"
	KindCandidateAdded   = "candidate_added"
	KindCandidateRemoved = "candidate_removed"
	KindVotingOpened     = "voting_opened"
	KindVotingClosed     = "voting_closed"
	KindVoteCast         = "vote_cast"
)

var (
	// ErrUnavailable marks a transient infrastructure fault. The coordinator
	// retries these with bounded backoff.
	ErrUnavailable = errors.New("ledger unavailable")

	// ErrRejected marks a ledger-side refusal. Never retried: re-sending a
	// rejected state-changing action risks double application.
	ErrRejected = errors.New("ledger rejected action")
)

// Action is the payload of a ledger entry. Kind selects which of the
// optional fields are meaningful.
type Action struct {
	Kind           string `json:"kind"`
	Username       string `json:"username,omitempty"`
	CredentialHash []byte `json:"credential_hash,omitempty"`
	CandidateID    uint64 `json:"candidate_id,omitempty"`
	CandidateName  string `json:"candidate_name,omitempty"`
}

// Entry is one committed ledger record. Seq is the canonical total order of
// all events. Hash chains over the previous entry's hash, making any
// rewrite of history detectable.
type Entry struct {
	Seq        uint64    `json:"seq"`
	ID         string    `json:"id"`
	Signer     string    `json:"signer"`
	Action     Action    `json:"action"`
	PrevHash   string    `json:"prev_hash"`
	Hash       string    `json:"hash"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Store is the durable append-only log beneath the adapter. Append assigns
// the sequence number and must be idempotent by entry ID: re-appending an
// ID that already committed returns the existing entry unchanged.
type Store interface {
	Append(ctx context.Context, e Entry) (Entry, error)
	Events(ctx context.Context, from, to uint64) ([]Entry, error)
	ByID(ctx context.Context, id string) (Entry, bool, error)
	Head(ctx context.Context) (seq uint64, hash string, err error)
}

// ChainHash computes an entry's hash from the previous entry's hash and the
// entry's identity and payload. Seq and RecordedAt are excluded so the hash
// can be computed before the store assigns them.
func ChainHash(prevHash, id, signer string, a Action) string {
	payload, _ := json.Marshal(a)
	h := sha256.New()
	h.Write([]byte(prevHash))
	h.Write([]byte(id))
	h.Write([]byte(signer))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// MarshalAction encodes an action payload for storage.
func MarshalAction(a Action) (string, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("failed to encode action: %w", err)
	}
	return string(raw), nil
}

// UnmarshalAction decodes a stored action payload.
func UnmarshalAction(payload string) (Action, error) {
	var a Action
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		return Action{}, fmt.Errorf("failed to decode action: %w", err)
	}
	return a, nil
}

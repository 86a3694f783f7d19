// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"

	"github.com/danielhkuo/chainballot/models"
)

var (
	ErrAlreadyOpenOrClosed = errors.New("voting already opened")
	ErrNotOpen             = errors.New("voting is not open")
)

// Session is the election lifecycle state machine:
//
//	registration → open → closed
//
// Transitions are monotonic; closed is terminal. A repeated transition
// returns an error rather than silently succeeding, so racing admins can
// detect that someone else already flipped the state.
//
// Not safe for concurrent use; the coordinator serializes all mutations.
type Session struct {
	state string
}

func New() *Session {
	return &Session{state: models.StateRegistration}
}

// Open transitions registration → open. Legal only from registration.
func (s *Session) Open() error {
	if s.state != models.StateRegistration {
		return ErrAlreadyOpenOrClosed
	}
	s.state = models.StateOpen
	return nil
}

// Close transitions open → closed. Legal only from open.
func (s *Session) Close() error {
	if s.state != models.StateOpen {
		return ErrNotOpen
	}
	s.state = models.StateClosed
	return nil
}

// Current returns the current state.
func (s *Session) Current() string {
	return s.state
}

// Restore forces the state during ledger replay or rollback.
func (s *Session) Restore(state string) {
	s.state = state
}

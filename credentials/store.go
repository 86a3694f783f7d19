// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package credentials

import (
	"errors"
	"sort"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var ErrAlreadyRegistered = errors.New("username already registered")

// User is a registered voter identity. The stored hash is a bcrypt digest;
// the raw credential is never retained.
type User struct {
	Username   string
	Hash       []byte
	Registered bool
}

// Store holds registered users keyed by username.
//
// Registration is serialized by the coordinator's mutation lock, but
// Authenticate may run concurrently with it, so the map is guarded here too.
type Store struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewStore() *Store {
	return &Store{users: make(map[string]User)}
}

// Register derives a credential hash and stores the user. Returns the
// derived hash so the caller can record it on the ledger. Fails with
// ErrAlreadyRegistered if the username is already taken.
func (s *Store) Register(username, password string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[username]; ok && u.Registered {
		return nil, ErrAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.users[username] = User{Username: username, Hash: hash, Registered: true}
	return hash, nil
}

// Restore installs a user from a replayed ledger entry. The hash is applied
// as recorded so replay reproduces the store byte for byte.
func (s *Store) Restore(username string, hash []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = User{Username: username, Hash: hash, Registered: true}
}

// Remove is the compensating action for a registration whose ledger append
// was rejected.
func (s *Store) Remove(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, username)
}

// Authenticate reports whether the username exists, is registered, and the
// credential matches. Unknown-user and wrong-credential failures are
// indistinguishable to the caller.
func (s *Store) Authenticate(username, password string) bool {
	s.mu.RLock()
	u, ok := s.users[username]
	s.mu.RUnlock()

	if !ok || !u.Registered {
		// Burn a comparison anyway so timing doesn't reveal unknown users
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}

	return bcrypt.CompareHashAndPassword(u.Hash, []byte(password)) == nil
}

// IsRegistered reports whether a registered user exists for the username.
func (s *Store) IsRegistered(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	return ok && u.Registered
}

// Snapshot returns all users ordered by username. Used by replay tests to
// compare store contents.
func (s *Store) Snapshot() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// dummyHash is a valid bcrypt digest of an arbitrary string, compared
// against when the username is unknown.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("chainballot-dummy"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

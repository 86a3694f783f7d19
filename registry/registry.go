// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"errors"
	"sort"
	"strings"

	"github.com/danielhkuo/chainballot/models"
)

var (
	ErrBlankName        = errors.New("candidate name is required")
	ErrDuplicateName    = errors.New("candidate name already registered")
	ErrNotFound         = errors.New("candidate not found")
	ErrUnknownCandidate = errors.New("unknown candidate id")
)

// Registry holds the active candidate set and vote counters.
//
// Ids start at 1 and are never reused, even after removal, so ledger
// references stay unambiguous. Name uniqueness is case-sensitive exact
// match among active candidates only.
//
// Not safe for concurrent use; the coordinator serializes access.
type Registry struct {
	candidates map[uint64]*models.Candidate
	nextID     uint64
}

func New() *Registry {
	return &Registry{
		candidates: make(map[uint64]*models.Candidate),
		nextID:     1,
	}
}

// Add registers a new candidate with the next monotonic id and a zero
// vote counter.
func (r *Registry) Add(name string) (models.Candidate, error) {
	if strings.TrimSpace(name) == "" {
		return models.Candidate{}, ErrBlankName
	}
	for _, c := range r.candidates {
		if c.Name == name {
			return models.Candidate{}, ErrDuplicateName
		}
	}

	c := models.Candidate{ID: r.nextID, Name: name}
	r.candidates[c.ID] = &c
	r.nextID++
	return c, nil
}

// Remove deletes a candidate by exact name match. Remaining candidates are
// not renumbered. The removed candidate is returned for the ledger entry.
func (r *Registry) Remove(name string) (models.Candidate, error) {
	for id, c := range r.candidates {
		if c.Name == name {
			removed := *c
			delete(r.candidates, id)
			return removed, nil
		}
	}
	return models.Candidate{}, ErrNotFound
}

// RecordVote increments the candidate's counter by exactly one.
func (r *Registry) RecordVote(candidateID uint64) error {
	c, ok := r.candidates[candidateID]
	if !ok {
		return ErrUnknownCandidate
	}
	c.VoteCount++
	return nil
}

// RollbackVote is the compensating action for a vote whose ledger append
// was rejected.
func (r *Registry) RollbackVote(candidateID uint64) {
	if c, ok := r.candidates[candidateID]; ok && c.VoteCount > 0 {
		c.VoteCount--
	}
}

// Restore reinstalls a candidate from a replayed ledger entry (or rolls
// back a rejected removal). Keeps nextID ahead of every id ever issued.
func (r *Registry) Restore(c models.Candidate) {
	copied := c
	r.candidates[c.ID] = &copied
	if c.ID >= r.nextID {
		r.nextID = c.ID + 1
	}
}

// RestoreRemove replays a candidate removal by id.
func (r *Registry) RestoreRemove(candidateID uint64) {
	delete(r.candidates, candidateID)
}

// List returns active candidates ordered by ascending id, which matches
// historical add order even after removals.
func (r *Registry) List() []models.Candidate {
	out := make([]models.Candidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Tally returns candidate id → vote count for all active candidates.
func (r *Registry) Tally() map[uint64]uint64 {
	out := make(map[uint64]uint64, len(r.candidates))
	for id, c := range r.candidates {
		out[id] = c.VoteCount
	}
	return out
}

// TotalVotes returns the sum of all active candidates' counters.
func (r *Registry) TotalVotes() uint64 {
	var total uint64
	for _, c := range r.candidates {
		total += c.VoteCount
	}
	return total
}

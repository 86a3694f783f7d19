// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registry holds the candidate set and vote counters.

# Candidate Ids

Ids are assigned sequentially starting at 1 and are never reused, even
after a candidate is removed. A ledger entry referencing candidate 3
always means the same candidate, regardless of later slate edits.

# Operations

	reg := registry.New()
	c, err := reg.Add("Alice")        // next id, zero votes
	removed, err := reg.Remove("Alice")
	err := reg.RecordVote(c.ID)       // +1, ErrUnknownCandidate otherwise
	list := reg.List()                // ascending id order

Name uniqueness is case-sensitive exact match and applies to active
candidates only; a removed candidate's name may be registered again
(under a fresh id).

# Replay and Rollback

Restore, RestoreRemove and RollbackVote exist for the coordinator's
ledger replay and compensating-rollback paths. Restore keeps the id
counter ahead of every id it has ever seen.

# Concurrency

Registry is not internally synchronized; the coordinator's mutation lock
covers it. The lifecycle gating (candidates mutable only during
registration, votes only while open) also lives in the coordinator,
which is the single place that checks session state before touching
entity state.
*/
package registry

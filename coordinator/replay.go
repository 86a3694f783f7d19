// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coordinator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/chainballot/ledger"
	"github.com/danielhkuo/chainballot/models"
)

// Replay rebuilds in-memory state from the full ledger history. Called at
// startup before the coordinator serves requests. Re-applying the same
// history to empty state always reproduces the same stores, so Replay is
// also what a recovering node runs after a crash.
func (c *Coordinator) Replay(ctx context.Context) error {
	events, err := c.adapter.FetchEvents(ctx, 1, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch ledger history: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range events {
		if err := c.apply(e); err != nil {
			return fmt.Errorf("ledger replay failed at seq %d: %w", e.Seq, err)
		}
		c.appliedSeq = e.Seq
	}

	slog.Info("ledger replay complete", "entries", len(events), "applied_seq", c.appliedSeq)
	return nil
}

// apply installs one replayed entry. Must be called with the mutation lock
// held.
func (c *Coordinator) apply(e ledger.Entry) error {
	a := e.Action
	switch a.Kind {
	case ledger.KindUserRegistered:
		c.creds.Restore(a.Username, a.CredentialHash)
	case ledger.KindCandidateAdded:
		c.reg.Restore(models.Candidate{ID: a.CandidateID, Name: a.CandidateName})
	case ledger.KindCandidateRemoved:
		c.reg.RestoreRemove(a.CandidateID)
	case ledger.KindVotingOpened:
		c.sess.Restore(models.StateOpen)
	case ledger.KindVotingClosed:
		c.sess.Restore(models.StateClosed)
	case ledger.KindVoteCast:
		if err := c.reg.RecordVote(a.CandidateID); err != nil {
			return err
		}
		c.voted[a.Username] = true
	default:
		return fmt.Errorf("unknown action kind %q", a.Kind)
	}
	return nil
}

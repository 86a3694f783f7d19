// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coordinator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/danielhkuo/chainballot/auth"
	"github.com/danielhkuo/chainballot/credentials"
	"github.com/danielhkuo/chainballot/ledger"
	"github.com/danielhkuo/chainballot/models"
	"github.com/danielhkuo/chainballot/registry"
	"github.com/danielhkuo/chainballot/session"
)

var (
	ErrSessionNotOpen           = errors.New("voting session is not open")
	ErrSessionNotInRegistration = errors.New("voting session is not in registration")
	ErrUnknownVoter             = errors.New("unknown voter")
	ErrAlreadyVoted             = errors.New("voter has already cast a vote")
	ErrBlankUsername            = errors.New("username is required")
)

// Coordinator sequences the credential store, candidate registry, session
// state machine and ledger adapter into the public election operations.
//
// All mutating operations are serialized by one mutex over the tuple
// (session state, registry, has-voted set): castVote must check-and-set the
// voter marker and bump a candidate counter as one indivisible step.
// Mutations become visible to in-process readers immediately, but a request
// only reports success after its ledger append commits; a rejected append
// rolls the mutation back.
type Coordinator struct {
	creds   *credentials.Store
	reg     *registry.Registry
	sess    *session.Session
	adapter *ledger.Adapter

	// mu is the single mutual-exclusion domain over (session state,
	// registry, has-voted set).
	mu         sync.Mutex
	voted      map[string]bool
	appliedSeq uint64
	turn       *turnstile

	// Bounded backoff for transient ledger failures. Rejections are
	// never retried.
	MaxRetries uint64
	RetryBase  time.Duration

	subs subscribers
}

func New(creds *credentials.Store, reg *registry.Registry, sess *session.Session, adapter *ledger.Adapter) *Coordinator {
	return &Coordinator{
		creds:      creds,
		reg:        reg,
		sess:       sess,
		adapter:    adapter,
		voted:      make(map[string]bool),
		turn:       newTurnstile(),
		MaxRetries: 4,
		RetryBase:  100 * time.Millisecond,
	}
}

// Register creates a voter account. The password policy is enforced here,
// before the credential store is touched, and the first failing rule is
// returned.
func (c *Coordinator) Register(ctx context.Context, username, password string) (ledger.Entry, error) {
	if username == "" {
		return ledger.Entry{}, ErrBlankUsername
	}
	if err := credentials.ValidatePassword(password); err != nil {
		return ledger.Entry{}, err
	}

	return c.mutate(ctx, func() (ledger.Action, func(), error) {
		hash, err := c.creds.Register(username, password)
		if err != nil {
			return ledger.Action{}, nil, err
		}
		action := ledger.Action{
			Kind:           ledger.KindUserRegistered,
			Username:       username,
			CredentialHash: hash,
		}
		rollback := func() { c.creds.Remove(username) }
		return action, rollback, nil
	})
}

// Authenticate reports whether the credentials match a registered voter.
// The negative result is uniform: unknown user and wrong credential are
// indistinguishable.
func (c *Coordinator) Authenticate(username, password string) bool {
	return c.creds.Authenticate(username, password)
}

// AddCandidate registers a candidate. Legal only during registration.
func (c *Coordinator) AddCandidate(ctx context.Context, name string) (models.Candidate, ledger.Entry, error) {
	var added models.Candidate

	entry, err := c.mutate(ctx, func() (ledger.Action, func(), error) {
		if c.sess.Current() != models.StateRegistration {
			return ledger.Action{}, nil, ErrSessionNotInRegistration
		}
		candidate, err := c.reg.Add(name)
		if err != nil {
			return ledger.Action{}, nil, err
		}
		added = candidate
		action := ledger.Action{
			Kind:          ledger.KindCandidateAdded,
			CandidateID:   candidate.ID,
			CandidateName: candidate.Name,
		}
		rollback := func() { c.reg.RestoreRemove(candidate.ID) }
		return action, rollback, nil
	})
	if err != nil {
		return models.Candidate{}, ledger.Entry{}, err
	}
	return added, entry, nil
}

// RemoveCandidate removes a candidate by exact name. Legal only during
// registration. Remaining candidates keep their ids.
func (c *Coordinator) RemoveCandidate(ctx context.Context, name string) (ledger.Entry, error) {
	return c.mutate(ctx, func() (ledger.Action, func(), error) {
		if c.sess.Current() != models.StateRegistration {
			return ledger.Action{}, nil, ErrSessionNotInRegistration
		}
		removed, err := c.reg.Remove(name)
		if err != nil {
			return ledger.Action{}, nil, err
		}
		action := ledger.Action{
			Kind:          ledger.KindCandidateRemoved,
			CandidateID:   removed.ID,
			CandidateName: removed.Name,
		}
		rollback := func() { c.reg.Restore(removed) }
		return action, rollback, nil
	})
}

// Open transitions the session registration → open.
func (c *Coordinator) Open(ctx context.Context) (ledger.Entry, error) {
	return c.mutate(ctx, func() (ledger.Action, func(), error) {
		if err := c.sess.Open(); err != nil {
			return ledger.Action{}, nil, err
		}
		rollback := func() { c.sess.Restore(models.StateRegistration) }
		return ledger.Action{Kind: ledger.KindVotingOpened}, rollback, nil
	})
}

// Close transitions the session open → closed. Closed is terminal.
func (c *Coordinator) Close(ctx context.Context) (ledger.Entry, error) {
	return c.mutate(ctx, func() (ledger.Action, func(), error) {
		if err := c.sess.Close(); err != nil {
			return ledger.Action{}, nil, err
		}
		rollback := func() { c.sess.Restore(models.StateOpen) }
		return ledger.Action{Kind: ledger.KindVotingClosed}, rollback, nil
	})
}

// CastVote records one vote by a registered voter for a candidate. The
// has-voted check and the counter increment happen under the same lock
// hold, so concurrent votes by the same voter cannot both pass the check.
func (c *Coordinator) CastVote(ctx context.Context, username string, candidateID uint64) (ledger.Entry, error) {
	return c.mutate(ctx, func() (ledger.Action, func(), error) {
		if c.sess.Current() != models.StateOpen {
			return ledger.Action{}, nil, ErrSessionNotOpen
		}
		if !c.creds.IsRegistered(username) {
			return ledger.Action{}, nil, ErrUnknownVoter
		}
		if c.voted[username] {
			return ledger.Action{}, nil, ErrAlreadyVoted
		}
		if err := c.reg.RecordVote(candidateID); err != nil {
			return ledger.Action{}, nil, err
		}
		c.voted[username] = true

		action := ledger.Action{
			Kind:        ledger.KindVoteCast,
			Username:    username,
			CandidateID: candidateID,
		}
		rollback := func() {
			delete(c.voted, username)
			c.reg.RollbackVote(candidateID)
		}
		return action, rollback, nil
	})
}

// Candidates returns the active candidates in ascending id order, plus the
// session state, as one consistent snapshot.
func (c *Coordinator) Candidates() ([]models.Candidate, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reg.List(), c.sess.Current()
}

// Tally returns candidate id → vote count consistent with the latest
// locally applied ledger sequence number.
func (c *Coordinator) Tally() models.TallyResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.TallyResponse{
		State:      c.sess.Current(),
		AsOfSeq:    c.appliedSeq,
		TotalVotes: c.reg.TotalVotes(),
		Counts:     c.reg.Tally(),
	}
}

// State returns the current session state.
func (c *Coordinator) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess.Current()
}

// Events replays committed ledger entries for audit. from and to are
// inclusive; to == 0 means through the latest entry.
func (c *Coordinator) Events(ctx context.Context, from, to uint64) ([]ledger.Entry, error) {
	return c.adapter.FetchEvents(ctx, from, to)
}

// mutate runs one serialized state mutation: prepare applies the in-memory
// change under the lock and returns the ledger action plus a compensating
// rollback; commit then appends in ticket order. On a failed append the
// rollback runs under the lock, so no partially applied state survives.
func (c *Coordinator) mutate(ctx context.Context, prepare func() (ledger.Action, func(), error)) (ledger.Entry, error) {
	c.mu.Lock()
	action, rollback, err := prepare()
	if err != nil {
		c.mu.Unlock()
		return ledger.Entry{}, err
	}
	ticket := c.turn.take()
	c.mu.Unlock()

	entry, err := c.commit(ctx, ticket, action)
	if err != nil {
		c.mu.Lock()
		rollback()
		c.mu.Unlock()
		slog.Warn("mutation rolled back", "kind", action.Kind, "error", err)
		return ledger.Entry{}, err
	}

	c.mu.Lock()
	if entry.Seq > c.appliedSeq {
		c.appliedSeq = entry.Seq
	}
	c.mu.Unlock()

	return entry, nil
}

// commit appends the action to the ledger in ticket order, retrying
// transient failures with bounded fibonacci backoff. If the append context
// expires, the entry ID is checked against the ledger before the action is
// declared failed: a slow append may still have committed.
func (c *Coordinator) commit(ctx context.Context, ticket uint64, action ledger.Action) (ledger.Entry, error) {
	c.turn.wait(ticket)
	defer c.turn.done()

	entryID, err := auth.GenerateID(16)
	if err != nil {
		return ledger.Entry{}, err
	}

	var entry ledger.Entry
	backoff := retry.WithMaxRetries(c.MaxRetries, retry.NewFibonacci(c.RetryBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		e, appendErr := c.adapter.Append(ctx, entryID, action)
		if appendErr != nil {
			if errors.Is(appendErr, ledger.ErrUnavailable) {
				slog.Warn("ledger append failed, retrying", "kind", action.Kind, "error", appendErr)
				return retry.RetryableError(appendErr)
			}
			return appendErr
		}
		entry = e
		return nil
	})
	if err == nil {
		// Published before the turnstile slot is released, so subscribers
		// see entries in ledger sequence order.
		c.subs.publish(entry)
		return entry, nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		// Timing out is not proof of failure. Ask the ledger whether the
		// entry landed before deciding.
		confirmCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if committed, found, confirmErr := c.adapter.Confirm(confirmCtx, entryID); confirmErr == nil && found {
			slog.Info("ledger append confirmed after timeout", "kind", action.Kind, "seq", committed.Seq)
			c.subs.publish(committed)
			return committed, nil
		}
	}

	return ledger.Entry{}, err
}

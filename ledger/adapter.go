// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Adapter wraps a Store with hash chaining and a signer identity. It is the
// only writer to the store, so it caches the chain head instead of reading
// it back on every append.
//
// Append is a single attempt; retry policy belongs to the coordinator,
// which is the one layer allowed to decide retry versus surface.
type Adapter struct {
	store  Store
	signer string

	mu       sync.Mutex
	headSeq  uint64
	headHash string
	loaded   bool
}

func NewAdapter(store Store, signer string) *Adapter {
	return &Adapter{store: store, signer: signer}
}

// Init loads the chain head from the store. Must be called before the
// first Append; FetchEvents works without it.
func (a *Adapter) Init(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	seq, hash, err := a.store.Head(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger head: %w", err)
	}
	a.headSeq, a.headHash = seq, hash
	a.loaded = true
	return nil
}

// Append records one action under the given entry ID and returns the
// committed entry. The ID makes the append idempotent: if a previous
// attempt with the same ID already committed, the committed entry is
// returned instead of a duplicate being written.
//
// Errors are classified as ErrUnavailable (transient) or ErrRejected
// (fatal for this action).
func (a *Adapter) Append(ctx context.Context, id string, action Action) (Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.loaded {
		return Entry{}, fmt.Errorf("%w: adapter not initialized", ErrUnavailable)
	}

	e := Entry{
		ID:         id,
		Signer:     a.signer,
		Action:     action,
		PrevHash:   a.headHash,
		Hash:       ChainHash(a.headHash, id, a.signer, action),
		RecordedAt: time.Now().UTC(),
	}

	committed, err := a.store.Append(ctx, e)
	if err != nil {
		return Entry{}, err
	}

	if committed.Seq > a.headSeq {
		a.headSeq, a.headHash = committed.Seq, committed.Hash
	}
	return committed, nil
}

// FetchEvents replays committed entries in sequence order. from and to are
// inclusive; to == 0 means "through the latest entry". Side-effect-free
// and restartable.
func (a *Adapter) FetchEvents(ctx context.Context, from, to uint64) ([]Entry, error) {
	return a.store.Events(ctx, from, to)
}

// Confirm looks up an entry by ID. Callers whose append timed out use this
// to learn whether the action actually committed before retrying, to avoid
// double application. A confirmed commit advances the cached head so the
// next append chains from it.
func (a *Adapter) Confirm(ctx context.Context, id string) (Entry, bool, error) {
	e, found, err := a.store.ByID(ctx, id)
	if err == nil && found {
		a.mu.Lock()
		if e.Seq > a.headSeq {
			a.headSeq, a.headHash = e.Seq, e.Hash
		}
		a.mu.Unlock()
	}
	return e, found, err
}

// Head returns the latest committed sequence number.
func (a *Adapter) Head(ctx context.Context) (uint64, error) {
	seq, _, err := a.store.Head(ctx)
	return seq, err
}

// Verify walks the full chain and checks every entry's hash against its
// predecessor. Returns an error naming the first corrupted sequence.
func (a *Adapter) Verify(ctx context.Context) error {
	events, err := a.store.Events(ctx, 1, 0)
	if err != nil {
		return err
	}

	prev := ""
	for _, e := range events {
		if e.PrevHash != prev {
			return fmt.Errorf("ledger chain broken at seq %d: prev_hash mismatch", e.Seq)
		}
		if e.Hash != ChainHash(prev, e.ID, e.Signer, e.Action) {
			return fmt.Errorf("ledger chain broken at seq %d: entry hash mismatch", e.Seq)
		}
		prev = e.Hash
	}
	return nil
}

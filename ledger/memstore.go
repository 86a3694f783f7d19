// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"sync"
	"time"
)

// MemStore is an in-memory Store used by tests and local development. It
// honors the same idempotent-by-ID contract as SQLStore, and can inject
// failures to exercise the coordinator's retry and rollback paths.
type MemStore struct {
	mu      sync.Mutex
	entries []Entry
	byID    map[string]int

	failErr   error
	failCount int
}

func NewMemStore() *MemStore {
	return &MemStore{byID: make(map[string]int)}
}

// FailNext makes the next n Append calls return err without committing.
func (m *MemStore) FailNext(err error, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
	m.failCount = n
}

// FailAfterCommit makes the next Append commit the entry but still return
// err, simulating a write that lands while the response is lost.
func (m *MemStore) FailAfterCommit(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
	m.failCount = -1
}

func (m *MemStore) Append(ctx context.Context, e Entry) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if idx, ok := m.byID[e.ID]; ok {
		return m.entries[idx], nil
	}

	if m.failCount > 0 {
		m.failCount--
		err := m.failErr
		if m.failCount == 0 {
			m.failErr = nil
		}
		return Entry{}, err
	}

	commitAndFail := m.failCount == -1
	if commitAndFail {
		m.failCount = 0
	}

	e.Seq = uint64(len(m.entries)) + 1
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}
	m.entries = append(m.entries, e)
	m.byID[e.ID] = len(m.entries) - 1

	if commitAndFail {
		err := m.failErr
		m.failErr = nil
		return Entry{}, err
	}
	return e, nil
}

func (m *MemStore) Events(ctx context.Context, from, to uint64) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Entry
	for _, e := range m.entries {
		if e.Seq < from {
			continue
		}
		if to != 0 && e.Seq > to {
			break
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *MemStore) ByID(ctx context.Context, id string) (Entry, bool, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.byID[id]
	if !ok {
		return Entry{}, false, nil
	}
	return m.entries[idx], true, nil
}

func (m *MemStore) Head(ctx context.Context) (uint64, string, error) {
	if err := ctx.Err(); err != nil {
		return 0, "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) == 0 {
		return 0, "", nil
	}
	last := m.entries[len(m.entries)-1]
	return last.Seq, last.Hash, nil
}

// Len returns the number of committed entries.
func (m *MemStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

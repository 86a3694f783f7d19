// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coordinator

import "sync"

// turnstile hands out tickets under the coordinator's mutation lock and
// admits ledger appends strictly in ticket order. This pins the ledger
// sequence to lock-acquisition order without holding the mutation lock
// across ledger I/O: a slow append delays later appends, but never
// in-memory reads or new lock acquisitions.
type turnstile struct {
	mu      sync.Mutex
	cond    *sync.Cond
	next    uint64
	serving uint64
}

func newTurnstile() *turnstile {
	t := &turnstile{}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// take issues the next ticket. Must be called while holding the
// coordinator's mutation lock so ticket order matches lock order.
func (t *turnstile) take() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	ticket := t.next
	t.next++
	return ticket
}

// wait blocks until the given ticket is being served.
func (t *turnstile) wait(ticket uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for t.serving != ticket {
		t.cond.Wait()
	}
}

// done releases the current slot and admits the next ticket. Must be
// called exactly once per taken ticket, success or failure.
func (t *turnstile) done() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.serving++
	t.cond.Broadcast()
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coordinator

import (
	"sync"

	"github.com/danielhkuo/chainballot/ledger"
)

// subscribers fans committed ledger entries out to in-process listeners.
// publish is called while the ticket turnstile slot is still held, so a
// draining subscriber receives entries in ledger sequence order. Delivery
// is best-effort: a subscriber that stops draining its channel loses
// entries rather than stalling commits; the ledger itself remains the
// source of truth, and a lagging consumer catches up via Events.
type subscribers struct {
	mu    sync.Mutex
	chans map[uint64]chan ledger.Entry
	next  uint64
}

func (s *subscribers) publish(e ledger.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.chans {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a listener for committed entries. The returned
// cancel function must be called when the listener is done.
func (c *Coordinator) Subscribe(buffer int) (<-chan ledger.Entry, func()) {
	if buffer < 1 {
		buffer = 1
	}

	s := &c.subs
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chans == nil {
		s.chans = make(map[uint64]chan ledger.Entry)
	}
	id := s.next
	s.next++

	ch := make(chan ledger.Entry, buffer)
	s.chans[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.chans[id]; ok {
			delete(s.chans, id)
			close(ch)
		}
	}
	return ch, cancel
}

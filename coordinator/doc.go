// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package coordinator sequences the election components into the public
operations and enforces every cross-entity rule.

# Operations

	coord := coordinator.New(creds, reg, sess, adapter)
	err := coord.Replay(ctx)                       // rebuild state from the ledger

	entry, err := coord.Register(ctx, "alice", "Passw0rd!")
	ok := coord.Authenticate("alice", "Passw0rd!")
	cand, entry, err := coord.AddCandidate(ctx, "Alice")   // registration only
	entry, err := coord.RemoveCandidate(ctx, "Alice")      // registration only
	entry, err := coord.Open(ctx)                          // registration → open
	entry, err := coord.Close(ctx)                         // open → closed
	entry, err := coord.CastVote(ctx, "alice", candID)     // open only, once per voter
	tally := coord.Tally()
	list, state := coord.Candidates()

# Commit Protocol

Every mutation follows the same path:

 1. Under the mutation lock: check session state, apply the in-memory
    change, take a sequencing ticket.
 2. Release the lock, then append to the ledger in strict ticket order.
    Ledger sequence therefore matches lock-acquisition order exactly,
    while slow ledger I/O never blocks readers or later lock holders.
 3. On success, record the applied sequence and notify subscribers.
    On rejection, re-acquire the lock and run the compensating rollback;
    no partially applied state is ever observable afterwards.

Transient ledger failures (ErrUnavailable) are retried with bounded
fibonacci backoff; rejections (ErrRejected) are surfaced immediately and
never retried. An append whose context expires is checked against the
ledger by entry ID before being declared failed, since a slow append may
still have committed.

# One Vote Per Voter

CastVote checks the has-voted marker and increments the candidate
counter under a single lock hold: of N concurrent casts by the same
voter, exactly one succeeds and the rest return ErrAlreadyVoted. The
marker is recorded on the ledger as part of the vote_cast entry, so it
survives restarts via Replay.

# Subscriptions

Subscribe returns a channel of committed entries so the presentation
client can push updates instead of polling. Entries arrive in ledger
sequence order. Delivery is best-effort; a lagging subscriber drops
entries and catches up from the ledger via Events.
*/
package coordinator

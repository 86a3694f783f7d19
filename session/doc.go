// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session implements the election lifecycle state machine.

# States

An election progresses through three states, one way only:

	registration → open → closed

During registration, admins manage the candidate slate and voters
register. Open admits votes. Closed is terminal.

# Transitions

	sess := session.New()        // starts in registration
	err := sess.Open()           // registration → open
	err := sess.Close()          // open → closed

Repeated or out-of-order transitions fail (ErrAlreadyOpenOrClosed,
ErrNotOpen) instead of silently succeeding, so a caller that lost a race
with another admin sees the conflict.

# Concurrency

Session is not internally synchronized. All mutations run under the
coordinator's single mutation lock.
*/
package session

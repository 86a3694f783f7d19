// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coordinator

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/danielhkuo/chainballot/credentials"
	"github.com/danielhkuo/chainballot/ledger"
	"github.com/danielhkuo/chainballot/models"
	"github.com/danielhkuo/chainballot/registry"
	"github.com/danielhkuo/chainballot/session"
)

// Runs a full election against one coordinator, then rebuilds a second
// coordinator from the same ledger and checks the state matches exactly.
func TestReplayReproducesState(t *testing.T) {
	first, store := newTestCoordinator(t)
	ctx := context.Background()

	for _, username := range []string{"alice", "bob", "carol"} {
		if _, err := first.Register(ctx, username, goodPassword); err != nil {
			t.Fatalf("register %s: %v", username, err)
		}
	}
	for _, name := range []string{"Dana", "Evan", "Fritz"} {
		if _, _, err := first.AddCandidate(ctx, name); err != nil {
			t.Fatalf("add candidate %s: %v", name, err)
		}
	}
	if _, err := first.RemoveCandidate(ctx, "Evan"); err != nil {
		t.Fatalf("remove candidate: %v", err)
	}
	if _, err := first.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := first.CastVote(ctx, "alice", 1); err != nil {
		t.Fatalf("vote by alice: %v", err)
	}
	if _, err := first.CastVote(ctx, "bob", 3); err != nil {
		t.Fatalf("vote by bob: %v", err)
	}
	if _, err := first.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	creds := credentials.NewStore()
	reg := registry.New()
	sess := session.New()
	adapter := ledger.NewAdapter(store, "test-signer")
	if err := adapter.Init(ctx); err != nil {
		t.Fatalf("adapter init: %v", err)
	}
	second := New(creds, reg, sess, adapter)

	if err := second.Replay(ctx); err != nil {
		t.Fatalf("replay: %v", err)
	}

	if got, want := second.State(), first.State(); got != want {
		t.Errorf("expected state %q, got %q", want, got)
	}

	firstList, _ := first.Candidates()
	secondList, _ := second.Candidates()
	if !reflect.DeepEqual(secondList, firstList) {
		t.Errorf("registry mismatch after replay:\n got %+v\nwant %+v", secondList, firstList)
	}

	if !reflect.DeepEqual(second.creds.Snapshot(), first.creds.Snapshot()) {
		t.Error("credential store mismatch after replay")
	}

	firstTally := first.Tally()
	secondTally := second.Tally()
	if !reflect.DeepEqual(secondTally, firstTally) {
		t.Errorf("tally mismatch after replay:\n got %+v\nwant %+v", secondTally, firstTally)
	}

	// Replay restores the recorded hash, so stored credentials still verify.
	if !second.Authenticate("carol", goodPassword) {
		t.Error("expected replayed credentials to authenticate")
	}
}

func TestReplayRestoresVotedMarkers(t *testing.T) {
	first, store := newTestCoordinator(t)
	ctx := context.Background()

	if _, err := first.Register(ctx, "alice", goodPassword); err != nil {
		t.Fatalf("register: %v", err)
	}
	cand, _, err := first.AddCandidate(ctx, "Bob")
	if err != nil {
		t.Fatalf("add candidate: %v", err)
	}
	if _, err := first.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := first.CastVote(ctx, "alice", cand.ID); err != nil {
		t.Fatalf("vote: %v", err)
	}

	adapter := ledger.NewAdapter(store, "test-signer")
	if err := adapter.Init(ctx); err != nil {
		t.Fatalf("adapter init: %v", err)
	}
	second := New(credentials.NewStore(), registry.New(), session.New(), adapter)
	if err := second.Replay(ctx); err != nil {
		t.Fatalf("replay: %v", err)
	}

	if _, err := second.CastVote(ctx, "alice", cand.ID); !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("expected ErrAlreadyVoted after replay, got %v", err)
	}
}

func TestReplayRemovedCandidateKeepsIDsStable(t *testing.T) {
	first, store := newTestCoordinator(t)
	ctx := context.Background()

	if _, _, err := first.AddCandidate(ctx, "Alice"); err != nil {
		t.Fatalf("add candidate: %v", err)
	}
	if _, _, err := first.AddCandidate(ctx, "Bob"); err != nil {
		t.Fatalf("add candidate: %v", err)
	}
	if _, err := first.RemoveCandidate(ctx, "Alice"); err != nil {
		t.Fatalf("remove candidate: %v", err)
	}

	adapter := ledger.NewAdapter(store, "test-signer")
	if err := adapter.Init(ctx); err != nil {
		t.Fatalf("adapter init: %v", err)
	}
	second := New(credentials.NewStore(), registry.New(), session.New(), adapter)
	if err := second.Replay(ctx); err != nil {
		t.Fatalf("replay: %v", err)
	}

	list, state := second.Candidates()
	if state != models.StateRegistration {
		t.Errorf("expected registration state, got %q", state)
	}
	if len(list) != 1 || list[0].ID != 2 || list[0].Name != "Bob" {
		t.Errorf("unexpected candidates after replay: %+v", list)
	}

	// The id counter resumes past the removed candidate, never reusing 1.
	cand, _, err := second.AddCandidate(ctx, "Carol")
	if err != nil {
		t.Fatalf("add candidate after replay: %v", err)
	}
	if cand.ID != 3 {
		t.Errorf("expected id 3 after replay, got %d", cand.ID)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/chainballot/db"
)

// newSQLTestStore opens an in-memory sqlite ledger with the real schema.
// The pool is pinned to one connection so every statement sees the same
// in-memory database.
func newSQLTestStore(t *testing.T) (*SQLStore, *sql.DB) {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return NewSQLStore(conn), conn
}

func sqlTestEntry(id, prevHash string, action Action) Entry {
	return Entry{
		ID:         id,
		Signer:     "test-signer",
		Action:     action,
		PrevHash:   prevHash,
		Hash:       ChainHash(prevHash, id, "test-signer", action),
		RecordedAt: time.Now().UTC(),
	}
}

func TestSQLStoreAppendAssignsSequence(t *testing.T) {
	store, _ := newSQLTestStore(t)
	ctx := context.Background()

	first, err := store.Append(ctx, sqlTestEntry("entry-1", "", Action{Kind: KindVotingOpened}))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if first.Seq != 1 {
		t.Errorf("Expected seq 1, got %d", first.Seq)
	}

	second, err := store.Append(ctx, sqlTestEntry("entry-2", first.Hash, Action{Kind: KindVotingClosed}))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if second.Seq != 2 {
		t.Errorf("Expected seq 2, got %d", second.Seq)
	}

	seq, hash, err := store.Head(ctx)
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	if seq != 2 || hash != second.Hash {
		t.Errorf("Expected head (2, %s), got (%d, %s)", second.Hash, seq, hash)
	}
}

func TestSQLStoreDuplicateIDReturnsCommitted(t *testing.T) {
	store, _ := newSQLTestStore(t)
	ctx := context.Background()

	action := Action{Kind: KindUserRegistered, Username: "alice", CredentialHash: []byte("hash")}
	committed, err := store.Append(ctx, sqlTestEntry("entry-1", "", action))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// Re-sending the same entry ID must not write a second row
	again, err := store.Append(ctx, sqlTestEntry("entry-1", "", action))
	if err != nil {
		t.Fatalf("Duplicate append failed: %v", err)
	}
	if again.Seq != committed.Seq {
		t.Errorf("Expected duplicate to return seq %d, got %d", committed.Seq, again.Seq)
	}
	if again.Hash != committed.Hash {
		t.Errorf("Expected duplicate to return the committed hash")
	}

	events, err := store.Events(ctx, 1, 0)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("Expected 1 stored entry, got %d", len(events))
	}
}

func TestSQLStorePayloadRoundTrip(t *testing.T) {
	store, _ := newSQLTestStore(t)
	ctx := context.Background()

	action := Action{
		Kind:           KindUserRegistered,
		Username:       "alice",
		CredentialHash: []byte("bcrypt-digest"),
	}
	if _, err := store.Append(ctx, sqlTestEntry("entry-1", "", action)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, found, err := store.ByID(ctx, "entry-1")
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if !found {
		t.Fatal("Expected entry to be found")
	}
	if got.Action.Kind != action.Kind || got.Action.Username != action.Username {
		t.Errorf("Action did not round-trip: %+v", got.Action)
	}
	if string(got.Action.CredentialHash) != string(action.CredentialHash) {
		t.Errorf("Credential hash did not round-trip: %q", got.Action.CredentialHash)
	}

	_, found, err = store.ByID(ctx, "no-such-entry")
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if found {
		t.Error("Expected unknown id not to be found")
	}
}

func TestSQLStoreEventsRange(t *testing.T) {
	store, _ := newSQLTestStore(t)
	ctx := context.Background()

	prev := ""
	for i := 1; i <= 4; i++ {
		e, err := store.Append(ctx, sqlTestEntry(fmt.Sprintf("entry-%d", i), prev,
			Action{Kind: KindCandidateAdded, CandidateID: uint64(i), CandidateName: fmt.Sprintf("C%d", i)}))
		if err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
		prev = e.Hash
	}

	events, err := store.Events(ctx, 2, 3)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 2 || events[0].Seq != 2 || events[1].Seq != 3 {
		t.Errorf("Expected seqs [2, 3], got %+v", events)
	}

	all, err := store.Events(ctx, 1, 0)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 entries for to=0, got %d", len(all))
	}
}

func TestSQLStoreEmptyLedger(t *testing.T) {
	store, _ := newSQLTestStore(t)
	ctx := context.Background()

	seq, hash, err := store.Head(ctx)
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	if seq != 0 || hash != "" {
		t.Errorf("Expected empty head, got (%d, %s)", seq, hash)
	}

	events, err := store.Events(ctx, 1, 0)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Expected no events, got %d", len(events))
	}
}

// The adapter stack over the SQL store is what production runs; the chain
// must build and verify end to end.
func TestSQLStoreAdapterChain(t *testing.T) {
	store, _ := newSQLTestStore(t)
	ctx := context.Background()

	adapter := NewAdapter(store, "coordinator")
	if err := adapter.Init(ctx); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	ids := []string{"entry-1", "entry-2", "entry-3"}
	for i, id := range ids {
		if _, err := adapter.Append(ctx, id, Action{Kind: KindCandidateAdded, CandidateID: uint64(i) + 1}); err != nil {
			t.Fatalf("Append %s failed: %v", id, err)
		}
	}

	if err := adapter.Verify(ctx); err != nil {
		t.Errorf("Expected an intact chain, got %v", err)
	}

	// A second adapter over the same database resumes where the first left off
	resumed := NewAdapter(store, "coordinator")
	if err := resumed.Init(ctx); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := resumed.Append(ctx, "entry-4", Action{Kind: KindVotingOpened}); err != nil {
		t.Fatalf("Append after restart failed: %v", err)
	}
	if err := resumed.Verify(ctx); err != nil {
		t.Errorf("Expected the resumed chain to verify, got %v", err)
	}
}

func TestSQLStoreClosedDatabaseIsUnavailable(t *testing.T) {
	store, conn := newSQLTestStore(t)
	ctx := context.Background()

	conn.Close()

	_, err := store.Append(ctx, sqlTestEntry("entry-1", "", Action{Kind: KindVotingOpened}))
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable from a closed database, got %v", err)
	}

	if _, _, err := store.Head(ctx); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable from Head, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "sqlite constraint violation is rejected",
			err:     errors.New("constraint failed: CHECK constraint failed: ledger_entry (275)"),
			wantErr: ErrRejected,
		},
		{
			name:    "postgres integrity class is rejected",
			err:     &pq.Error{Code: "23514"},
			wantErr: ErrRejected,
		},
		{
			name:    "connection error is transient",
			err:     errors.New("dial tcp 127.0.0.1:5432: connection refused"),
			wantErr: ErrUnavailable,
		},
		{
			name:    "postgres non-integrity error is transient",
			err:     &pq.Error{Code: "57P01"},
			wantErr: ErrUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classify(tc.err); !errors.Is(got, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, got)
			}
		})
	}

	t.Run("context errors pass through unclassified", func(t *testing.T) {
		if got := classify(context.Canceled); !errors.Is(got, context.Canceled) || errors.Is(got, ErrUnavailable) {
			t.Errorf("Expected context.Canceled untouched, got %v", got)
		}
		if got := classify(context.DeadlineExceeded); !errors.Is(got, context.DeadlineExceeded) || errors.Is(got, ErrUnavailable) {
			t.Errorf("Expected context.DeadlineExceeded untouched, got %v", got)
		}
	})

	t.Run("nil stays nil", func(t *testing.T) {
		if got := classify(nil); got != nil {
			t.Errorf("Expected nil, got %v", got)
		}
	})
}

func TestIsDuplicateID(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "postgres unique violation on id",
			err:  &pq.Error{Code: "23505", Constraint: "ledger_entry_id_key"},
			want: true,
		},
		{
			name: "postgres unique violation elsewhere",
			err:  &pq.Error{Code: "23505", Constraint: "ledger_entry_pkey"},
			want: false,
		},
		{
			name: "sqlite unique violation on id",
			err:  errors.New("constraint failed: UNIQUE constraint failed: ledger_entry.id (2067)"),
			want: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("no such table: ledger_entry"),
			want: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isDuplicateID(tc.err); got != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

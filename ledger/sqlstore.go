// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// SQLStore persists ledger entries in a relational database. Works against
// sqlite (modernc driver) and postgres (lib/pq); both accept $N
// placeholders.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Append(ctx context.Context, e Entry) (Entry, error) {
	payload, err := MarshalAction(e.Action)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrRejected, err)
	}

	query := `
		INSERT INTO ledger_entry (id, signer, kind, payload, prev_hash, entry_hash, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING seq
	`
	err = s.db.QueryRowContext(ctx, query,
		e.ID, e.Signer, e.Action.Kind, payload, e.PrevHash, e.Hash, e.RecordedAt).Scan(&e.Seq)

	if err != nil {
		if isDuplicateID(err) {
			// A previous attempt with this entry ID already committed;
			// return it instead of double-applying.
			existing, found, lookupErr := s.ByID(ctx, e.ID)
			if lookupErr == nil && found {
				return existing, nil
			}
		}
		return Entry{}, classify(err)
	}

	return e, nil
}

func (s *SQLStore) Events(ctx context.Context, from, to uint64) ([]Entry, error) {
	query := `
		SELECT seq, id, signer, payload, prev_hash, entry_hash, recorded_at
		FROM ledger_entry
		WHERE seq >= $1 AND ($2 = 0 OR seq <= $2)
		ORDER BY seq ASC
	`
	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (s *SQLStore) ByID(ctx context.Context, id string) (Entry, bool, error) {
	query := `
		SELECT seq, id, signer, payload, prev_hash, entry_hash, recorded_at
		FROM ledger_entry
		WHERE id = $1
	`
	row := s.db.QueryRowContext(ctx, query, id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func (s *SQLStore) Head(ctx context.Context) (uint64, string, error) {
	query := `
		SELECT seq, entry_hash FROM ledger_entry
		ORDER BY seq DESC LIMIT 1
	`
	var seq uint64
	var hash string
	err := s.db.QueryRowContext(ctx, query).Scan(&seq, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", nil
	}
	if err != nil {
		return 0, "", classify(err)
	}
	return seq, hash, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	var payload string

	err := row.Scan(&e.Seq, &e.ID, &e.Signer, &payload, &e.PrevHash, &e.Hash, &e.RecordedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, err
	}
	if err != nil {
		return Entry{}, classify(err)
	}

	e.Action, err = UnmarshalAction(payload)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	return e, nil
}

// isDuplicateID reports whether the error is a unique violation on the
// entry ID column.
func isDuplicateID(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, "id")
	}
	// modernc sqlite surfaces constraint failures as plain errors
	return strings.Contains(err.Error(), "UNIQUE constraint failed: ledger_entry.id")
}

// classify sorts database errors into the two ledger failure kinds:
// integrity violations are rejections, everything else (connection drops,
// timeouts) is transient.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return fmt.Errorf("%w: %v", ErrRejected, err)
	}
	if strings.Contains(err.Error(), "constraint failed") {
		return fmt.Errorf("%w: %v", ErrRejected, err)
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

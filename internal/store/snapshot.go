// internal/store/snapshot.go
//
// SQL-backed snapshots of in-progress puzzles (table puzzle_snapshots).
//
// One row per owner. A snapshot only ever restores onto the puzzle of the same
// date: loading with a different date deletes the stale row and reports
// ErrNotFound, so yesterday's progress never leaks into today's board.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stevenpuente/six-words/internal/game"
)

// Snapshot is a saved puzzle state.
type Snapshot struct {
	Owner     string
	Date      string
	State     game.State
	UpdatedAt time.Time
}

// SnapshotStore persists game states keyed by owner.
type SnapshotStore struct{ db *sql.DB }

func NewSnapshotStore(db *sql.DB) *SnapshotStore { return &SnapshotStore{db: db} }

// Save writes state as the owner's snapshot for date, replacing any previous one.
func (s *SnapshotStore) Save(ctx context.Context, owner, date string, state game.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO puzzle_snapshots(owner_id, puzzle_date, state_json, updated_at)
VALUES(?,?,?,?)
ON CONFLICT(owner_id) DO UPDATE SET
  puzzle_date=excluded.puzzle_date,
  state_json=excluded.state_json,
  updated_at=excluded.updated_at`,
		owner, date, string(raw), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the owner's snapshot for date. A snapshot saved for any other
// date, or one that no longer decodes, is deleted and reported as ErrNotFound.
func (s *SnapshotStore) Load(ctx context.Context, owner, date string) (*Snapshot, error) {
	var (
		snap    = Snapshot{Owner: owner}
		raw     string
		updated string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT puzzle_date, state_json, updated_at FROM puzzle_snapshots WHERE owner_id=?`, owner,
	).Scan(&snap.Date, &raw, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	if snap.Date != date {
		if err := s.Delete(ctx, owner); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	if err := json.Unmarshal([]byte(raw), &snap.State); err != nil || len(snap.State.Cards) == 0 {
		if err := s.Delete(ctx, owner); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	snap.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &snap, nil
}

// Delete removes the owner's snapshot, if any.
func (s *SnapshotStore) Delete(ctx context.Context, owner string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM puzzle_snapshots WHERE owner_id=?`, owner); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// Claim moves an anonymous player's snapshot to their account. An account
// that already has a snapshot keeps it.
func (s *SnapshotStore) Claim(ctx context.Context, fromOwner, toOwner string) error {
	if fromOwner == "" || toOwner == "" || fromOwner == toOwner {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE OR IGNORE puzzle_snapshots SET owner_id=? WHERE owner_id=?`, toOwner, fromOwner,
	); err != nil {
		return fmt.Errorf("claim snapshot: %w", err)
	}
	return s.Delete(ctx, fromOwner)
}

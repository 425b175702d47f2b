package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stevenpuente/six-words/assets"
	"github.com/stevenpuente/six-words/internal/game"
	"github.com/stevenpuente/six-words/internal/puzzle"
	"github.com/stevenpuente/six-words/internal/sqldb"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqldb.Open(sqldb.DriverPureGo, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqldb.Migrate(db, assets.Migrations()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func sampleState(t *testing.T) game.State {
	t.Helper()
	cells := strings.Fields("CA TS OG DE BR IN LU MP HK FY WV JZ XQ EA RN IO")
	board := make(puzzle.Board, len(cells))
	for i, c := range cells {
		board[i] = puzzle.Pair{c[:1], c[1:]}
	}
	e := game.NewEngine(nil)
	if _, err := e.Dispatch(game.Init{Board: board}); err != nil {
		t.Fatal(err)
	}
	s, err := e.Dispatch(game.SelectCard{ID: game.CardID(0, 0)})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSnapshot_SaveLoadSameDay(t *testing.T) {
	ctx := context.Background()
	ss := NewSnapshotStore(newTestDB(t))
	state := sampleState(t)

	if err := ss.Save(ctx, "u1", "2025-08-01", state); err != nil {
		t.Fatal(err)
	}
	snap, err := ss.Load(ctx, "u1", "2025-08-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.State.Cards) != 32 || len(snap.State.CurrentWord) != 1 {
		t.Errorf("restored state: %d cards, currentWord %v", len(snap.State.Cards), snap.State.CurrentWord)
	}
	if snap.State.LastAction().Type() != game.ActionSelectCard {
		t.Errorf("last action = %v", snap.State.LastAction())
	}

	// overwrite keeps one row per owner
	state2 := state
	state2.CurrentWord = []string{}
	if err := ss.Save(ctx, "u1", "2025-08-01", state2); err != nil {
		t.Fatal(err)
	}
	snap, err = ss.Load(ctx, "u1", "2025-08-01")
	if err != nil || len(snap.State.CurrentWord) != 0 {
		t.Errorf("after overwrite: %v, %v", snap, err)
	}
}

func TestSnapshot_OtherDayIsDiscarded(t *testing.T) {
	ctx := context.Background()
	ss := NewSnapshotStore(newTestDB(t))
	if err := ss.Save(ctx, "u1", "2025-07-31", sampleState(t)); err != nil {
		t.Fatal(err)
	}

	if _, err := ss.Load(ctx, "u1", "2025-08-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stale snapshot: %v", err)
	}
	// the stale row is gone, not just hidden
	if _, err := ss.Load(ctx, "u1", "2025-07-31"); !errors.Is(err, ErrNotFound) {
		t.Errorf("stale row still present: %v", err)
	}
}

func TestSnapshot_CorruptRowIsDiscarded(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	ss := NewSnapshotStore(db)
	if _, err := db.Exec(`INSERT INTO puzzle_snapshots(owner_id, puzzle_date, state_json, updated_at)
VALUES('u1','2025-08-01','{"cards":','now')`); err != nil {
		t.Fatal(err)
	}
	if _, err := ss.Load(ctx, "u1", "2025-08-01"); !errors.Is(err, ErrNotFound) {
		t.Errorf("corrupt snapshot: %v", err)
	}
}

func TestSnapshot_Claim(t *testing.T) {
	ctx := context.Background()
	ss := NewSnapshotStore(newTestDB(t))
	state := sampleState(t)
	_ = ss.Save(ctx, "anon", "2025-08-01", state)

	if err := ss.Claim(ctx, "anon", "user"); err != nil {
		t.Fatal(err)
	}
	if _, err := ss.Load(ctx, "user", "2025-08-01"); err != nil {
		t.Errorf("claimed snapshot missing: %v", err)
	}
	if _, err := ss.Load(ctx, "anon", "2025-08-01"); !errors.Is(err, ErrNotFound) {
		t.Errorf("anonymous snapshot kept: %v", err)
	}

	// an account snapshot wins over a second anonymous one
	other := state
	other.CurrentWord = []string{}
	_ = ss.Save(ctx, "anon2", "2025-08-01", other)
	if err := ss.Claim(ctx, "anon2", "user"); err != nil {
		t.Fatal(err)
	}
	snap, err := ss.Load(ctx, "user", "2025-08-01")
	if err != nil || len(snap.State.CurrentWord) != 1 {
		t.Errorf("account snapshot replaced: %v, %v", snap, err)
	}
}

package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stevenpuente/six-words/internal/game"
)

func TestMemory_SaveGetFind(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	s := NewSession("anon-1", "2025-08-01", 9, game.NewEngine(nil))
	if s.ID == "" {
		t.Fatal("session id not assigned")
	}
	if err := m.Save(ctx, s); err != nil {
		t.Fatal(err)
	}

	got, err := m.Get(ctx, s.ID)
	if err != nil || got != s {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if got, err := m.FindByOwner(ctx, "anon-1", "2025-08-01"); err != nil || got != s {
		t.Errorf("FindByOwner = %v, %v", got, err)
	}
	if _, err := m.FindByOwner(ctx, "anon-1", "2025-08-02"); !errors.Is(err, ErrNotFound) {
		t.Errorf("other date: %v", err)
	}
	if _, err := m.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: %v", err)
	}
	if err := m.Save(ctx, &Session{}); err == nil {
		t.Error("session without id should not save")
	}
}

func TestMemory_DropStale(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	old := NewSession("u", "2025-07-31", 8, game.NewEngine(nil))
	cur := NewSession("u", "2025-08-01", 9, game.NewEngine(nil))
	_ = m.Save(ctx, old)
	_ = m.Save(ctx, cur)

	if n := m.DropStale(ctx, "2025-08-01"); n != 1 {
		t.Errorf("dropped %d, want 1", n)
	}
	if _, err := m.Get(ctx, old.ID); !errors.Is(err, ErrNotFound) {
		t.Error("stale session survived")
	}
	if _, err := m.FindByOwner(ctx, "u", "2025-08-01"); err != nil {
		t.Errorf("current session lost: %v", err)
	}
}

func TestSession_MarkRecordedOnce(t *testing.T) {
	s := NewSession("u", "2025-08-01", 9, game.NewEngine(nil))

	var wg sync.WaitGroup
	var mu sync.Mutex
	firsts := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.MarkRecorded() {
				mu.Lock()
				firsts++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if firsts != 1 {
		t.Errorf("MarkRecorded returned true %d times", firsts)
	}
}

func TestMemory_FindOrCreateConcurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	var calls int
	create := func() (*Session, error) {
		calls++ // runs under the store lock
		return NewSession("u", "2025-08-01", 9, game.NewEngine(nil)), nil
	}

	const n = 16
	got := make([]*Session, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, _, err := m.FindOrCreate(ctx, "u", "2025-08-01", create)
			if err != nil {
				t.Error(err)
				return
			}
			got[i] = s
		}(i)
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	for i, s := range got {
		if s != got[0] {
			t.Fatalf("caller %d got a different session", i)
		}
	}
	if s, err := m.FindByOwner(ctx, "u", "2025-08-01"); err != nil || s != got[0] {
		t.Errorf("FindByOwner = %v, %v", s, err)
	}
}

func TestMemory_FindOrCreateError(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	boom := errors.New("boom")

	if _, _, err := m.FindOrCreate(ctx, "u", "2025-08-01", func() (*Session, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if _, err := m.FindByOwner(ctx, "u", "2025-08-01"); !errors.Is(err, ErrNotFound) {
		t.Errorf("failed create left a session: %v", err)
	}

	s, created, err := m.FindOrCreate(ctx, "u", "2025-08-01", func() (*Session, error) {
		return NewSession("u", "2025-08-01", 9, game.NewEngine(nil)), nil
	})
	if err != nil || !created {
		t.Fatalf("FindOrCreate = %v, %v, %v", s, created, err)
	}
	if _, created, _ := m.FindOrCreate(ctx, "u", "2025-08-01", nil); created {
		t.Error("existing session should not be recreated")
	}
}

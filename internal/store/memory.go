// internal/store/memory.go
//
// In-memory session store.
//
// A Session is one player's live puzzle: a *game.Engine plus who owns it and
// which daily puzzle it is. Sessions are kept only for the life of the
// process; durable progress goes through SnapshotStore.
//
// Characteristics:
//   - Sessions keyed by uuid, with a secondary index by owner + date so a
//     returning player resumes the same engine.
//   - Concurrency-safe map (RWMutex). Each Session also carries its own mutex;
//     the engine is single-threaded and every caller goes through Session.Do.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stevenpuente/six-words/internal/game"
)

// ErrNotFound is returned when a session or snapshot does not exist.
var ErrNotFound = errors.New("not found")

// Session binds an engine to its owner and puzzle date.
type Session struct {
	ID      string
	Owner   string // user id or anonymous id
	Date    string // YYYY-MM-DD of the puzzle
	Number  int    // puzzle number shown to players
	Started time.Time

	mu       sync.Mutex
	engine   *game.Engine
	recorded bool // daily result already written
}

// NewSession wraps eng in a session with a fresh id.
func NewSession(owner, date string, number int, eng *game.Engine) *Session {
	return &Session{
		ID:      uuid.NewString(),
		Owner:   owner,
		Date:    date,
		Number:  number,
		Started: time.Now(),
		engine:  eng,
	}
}

// Do runs fn with exclusive access to the engine.
func (s *Session) Do(fn func(e *game.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.engine)
}

// State returns a copy of the current state.
func (s *Session) State() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// MarkRecorded reports whether this call is the first to mark the session's
// result as recorded.
func (s *Session) MarkRecorded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recorded {
		return false
	}
	s.recorded = true
	return true
}

// Store defines the persistence interface for live sessions.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// FindByOwner returns the owner's session for date, or ErrNotFound.
	FindByOwner(ctx context.Context, owner, date string) (*Session, error)

	// FindOrCreate returns the owner's session for date, calling create and
	// saving its result when there is none. created reports which happened.
	// Concurrent callers for the same owner and date get the same session.
	FindOrCreate(ctx context.Context, owner, date string, create func() (*Session, error)) (sess *Session, created bool, err error)

	// DropStale removes sessions for puzzles other than date.
	DropStale(ctx context.Context, date string) int
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	byOwner  map[string]string // owner|date → session id
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		sessions: make(map[string]*Session),
		byOwner:  make(map[string]string),
	}
}

func ownerKey(owner, date string) string { return owner + "|" + date }

func (m *memory) Save(ctx context.Context, s *Session) error {
	if s == nil || s.ID == "" {
		return errors.New("save session: missing id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	if s.Owner != "" {
		m.byOwner[ownerKey(s.Owner, s.Date)] = s.ID
	}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) FindByOwner(ctx context.Context, owner, date string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id, ok := m.byOwner[ownerKey(owner, date)]; ok {
		if s, ok := m.sessions[id]; ok {
			return s, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memory) FindOrCreate(ctx context.Context, owner, date string, create func() (*Session, error)) (*Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := ownerKey(owner, date)
	if id, ok := m.byOwner[key]; ok {
		if s, ok := m.sessions[id]; ok {
			return s, false, nil
		}
	}
	s, err := create()
	if err != nil {
		return nil, false, err
	}
	if s == nil || s.ID == "" {
		return nil, false, errors.New("create session: missing id")
	}
	m.sessions[s.ID] = s
	m.byOwner[key] = s.ID
	return s, true, nil
}

func (m *memory) DropStale(ctx context.Context, date string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.Date == date {
			continue
		}
		delete(m.sessions, id)
		delete(m.byOwner, ownerKey(s.Owner, s.Date))
		n++
	}
	return n
}

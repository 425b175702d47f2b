// internal/game/engine.go
//
// Engine owns one puzzle: its current State, the Reducer bound to the
// validation dictionary, and the observers notified after each transition.
//
// Notes:
//   - One action is processed to completion before the next is accepted.
//     Dispatching from inside an observer returns ErrReentrantDispatch.
//   - Until INIT (or Restore) the engine is not ready and refuses every other
//     action with ErrNotReady.
//   - Engine is not safe for concurrent use; callers serialise access.

package game

import (
	"errors"
	"fmt"
)

var (
	ErrNotReady          = errors.New("game: engine not initialised")
	ErrReentrantDispatch = errors.New("game: dispatch while another action is in progress")
)

// Observer receives the state after every transition that changed it.
type Observer func(State)

type subscription struct {
	id int
	fn Observer
}

// Engine is the single owner of a puzzle's State.
type Engine struct {
	reducer     Reducer
	state       State
	ready       bool
	dispatching bool
	observers   []subscription
	nextID      int
	version     uint64
}

// NewEngine returns an engine that validates words against words.
func NewEngine(words Lexicon) *Engine {
	return &Engine{reducer: Reducer{Words: words}, state: NewState()}
}

// Ready reports whether a board has been loaded.
func (e *Engine) Ready() bool { return e.ready }

// Version counts the transitions (and restores) applied so far. It is unchanged
// by actions the reducer ignored.
func (e *Engine) Version() uint64 { return e.version }

// State returns the current state. Callers must treat it as read-only.
func (e *Engine) State() State { return e.state }

// Dispatch applies a, notifies observers if the state changed, and returns
// the resulting state. Rejected player input is not an error; only a missing
// board or a reentrant call is.
func (e *Engine) Dispatch(a Action) (State, error) {
	if e.dispatching {
		return e.state, ErrReentrantDispatch
	}
	if a == nil {
		return e.state, errors.New("game: nil action")
	}
	if _, isInit := a.(Init); !e.ready && !isInit {
		return e.state, ErrNotReady
	}

	e.dispatching = true
	defer func() { e.dispatching = false }()

	next, changed := e.reducer.apply(e.state, a)
	if !changed {
		return e.state, nil
	}
	e.state = next
	e.version++
	if _, isInit := a.(Init); isInit {
		e.ready = len(next.Cards) > 0
	}
	for _, sub := range e.observers {
		sub.fn(next)
	}
	return next, nil
}

// Restore replaces the state with a saved snapshot without notifying observers.
func (e *Engine) Restore(s State) error {
	if e.dispatching {
		return ErrReentrantDispatch
	}
	if len(s.Cards) == 0 {
		return fmt.Errorf("game: restore: snapshot has no cards")
	}
	e.state = s
	e.ready = true
	e.version++
	return nil
}

// Subscribe registers fn and returns a function that removes it.
func (e *Engine) Subscribe(fn Observer) (cancel func()) {
	e.nextID++
	id := e.nextID
	e.observers = append(e.observers, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range e.observers {
			if sub.id == id {
				e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
				return
			}
		}
	}
}

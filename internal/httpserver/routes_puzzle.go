// internal/httpserver/routes_puzzle.go
//
// Puzzle endpoints:
//   - POST /puzzle/new          → today's puzzle for the caller (resumes a same-day session or snapshot)
//   - GET  /puzzle/{id}         → current state
//   - POST /puzzle/{id}/actions → dispatch one action envelope, returns the new state
//   - GET  /debug/puzzle        → today's seed, board and seed words (DEBUG_ROUTES only)
//
// Every accepted action is snapshotted for the owner. The first transition
// into game over records a daily result and, for accounts, bumps stats.

package httpserver

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/stevenpuente/six-words/internal/daily"
	"github.com/stevenpuente/six-words/internal/game"
	"github.com/stevenpuente/six-words/internal/puzzle"
	"github.com/stevenpuente/six-words/internal/store"
)

// mountPuzzle registers full paths rather than a /puzzle subrouter so the
// websocket route can share the prefix outside the request timeout.
func (s *Server) mountPuzzle(r chi.Router) {
	r = r.With(s.requireReady)
	r.Post("/puzzle/new", s.handleNewPuzzle)
	r.Get("/puzzle/{id}", s.handleGetPuzzle)
	r.Post("/puzzle/{id}/actions", s.handleAction)
}

// puzzleRes is returned by every puzzle endpoint.
type puzzleRes struct {
	GameID  string        `json:"gameId"`
	Date    string        `json:"date"`
	Number  int           `json:"number"`
	Played  bool          `json:"played,omitempty"` // a result is already recorded for today
	State   game.State    `json:"state"`
	Summary *game.Summary `json:"summary,omitempty"`
}

func (s *Server) respond(w http.ResponseWriter, sess *store.Session, st game.State, played bool) {
	res := puzzleRes{GameID: sess.ID, Date: sess.Date, Number: sess.Number, Played: played, State: st}
	if st.GameIsOver {
		sum := game.Summarize(st)
		res.Summary = &sum
	}
	writeJSON(w, http.StatusOK, res)
}

// handleNewPuzzle returns the caller's session for today, creating it if needed.
func (s *Server) handleNewPuzzle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, _ := s.owner(w, r)
	now := s.clock.Now()
	date := s.clock.DateKey(now)

	if n := s.store.DropStale(ctx, date); n > 0 {
		log.Info().Int("sessions", n).Str("date", date).Msg("dropped stale sessions")
	}
	played, err := s.results.AlreadyPlayed(ctx, owner, date)
	if err != nil {
		log.Warn().Err(err).Str("owner", owner).Msg("already played")
	}

	sess, _, err := s.store.FindOrCreate(ctx, owner, date, func() (*store.Session, error) {
		return s.openSession(ctx, owner, now)
	})
	if err != nil {
		var genErr *puzzle.GenerationError
		if errors.As(err, &genErr) {
			log.Error().Err(err).Str("date", date).Msg("generate board")
			writeError(w, http.StatusInternalServerError, "generation_failed")
			return
		}
		log.Error().Err(err).Str("date", date).Msg("open session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.respond(w, sess, sess.State(), played)
}

// openSession builds today's engine for owner, restoring a same-day snapshot
// when present. The caller stores the result.
func (s *Server) openSession(ctx context.Context, owner string, now time.Time) (*store.Session, error) {
	date := s.clock.DateKey(now)
	seed := s.clock.Seed(now)
	eng := game.NewEngine(s.words.Valid)

	snap, err := s.snaps.Load(ctx, owner, date)
	switch {
	case err == nil:
		if err := eng.Restore(snap.State); err != nil {
			return nil, err
		}
		log.Debug().Str("owner", owner).Str("date", date).Msg("resumed snapshot")
	case errors.Is(err, store.ErrNotFound):
		board, used, err := puzzle.Daily(s.words.Generate, seed)
		if err != nil {
			return nil, err
		}
		if _, err := eng.Dispatch(game.Init{Board: board}); err != nil {
			return nil, err
		}
		log.Debug().Uint32("seed", seed).Strs("words", used.All()).Msg("generated board")
	default:
		return nil, err
	}

	return store.NewSession(owner, date, s.clock.PuzzleNumber(now), eng), nil
}

// ownedSession loads the {id} session if it belongs to the caller. Someone
// else's game is reported as missing.
func (s *Server) ownedSession(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	if owner, _ := s.owner(w, r); sess.Owner != owner {
		log.Warn().Str("gameId", sess.ID).Str("caller", owner).Msg("session owner mismatch")
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.ownedSession(w, r)
	if !ok {
		return
	}
	s.respond(w, sess, sess.State(), false)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.ownedSession(w, r)
	if !ok {
		return
	}
	raw, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	a, err := game.DecodeAction(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_action")
		return
	}
	st, err := s.dispatch(r.Context(), sess, a)
	if err != nil {
		writeActionError(w, err)
		return
	}
	s.respond(w, sess, st, false)
}

var errInitNotAllowed = errors.New("init_not_allowed")

// dispatch applies a client action to the session and persists the outcome.
// Boards only come from the daily generator, so clients cannot send INIT.
func (s *Server) dispatch(ctx context.Context, sess *store.Session, a game.Action) (game.State, error) {
	if a.Type() == game.ActionInit {
		return game.State{}, errInitNotAllowed
	}
	var (
		after   game.State
		changed bool
	)
	err := sess.Do(func(e *game.Engine) error {
		v := e.Version()
		var err error
		after, err = e.Dispatch(a)
		changed = e.Version() != v
		return err
	})
	if err != nil || !changed {
		return after, err
	}

	if err := s.snaps.Save(ctx, sess.Owner, sess.Date, after); err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("save snapshot")
	}
	if after.GameIsOver && sess.MarkRecorded() {
		s.recordResult(ctx, sess, after)
	}
	return after, nil
}

// recordResult stores the finished puzzle and bumps account stats (best effort).
func (s *Server) recordResult(ctx context.Context, sess *store.Session, st game.State) {
	sum := game.Summarize(st)
	res := daily.Result{
		UserID:    sess.Owner,
		Date:      sess.Date,
		Words:     sum.Words,
		Score:     sum.Score,
		Perfect:   sum.Perfect,
		ElapsedMs: int(time.Since(sess.Started).Milliseconds()),
	}
	played, _ := s.results.AlreadyPlayed(ctx, sess.Owner, sess.Date)
	if err := s.results.InsertResult(ctx, res); err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("insert daily result")
		return
	}
	log.Info().Str("gameId", sess.ID).Str("date", sess.Date).Int("score", sum.Score).Int("words", sum.Words).Msg("puzzle finished")
	if played {
		return
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin stats tx")
		return
	}
	defer func() { _ = tx.Rollback() }()
	if err := bumpStats(ctx, tx, sess.Owner, sum.Perfect); err != nil {
		if !errors.Is(err, sql.ErrNoRows) { // guests have no users row
			log.Warn().Err(err).Str("user", sess.Owner).Msg("bump stats")
		}
		return
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit stats")
	}
}

func writeActionError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, game.ErrNotReady):
		status = http.StatusServiceUnavailable
	case errors.Is(err, game.ErrReentrantDispatch):
		status = http.StatusConflict
	}
	writeError(w, status, actionErrorCode(err))
}

func actionErrorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrNotReady):
		return "reload_required"
	case errors.Is(err, errInitNotAllowed):
		return errInitNotAllowed.Error()
	case errors.Is(err, game.ErrReentrantDispatch):
		return "busy"
	default:
		return "bad_action"
	}
}

func readBody(r *http.Request) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

func (s *Server) handleDebugPuzzle(w http.ResponseWriter, r *http.Request) {
	now := s.clock.Now()
	seed := s.clock.Seed(now)
	board, used, err := puzzle.Daily(s.words.Generate, seed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":   s.clock.DateKey(now),
		"number": s.clock.PuzzleNumber(now),
		"seed":   seed,
		"board":  board,
		"words":  used,
	})
}

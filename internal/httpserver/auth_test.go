package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stevenpuente/six-words/internal/daily"
	"github.com/stevenpuente/six-words/internal/game"
	"github.com/stevenpuente/six-words/internal/puzzle"
	"github.com/stevenpuente/six-words/internal/words"
)

func TestAuth_SignupLoginLogout(t *testing.T) {
	s := newTestServer(t, newTestDB(t), nil)
	c := newClient(t, s)
	creds := credentials{Username: "stacker", Password: "correct horse"}

	if rec := c.do(http.MethodGet, "/auth/me", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("me without token = %d", rec.Code)
	}
	if rec := c.do(http.MethodPost, "/auth/signup", credentials{Username: "stacker", Password: "short"}); rec.Code != http.StatusBadRequest {
		t.Errorf("short password = %d", rec.Code)
	}
	if rec := c.do(http.MethodPost, "/auth/signup", creds); rec.Code != http.StatusOK {
		t.Fatalf("signup = %d %s", rec.Code, rec.Body)
	}
	if rec := c.do(http.MethodPost, "/auth/signup", creds); rec.Code != http.StatusConflict {
		t.Errorf("duplicate signup = %d", rec.Code)
	}

	me := decode[authUser](t, c.do(http.MethodGet, "/auth/me", nil))
	if me.Username != "stacker" || me.ID == "" {
		t.Errorf("me = %+v", me)
	}

	c.do(http.MethodPost, "/auth/logout", nil)
	if rec := c.do(http.MethodGet, "/auth/me", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("me after logout = %d", rec.Code)
	}

	if rec := c.do(http.MethodPost, "/auth/login", credentials{Username: "stacker", Password: "wrong password"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login = %d", rec.Code)
	}
	if rec := c.do(http.MethodPost, "/auth/login", creds); rec.Code != http.StatusOK {
		t.Errorf("login = %d %s", rec.Code, rec.Body)
	}

	c.cookies[s.cfg.CookieName].Value = "not-a-jwt"
	if rec := c.do(http.MethodGet, "/stats/me", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("tampered token = %d", rec.Code)
	}
}

// The losing writer of a signup race gets past the lookup and hits the
// UNIQUE index; that must still read as a taken name.
func TestInsertUser_DuplicateNameIsTaken(t *testing.T) {
	s := newTestServer(t, newTestDB(t), nil)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	if err := s.insertUser(ctx, &userRow{ID: "u1", Username: "racer", PasswordHash: "x", CreatedAt: now}); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"racer", "RACER"} {
		err := s.insertUser(ctx, &userRow{ID: "u-" + name, Username: name, PasswordHash: "x", CreatedAt: now})
		if !errors.Is(err, errUsernameTaken) {
			t.Errorf("insert %q: err = %v, want errUsernameTaken", name, err)
		}
	}
}

func TestSignup_DatabaseErrorIsNotAClientError(t *testing.T) {
	db := newTestDB(t)
	c := newClient(t, newTestServer(t, db, nil))
	_ = db.Close()

	rec := c.do(http.MethodPost, "/auth/signup", credentials{Username: "stacker", Password: "correct horse"})
	if rec.Code != http.StatusInternalServerError || decode[map[string]string](t, rec)["error"] != "signup_failed" {
		t.Errorf("signup on closed db = %d %s", rec.Code, rec.Body)
	}
}

// perfectWords builds a validation dictionary holding exactly the two
// 16-letter words formed by today's fronts and backs in cell order.
func perfectWords(t *testing.T) *words.Pair {
	t.Helper()
	base := embeddedWords(t)
	board, _, err := puzzle.Daily(base.Generate, daily.Seed(testNow, testClock(t).Loc))
	if err != nil {
		t.Fatal(err)
	}
	var fronts, backs strings.Builder
	for _, p := range board {
		fronts.WriteString(p[0])
		backs.WriteString(p[1])
	}
	return &words.Pair{Valid: words.New([]string{fronts.String(), backs.String()}), Generate: base.Generate}
}

func playPerfect(t *testing.T, c *client, gameID string) puzzleRes {
	t.Helper()
	var last puzzleRes
	for stack := 0; stack < 2; stack++ {
		ids := make([]string, puzzle.Cells)
		for cell := range ids {
			ids[cell] = game.CardID(cell, stack)
			if rec := c.act(gameID, game.SelectCard{ID: ids[cell]}); rec.Code != http.StatusOK {
				t.Fatalf("select %s = %d", ids[cell], rec.Code)
			}
		}
		last = decode[puzzleRes](t, c.act(gameID, game.SubmitWord{CardIDs: ids}))
	}
	return last
}

func TestGameOver_RecordsResultAndStats(t *testing.T) {
	s := newTestServer(t, newTestDB(t), perfectWords(t))
	c := newClient(t, s)

	// play one word as a guest, then sign up: the snapshot follows the account
	guest := c.newPuzzle()
	if rec := c.act(guest.GameID, game.SelectCard{ID: game.CardID(0, 0)}); rec.Code != http.StatusOK {
		t.Fatal(rec.Body)
	}
	if rec := c.do(http.MethodPost, "/auth/signup", credentials{Username: "perfect_player", Password: "long enough"}); rec.Code != http.StatusOK {
		t.Fatalf("signup = %d %s", rec.Code, rec.Body)
	}
	p := c.newPuzzle()
	if p.GameID == guest.GameID || len(p.State.CurrentWord) != 1 {
		t.Fatalf("account did not resume the guest snapshot: %+v", p.State.CurrentWord)
	}
	c.act(p.GameID, game.Undo{})

	final := playPerfect(t, c, p.GameID)
	if !final.State.GameIsOver || final.State.Score != game.PerfectScore {
		t.Fatalf("over=%v score=%d", final.State.GameIsOver, final.State.Score)
	}
	if final.Summary == nil || !final.Summary.Perfect || final.Summary.Words != 2 {
		t.Errorf("summary = %+v", final.Summary)
	}

	stats := decode[map[string]any](t, c.do(http.MethodGet, "/stats/me", nil))
	if stats["gamesPlayed"] != float64(1) || stats["perfects"] != float64(1) || stats["streak"] != float64(1) || stats["playedToday"] != true {
		t.Errorf("stats = %v", stats)
	}

	lb := decode[leaderboardRes](t, c.do(http.MethodGet, "/daily/leaderboard", nil))
	if lb.Date != "2025-08-01" || lb.Number != 9 || len(lb.Rows) != 1 {
		t.Fatalf("leaderboard = %+v", lb)
	}
	if row := lb.Rows[0]; row.Username != "perfect_player" || row.Score != 32 || !row.Perfect || row.Words != 2 {
		t.Errorf("row = %+v", row)
	}

	// undo and finish again: still one result and one counted game
	c.act(p.GameID, game.Undo{})
	c.act(p.GameID, game.SubmitWord{CardIDs: func() []string {
		ids := make([]string, puzzle.Cells)
		for cell := range ids {
			ids[cell] = game.CardID(cell, 1)
		}
		return ids
	}()})
	rows, err := s.results.Leaderboard(context.Background(), "2025-08-01", 0)
	if err != nil || len(rows) != 1 {
		t.Errorf("leaderboard after replay: %v %v", rows, err)
	}
	stats = decode[map[string]any](t, c.do(http.MethodGet, "/stats/me", nil))
	if stats["gamesPlayed"] != float64(1) {
		t.Errorf("replay counted twice: %v", stats)
	}
}

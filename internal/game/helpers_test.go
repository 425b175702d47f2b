package game

import (
	"strings"
	"testing"

	"github.com/stevenpuente/six-words/internal/puzzle"
	"github.com/stevenpuente/six-words/internal/words"
)

// testBoard: cell 0 = C/A, cell 1 = T/S, cell 2 = O/G, ...
func testBoard() puzzle.Board {
	cells := strings.Fields("CA TS OG DE BR IN LU MP HK FY WV JZ XQ EA RN IO")
	b := make(puzzle.Board, len(cells))
	for i, c := range cells {
		b[i] = puzzle.Pair{c[:1], c[1:]}
	}
	return b
}

// acceptAll treats every sequence of letters as a word.
type acceptAll struct{}

func (acceptAll) Contains(string) bool { return true }

// plainLexicon has no prefix index, forcing length-by-length enumeration.
type plainLexicon map[string]bool

func (p plainLexicon) Contains(w string) bool { return p[strings.ToUpper(w)] }

func newState(t *testing.T, r Reducer) State {
	t.Helper()
	s := r.Reduce(NewState(), Init{Board: testBoard()})
	if len(s.Cards) != 32 {
		t.Fatalf("expected 32 cards, got %d", len(s.Cards))
	}
	return s
}

func dictReducer(list ...string) Reducer {
	return Reducer{Words: words.New(list)}
}

func mustCard(t *testing.T, s State, id string) Card {
	t.Helper()
	c, ok := s.Card(id)
	if !ok {
		t.Fatalf("card %s not found", id)
	}
	return c
}

// selectAll dispatches SELECT_CARD for each id and fails if any is ignored.
func selectAll(t *testing.T, r Reducer, s State, ids ...string) State {
	t.Helper()
	for _, id := range ids {
		next, changed := r.apply(s, SelectCard{ID: id})
		if !changed {
			t.Fatalf("select %s was ignored", id)
		}
		s = next
	}
	return s
}

// play selects ids and submits them as one word.
func play(t *testing.T, r Reducer, s State, ids ...string) State {
	t.Helper()
	s = selectAll(t, r, s, ids...)
	return r.Reduce(s, SubmitWord{CardIDs: s.CurrentWord})
}

func fronts(cells ...int) []string {
	ids := make([]string, len(cells))
	for i, c := range cells {
		ids[i] = CardID(c, 0)
	}
	return ids
}

func backs(cells ...int) []string {
	ids := make([]string, len(cells))
	for i, c := range cells {
		ids[i] = CardID(c, 1)
	}
	return ids
}

func cellRange(from, to int) []int {
	var out []int
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

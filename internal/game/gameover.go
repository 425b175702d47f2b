// internal/game/gameover.go
//
// Game-over and solvability detection.
//
// A puzzle ends when, after at least two words:
//   - six words have been submitted, or
//   - the score reaches 32 (every letter used), or
//   - no dictionary word of length 2–16 can still be built from the board.
//
// Word building reads each cell as a live stack: its non-submitted letters in
// stack order. A word takes the front letter of any non-empty stack at each
// step, so a cell's back letter can follow its front letter but never precede it.
//
// Enumeration keeps one read index per stack and a single letter buffer, so a
// branch costs an index bump rather than a copy of the board.

package game

import (
	"sort"

	"github.com/samber/lo"
)

// Lexicon is the validation dictionary seen by the engine.
type Lexicon interface {
	Contains(word string) bool
}

// PrefixLexicon is a Lexicon that can also answer whether any longer word
// starts with a prefix. The detector uses it to prune dead branches.
type PrefixLexicon interface {
	Lexicon
	HasPrefix(prefix string) bool
}

// IsGameOver applies the end-of-puzzle rules in order.
func IsGameOver(submittedWords []string, score int, cards []Card, words Lexicon) bool {
	if len(submittedWords) < minWordsForGameOver {
		return false
	}
	if len(submittedWords) >= MaxWords {
		return true
	}
	if score >= PerfectScore {
		return true
	}
	return !HasPlayableWord(LiveStacks(cards), words)
}

// LiveStacks returns, per cell in index order, the letters of its
// non-submitted cards sorted by stack index. Empty cells are omitted.
func LiveStacks(cards []Card) [][]string {
	live := lo.Filter(cards, func(c Card, _ int) bool { return c.Status != StatusSubmitted })
	byCell := lo.GroupBy(live, func(c Card) int { return c.CellIndex })
	cells := lo.Keys(byCell)
	sort.Ints(cells)

	stacks := make([][]string, 0, len(cells))
	for _, cell := range cells {
		cs := byCell[cell]
		sort.Slice(cs, func(i, j int) bool { return cs[i].StackIndex < cs[j].StackIndex })
		stacks = append(stacks, lo.Map(cs, func(c Card, _ int) string { return c.Letter }))
	}
	return stacks
}

// HasPlayableWord reports whether any valid word of length
// MinWordLength..MaxWordLength can be built from stacks.
//
// With a PrefixLexicon the search is one depth-first walk that abandons a
// branch once no word can extend it. Otherwise every length is enumerated in
// turn, shortest first, stopping at the first valid word.
func HasPlayableWord(stacks [][]string, words Lexicon) bool {
	if words == nil {
		return false
	}
	if pl, ok := words.(PrefixLexicon); ok {
		return newWalker(stacks).findPruned(pl)
	}
	for n := MinWordLength; n <= MaxWordLength; n++ {
		found := Enumerate(stacks, n, func(w string) bool { return words.Contains(w) })
		if found {
			return true
		}
	}
	return false
}

// Enumerate calls visit with every letter sequence of exactly length n that
// can be built from stacks, in a fixed order. It stops and returns true as
// soon as visit returns true.
func Enumerate(stacks [][]string, n int, visit func(word string) bool) bool {
	if n <= 0 {
		return false
	}
	return newWalker(stacks).walk(n, visit)
}

// walker holds the per-branch search state: one read index per stack.
type walker struct {
	stacks [][]byte
	pos    []int
	buf    []byte
	left   int // letters not yet taken
}

func newWalker(stacks [][]string) *walker {
	w := &walker{
		stacks: make([][]byte, len(stacks)),
		pos:    make([]int, len(stacks)),
		buf:    make([]byte, 0, MaxWordLength),
	}
	for i, s := range stacks {
		for _, l := range s {
			w.stacks[i] = append(w.stacks[i], l...)
		}
		w.left += len(w.stacks[i])
	}
	return w
}

func (w *walker) walk(n int, visit func(string) bool) bool {
	if len(w.buf) == n {
		return visit(string(w.buf))
	}
	if n-len(w.buf) > w.left {
		return false
	}
	for i := range w.stacks {
		if !w.take(i) {
			continue
		}
		stop := w.walk(n, visit)
		w.put(i)
		if stop {
			return true
		}
	}
	return false
}

func (w *walker) findPruned(words PrefixLexicon) bool {
	for i := range w.stacks {
		if !w.take(i) {
			continue
		}
		word := string(w.buf)
		found := len(w.buf) >= MinWordLength && words.Contains(word)
		if !found && len(w.buf) < MaxWordLength && words.HasPrefix(word) {
			found = w.findPruned(words)
		}
		w.put(i)
		if found {
			return true
		}
	}
	return false
}

// take moves the front letter of stack i onto the buffer.
func (w *walker) take(i int) bool {
	if w.pos[i] >= len(w.stacks[i]) {
		return false
	}
	w.buf = append(w.buf, w.stacks[i][w.pos[i]])
	w.pos[i]++
	w.left--
	return true
}

// put reverses take.
func (w *walker) put(i int) {
	w.pos[i]--
	w.buf = w.buf[:len(w.buf)-1]
	w.left++
}

// internal/puzzle/generate.go
//
// Board generation for the daily puzzle.
//
// A board is 16 cells, each a two-card stack: a "green" front letter and a
// "blue" back letter. Whole dictionary words are embedded so the puzzle is
// always solvable, then the letters are shuffled to hide the seams:
//
//   1. Draw two 5-letter "blue" words, a 4- and a 6-letter "green" word, and
//      two "split" words of length 7 and 5.
//   2. Shuffle the 12 split letters; 6 go to the blue pool, 6 to green.
//   3. Each pool must hold exactly 16 letters.
//   4. Shuffle each pool, zip them into [green, blue] pairs, shuffle the pairs.
//
// The draw order and the order of shuffles is fixed: changing either changes
// every board produced for a given seed.

package puzzle

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	// Cells is the number of grid positions (4×4).
	Cells = 16
	// Letters is the number of letters on a full board.
	Letters = 2 * Cells
)

// Pair is one cell: index 0 is the green front letter, 1 the blue back letter.
type Pair [2]string

// Board lists cells in grid order.
type Board []Pair

// Letters returns every letter on the board, fronts and backs.
func (b Board) Letters() []string {
	return lo.FlatMap(b, func(p Pair, _ int) []string { return p[:] })
}

// WordsUsed records the seed words behind a board (diagnostics only).
type WordsUsed struct {
	Green []string `json:"green"`
	Blue  []string `json:"blue"`
	Split []string `json:"split"`
}

// All returns the six seed words: blue, green, then split.
func (w WordsUsed) All() []string {
	return append(append(append([]string{}, w.Blue...), w.Green...), w.Split...)
}

// WordSource supplies generation words by length.
type WordSource interface {
	Bucket(n int) []string
}

// GenerationError is an invariant violation while building a board. It points
// at a dictionary or content defect, never at player input.
type GenerationError struct {
	Reason string
}

func (e *GenerationError) Error() string { return "generate board: " + e.Reason }

// Generate builds a board from the generation dictionary using r.
func Generate(src WordSource, r *Rand) (Board, WordsUsed, error) {
	if src == nil {
		return nil, WordsUsed{}, &GenerationError{Reason: "no generation dictionary"}
	}
	pick := func(n int) (string, error) {
		list := src.Bucket(n)
		if len(list) == 0 {
			return "", &GenerationError{Reason: fmt.Sprintf("no words of length %d", n)}
		}
		return strings.ToUpper(list[r.Intn(len(list))]), nil
	}

	var used WordsUsed
	for _, group := range []struct {
		dst     *[]string
		lengths []int
	}{
		{&used.Blue, []int{5, 5}},
		{&used.Green, []int{4, 6}},
		{&used.Split, []int{7, 5}},
	} {
		for _, n := range group.lengths {
			w, err := pick(n)
			if err != nil {
				return nil, WordsUsed{}, err
			}
			*group.dst = append(*group.dst, w)
		}
	}

	split := letters(used.Split...)
	Shuffle(split, r)
	half := len(split) / 2

	blue := append(letters(used.Blue...), split[:half]...)
	green := append(letters(used.Green...), split[half:]...)
	if len(blue) != Cells || len(green) != Cells {
		return nil, WordsUsed{}, &GenerationError{
			Reason: fmt.Sprintf("unexpected letter count: blue %d, green %d", len(blue), len(green)),
		}
	}

	Shuffle(blue, r)
	Shuffle(green, r)

	board := make(Board, Cells)
	for i := range board {
		board[i] = Pair{green[i], blue[i]}
	}
	Shuffle(board, r)
	return board, used, nil
}

// Daily generates the board for seed with a fresh generator, so the same
// seed always yields the same board regardless of earlier generations.
func Daily(src WordSource, seed uint32) (Board, WordsUsed, error) {
	return Generate(src, NewRand(seed))
}

// letters splits words into single-letter strings.
func letters(words ...string) []string {
	var out []string
	for _, w := range words {
		for _, r := range w {
			out = append(out, string(r))
		}
	}
	return out
}

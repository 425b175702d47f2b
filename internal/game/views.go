package game

import (
	"sort"

	"github.com/samber/lo"
)

// VisibleTops returns, for each cell, its lowest-stack card that is AVAILABLE
// or RAISED. Front cards come first, then backs promoted by play; ties keep
// cell order. Only these cards can be raised or selected.
func VisibleTops(cards []Card) []Card {
	tops := map[int]Card{}
	for _, c := range cards {
		if !c.Status.Playable() {
			continue
		}
		if t, ok := tops[c.CellIndex]; !ok || c.StackIndex < t.StackIndex {
			tops[c.CellIndex] = c
		}
	}
	out := lo.Values(tops)
	sort.Slice(out, func(i, j int) bool {
		if out[i].StackIndex != out[j].StackIndex {
			return out[i].StackIndex < out[j].StackIndex
		}
		return out[i].CellIndex < out[j].CellIndex
	})
	return out
}

// WordResult describes one submitted word for the end-of-game summary.
type WordResult struct {
	Word   string `json:"word"`
	Stacks []int  `json:"stacks"` // stack index per letter: 0 green, 1 blue
}

// Summary is the data behind the game-over dialog.
type Summary struct {
	Score       int          `json:"score"`
	Words       int          `json:"words"`
	LettersLeft int          `json:"lettersLeft"`
	Perfect     bool         `json:"perfect"`
	GameIsOver  bool         `json:"gameIsOver"`
	Results     []WordResult `json:"results"`
}

// Summarize builds the end-of-game summary for s.
func Summarize(s State) Summary {
	byID := lo.KeyBy(s.Cards, func(c Card) string { return c.ID })
	results := make([]WordResult, len(s.SubmittedWordsCardIDs))
	for i, ids := range s.SubmittedWordsCardIDs {
		results[i] = WordResult{
			Word:   s.SubmittedWords[i],
			Stacks: lo.Map(ids, func(id string, _ int) int { return byID[id].StackIndex }),
		}
	}
	return Summary{
		Score:       s.Score,
		Words:       len(s.SubmittedWords),
		LettersLeft: max(len(s.Cards)-s.Score, 0),
		Perfect:     len(s.Cards) > 0 && s.Score >= len(s.Cards),
		GameIsOver:  s.GameIsOver,
		Results:     results,
	}
}

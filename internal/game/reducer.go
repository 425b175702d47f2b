// internal/game/reducer.go
//
// The state machine: (State, Action) → State.
//
// Rules:
//   - Reduce is total. An action whose preconditions fail (selecting a card
//     that is not on top, submitting after game over, ...) returns the input
//     state untouched and is not recorded.
//   - Every other transition returns fresh slices and appends the action to
//     ActionHistory. INIT and RESTART start a new history.
//   - A rejected word is ordinary state (error banner), never an error value.

package game

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/stevenpuente/six-words/internal/puzzle"
)

// Reducer binds the transition function to the validation dictionary.
type Reducer struct {
	Words Lexicon
}

// Reduce returns the state after applying a to s.
func (r Reducer) Reduce(s State, a Action) State {
	next, _ := r.apply(s, a)
	return next
}

// apply reports whether the action changed anything.
func (r Reducer) apply(s State, a Action) (State, bool) {
	switch a := a.(type) {
	case Init:
		return initialState(a), true
	case RaiseCard:
		return raiseCard(s, a)
	case UnraiseCard:
		return unraiseCard(s, a)
	case SelectCard:
		return selectCard(s, a)
	case SubmitWord:
		return r.submitWord(s, a)
	case Undo:
		return undo(s, a)
	case UndoThroughTappedLetter:
		return undoThrough(s, a)
	case Restart:
		return restart(s, a)
	case ClearShake:
		return clearShake(s, a)
	case ModalOpen:
		return present(s, a, Modal{IsOpen: true, Type: a.Modal}, Banner{})
	case ModalClose:
		return present(s, a, Modal{}, Banner{})
	case ShowBanner:
		return present(s, a, s.Modal, Banner{Text: a.Text, Type: a.Kind, Visible: true})
	case HideBanner:
		return present(s, a, s.Modal, Banner{})
	default:
		return s, false
	}
}

// NewState is the state before INIT: no cards, welcome dialog open.
func NewState() State {
	return State{
		Cards:                 []Card{},
		CurrentWord:           []string{},
		SubmittedWords:        []string{},
		SubmittedWordsCardIDs: [][]string{},
		ActionHistory:         History{},
		Modal:                 Modal{IsOpen: true, Type: ModalWelcome},
	}
}

func initialState(a Init) State {
	s := NewState()
	s.Cards = cardsFromBoard(a.Board)
	s.ActionHistory = History{a}
	return s
}

// cardsFromBoard lays out one card per letter: pair[0] is stack 0 (green front).
func cardsFromBoard(b puzzle.Board) []Card {
	cards := make([]Card, 0, 2*len(b))
	for cell, pair := range b {
		for stack, letter := range pair {
			cards = append(cards, Card{
				ID:         CardID(cell, stack),
				Letter:     letter,
				CellIndex:  cell,
				StackIndex: stack,
				Status:     StatusAvailable,
			})
		}
	}
	return cards
}

func raiseCard(s State, a RaiseCard) (State, bool) {
	if s.GameIsOver || !isVisibleTop(s.Cards, a.ID) || lo.Contains(s.CurrentWord, a.ID) {
		return s, false
	}
	if c, _ := s.Card(a.ID); c.Status != StatusAvailable {
		return s, false
	}
	s.Cards = mapCards(s.Cards, func(c Card) Card {
		switch {
		case c.ID == a.ID:
			c.Status = StatusRaised
		case c.Status == StatusRaised:
			c.Status = StatusAvailable
		}
		return c
	})
	s.ActionHistory = appendAction(s.ActionHistory, a)
	return s, true
}

func unraiseCard(s State, a UnraiseCard) (State, bool) {
	if !lo.ContainsBy(s.Cards, func(c Card) bool { return c.Status == StatusRaised }) {
		return s, false
	}
	s.Cards = setStatus(s.Cards, StatusAvailable, func(c Card) bool { return c.Status == StatusRaised })
	s.ActionHistory = appendAction(s.ActionHistory, a)
	return s, true
}

func selectCard(s State, a SelectCard) (State, bool) {
	if s.GameIsOver || lo.Contains(s.CurrentWord, a.ID) || !isVisibleTop(s.Cards, a.ID) {
		return s, false
	}

	// Too long: record the attempt and shake the card. It joins CurrentWord so
	// UNDO and CLEAR_SHAKE can return it; SUBMIT_WORD rejects the length.
	if len(s.CurrentWord) >= MaxWordLength {
		s.Cards = setStatus(s.Cards, StatusShake, func(c Card) bool { return c.ID == a.ID })
	} else {
		s.Cards = mapCards(s.Cards, func(c Card) Card {
			switch {
			case c.ID == a.ID:
				c.Status = StatusSelected
			case c.Status == StatusRaised:
				c.Status = StatusAvailable
			}
			return c
		})
	}
	s.CurrentWord = appendID(s.CurrentWord, a.ID)
	s.ActionHistory = appendAction(s.ActionHistory, a)
	s.MessageBanner = Banner{}
	return s, true
}

func (r Reducer) submitWord(s State, a SubmitWord) (State, bool) {
	if s.GameIsOver || len(a.CardIDs) < MinWordLength || len(a.CardIDs) > MaxWordLength {
		return s, false
	}
	word, ok := buildWord(s.Cards, a.CardIDs)
	if !ok {
		return s, false
	}
	ids := append([]string(nil), a.CardIDs...)
	touched := lo.Union(ids, s.CurrentWord)

	if r.Words == nil || !r.Words.Contains(word) {
		s.Cards = setStatus(s.Cards, StatusAvailable, func(c Card) bool { return lo.Contains(touched, c.ID) })
		s.CurrentWord = []string{}
		s.ActionHistory = appendAction(s.ActionHistory, a)
		s.MessageBanner = Banner{Text: "Not in word list", Type: BannerError, Visible: true}
		return s, true
	}

	s.Cards = mapCards(s.Cards, func(c Card) Card {
		switch {
		case lo.Contains(ids, c.ID):
			c.Status = StatusSubmitted
		case lo.Contains(touched, c.ID):
			c.Status = StatusAvailable
		}
		return c
	})
	s.SubmittedWords = appendWord(s.SubmittedWords, word)
	s.SubmittedWordsCardIDs = appendIDs(s.SubmittedWordsCardIDs, ids)
	s.CurrentWord = []string{}
	s.ActionHistory = appendAction(s.ActionHistory, a)
	s.Score = Score(s.SubmittedWordsCardIDs)
	s.GameIsOver = IsGameOver(s.SubmittedWords, s.Score, s.Cards, r.Words)
	s.MessageBanner = Banner{Text: fmt.Sprintf("Nice! +%d points", len(ids)), Type: BannerSuccess, Visible: true}
	if s.GameIsOver {
		s.Modal = Modal{IsOpen: true, Type: ModalGameOver}
	}
	return s, true
}

func undo(s State, a Undo) (State, bool) {
	switch {
	case len(s.CurrentWord) == 0 && len(s.SubmittedWordsCardIDs) == 0:
		return s, false

	case len(s.CurrentWord) == 0:
		last := len(s.SubmittedWordsCardIDs) - 1
		restored := append([]string(nil), s.SubmittedWordsCardIDs[last]...)
		s.SubmittedWords = s.SubmittedWords[:last:last]
		s.SubmittedWordsCardIDs = s.SubmittedWordsCardIDs[:last:last]
		s.Cards = setStatus(s.Cards, StatusSelected, func(c Card) bool { return lo.Contains(restored, c.ID) })
		s.CurrentWord = restored
		s.Score = Score(s.SubmittedWordsCardIDs)
		s.GameIsOver = false
		if s.Modal.IsOpen && s.Modal.Type == ModalGameOver {
			s.Modal = Modal{}
		}

	default:
		last := len(s.CurrentWord) - 1
		id := s.CurrentWord[last]
		s.CurrentWord = s.CurrentWord[:last:last]
		s.Cards = setStatus(s.Cards, StatusAvailable, func(c Card) bool { return c.ID == id })
	}
	s.ActionHistory = appendAction(s.ActionHistory, a)
	s.MessageBanner = Banner{}
	return s, true
}

func undoThrough(s State, a UndoThroughTappedLetter) (State, bool) {
	i := lo.IndexOf(s.CurrentWord, a.ID)
	if i < 0 {
		return s, false
	}
	returned := s.CurrentWord[i:]
	s.Cards = setStatus(s.Cards, StatusAvailable, func(c Card) bool { return lo.Contains(returned, c.ID) })
	s.CurrentWord = s.CurrentWord[:i:i]
	s.ActionHistory = appendAction(s.ActionHistory, a)
	return s, true
}

func restart(s State, a Restart) (State, bool) {
	if len(s.SubmittedWordsCardIDs) == 0 && len(s.CurrentWord) == 0 {
		return s, false
	}
	s.Cards = setStatus(s.Cards, StatusAvailable, func(Card) bool { return true })
	s.CurrentWord = []string{}
	s.SubmittedWords = []string{}
	s.SubmittedWordsCardIDs = [][]string{}
	s.ActionHistory = History{a}
	s.Score = 0
	s.GameIsOver = false
	s.Modal = Modal{}
	s.MessageBanner = Banner{}
	return s, true
}

func clearShake(s State, a ClearShake) (State, bool) {
	shaking := lo.FilterMap(s.Cards, func(c Card, _ int) (string, bool) { return c.ID, c.Status == StatusShake })
	if len(shaking) == 0 {
		return s, false
	}
	s.Cards = setStatus(s.Cards, StatusAvailable, func(c Card) bool { return c.Status == StatusShake })
	s.CurrentWord = lo.Without(s.CurrentWord, shaking...)
	s.ActionHistory = appendAction(s.ActionHistory, a)
	return s, true
}

// present replaces the presentation flags; identical flags are a no-op.
func present(s State, a Action, m Modal, b Banner) (State, bool) {
	if s.Modal == m && s.MessageBanner == b {
		return s, false
	}
	s.Modal = m
	s.MessageBanner = b
	s.ActionHistory = appendAction(s.ActionHistory, a)
	return s, true
}

// Score is the total number of letters across submitted words.
func Score(submitted [][]string) int {
	return lo.SumBy(submitted, func(ids []string) int { return len(ids) })
}

// buildWord resolves ids to an uppercase word. It fails when an id is
// unknown, repeated, already submitted, or taken out of stack order (a back
// letter before its own cell's front letter).
func buildWord(cards []Card, ids []string) (string, bool) {
	byID := lo.KeyBy(cards, func(c Card) string { return c.ID })
	used := make(map[string]bool, len(ids))
	word := make([]byte, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok || used[id] || c.Status == StatusSubmitted {
			return "", false
		}
		for _, other := range cards {
			if other.CellIndex == c.CellIndex && other.StackIndex < c.StackIndex &&
				other.Status != StatusSubmitted && !used[other.ID] {
				return "", false
			}
		}
		used[id] = true
		word = append(word, c.Letter...)
	}
	return strings.ToUpper(string(word)), true
}

// isVisibleTop reports whether id is the lowest-stack playable card of its cell.
func isVisibleTop(cards []Card, id string) bool {
	for _, top := range VisibleTops(cards) {
		if top.ID == id {
			return true
		}
	}
	return false
}

func mapCards(cards []Card, fn func(Card) Card) []Card {
	return lo.Map(cards, func(c Card, _ int) Card { return fn(c) })
}

func setStatus(cards []Card, st CardStatus, match func(Card) bool) []Card {
	return mapCards(cards, func(c Card) Card {
		if match(c) {
			c.Status = st
		}
		return c
	})
}

// The append helpers never write into a backing array shared with an older State.

func appendAction(h History, a Action) History { return append(h[:len(h):len(h)], a) }
func appendID(ids []string, id string) []string  { return append(ids[:len(ids):len(ids)], id) }
func appendWord(ws []string, w string) []string  { return append(ws[:len(ws):len(ws)], w) }
func appendIDs(ws [][]string, ids []string) [][]string {
	return append(ws[:len(ws):len(ws)], ids)
}

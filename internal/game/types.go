// internal/game/types.go
//
// Core type definitions for the Six Words engine.
// Defines:
//   - CardStatus: closed set of per-letter states.
//   - Card: one playable letter on the board.
//   - Modal / Banner: presentation flags owned by the UI.
//   - State: the single root replaced wholesale on every transition.

package game

import "fmt"

// Board and word limits.
const (
	MinWordLength = 2
	MaxWordLength = 16
	MaxWords      = 6  // guess budget
	PerfectScore  = 32 // every letter used
	// words that must be submitted before the puzzle can end early
	minWordsForGameOver = 2
)

// CardStatus is where a card sits in its lifecycle:
//
//	AVAILABLE → RAISED → SELECTED → SUBMITTED
//
// RAISED and SELECTED can revert to AVAILABLE; SUBMITTED is final. SHAKE marks
// a rejected selection and is undone like SELECTED.
type CardStatus string

const (
	StatusAvailable CardStatus = "AVAILABLE"
	StatusRaised    CardStatus = "RAISED"
	StatusSelected  CardStatus = "SELECTED"
	StatusSubmitted CardStatus = "SUBMITTED"
	StatusShake     CardStatus = "SHAKE"
)

// Playable reports whether a card in this status can be raised or selected.
func (s CardStatus) Playable() bool {
	return s == StatusAvailable || s == StatusRaised
}

// Card is one letter tile.
type Card struct {
	ID         string     `json:"id"`
	Letter     string     `json:"letter"`
	CellIndex  int        `json:"cellIndex"`
	StackIndex int        `json:"stackIndex"` // 0 = green front, 1 = blue back
	Status     CardStatus `json:"cardStatus"`
}

// CardID returns the stable id for a cell/stack position.
func CardID(cellIndex, stackIndex int) string {
	return fmt.Sprintf("cell-%d_stack-%d", cellIndex, stackIndex)
}

// ModalType names a dialog the UI may show.
type ModalType string

const (
	ModalWelcome          ModalType = "WELCOME"
	ModalLandscapeWarning ModalType = "LANDSCAPE_WARNING"
	ModalGameOver         ModalType = "GAME_OVER"
	ModalConfirmReset     ModalType = "GAME_RESET"
	ModalInstructions     ModalType = "INSTRUCTIONS"
	ModalStats            ModalType = "STATS"
)

// Modal is the open dialog, if any.
type Modal struct {
	IsOpen bool      `json:"isOpen"`
	Type   ModalType `json:"type,omitempty"`
}

// BannerType styles a transient message.
type BannerType string

const (
	BannerError   BannerType = "error"
	BannerSuccess BannerType = "success"
	BannerInfo    BannerType = "info"
)

// Banner is a transient message. The UI hides it after BannerDuration.
type Banner struct {
	Text    string     `json:"text,omitempty"`
	Type    BannerType `json:"type,omitempty"`
	Visible bool       `json:"visible"`
}

// BannerDurationMs is how long the UI keeps a banner on screen.
const BannerDurationMs = 2500

// State is the whole puzzle. Transitions never modify a State in place; they
// return a new one, so earlier States stay valid as an immutable log.
type State struct {
	Cards                 []Card     `json:"cards"`
	CurrentWord           []string   `json:"currentWord"`
	SubmittedWords        []string   `json:"submittedWords"`
	SubmittedWordsCardIDs [][]string `json:"submittedWordsCardIds"`
	ActionHistory         History    `json:"actionHistory"`
	Score                 int        `json:"score"`
	GameIsOver            bool       `json:"gameIsOver"`
	Modal                 Modal      `json:"modal"`
	MessageBanner         Banner     `json:"messageBanner"`
}

// Card looks up a card by id.
func (s State) Card(id string) (Card, bool) {
	for _, c := range s.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// LastAction returns the most recently recorded action, or nil.
func (s State) LastAction() Action {
	if len(s.ActionHistory) == 0 {
		return nil
	}
	return s.ActionHistory[len(s.ActionHistory)-1]
}

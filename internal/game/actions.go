// internal/game/actions.go
//
// The closed set of actions the engine accepts, plus their JSON envelope:
//
//	{"type": "SELECT_CARD", "payload": {"id": "cell-3_stack-0"}}
//
// The same envelope is used by HTTP requests, the websocket stream and
// persisted snapshots (actionHistory).

package game

import (
	"encoding/json"
	"fmt"

	"github.com/stevenpuente/six-words/internal/puzzle"
)

// ActionType discriminates actions on the wire.
type ActionType string

const (
	ActionInit                    ActionType = "INIT"
	ActionRaiseCard               ActionType = "RAISE_CARD"
	ActionUnraiseCard             ActionType = "UNRAISE_CARD"
	ActionSelectCard              ActionType = "SELECT_CARD"
	ActionSubmitWord              ActionType = "SUBMIT_WORD"
	ActionUndo                    ActionType = "UNDO"
	ActionUndoThroughTappedLetter ActionType = "UNDO_THROUGH_TAPPED_LETTER"
	ActionRestart                 ActionType = "RESTART"
	ActionClearShake              ActionType = "CLEAR_SHAKE"
	ActionModalOpen               ActionType = "MODAL_OPEN"
	ActionModalClose              ActionType = "MODAL_CLOSE"
	ActionShowBanner              ActionType = "SHOW_BANNER"
	ActionHideBanner              ActionType = "HIDE_BANNER"
)

// Action is one input to the reducer.
type Action interface {
	Type() ActionType
}

type (
	// Init builds a fresh puzzle from a generated board.
	Init struct {
		Board puzzle.Board `json:"board"`
	}
	// RaiseCard previews one card (keyboard cycling).
	RaiseCard struct {
		ID string `json:"id"`
	}
	UnraiseCard struct{}
	SelectCard  struct {
		ID string `json:"id"`
	}
	// SubmitWord submits the given card ids as a word.
	SubmitWord struct {
		CardIDs []string `json:"currentWord"`
	}
	Undo                    struct{}
	UndoThroughTappedLetter struct {
		ID string `json:"id"`
	}
	Restart struct{}
	// ClearShake ends the shake animation of a rejected selection.
	ClearShake struct{}
	ModalOpen  struct {
		Modal ModalType `json:"type"`
	}
	ModalClose struct{}
	ShowBanner struct {
		Text string     `json:"text"`
		Kind BannerType `json:"type"`
	}
	HideBanner struct{}
)

func (Init) Type() ActionType                    { return ActionInit }
func (RaiseCard) Type() ActionType               { return ActionRaiseCard }
func (UnraiseCard) Type() ActionType             { return ActionUnraiseCard }
func (SelectCard) Type() ActionType              { return ActionSelectCard }
func (SubmitWord) Type() ActionType              { return ActionSubmitWord }
func (Undo) Type() ActionType                    { return ActionUndo }
func (UndoThroughTappedLetter) Type() ActionType { return ActionUndoThroughTappedLetter }
func (Restart) Type() ActionType                 { return ActionRestart }
func (ClearShake) Type() ActionType              { return ActionClearShake }
func (ModalOpen) Type() ActionType               { return ActionModalOpen }
func (ModalClose) Type() ActionType              { return ActionModalClose }
func (ShowBanner) Type() ActionType              { return ActionShowBanner }
func (HideBanner) Type() ActionType              { return ActionHideBanner }

// envelope is the wire form of an Action.
type envelope struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var decoders = map[ActionType]func(json.RawMessage) (Action, error){
	ActionInit:                    decodeAs[Init],
	ActionRaiseCard:               decodeAs[RaiseCard],
	ActionUnraiseCard:             decodeAs[UnraiseCard],
	ActionSelectCard:              decodeAs[SelectCard],
	ActionSubmitWord:              decodeAs[SubmitWord],
	ActionUndo:                    decodeAs[Undo],
	ActionUndoThroughTappedLetter: decodeAs[UndoThroughTappedLetter],
	ActionRestart:                 decodeAs[Restart],
	ActionClearShake:              decodeAs[ClearShake],
	ActionModalOpen:               decodeAs[ModalOpen],
	ActionModalClose:              decodeAs[ModalClose],
	ActionShowBanner:              decodeAs[ShowBanner],
	ActionHideBanner:              decodeAs[HideBanner],
}

func decodeAs[T Action](raw json.RawMessage) (Action, error) {
	var a T
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// EncodeAction returns the JSON envelope for a.
func EncodeAction(a Action) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("encode action: nil")
	}
	return json.Marshal(toEnvelope(a))
}

// DecodeAction parses a JSON envelope.
func DecodeAction(data []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	return fromEnvelope(env)
}

func toEnvelope(a Action) envelope {
	env := envelope{Type: a.Type()}
	if raw, err := json.Marshal(a); err == nil && string(raw) != "{}" {
		env.Payload = raw
	}
	return env
}

func fromEnvelope(env envelope) (Action, error) {
	dec, ok := decoders[env.Type]
	if !ok {
		return nil, fmt.Errorf("decode action: unknown type %q", env.Type)
	}
	a, err := dec(env.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return a, nil
}

// History is the ordered log of dispatched actions.
type History []Action

func (h History) MarshalJSON() ([]byte, error) {
	out := make([]envelope, len(h))
	for i, a := range h {
		out[i] = toEnvelope(a)
	}
	return json.Marshal(out)
}

func (h *History) UnmarshalJSON(data []byte) error {
	var envs []envelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return err
	}
	out := make(History, 0, len(envs))
	for _, env := range envs {
		a, err := fromEnvelope(env)
		if err != nil {
			return err
		}
		out = append(out, a)
	}
	*h = out
	return nil
}

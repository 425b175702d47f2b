package game

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeAction_Envelope(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{`{"type":"SELECT_CARD","payload":{"id":"cell-3_stack-0"}}`, SelectCard{ID: "cell-3_stack-0"}},
		{`{"type":"UNDO"}`, Undo{}},
		{`{"type":"UNDO","payload":null}`, Undo{}},
		{`{"type":"MODAL_OPEN","payload":{"type":"STATS"}}`, ModalOpen{Modal: ModalStats}},
		{`{"type":"CLEAR_SHAKE"}`, ClearShake{}},
	}
	for _, tt := range tests {
		got, err := DecodeAction([]byte(tt.in))
		if err != nil {
			t.Errorf("%s: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %#v, want %#v", tt.in, got, tt.want)
		}
	}

	sub, err := DecodeAction([]byte(`{"type":"SUBMIT_WORD","payload":{"currentWord":["a","b"]}}`))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sub, SubmitWord{CardIDs: []string{"a", "b"}}) {
		t.Errorf("submit = %#v", sub)
	}
}

func TestDecodeAction_Errors(t *testing.T) {
	for _, in := range []string{
		`not json`,
		`{"type":"JUMP"}`,
		`{"type":"SELECT_CARD","payload":{"id":7}}`,
	} {
		if _, err := DecodeAction([]byte(in)); err == nil {
			t.Errorf("%s: expected error", in)
		}
	}
}

func TestEncodeAction_OmitsEmptyPayload(t *testing.T) {
	raw, err := EncodeAction(Restart{})
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"type":"RESTART"}` {
		t.Errorf("encoded = %s", raw)
	}
	if _, err := EncodeAction(nil); err == nil {
		t.Error("nil action should not encode")
	}
}

// A snapshot written mid-game must come back identical and keep playing.
func TestState_JSONSnapshot(t *testing.T) {
	r := dictReducer("CAT")
	s := newState(t, r)
	s = play(t, r, s, c0, a0, t1)
	s = r.Reduce(s, SelectCard{ID: o2})

	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"cardStatus":"SUBMITTED"`, `"submittedWordsCardIds"`, `"type":"INIT"`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("snapshot missing %s", key)
		}
	}

	var back State
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, s) {
		t.Errorf("snapshot round trip differs:\n got %+v\nwant %+v", back, s)
	}

	next := r.Reduce(back, Undo{})
	if len(next.CurrentWord) != 0 || next.LastAction().Type() != ActionUndo {
		t.Errorf("restored state did not accept UNDO: %+v", next.CurrentWord)
	}
}

func TestSummarize(t *testing.T) {
	r := Reducer{Words: acceptAll{}}
	s := newState(t, r)
	s = play(t, r, s, c0, a0, t1)
	s = play(t, r, s, s1, o2)

	sum := Summarize(s)
	if sum.Score != 5 || sum.Words != 2 || sum.LettersLeft != 27 || sum.Perfect {
		t.Errorf("summary = %+v", sum)
	}
	want := []WordResult{
		{Word: "CAT", Stacks: []int{0, 1, 0}},
		{Word: "SO", Stacks: []int{1, 0}},
	}
	if !reflect.DeepEqual(sum.Results, want) {
		t.Errorf("results = %+v", sum.Results)
	}
}

func TestVisibleTops_Order(t *testing.T) {
	r := Reducer{}
	s := newState(t, r)
	s = selectAll(t, r, s, CardID(5, 0), CardID(2, 0))

	tops := VisibleTops(s.Cards)
	if len(tops) != 16 {
		t.Fatalf("tops = %d", len(tops))
	}
	// 14 fronts in cell order, then the two promoted backs
	if tops[0].ID != CardID(0, 0) || tops[13].ID != CardID(15, 0) {
		t.Errorf("fronts out of order: %s .. %s", tops[0].ID, tops[13].ID)
	}
	if tops[14].ID != CardID(2, 1) || tops[15].ID != CardID(5, 1) {
		t.Errorf("backs = %s, %s", tops[14].ID, tops[15].ID)
	}
}

package models

import (
	"errors"
	"strings"
	"testing"
)

func TestIsValidPhase(t *testing.T) {
	for _, p := range []Phase{PhaseSelectingType, PhaseGathering, PhaseConfirming, PhaseGenerating, PhaseComplete} {
		if !IsValidPhase(p) {
			t.Errorf("IsValidPhase(%s) = false", p)
		}
	}
	for _, p := range []Phase{"", "done", "SELECTING_TYPE"} {
		if IsValidPhase(p) {
			t.Errorf("IsValidPhase(%q) = true", p)
		}
	}
}

func TestNewConversationState(t *testing.T) {
	st := NewConversationState()
	if st.Phase != PhaseSelectingType {
		t.Errorf("phase = %s", st.Phase)
	}
	if st.Answers == nil || len(st.Answers) != 0 {
		t.Errorf("answers = %v", st.Answers)
	}
	if st.QuestionIndex != 0 || st.DocumentType != "" {
		t.Errorf("unexpected defaults: %+v", st)
	}
}

func TestCloneIsDeep(t *testing.T) {
	st := NewConversationState()
	st.Phase = PhaseGathering
	st.Answers["parties"] = Answer{Value: "mutual"}

	c := st.Clone()
	c.Answers["parties"] = Answer{Value: "one_way"}
	c.Answers["purpose"] = Answer{Value: "supplier"}

	if st.Answers["parties"].Value != "mutual" {
		t.Error("clone shares the answers map with the original")
	}
	if len(st.Answers) != 1 {
		t.Errorf("original gained entries: %v", st.Answers)
	}
}

func TestCloneOfNilAnswers(t *testing.T) {
	// States deserialized from JSON can carry a nil answers map.
	st := ConversationState{Phase: PhaseSelectingType}
	c := st.Clone()
	if c.Answers == nil {
		t.Fatal("clone should allocate an answers map")
	}
	c.Answers["x"] = Answer{Value: "y"}
}

func TestSessionMessageRequestValidate(t *testing.T) {
	if err := (&SessionMessageRequest{}).Validate(); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("empty message: %v", err)
	}
	long := &SessionMessageRequest{Message: strings.Repeat("a", MaxMessageLength+1)}
	if err := long.Validate(); !errors.Is(err, ErrMessageTooLong) {
		t.Errorf("long message: %v", err)
	}
	ok := &SessionMessageRequest{Message: "an nda please"}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid message: %v", err)
	}
}

func TestSessionCreateRequestValidate(t *testing.T) {
	ok := &SessionCreateRequest{DealContext: DealContext{"deal": "Project Acacia"}}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid request: %v", err)
	}
	if err := (&SessionCreateRequest{}).Validate(); err != nil {
		t.Errorf("empty context should be fine: %v", err)
	}

	tooMany := DealContext{}
	for i := 0; i <= MaxDealContextEntries; i++ {
		tooMany[strings.Repeat("k", i+1)] = "v"
	}
	if err := (&SessionCreateRequest{DealContext: tooMany}).Validate(); !errors.Is(err, ErrTooManyContextEntries) {
		t.Errorf("too many entries: %v", err)
	}

	badKey := &SessionCreateRequest{DealContext: DealContext{"": "v"}}
	if err := badKey.Validate(); !errors.Is(err, ErrEmptyContextKey) {
		t.Errorf("empty key: %v", err)
	}

	badValue := &SessionCreateRequest{DealContext: DealContext{"k": strings.Repeat("v", MaxDealContextValueLength+1)}}
	if err := badValue.Validate(); !errors.Is(err, ErrContextValueTooLong) {
		t.Errorf("oversized value: %v", err)
	}
}

func TestSessionSummary(t *testing.T) {
	st := NewConversationState()
	st.Phase = PhaseConfirming
	st.DocumentType = "Term Sheet"
	s := Session{ID: "s_1", State: st}

	sum := s.Summary()
	if sum.ID != "s_1" || sum.Phase != PhaseConfirming || sum.DocumentType != "Term Sheet" {
		t.Errorf("summary = %+v", sum)
	}
}

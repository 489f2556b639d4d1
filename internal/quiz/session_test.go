package quiz

import (
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 0, 0, 123456789, time.UTC)
}

func newTestSession(t *testing.T) *Session {
	t.Helper()

	s, err := New("u1", ModeQuick, []string{"q1", "q2", "q3"}, Config{}, fixedNow, func() string { return "sess-1" })
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestNew_Defaults(t *testing.T) {
	s := newTestSession(t)

	if s.ID != "sess-1" {
		t.Errorf("Expected injected ID, got %q", s.ID)
	}
	if s.State != StateStarting {
		t.Errorf("New sessions start in starting state, got %q", s.State)
	}
	if len(s.Answers) != len(s.QuestionRefs) {
		t.Errorf("Answers length %d != question refs length %d", len(s.Answers), len(s.QuestionRefs))
	}
	for i, a := range s.Answers {
		if a != nil {
			t.Errorf("Answer slot %d should start nil", i)
		}
	}
	if s.CurrentIndex != 0 {
		t.Errorf("Expected current index 0, got %d", s.CurrentIndex)
	}
	if s.EndedAt != nil {
		t.Error("EndedAt should be unset before a terminal state")
	}
	if s.StartedAt.Nanosecond() != 0 {
		t.Error("Timestamps should be truncated to whole seconds")
	}
	if !s.Stats.LastActivity.Equal(s.StartedAt) {
		t.Error("LastActivity should start at creation time")
	}
}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name  string
		owner string
		mode  Mode
		refs  []string
		cfg   Config
	}{
		{"empty owner", "  ", ModeQuick, []string{"q1"}, Config{}},
		{"unknown mode", "u1", Mode("speedrun"), []string{"q1"}, Config{}},
		{"no questions", "u1", ModeQuick, nil, Config{}},
		{"negative time limit", "u1", ModeTimed, []string{"q1"}, Config{TimeLimitSeconds: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.owner, tc.mode, tc.refs, tc.cfg, fixedNow, nil); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestNew_CopiesQuestionRefs(t *testing.T) {
	refs := []string{"q1", "q2"}
	s, err := New("u1", ModeQuick, refs, Config{}, fixedNow, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	refs[0] = "mutated"
	if s.QuestionRefs[0] != "q1" {
		t.Error("Session should own a copy of the question refs")
	}
}

func TestNew_TimeBoxed(t *testing.T) {
	s, err := New("u1", ModeTimed, []string{"q1"}, Config{TimeLimitSeconds: 300}, fixedNow, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if !s.TimeBoxed() {
		t.Error("Session with a time limit should be time-boxed")
	}
	if s.TimeRemainingSeconds != 300 {
		t.Errorf("Remaining time should start at the limit, got %d", s.TimeRemainingSeconds)
	}

	if newTestSession(t).TimeBoxed() {
		t.Error("Session without a time limit should not be time-boxed")
	}
}

func TestState_Terminal(t *testing.T) {
	terminal := map[State]bool{
		StateStarting:  false,
		StateActive:    false,
		StatePaused:    false,
		StateCompleted: true,
		StateAbandoned: true,
	}
	for state, want := range terminal {
		if state.Terminal() != want {
			t.Errorf("State %q: Terminal() = %v, want %v", state, state.Terminal(), want)
		}
	}
}

func TestSession_Validate(t *testing.T) {
	s := newTestSession(t)
	if err := s.Validate(); err != nil {
		t.Fatalf("Fresh session should validate: %v", err)
	}

	broken := s.Clone()
	broken.CurrentIndex = 3
	if err := broken.Validate(); err == nil {
		t.Error("Out-of-range index should fail validation")
	}

	broken = s.Clone()
	broken.Answers = broken.Answers[:2]
	if err := broken.Validate(); err == nil {
		t.Error("Answers/questions length mismatch should fail validation")
	}

	broken = s.Clone()
	broken.State = StateCompleted
	if err := broken.Validate(); err == nil {
		t.Error("Terminal state without EndedAt should fail validation")
	}

	broken = s.Clone()
	ended := fixedNow()
	broken.EndedAt = &ended
	if err := broken.Validate(); err == nil {
		t.Error("EndedAt on a non-terminal state should fail validation")
	}
}

func TestSession_CloneIsDeep(t *testing.T) {
	s := newTestSession(t)
	answer := 2
	s.Answers[1] = &answer

	clone := s.Clone()
	*clone.Answers[1] = 9
	clone.QuestionRefs[0] = "mutated"

	if *s.Answers[1] != 2 {
		t.Error("Clone should not share answer storage")
	}
	if s.QuestionRefs[0] != "q1" {
		t.Error("Clone should not share question ref storage")
	}
}

func TestSession_CloneNil(t *testing.T) {
	var s *Session
	if s.Clone() != nil {
		t.Error("Cloning a nil session should return nil")
	}
}

func TestSession_AnsweredCount(t *testing.T) {
	s := newTestSession(t)
	if s.AnsweredCount() != 0 {
		t.Errorf("Expected 0 answered, got %d", s.AnsweredCount())
	}

	a := 1
	s.Answers[0] = &a
	s.Answers[2] = &a
	if s.AnsweredCount() != 2 {
		t.Errorf("Expected 2 answered, got %d", s.AnsweredCount())
	}
}

func TestNewID_Unique(t *testing.T) {
	if NewID() == NewID() {
		t.Error("Generated session IDs should be unique")
	}
}

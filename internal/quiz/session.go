// Package quiz defines the session record: the single unit of state for one
// attempt at a fixed, ordered list of questions. The record is mutated only
// by the lifecycle controller; everything else works with copies.
package quiz

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// State describes where a session is in its lifecycle.
type State string

const (
	// StateStarting means the session has been created but not yet started.
	StateStarting State = "starting"
	// StateActive means the session is in progress.
	StateActive State = "active"
	// StatePaused is declared for forward compatibility. No operation
	// currently transitions into or out of it.
	StatePaused State = "paused"
	// StateCompleted means the session ended normally, including by
	// time-limit expiry.
	StateCompleted State = "completed"
	// StateAbandoned means the session ended without completing.
	StateAbandoned State = "abandoned"
)

// Terminal reports whether the state is an end state.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateAbandoned
}

// Valid reports whether the state is a known lifecycle state.
func (s State) Valid() bool {
	switch s {
	case StateStarting, StateActive, StatePaused, StateCompleted, StateAbandoned:
		return true
	}
	return false
}

// Mode identifies the quiz configuration a session was created with.
type Mode string

const (
	ModeQuick  Mode = "quick"
	ModeTimed  Mode = "timed"
	ModeCustom Mode = "custom"
)

// Valid reports whether the mode is a known quiz mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeQuick, ModeTimed, ModeCustom:
		return true
	}
	return false
}

// Abandonment reasons used by the controller and monitor.
const (
	ReasonSuperseded        = "superseded"
	ReasonInactivityTimeout = "inactivity_timeout"
	ReasonAppShutdown       = "app_shutdown"
	ReasonUserRequested     = "user_requested"
)

// Stats holds activity counters for a session.
type Stats struct {
	Attempted     int       `json:"attempted"`
	Navigations   int       `json:"navigations"`
	LastActivity  time.Time `json:"last_activity"`
	Abandoned     bool      `json:"abandoned"`
	AbandonReason string    `json:"abandon_reason,omitempty"`
}

// Session is one attempt at an ordered question list.
//
// Invariants, maintained by the lifecycle controller:
//   - len(Answers) == len(QuestionRefs)
//   - 0 <= CurrentIndex < len(QuestionRefs)
//   - EndedAt is non-nil exactly when State is terminal
type Session struct {
	ID           string     `json:"id"`
	OwnerID      string     `json:"owner_id"`
	Mode         Mode       `json:"mode"`
	State        State      `json:"state"`
	QuestionRefs []string   `json:"question_refs"`
	CurrentIndex int        `json:"current_index"`
	Answers      []*int     `json:"answers"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`

	ElapsedSeconds        int     `json:"elapsed_seconds"`
	Score                 int     `json:"score"`
	AvgSecondsPerQuestion float64 `json:"avg_seconds_per_question"`

	// TimeLimitSeconds is zero for untimed sessions.
	TimeLimitSeconds     int `json:"time_limit_seconds,omitempty"`
	TimeRemainingSeconds int `json:"time_remaining_seconds,omitempty"`

	Stats Stats `json:"stats"`
}

// Config carries the optional settings supplied at session creation.
type Config struct {
	// TimeLimitSeconds caps the total session duration. Zero means untimed.
	TimeLimitSeconds int
}

// New builds a session in the starting state. The now and idGenerator
// parameters exist for tests; nil selects the real clock and uuid generation.
func New(ownerID string, mode Mode, questionRefs []string, cfg Config, now func() time.Time, idGenerator func() string) (*Session, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = NewID
	}

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown quiz mode %q", mode)
	}
	if len(questionRefs) == 0 {
		return nil, fmt.Errorf("at least one question ref is required")
	}
	if cfg.TimeLimitSeconds < 0 {
		return nil, fmt.Errorf("time limit must not be negative")
	}

	createdAt := now().UTC().Truncate(time.Second)
	refs := make([]string, len(questionRefs))
	copy(refs, questionRefs)

	return &Session{
		ID:                   idGenerator(),
		OwnerID:              ownerID,
		Mode:                 mode,
		State:                StateStarting,
		QuestionRefs:         refs,
		CurrentIndex:         0,
		Answers:              make([]*int, len(refs)),
		StartedAt:            createdAt,
		TimeLimitSeconds:     cfg.TimeLimitSeconds,
		TimeRemainingSeconds: cfg.TimeLimitSeconds,
		Stats: Stats{
			LastActivity: createdAt,
		},
	}, nil
}

// NewID returns an opaque unique session identifier.
func NewID() string {
	return uuid.NewString()
}

// Validate checks the structural invariants of the record. The controller
// calls this after every mutation; a failure indicates a programming error
// rather than bad user input.
func (s *Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("session id is empty")
	}
	if !s.State.Valid() {
		return fmt.Errorf("unknown session state %q", s.State)
	}
	if len(s.Answers) != len(s.QuestionRefs) {
		return fmt.Errorf("answers length %d does not match question refs length %d", len(s.Answers), len(s.QuestionRefs))
	}
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.QuestionRefs) {
		return fmt.Errorf("current index %d out of range [0,%d)", s.CurrentIndex, len(s.QuestionRefs))
	}
	if s.State.Terminal() != (s.EndedAt != nil) {
		return fmt.Errorf("ended_at set=%v inconsistent with state %q", s.EndedAt != nil, s.State)
	}
	return nil
}

// Clone returns a deep copy of the session. Callers outside the controller
// only ever see clones, so observers cannot mutate the live record.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.QuestionRefs = make([]string, len(s.QuestionRefs))
	copy(out.QuestionRefs, s.QuestionRefs)
	out.Answers = make([]*int, len(s.Answers))
	for i, a := range s.Answers {
		if a != nil {
			v := *a
			out.Answers[i] = &v
		}
	}
	if s.EndedAt != nil {
		t := *s.EndedAt
		out.EndedAt = &t
	}
	return &out
}

// AnsweredCount returns the number of non-nil answer slots.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, a := range s.Answers {
		if a != nil {
			n++
		}
	}
	return n
}

// TimeBoxed reports whether the session has a total time limit.
func (s *Session) TimeBoxed() bool {
	return s.TimeLimitSeconds > 0
}

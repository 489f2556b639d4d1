package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "session.started").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers published by the lifecycle controller and monitor.
const (
	TypeCreated           = "session.created"
	TypeStarted           = "session.started"
	TypeQuestionChanged   = "session.question_changed"
	TypeAnswerSubmitted   = "session.answer_submitted"
	TypeCompleted         = "session.completed"
	TypeAbandoned         = "session.abandoned"
	TypeRecovered         = "session.recovered"
	TypeVisibilityChanged = "host.visibility_changed"
)

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// CreatedEvent is emitted when a session record is created.
type CreatedEvent struct {
	baseEvent
	SessionID     string
	OwnerID       string
	Mode          string
	QuestionCount int
}

// NewCreatedEvent creates a CreatedEvent.
func NewCreatedEvent(sessionID, ownerID, mode string, questionCount int) CreatedEvent {
	return CreatedEvent{
		baseEvent:     newBaseEvent(TypeCreated),
		SessionID:     sessionID,
		OwnerID:       ownerID,
		Mode:          mode,
		QuestionCount: questionCount,
	}
}

// StartedEvent is emitted when a session transitions to active.
type StartedEvent struct {
	baseEvent
	SessionID string
}

// NewStartedEvent creates a StartedEvent.
func NewStartedEvent(sessionID string) StartedEvent {
	return StartedEvent{
		baseEvent: newBaseEvent(TypeStarted),
		SessionID: sessionID,
	}
}

// QuestionChangedEvent is emitted when navigation moves the current index.
type QuestionChangedEvent struct {
	baseEvent
	SessionID string
	FromIndex int
	ToIndex   int
	NavCount  int
}

// NewQuestionChangedEvent creates a QuestionChangedEvent.
func NewQuestionChangedEvent(sessionID string, fromIndex, toIndex, navCount int) QuestionChangedEvent {
	return QuestionChangedEvent{
		baseEvent: newBaseEvent(TypeQuestionChanged),
		SessionID: sessionID,
		FromIndex: fromIndex,
		ToIndex:   toIndex,
		NavCount:  navCount,
	}
}

// AnswerSubmittedEvent is emitted when an answer is written to the current
// question slot.
type AnswerSubmittedEvent struct {
	baseEvent
	SessionID     string
	QuestionIndex int
	Value         int
	Attempted     int
}

// NewAnswerSubmittedEvent creates an AnswerSubmittedEvent.
func NewAnswerSubmittedEvent(sessionID string, questionIndex, value, attempted int) AnswerSubmittedEvent {
	return AnswerSubmittedEvent{
		baseEvent:     newBaseEvent(TypeAnswerSubmitted),
		SessionID:     sessionID,
		QuestionIndex: questionIndex,
		Value:         value,
		Attempted:     attempted,
	}
}

// CompletedEvent is emitted when a session ends normally, including by
// time-limit expiry.
type CompletedEvent struct {
	baseEvent
	SessionID      string
	Score          int
	ElapsedSeconds int
	Attempted      int
}

// NewCompletedEvent creates a CompletedEvent.
func NewCompletedEvent(sessionID string, score, elapsedSeconds, attempted int) CompletedEvent {
	return CompletedEvent{
		baseEvent:      newBaseEvent(TypeCompleted),
		SessionID:      sessionID,
		Score:          score,
		ElapsedSeconds: elapsedSeconds,
		Attempted:      attempted,
	}
}

// AbandonedEvent is emitted when a session ends without completing.
type AbandonedEvent struct {
	baseEvent
	SessionID string
	Reason    string
}

// NewAbandonedEvent creates an AbandonedEvent.
func NewAbandonedEvent(sessionID, reason string) AbandonedEvent {
	return AbandonedEvent{
		baseEvent: newBaseEvent(TypeAbandoned),
		SessionID: sessionID,
		Reason:    reason,
	}
}

// RecoveredEvent is emitted when a persisted session is restored at startup.
type RecoveredEvent struct {
	baseEvent
	SessionID   string
	InactiveFor time.Duration
}

// NewRecoveredEvent creates a RecoveredEvent.
func NewRecoveredEvent(sessionID string, inactiveFor time.Duration) RecoveredEvent {
	return RecoveredEvent{
		baseEvent:   newBaseEvent(TypeRecovered),
		SessionID:   sessionID,
		InactiveFor: inactiveFor,
	}
}

// VisibilityChangedEvent is emitted when the host reports a background or
// foreground transition. It never mutates the session.
type VisibilityChangedEvent struct {
	baseEvent
	Visible bool
}

// NewVisibilityChangedEvent creates a VisibilityChangedEvent.
func NewVisibilityChangedEvent(visible bool) VisibilityChangedEvent {
	return VisibilityChangedEvent{
		baseEvent: newBaseEvent(TypeVisibilityChanged),
		Visible:   visible,
	}
}

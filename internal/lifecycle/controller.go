// Package lifecycle implements the session lifecycle controller: the single
// owner of the live session slot. Every mutation, whatever its trigger
// (user input, monitor tick, host signal), funnels through the operations
// here, which validate the state machine, persist the record, and publish
// events. The mutex around the live slot stands in for the single-threaded
// cooperative scheduling of a browser host: operations run to completion
// before the next trigger is processed.
package lifecycle

import (
	"context"
	"sync"
	"time"

	"github.com/prepdeck/prepdeck/internal/errors"
	"github.com/prepdeck/prepdeck/internal/event"
	"github.com/prepdeck/prepdeck/internal/logging"
	"github.com/prepdeck/prepdeck/internal/quiz"
	"github.com/prepdeck/prepdeck/internal/store"
)

const (
	// DefaultGraceDelay is how long a terminal record stays in the live
	// slot so observers can read final state before it is cleared.
	DefaultGraceDelay = 3 * time.Second

	// DefaultInactivityTimeout bounds both live-session inactivity and
	// how stale a persisted snapshot may be and still be recovered.
	DefaultInactivityTimeout = 30 * time.Minute
)

// Options configures a Controller. Store and Bus are required; the rest
// default to production values.
type Options struct {
	Store  store.SnapshotStore
	Bus    *event.Bus
	Logger *logging.Logger

	// GraceDelay overrides DefaultGraceDelay when positive.
	GraceDelay time.Duration

	// InactivityTimeout overrides DefaultInactivityTimeout when positive.
	InactivityTimeout time.Duration

	// Now and NewID exist for tests; nil selects the real clock and
	// uuid generation.
	Now   func() time.Time
	NewID func() string
}

// Controller owns the single live session and enforces its state machine.
// All methods are safe for concurrent use.
type Controller struct {
	mu   sync.Mutex
	live *quiz.Session

	store store.SnapshotStore
	bus   *event.Bus
	log   *logging.Logger

	graceDelay        time.Duration
	inactivityTimeout time.Duration

	now   func() time.Time
	newID func() string

	// clearTimer clears the live slot after a terminal transition. The
	// callback re-checks session identity: a session created during the
	// grace window must not be clobbered by a stale timer.
	clearTimer *time.Timer
}

// New creates a Controller around an empty live slot.
func New(opts Options) *Controller {
	c := &Controller{
		store:             opts.Store,
		bus:               opts.Bus,
		log:               opts.Logger,
		graceDelay:        opts.GraceDelay,
		inactivityTimeout: opts.InactivityTimeout,
		now:               opts.Now,
		newID:             opts.NewID,
	}
	if c.log == nil {
		c.log = logging.NopLogger()
	}
	if c.graceDelay <= 0 {
		c.graceDelay = DefaultGraceDelay
	}
	if c.inactivityTimeout <= 0 {
		c.inactivityTimeout = DefaultInactivityTimeout
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = quiz.NewID
	}
	return c
}

// clock returns the current time truncated to whole seconds, the precision
// the persisted snapshot guarantees to round-trip.
func (c *Controller) clock() time.Time {
	return c.now().UTC().Truncate(time.Second)
}

// Current returns a copy of the live session, or nil when the slot is
// empty. The copy may already be stale by the time the caller inspects it;
// decisions based on it must be re-validated inside a mutating operation.
func (c *Controller) Current() *quiz.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live.Clone()
}

// InactivityTimeout returns the configured inactivity threshold.
func (c *Controller) InactivityTimeout() time.Duration {
	return c.inactivityTimeout
}

// Create initializes a new session in the starting state and returns its
// ID. An existing non-terminal session is first abandoned with reason
// "superseded"; its abandoned event fires before the new session's created
// event. Any in-flight operation on the old session will then observe a
// terminal state and fail its own precondition.
func (c *Controller) Create(ctx context.Context, ownerID string, mode quiz.Mode, questionRefs []string, cfg quiz.Config) (string, error) {
	var events []event.Event
	defer func() { c.publish(events) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live != nil && !c.live.State.Terminal() {
		events = append(events, c.abandonLocked(ctx, quiz.ReasonSuperseded))
	}

	s, err := quiz.New(ownerID, mode, questionRefs, cfg, c.now, c.newID)
	if err != nil {
		return "", err
	}

	c.cancelClearLocked()
	c.live = s
	c.persistLocked(ctx)

	c.log.Info("session created",
		"session_id", s.ID,
		"owner_id", s.OwnerID,
		"mode", string(s.Mode),
		"questions", len(s.QuestionRefs))

	events = append(events, event.NewCreatedEvent(s.ID, s.OwnerID, string(s.Mode), len(s.QuestionRefs)))
	return s.ID, nil
}

// Start transitions the session from starting to active and resets the
// start timestamp.
func (c *Controller) Start(ctx context.Context) error {
	var events []event.Event
	defer func() { c.publish(events) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live == nil {
		return errors.ErrNoActiveSession
	}
	if c.live.State != quiz.StateStarting {
		return errors.NewSessionError(c.live.ID, errors.NewTransitionError("start", string(c.live.State)))
	}

	startedAt := c.clock()
	c.live.State = quiz.StateActive
	c.live.StartedAt = startedAt
	c.live.Stats.LastActivity = startedAt
	c.persistLocked(ctx)

	c.log.Info("session started", "session_id", c.live.ID)

	events = append(events, event.NewStartedEvent(c.live.ID))
	return nil
}

// Navigate moves the current index. It reports false, rather than failing
// hard, when the session is not active or the index is out of range;
// navigation failures are expected and recoverable.
func (c *Controller) Navigate(ctx context.Context, index int) bool {
	var events []event.Event
	defer func() { c.publish(events) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live == nil || c.live.State != quiz.StateActive {
		return false
	}
	if index < 0 || index >= len(c.live.QuestionRefs) {
		return false
	}

	from := c.live.CurrentIndex
	c.live.CurrentIndex = index
	c.live.Stats.Navigations++
	c.live.Stats.LastActivity = c.clock()
	c.persistLocked(ctx)

	events = append(events, event.NewQuestionChangedEvent(c.live.ID, from, index, c.live.Stats.Navigations))
	return true
}

// SubmitAnswer writes the value into the current question's answer slot,
// overwriting any previous answer. Like Navigate it reports false when the
// session is not active.
func (c *Controller) SubmitAnswer(ctx context.Context, value int) bool {
	var events []event.Event
	defer func() { c.publish(events) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live == nil || c.live.State != quiz.StateActive {
		return false
	}

	now := c.clock()
	v := value
	c.live.Answers[c.live.CurrentIndex] = &v
	c.live.Stats.Attempted++
	c.live.ElapsedSeconds = int(now.Sub(c.live.StartedAt).Seconds())
	c.live.Stats.LastActivity = now
	c.persistLocked(ctx)

	events = append(events, event.NewAnswerSubmittedEvent(c.live.ID, c.live.CurrentIndex, value, c.live.Stats.Attempted))
	return true
}

// Complete ends the session normally, finalizing the summary fields. A nil
// finalScore leaves the score untouched (scoring is external). The live
// slot is cleared after the grace delay.
func (c *Controller) Complete(ctx context.Context, finalScore *int) error {
	var events []event.Event
	defer func() { c.publish(events) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live == nil {
		return errors.ErrNoActiveSession
	}
	if c.live.State != quiz.StateActive {
		return errors.NewSessionError(c.live.ID, errors.NewTransitionError("complete", string(c.live.State)))
	}

	endedAt := c.clock()
	c.live.State = quiz.StateCompleted
	c.live.EndedAt = &endedAt
	c.live.ElapsedSeconds = int(endedAt.Sub(c.live.StartedAt).Seconds())
	if finalScore != nil {
		c.live.Score = *finalScore
	}
	c.live.AvgSecondsPerQuestion = float64(c.live.ElapsedSeconds) / float64(len(c.live.QuestionRefs))
	if c.live.TimeBoxed() {
		c.live.TimeRemainingSeconds = max(0, c.live.TimeLimitSeconds-c.live.ElapsedSeconds)
	}
	c.persistLocked(ctx)
	c.scheduleClearLocked()

	c.log.Info("session completed",
		"session_id", c.live.ID,
		"score", c.live.Score,
		"elapsed_seconds", c.live.ElapsedSeconds,
		"attempted", c.live.Stats.Attempted)

	events = append(events, event.NewCompletedEvent(c.live.ID, c.live.Score, c.live.ElapsedSeconds, c.live.Stats.Attempted))
	return nil
}

// Abandon ends the session without completing it, recording the reason.
// It is the universal cancellation operation: callable from any state and
// idempotent. With no session, or an already-terminal one, it is a no-op
// and emits nothing.
func (c *Controller) Abandon(ctx context.Context, reason string) error {
	var events []event.Event
	defer func() { c.publish(events) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live == nil || c.live.State.Terminal() {
		return nil
	}

	events = append(events, c.abandonLocked(ctx, reason))
	c.scheduleClearLocked()
	return nil
}

// abandonLocked performs the abandon mutation and returns the event to
// publish once the lock is released. The caller must hold c.mu and have
// checked that the live session is non-terminal.
func (c *Controller) abandonLocked(ctx context.Context, reason string) event.Event {
	endedAt := c.clock()
	c.live.State = quiz.StateAbandoned
	c.live.EndedAt = &endedAt
	c.live.ElapsedSeconds = int(endedAt.Sub(c.live.StartedAt).Seconds())
	c.live.Stats.Abandoned = true
	c.live.Stats.AbandonReason = reason
	c.persistLocked(ctx)

	c.log.Info("session abandoned", "session_id", c.live.ID, "reason", reason)

	return event.NewAbandonedEvent(c.live.ID, reason)
}

// UpdateCountdown recomputes the remaining time of a time-boxed active
// session and reports whether the limit has expired. The monitor calls this
// every tick; expiry is acted on by the monitor via Complete, keeping all
// mutation inside controller operations.
func (c *Controller) UpdateCountdown(ctx context.Context) (remaining int, expired bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live == nil || c.live.State != quiz.StateActive || !c.live.TimeBoxed() {
		return 0, false
	}

	elapsed := int(c.clock().Sub(c.live.StartedAt).Seconds())
	remaining = max(0, c.live.TimeLimitSeconds-elapsed)
	c.live.TimeRemainingSeconds = remaining
	c.persistLocked(ctx)

	return remaining, remaining == 0
}

// Close cancels the pending clear timer. It does not touch the live
// session; abandon explicitly if the session should not survive shutdown.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelClearLocked()
}

// persistLocked saves a snapshot of the live session. Persistence failures
// are soft: the in-memory record stays authoritative and the next
// successful save reconciles durable storage.
func (c *Controller) persistLocked(ctx context.Context) {
	if err := c.live.Validate(); err != nil {
		c.log.Error("session invariant violated", "session_id", c.live.ID, "error", err)
	}
	if err := c.store.Save(ctx, quiz.NewSnapshot(c.live, c.clock())); err != nil {
		c.log.Warn("session persistence failed", "session_id", c.live.ID, "error", err)
	}
}

// scheduleClearLocked arranges for the live slot to be cleared after the
// grace delay. The caller must hold c.mu and the live session must be
// terminal.
func (c *Controller) scheduleClearLocked() {
	c.cancelClearLocked()

	id := c.live.ID
	c.clearTimer = time.AfterFunc(c.graceDelay, func() {
		c.clearSlot(id)
	})
}

// clearSlot empties the live slot if it still holds the given terminal
// session. Durable storage keeps the terminal snapshot; it is discarded on
// the next recovery or overwritten by the next session.
func (c *Controller) clearSlot(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live == nil || c.live.ID != id || !c.live.State.Terminal() {
		return
	}
	c.log.Debug("live slot cleared", "session_id", id)
	c.live = nil
}

func (c *Controller) cancelClearLocked() {
	if c.clearTimer != nil {
		c.clearTimer.Stop()
		c.clearTimer = nil
	}
}

// publish dispatches events after the controller lock is released, so
// listeners can safely read Current.
func (c *Controller) publish(events []event.Event) {
	if c.bus == nil {
		return
	}
	for _, e := range events {
		c.bus.Publish(e)
	}
}

package lifecycle

import (
	"context"

	"github.com/prepdeck/prepdeck/internal/errors"
	"github.com/prepdeck/prepdeck/internal/event"
	"github.com/prepdeck/prepdeck/internal/quiz"
)

// Recover restores a persisted session at process start. A snapshot is
// restored only when its session is active and its last activity falls
// within the inactivity timeout; anything else (empty slot, malformed
// data, wrong schema version, terminal state, staleness) is discarded and
// reported as "nothing to recover." This is the only path that re-enters
// the active state without going through Create and Start.
//
// Recover returns true when a session was restored, in which case a
// recovered event has been published exactly once.
func (c *Controller) Recover(ctx context.Context) (bool, error) {
	var events []event.Event
	defer func() { c.publish(events) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live != nil {
		return false, nil
	}

	snapshot, err := c.store.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrSnapshotNotFound):
		return false, nil
	case errors.Is(err, errors.ErrSnapshotInvalid):
		c.log.Debug("discarding unusable snapshot", "error", err)
		c.clearStored(ctx)
		return false, nil
	default:
		// Read failure is soft, like save failure: log and start fresh.
		c.log.Warn("snapshot load failed", "error", err)
		return false, nil
	}

	s := snapshot.Session
	if s.State != quiz.StateActive {
		c.log.Debug("discarding non-active snapshot", "session_id", s.ID, "state", string(s.State))
		c.clearStored(ctx)
		return false, nil
	}

	inactiveFor := c.clock().Sub(s.Stats.LastActivity)
	if inactiveFor > c.inactivityTimeout {
		c.log.Debug("discarding stale snapshot",
			"session_id", s.ID,
			"inactive_for", inactiveFor.String())
		c.clearStored(ctx)
		return false, nil
	}

	c.live = s
	c.log.Info("session recovered", "session_id", s.ID, "inactive_for", inactiveFor.String())

	events = append(events, event.NewRecoveredEvent(s.ID, inactiveFor))
	return true, nil
}

func (c *Controller) clearStored(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn("snapshot clear failed", "error", err)
	}
}

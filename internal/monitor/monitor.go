// Package monitor runs the periodic abandonment and timer checks against
// the live session, and translates host lifecycle signals into lifecycle
// controller operations. It never touches the session record directly: all
// mutation goes through the controller, which re-validates state, so a tick
// racing a user operation can never corrupt the session.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/prepdeck/prepdeck/internal/event"
	"github.com/prepdeck/prepdeck/internal/lifecycle"
	"github.com/prepdeck/prepdeck/internal/logging"
	"github.com/prepdeck/prepdeck/internal/quiz"
)

const (
	// DefaultTickInterval is the cadence of the periodic check.
	DefaultTickInterval = 5 * time.Second
)

// Config holds monitor settings.
type Config struct {
	// TickInterval is how often the periodic check runs.
	TickInterval time.Duration

	// InactivityTimeout is how long a session may sit without activity
	// before it is abandoned.
	InactivityTimeout time.Duration
}

// Monitor watches the live session for inactivity and time-limit expiry,
// and forwards host lifecycle signals.
type Monitor struct {
	ctrl    *lifecycle.Controller
	bus     *event.Bus
	log     *logging.Logger
	signals SignalSource
	cfg     Config
	now     func() time.Time

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	stop      chan struct{}
	done      chan struct{}
}

// New creates a Monitor. The signal source may be nil for hosts without
// lifecycle signals. A nil now selects the real clock.
func New(ctrl *lifecycle.Controller, bus *event.Bus, log *logging.Logger, signals SignalSource, cfg Config, now func() time.Time) *Monitor {
	if log == nil {
		log = logging.NopLogger()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.InactivityTimeout <= 0 {
		cfg.InactivityTimeout = lifecycle.DefaultInactivityTimeout
	}
	if now == nil {
		now = time.Now
	}
	return &Monitor{
		ctrl:    ctrl,
		bus:     bus,
		log:     log,
		signals: signals,
		cfg:     cfg,
		now:     now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the monitoring loop in its own goroutine. Subsequent
// calls are no-ops.
func (m *Monitor) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		m.started = true
		go m.run(ctx)
	})
}

// Stop terminates the monitoring loop and waits for it to exit.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
	if m.started {
		<-m.done
	}
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.cfg.TickInterval)
	defer ticker.Stop()

	var sigCh <-chan Signal
	if m.signals != nil {
		sigCh = m.signals.Signals()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stop:
			return
		case <-ticker.C:
			m.Tick(ctx)
		case sig, ok := <-sigCh:
			if !ok {
				// Source closed; stop selecting on it.
				sigCh = nil
				continue
			}
			m.HandleSignal(ctx, sig)
		}
	}
}

// Tick performs one round of checks against the live session: inactivity
// abandonment and time-limit countdown. The two checks are independent;
// both re-validate state through the controller.
func (m *Monitor) Tick(ctx context.Context) {
	s := m.ctrl.Current()
	if s == nil {
		return
	}

	if s.State == quiz.StateActive {
		inactive := m.now().Sub(s.Stats.LastActivity)
		if inactive > m.cfg.InactivityTimeout {
			m.log.Info("abandoning inactive session",
				"session_id", s.ID,
				"inactive_for", inactive.String())
			if err := m.ctrl.Abandon(ctx, quiz.ReasonInactivityTimeout); err != nil {
				m.log.Warn("inactivity abandon failed", "session_id", s.ID, "error", err)
			}
			return
		}
	}

	if _, expired := m.ctrl.UpdateCountdown(ctx); expired {
		// Running out of time is a normal completion path: remaining
		// answers are auto-submitted as they stand.
		m.log.Info("time limit reached, auto-completing", "session_id", s.ID)
		if err := m.ctrl.Complete(ctx, nil); err != nil {
			m.log.Warn("auto-complete failed", "session_id", s.ID, "error", err)
		}
	}
}

// HandleSignal maps a host lifecycle signal to the corresponding action.
// Termination abandons the session. Background and foreground transitions
// only publish a notification: backgrounding alone never abandons, only
// prolonged inactivity does.
func (m *Monitor) HandleSignal(ctx context.Context, sig Signal) {
	switch sig {
	case SignalTerminate:
		m.log.Info("host termination signal received")
		if err := m.ctrl.Abandon(ctx, quiz.ReasonAppShutdown); err != nil {
			m.log.Warn("shutdown abandon failed", "error", err)
		}
	case SignalBackground:
		m.log.Debug("host went to background")
		m.bus.Publish(event.NewVisibilityChangedEvent(false))
	case SignalForeground:
		m.log.Debug("host returned to foreground")
		m.bus.Publish(event.NewVisibilityChangedEvent(true))
	}
}

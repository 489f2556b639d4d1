// Package tui provides a small terminal front end over the lifecycle
// controller. It renders session status and drives the controller's
// operations by key; question content itself is served elsewhere, so only
// refs and indices are shown.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prepdeck/prepdeck/internal/config"
	"github.com/prepdeck/prepdeck/internal/event"
	"github.com/prepdeck/prepdeck/internal/lifecycle"
	"github.com/prepdeck/prepdeck/internal/questions"
	"github.com/prepdeck/prepdeck/internal/quiz"
)

// sessionEventMsg wraps a bus event for the bubbletea loop.
type sessionEventMsg struct {
	e event.Event
}

// Model holds the TUI application state
type Model struct {
	ctrl     *lifecycle.Controller
	bus      *event.Bus
	provider questions.Provider
	cfg      *config.Config

	events chan event.Event
	subID  uint64

	width     int
	height    int
	lastEvent string
	errMsg    string
	quitting  bool
}

// NewModel creates a new TUI model and subscribes it to the bus.
func NewModel(ctrl *lifecycle.Controller, bus *event.Bus, provider questions.Provider, cfg *config.Config) *Model {
	m := &Model{
		ctrl:     ctrl,
		bus:      bus,
		provider: provider,
		cfg:      cfg,
		events:   make(chan event.Event, 16),
	}
	m.subID = bus.SubscribeAll(func(e event.Event) {
		select {
		case m.events <- e:
		default:
			// UI updates are best-effort; dropping one is harmless
			// because the next render reads Current anyway.
		}
	})
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return sessionEventMsg{e: <-m.events}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionEventMsg:
		m.lastEvent = describeEvent(msg.e)
		return m, m.waitForEvent()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	m.errMsg = ""

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.bus.Unsubscribe(m.subID)
		return m, tea.Quit

	case "n":
		m.createSession(ctx, quiz.ModeQuick, quiz.Config{})
	case "t":
		m.createSession(ctx, quiz.ModeTimed, quiz.Config{
			TimeLimitSeconds: m.cfg.Session.DefaultTimeLimitSeconds,
		})
	case "s":
		if err := m.ctrl.Start(ctx); err != nil {
			m.errMsg = err.Error()
		}
	case "left", "h":
		if s := m.ctrl.Current(); s != nil {
			m.ctrl.Navigate(ctx, s.CurrentIndex-1)
		}
	case "right", "l":
		if s := m.ctrl.Current(); s != nil {
			m.ctrl.Navigate(ctx, s.CurrentIndex+1)
		}
	case "c":
		if err := m.ctrl.Complete(ctx, nil); err != nil {
			m.errMsg = err.Error()
		}
	case "a":
		if err := m.ctrl.Abandon(ctx, quiz.ReasonUserRequested); err != nil {
			m.errMsg = err.Error()
		}

	default:
		if len(msg.String()) == 1 && msg.String() >= "0" && msg.String() <= "9" {
			value := int(msg.String()[0] - '0')
			if !m.ctrl.SubmitAnswer(ctx, value) {
				m.errMsg = "no active session to answer"
			}
		}
	}
	return m, nil
}

func (m *Model) createSession(ctx context.Context, mode quiz.Mode, cfg quiz.Config) {
	refs, err := m.provider.QuestionRefs(ctx, mode, m.cfg.Session.DefaultQuestionCount)
	if err != nil {
		m.errMsg = fmt.Sprintf("question provider: %v", err)
		return
	}
	if _, err := m.ctrl.Create(ctx, "local", mode, refs, cfg); err != nil {
		m.errMsg = err.Error()
	}
}

func describeEvent(e event.Event) string {
	switch e := e.(type) {
	case event.CreatedEvent:
		return fmt.Sprintf("created %s (%s, %d questions)", e.SessionID, e.Mode, e.QuestionCount)
	case event.StartedEvent:
		return fmt.Sprintf("started %s", e.SessionID)
	case event.QuestionChangedEvent:
		return fmt.Sprintf("moved to question %d", e.ToIndex+1)
	case event.AnswerSubmittedEvent:
		return fmt.Sprintf("answered question %d with %d", e.QuestionIndex+1, e.Value)
	case event.CompletedEvent:
		return fmt.Sprintf("completed: score %d, %ds elapsed", e.Score, e.ElapsedSeconds)
	case event.AbandonedEvent:
		return fmt.Sprintf("abandoned (%s)", e.Reason)
	case event.RecoveredEvent:
		return fmt.Sprintf("recovered %s after %s away", e.SessionID, e.InactiveFor)
	case event.VisibilityChangedEvent:
		if e.Visible {
			return "host returned to foreground"
		}
		return "host went to background"
	}
	return e.EventType()
}

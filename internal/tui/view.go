package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/prepdeck/prepdeck/internal/quiz"
	"github.com/prepdeck/prepdeck/internal/util"
)

// maxLineWidth caps status and event lines so a narrow terminal does not wrap
// the styled output mid-escape-sequence.
const maxLineWidth = 76

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	eventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("108"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	stateColors = map[quiz.State]string{
		quiz.StateStarting:  "220",
		quiz.StateActive:    "77",
		quiz.StateCompleted: "75",
		quiz.StateAbandoned: "203",
	}
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("prepdeck"))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(m.sessionPanel()))
	b.WriteString("\n")

	if m.lastEvent != "" {
		b.WriteString(util.TruncateANSI(eventStyle.Render("• "+m.lastEvent), maxLineWidth))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(util.TruncateANSI(errStyle.Render("! "+m.errMsg), maxLineWidth))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("n new · t timed · s start · ←/→ navigate · 0-9 answer · c complete · a abandon · q quit"))
	return b.String()
}

func (m *Model) sessionPanel() string {
	s := m.ctrl.Current()
	if s == nil {
		return labelStyle.Render("no session — press n to begin")
	}

	stateStyle := lipgloss.NewStyle().Bold(true)
	if color, ok := stateColors[s.State]; ok {
		stateStyle = stateStyle.Foreground(lipgloss.Color(color))
	}

	lines := []string{
		fmt.Sprintf("%s %s", labelStyle.Render("session"), util.TruncateString(s.ID, 12)),
		fmt.Sprintf("%s %s   %s %s", labelStyle.Render("state"), stateStyle.Render(string(s.State)), labelStyle.Render("mode"), s.Mode),
		fmt.Sprintf("%s %d/%d   %s %d   %s %d",
			labelStyle.Render("question"), s.CurrentIndex+1, len(s.QuestionRefs),
			labelStyle.Render("answered"), s.AnsweredCount(),
			labelStyle.Render("navs"), s.Stats.Navigations),
	}
	if s.TimeBoxed() {
		lines = append(lines, fmt.Sprintf("%s %ds", labelStyle.Render("time left"), s.TimeRemainingSeconds))
	}
	if s.State == quiz.StateCompleted {
		lines = append(lines, fmt.Sprintf("%s %d   %s %ds", labelStyle.Render("score"), s.Score, labelStyle.Render("elapsed"), s.ElapsedSeconds))
	}
	if s.Stats.Abandoned {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render("reason"), s.Stats.AbandonReason))
	}
	return strings.Join(lines, "\n")
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/misterclayt0n/gymtrack/internal/models"
	"github.com/misterclayt0n/gymtrack/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	focusedSectionStyle = sectionStyle.
				BorderForeground(lipgloss.Color("39"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	dimmedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
)

// View renders the TUI
func (m Model) View() string {
	if m.ended {
		if m.finished != nil {
			return completedStyle.Render(fmt.Sprintf("Workout %q saved.", m.finished.Name)) + "\n"
		}
		return dimmedStyle.Render("Session discarded.") + "\n"
	}

	width := m.width
	if width == 0 {
		width = 72
	}

	var b strings.Builder
	s := m.snap.Session
	elapsed := m.now().Sub(s.StartTime)
	header := fmt.Sprintf(" %s │ Exercise %d/%d │ %s ", s.Name, m.snap.CurrentIndex+1, len(s.Exercises), utils.FormatDuration(elapsed))
	b.WriteString(headerStyle.Width(width).Render(header))
	b.WriteString("\n")

	current := sectionStyle
	queue := sectionStyle
	if m.focus == focusQueue {
		queue = focusedSectionStyle
	} else {
		current = focusedSectionStyle
	}
	b.WriteString(current.Width(width - 2).Render(m.renderCurrent()))
	b.WriteString("\n")
	if len(m.snap.Upcoming()) > 0 {
		b.WriteString(queue.Width(width - 2).Render(m.renderQueue()))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(dimmedStyle.Render(m.help()))
	return b.String()
}

func (m Model) renderCurrent() string {
	ex, ok := m.snap.Current()
	if !ok {
		return "No exercises."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(ex.Name))
	b.WriteString(dimmedStyle.Render(fmt.Sprintf("  target: %s", target(ex.Exercise))))
	b.WriteString("\n\n")

	if ex.IsCardio {
		l := ex.Logs[0]
		if l.Completed {
			b.WriteString(completedStyle.Render("✓ " + utils.FormatClock(l.Reps)))
		} else {
			state := "paused"
			if m.snap.CardioRunning {
				state = "running"
			}
			b.WriteString(clockStyle.Render(utils.FormatClock(m.snap.CardioSeconds)))
			b.WriteString(dimmedStyle.Render("  " + state))
		}
		b.WriteString("\n")
	} else {
		for i, l := range ex.Logs {
			line := fmt.Sprintf("Set %d   %6g kg × %-3d", i+1, l.Weight, l.Reps)
			switch {
			case l.Completed:
				line = completedStyle.Render("✓ " + line)
			case i == m.selectedSet && m.focus == focusSets:
				line = selectedStyle.Render("› " + line)
			default:
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	switch m.snap.Phase {
	case models.PhaseResting:
		b.WriteString("\n")
		b.WriteString(clockStyle.Render("Rest " + utils.FormatClock(m.snap.RestRemaining)))
	case models.PhaseTransitioning:
		if m.snap.HasNext() {
			b.WriteString("\n")
			b.WriteString(completedStyle.Render("Exercise done! Next up: " + m.snap.Session.Exercises[m.snap.CurrentIndex+1].Name))
		}
	}
	return b.String()
}

func (m Model) renderQueue() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Up next"))
	b.WriteString("\n")
	for i, ex := range m.snap.Upcoming() {
		line := fmt.Sprintf("%d. %s  %s", i+1, ex.Name, dimmedStyle.Render(target(ex.Exercise)))
		if m.focus == focusQueue && i == m.queueCursor {
			line = selectedStyle.Render("› ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderStatus() string {
	switch {
	case m.snap.Pending != nil:
		return promptStyle.Render(m.snap.Pending.Prompt + " [y/n]")
	case m.confirmAbandon:
		return promptStyle.Render("Discard this session without saving? [y/n]")
	case m.field == fieldWeight:
		return promptStyle.Render(fmt.Sprintf("Weight for set %d: %s▏", m.selectedSet+1, m.input))
	case m.field == fieldReps:
		return promptStyle.Render(fmt.Sprintf("Reps for set %d: %s▏", m.selectedSet+1, m.input))
	case m.err != nil:
		return errorStyle.Render(m.err.Error())
	}
	return m.status
}

func (m Model) help() string {
	if m.focus == focusQueue {
		return "j/k select • J/K move • +/- sets • d delete • tab back • F finish • q quit"
	}
	if ex, ok := m.snap.Current(); ok && ex.IsCardio {
		return "s start/pause • c done • n/p next/prev • tab queue • F finish • A abandon • q quit"
	}
	return "j/k set • w weight • r reps • c done • x skip rest • n/p next/prev • tab queue • F finish • A abandon • q quit"
}

func target(ex models.Exercise) string {
	if ex.IsCardio {
		return ex.Reps
	}
	return fmt.Sprintf("%d × %s", ex.Sets, ex.Reps)
}

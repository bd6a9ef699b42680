package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/misterclayt0n/gymtrack/internal/session"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		m.setSnapshot(m.engine.Snapshot())
		return m, tickCmd()

	case ChangeMsg:
		m.setSnapshot(session.Snapshot(msg))
		return m, waitForChange(m.changes)
	}

	return m, nil
}

func (m *Model) setSnapshot(s session.Snapshot) {
	moved := s.CurrentIndex != m.snap.CurrentIndex
	m.snap = s
	if moved {
		m.selectedSet = firstOpenSet(s)
	}
	if ex, ok := s.Current(); ok && m.selectedSet >= len(ex.Logs) {
		m.selectedSet = max(len(ex.Logs)-1, 0)
	}
	if n := len(s.Upcoming()); m.queueCursor >= n {
		m.queueCursor = max(n-1, 0)
	}
}

// apply records the outcome of an engine call.
func (m *Model) apply(s session.Snapshot, err error) {
	if errors.Is(err, session.ErrEmptySession) {
		m.ended = true
		m.status = "No exercises left, session ended."
		return
	}
	m.err = err
	if err == nil {
		m.setSnapshot(s)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.err = nil
	m.status = ""

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case m.field != fieldNone:
		return m.handleInput(msg)
	case m.snap.Pending != nil:
		switch key {
		case "y":
			m.apply(m.engine.Confirm(m.snap.Pending.ID))
			if m.ended {
				return m, tea.Quit
			}
		case "n", "esc":
			m.apply(m.engine.Reject())
		}
		return m, nil
	case m.confirmAbandon:
		m.confirmAbandon = false
		if key == "y" {
			if err := m.engine.Abandon(); err != nil {
				m.err = err
				return m, nil
			}
			m.ended = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "tab":
		if m.focus == focusSets && len(m.snap.Upcoming()) > 0 {
			m.focus = focusQueue
		} else {
			m.focus = focusSets
		}
	case "n", "right":
		m.apply(m.engine.Next())
	case "p", "left":
		m.apply(m.engine.Previous())
	case "x":
		m.apply(m.engine.SkipRest())
	case "s":
		m.apply(m.engine.ToggleCardioClock())
	case "F":
		done, err := m.engine.Finish()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.finished = &done
		m.ended = true
		return m, tea.Quit
	case "A":
		m.confirmAbandon = true
	default:
		if m.focus == focusQueue {
			return m.handleQueueKey(key)
		}
		return m.handleSetKey(key)
	}
	return m, nil
}

func (m Model) handleSetKey(key string) (tea.Model, tea.Cmd) {
	ex, ok := m.snap.Current()
	if !ok {
		return m, nil
	}

	switch key {
	case "j", "down":
		if m.selectedSet < len(ex.Logs)-1 {
			m.selectedSet++
		}
	case "k", "up":
		if m.selectedSet > 0 {
			m.selectedSet--
		}
	case "w":
		if !ex.IsCardio {
			m.field, m.input = fieldWeight, ""
		}
	case "r":
		if !ex.IsCardio {
			m.field, m.input = fieldReps, ""
		}
	case "c", "enter":
		if ex.IsCardio {
			m.apply(m.engine.CompleteCardioSet(ex.ID, 0))
		} else {
			m.apply(m.engine.CompleteSet(ex.ID, m.selectedSet))
		}
		if m.err == nil {
			m.selectedSet = firstOpenSet(m.snap)
		}
	}
	return m, nil
}

func (m Model) handleQueueKey(key string) (tea.Model, tea.Cmd) {
	upcoming := m.snap.Upcoming()
	if len(upcoming) == 0 {
		m.focus = focusSets
		return m, nil
	}
	sel := upcoming[m.queueCursor]

	switch key {
	case "j", "down":
		if m.queueCursor < len(upcoming)-1 {
			m.queueCursor++
		}
	case "k", "up":
		if m.queueCursor > 0 {
			m.queueCursor--
		}
	case "J":
		if m.queueCursor < len(upcoming)-1 {
			m.apply(m.engine.Reorder(m.queueCursor, m.queueCursor+1))
			if m.err == nil {
				m.queueCursor++
			}
		}
	case "K":
		if m.queueCursor > 0 {
			m.apply(m.engine.Reorder(m.queueCursor, m.queueCursor-1))
			if m.err == nil {
				m.queueCursor--
			}
		}
	case "+":
		m.apply(m.engine.EditExercise(sel.ID, sel.Sets+1, ""))
	case "-":
		m.apply(m.engine.EditExercise(sel.ID, sel.Sets-1, ""))
	case "d":
		m.apply(m.engine.DeleteExercise(sel.ID))
	}
	return m, nil
}

func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.field, m.input = fieldNone, ""
		return m, nil
	case tea.KeyBackspace:
		if m.input != "" {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeyEnter:
		v, err := m.parseInput()
		m.field = fieldNone
		m.input = ""
		if err != nil {
			m.err = err
			return m, nil
		}
		if ex, ok := m.snap.Current(); ok {
			m.apply(m.engine.LogChange(ex.ID, m.selectedSet, v))
			if m.err == nil {
				m.status = fmt.Sprintf("Set %d: %s", m.selectedSet+1, v)
			}
		}
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r >= '0' && r <= '9') || (r == '.' && m.field == fieldWeight && !strings.Contains(m.input, ".")) {
				m.input += string(r)
			}
		}
	}
	return m, nil
}

func (m Model) parseInput() (session.FieldValue, error) {
	switch m.field {
	case fieldWeight:
		w, err := strconv.ParseFloat(m.input, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q", m.input)
		}
		return session.Weight(w), nil
	case fieldReps:
		r, err := strconv.Atoi(m.input)
		if err != nil {
			return nil, fmt.Errorf("invalid reps %q", m.input)
		}
		return session.Reps(r), nil
	}
	return nil, fmt.Errorf("nothing to enter")
}

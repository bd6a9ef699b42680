package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/misterclayt0n/gymtrack/internal/models"
	"github.com/misterclayt0n/gymtrack/internal/session"
)

type focus int

const (
	focusSets focus = iota
	focusQueue
)

type inputField int

const (
	fieldNone inputField = iota
	fieldWeight
	fieldReps
)

// Model is the live session runner.
type Model struct {
	engine  *session.Engine
	changes <-chan session.Snapshot
	now     func() time.Time

	snap session.Snapshot

	// UI state
	width          int
	height         int
	focus          focus
	selectedSet    int
	queueCursor    int
	field          inputField
	input          string
	confirmAbandon bool
	status         string
	err            error

	// Outcome
	finished *models.WorkoutSession
	ended    bool
}

// Notifier carries engine snapshots into the bubbletea loop. Only the latest snapshot is kept.
type Notifier struct {
	ch chan session.Snapshot
}

func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan session.Snapshot, 1)}
}

// Notify is meant for session.Options.OnChange. It never blocks.
func (n *Notifier) Notify(s session.Snapshot) {
	for {
		select {
		case n.ch <- s:
			return
		default:
		}
		select {
		case <-n.ch:
		default:
		}
	}
}

func (n *Notifier) Changes() <-chan session.Snapshot { return n.ch }

// NewModel creates a runner for e. changes may be nil when nothing feeds asynchronous
// updates; the one-second tick still refreshes the view.
func NewModel(e *session.Engine, changes <-chan session.Snapshot) Model {
	m := Model{engine: e, changes: changes, now: time.Now, snap: e.Snapshot()}
	m.selectedSet = firstOpenSet(m.snap)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForChange(m.changes))
}

// Finished returns the recorded session once the user finished it.
func (m Model) Finished() *models.WorkoutSession { return m.finished }

// Ended reports whether the session is over, finished or abandoned.
func (m Model) Ended() bool { return m.ended }

// TickMsg redraws the clocks.
type TickMsg time.Time

// ChangeMsg is a snapshot pushed by the engine.
type ChangeMsg session.Snapshot

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func waitForChange(ch <-chan session.Snapshot) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return ChangeMsg(s)
	}
}

func firstOpenSet(s session.Snapshot) int {
	ex, ok := s.Current()
	if !ok {
		return 0
	}
	for i, l := range ex.Logs {
		if !l.Completed {
			return i
		}
	}
	return max(len(ex.Logs)-1, 0)
}

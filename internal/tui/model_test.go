package tui

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/misterclayt0n/gymtrack/internal/models"
	"github.com/misterclayt0n/gymtrack/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memStore) Load(key string, v any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, v)
}

func (m *memStore) Save(key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type memHistory struct {
	sessions []models.WorkoutSession
}

func (h *memHistory) AppendSession(s models.WorkoutSession) error {
	h.sessions = append(h.sessions, s)
	return nil
}

type fixture struct {
	store   *memStore
	history *memHistory
	sched   *session.ManualScheduler
	engine  *session.Engine
}

func setup(t *testing.T, exs ...models.Exercise) (*fixture, Model) {
	t.Helper()
	f := &fixture{
		store:   &memStore{data: map[string][]byte{}},
		history: &memHistory{},
		sched:   session.NewManualScheduler(),
	}
	ids := 0
	e, err := session.Start(models.Workout{ID: "w1", Name: "Push Day", Exercises: exs}, session.Options{
		Store:     f.store,
		History:   f.history,
		Scheduler: f.sched,
		Now:       func() time.Time { return t0 },
		NewID: func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		},
	})
	require.NoError(t, err)
	t.Cleanup(e.Close)
	f.engine = e

	m := NewModel(e, nil)
	m.now = func() time.Time { return t0.Add(5 * time.Minute) }
	return f, m
}

func strength(id string, sets int) models.Exercise {
	return models.Exercise{ID: id, Name: "Exercise " + id, Sets: sets, Reps: "8-12"}
}

func cardio(id string) models.Exercise {
	return models.Exercise{ID: id, Name: "Cardio " + id, Sets: 1, Reps: "20 min", IsCardio: true}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func keys(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func enter() tea.Msg { return tea.KeyMsg{Type: tea.KeyEnter} }

func TestWeightInputPropagates(t *testing.T) {
	_, m := setup(t, strength("a", 3))

	m, _ = send(t, m, keys("w62.5")...)
	assert.Equal(t, fieldWeight, m.field)
	assert.Equal(t, "62.5", m.input)

	m, _ = send(t, m, enter())
	require.NoError(t, m.err)
	assert.Equal(t, fieldNone, m.field)
	for _, l := range m.snap.Session.Exercises[0].Logs {
		assert.Equal(t, 62.5, l.Weight)
	}
}

func TestInputIgnoresNonDigits(t *testing.T) {
	_, m := setup(t, strength("a", 2))

	m, _ = send(t, m, keys("r1x2.")...)
	assert.Equal(t, "12", m.input)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, fieldNone, m.field)
	assert.Equal(t, 0, m.snap.Session.Exercises[0].Logs[0].Reps)
}

func TestEmptyInputIsAnError(t *testing.T) {
	_, m := setup(t, strength("a", 2))

	m, _ = send(t, m, keys("w")...)
	m, _ = send(t, m, enter())
	assert.Error(t, m.err)
	assert.Equal(t, fieldNone, m.field)
}

func TestCompleteSetStartsRest(t *testing.T) {
	_, m := setup(t, strength("a", 2), strength("b", 1))

	m, _ = send(t, m, keys("c")...)
	require.NoError(t, m.err)
	assert.Equal(t, models.PhaseResting, m.snap.Phase)
	assert.True(t, m.snap.Session.Exercises[0].Logs[0].Completed)
	assert.Equal(t, 1, m.selectedSet)
	assert.Contains(t, m.View(), "Rest 01:30")

	m, _ = send(t, m, keys("x")...)
	assert.Equal(t, models.PhaseActive, m.snap.Phase)
}

func TestLastSetTransitions(t *testing.T) {
	f, m := setup(t, strength("a", 1), strength("b", 1))

	m, _ = send(t, m, keys("c")...)
	assert.Equal(t, models.PhaseTransitioning, m.snap.Phase)
	assert.Contains(t, m.View(), "Next up: Exercise b")

	f.sched.Advance(session.DefaultTransitionDelay)
	m, _ = send(t, m, TickMsg(t0))
	assert.Equal(t, 1, m.snap.CurrentIndex)
	assert.Equal(t, 0, m.selectedSet)
}

func TestNavigation(t *testing.T) {
	_, m := setup(t, strength("a", 2), strength("b", 2))

	m, _ = send(t, m, keys("n")...)
	assert.Equal(t, 1, m.snap.CurrentIndex)

	m, _ = send(t, m, keys("n")...)
	assert.Error(t, m.err)
	assert.Equal(t, 1, m.snap.CurrentIndex)

	m, _ = send(t, m, keys("p")...)
	assert.NoError(t, m.err)
	assert.Equal(t, 0, m.snap.CurrentIndex)
}

func TestCardioStopwatch(t *testing.T) {
	f, m := setup(t, cardio("run"), strength("b", 1))

	m, _ = send(t, m, keys("c")...)
	assert.Error(t, m.err, "completing before the stopwatch ran")

	m, _ = send(t, m, keys("s")...)
	require.NoError(t, m.err)
	assert.True(t, m.snap.CardioRunning)

	f.sched.Advance(3 * time.Second)
	m, _ = send(t, m, TickMsg(t0))
	assert.Equal(t, 3, m.snap.CardioSeconds)
	assert.Contains(t, m.View(), "00:03")

	m, _ = send(t, m, keys("c")...)
	require.NoError(t, m.err)
	assert.Equal(t, 3, m.snap.Session.Exercises[0].Logs[0].Reps)
	assert.Equal(t, models.PhaseTransitioning, m.snap.Phase)
}

func TestQueueDeleteConfirm(t *testing.T) {
	_, m := setup(t, strength("a", 1), strength("b", 1), strength("c", 1))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusQueue, m.focus)

	m, _ = send(t, m, keys("jd")...)
	require.NotNil(t, m.snap.Pending)
	assert.Equal(t, "c", m.snap.Pending.ExerciseID)
	assert.Contains(t, m.View(), "Remove Exercise c from this session?")

	m, _ = send(t, m, keys("y")...)
	require.NoError(t, m.err)
	assert.Nil(t, m.snap.Pending)
	require.Len(t, m.snap.Session.Exercises, 2)
	assert.Equal(t, 0, m.queueCursor)
}

func TestQueueDeleteReject(t *testing.T) {
	_, m := setup(t, strength("a", 1), strength("b", 1))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, keys("dn")...)
	assert.Nil(t, m.snap.Pending)
	assert.Len(t, m.snap.Session.Exercises, 2)
}

func TestQueueReorderAndResize(t *testing.T) {
	_, m := setup(t, strength("a", 1), strength("b", 1), strength("c", 1))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, keys("J")...)
	require.NoError(t, m.err)
	assert.Equal(t, 1, m.queueCursor)
	assert.Equal(t, "c", m.snap.Session.Exercises[1].ID)
	assert.Equal(t, "b", m.snap.Session.Exercises[2].ID)

	m, _ = send(t, m, keys("+")...)
	require.NoError(t, m.err)
	assert.Equal(t, 2, m.snap.Session.Exercises[2].Sets)
	assert.Len(t, m.snap.Session.Exercises[2].Logs, 2)
}

func TestFinish(t *testing.T) {
	f, m := setup(t, strength("a", 1))

	m, cmd := send(t, m, keys("F")...)
	require.NoError(t, m.err)
	assert.NotNil(t, cmd)
	assert.True(t, m.Ended())
	require.NotNil(t, m.Finished())
	assert.Equal(t, "Push Day", m.Finished().Name)
	assert.Len(t, f.history.sessions, 1)
	assert.Empty(t, f.store.data)
	assert.Contains(t, m.View(), "saved")
}

func TestAbandonNeedsConfirmation(t *testing.T) {
	f, m := setup(t, strength("a", 1))

	m, _ = send(t, m, keys("An")...)
	assert.False(t, m.Ended())
	assert.NotEmpty(t, f.store.data)

	m, _ = send(t, m, keys("Ay")...)
	assert.True(t, m.Ended())
	assert.Nil(t, m.Finished())
	assert.Empty(t, f.store.data)
	assert.Empty(t, f.history.sessions)
}

func TestChangeMsgUpdatesSnapshot(t *testing.T) {
	f, m := setup(t, strength("a", 2))

	snap, err := f.engine.CompleteSet("a", 0)
	require.NoError(t, err)
	m, _ = send(t, m, ChangeMsg(snap))
	assert.Equal(t, models.PhaseResting, m.snap.Phase)
}

func TestNotifierKeepsLatest(t *testing.T) {
	n := NewNotifier()
	n.Notify(session.Snapshot{CurrentIndex: 1})
	n.Notify(session.Snapshot{CurrentIndex: 2})

	select {
	case s := <-n.Changes():
		assert.Equal(t, 2, s.CurrentIndex)
	default:
		t.Fatal("no snapshot")
	}
	select {
	case <-n.Changes():
		t.Fatal("stale snapshot left behind")
	default:
	}
}

func TestViewShowsSession(t *testing.T) {
	_, m := setup(t, strength("a", 3), cardio("run"))
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	out := m.View()
	assert.Contains(t, out, "Push Day")
	assert.Contains(t, out, "Exercise a")
	assert.Contains(t, out, "3 × 8-12")
	assert.Contains(t, out, "Cardio run")
	assert.Contains(t, out, "5m")
	assert.Equal(t, 3, strings.Count(out, "Set "))
}

package session

import (
	"testing"

	"github.com/misterclayt0n/gymtrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapIDs(s Snapshot) []string { return ids(s.Session) }

func TestReorderOnlyTouchesUpcoming(t *testing.T) {
	h := newHarness()
	e := h.start(t, exercise("a", 1), exercise("b", 1), exercise("c", 1), exercise("d", 1))
	_, err := e.Next()
	require.NoError(t, err)

	snap, err := e.Reorder(1, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "d", "c"}, snapIDs(snap))
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.Equal(t, []string{"a", "b", "d", "c"}, ids(h.store.state(t).Session))

	_, err = e.Reorder(0, 2)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	h := newHarness()
	e := h.start(t, exercise("a", 1), exercise("b", 1), exercise("c", 1))

	snap, err := e.DeleteExercise("b")
	require.NoError(t, err)
	require.NotNil(t, snap.Pending)
	assert.Equal(t, ConfirmDelete, snap.Pending.Kind)
	assert.Equal(t, "b", snap.Pending.ExerciseID)
	assert.Len(t, snap.Session.Exercises, 3, "nothing removed yet")

	snap, err = e.Reject()
	require.NoError(t, err)
	assert.Nil(t, snap.Pending)
	assert.Len(t, snap.Session.Exercises, 3)

	snap, err = e.DeleteExercise("b")
	require.NoError(t, err)
	_, err = e.Confirm("wrong")
	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.NotNil(t, e.Snapshot().Pending)

	snap, err = e.Confirm(snap.Pending.ID)
	require.NoError(t, err)
	assert.Nil(t, snap.Pending)
	assert.Equal(t, []string{"a", "c"}, snapIDs(snap))
	assert.Equal(t, []string{"a", "c"}, ids(h.store.state(t).Session))

	_, err = e.Reject()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDeleteRejectsReachedExercises(t *testing.T) {
	h := newHarness()
	e := h.start(t, exercise("a", 1), exercise("b", 1), exercise("c", 1))
	_, err := e.Next()
	require.NoError(t, err)

	_, err = e.DeleteExercise("a")
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = e.DeleteExercise("b")
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = e.DeleteExercise("nope")
	assert.ErrorIs(t, err, ErrInvalidReference)
	_, err = e.EditExercise("b", 5, "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestMovingOnDropsPendingConfirmation(t *testing.T) {
	h := newHarness()
	e := h.start(t, exercise("a", 1), exercise("b", 1), exercise("c", 1), exercise("d", 1))

	snap, err := e.DeleteExercise("c")
	require.NoError(t, err)
	require.NotNil(t, snap.Pending)
	id := snap.Pending.ID
	snap, err = e.Next()
	require.NoError(t, err)
	assert.Nil(t, snap.Pending)

	_, err = e.Confirm(id)
	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.Len(t, e.Snapshot().Session.Exercises, 4)

	snap, err = e.DeleteExercise("d")
	require.NoError(t, err)
	require.NotNil(t, snap.Pending)
	snap, err = e.CompleteSet("b", 0)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseTransitioning, snap.Phase)
	assert.Nil(t, snap.Pending)
}

func TestEditExercise(t *testing.T) {
	h := newHarness()
	e := h.start(t, exercise("a", 1), exercise("b", 3), cardio("c"))

	snap, err := e.EditExercise("b", 5, "6-8")
	require.NoError(t, err)
	assert.Nil(t, snap.Pending)
	b := snap.Session.Exercises[1]
	assert.Equal(t, 5, b.Sets)
	assert.Equal(t, "6-8", b.Reps)
	assert.Len(t, b.Logs, 5)

	snap, err = e.EditExercise("c", 4, "30 min")
	require.NoError(t, err)
	assert.Len(t, snap.Session.Exercises[2].Logs, 1)
	assert.Equal(t, "30 min", snap.Session.Exercises[2].Reps)

	_, err = e.EditExercise("b", 0, "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestEditDiscardingCompletedNeedsConfirmation(t *testing.T) {
	h := newHarness()
	e := h.start(t, exercise("w", 1), exercise("a", 3))
	_, err := e.Next()
	require.NoError(t, err)
	for i := range 3 {
		_, err = e.CompleteSet("a", i)
		require.NoError(t, err)
	}
	_, err = e.Previous()
	require.NoError(t, err)

	snap, err := e.EditExercise("a", 1, "")
	require.NoError(t, err)
	require.NotNil(t, snap.Pending)
	assert.Equal(t, ConfirmDiscard, snap.Pending.Kind)
	assert.Len(t, snap.Session.Exercises[1].Logs, 3)

	snap, err = e.Confirm(snap.Pending.ID)
	require.NoError(t, err)
	require.Len(t, snap.Session.Exercises[1].Logs, 1)
	assert.True(t, snap.Session.Exercises[1].Logs[0].Completed)
	assert.Equal(t, 1, snap.Session.Exercises[1].Sets)
}

func TestQueueOpsBlockedWhileTransitioning(t *testing.T) {
	h := newHarness()
	e := h.start(t, exercise("a", 1), exercise("b", 1), exercise("c", 1))
	_, err := e.CompleteSet("a", 0)
	require.NoError(t, err)
	require.Equal(t, models.PhaseTransitioning, e.Snapshot().Phase)

	_, err = e.Reorder(0, 1)
	assert.ErrorIs(t, err, ErrTransitioning)
	_, err = e.DeleteExercise("c")
	assert.ErrorIs(t, err, ErrTransitioning)
}

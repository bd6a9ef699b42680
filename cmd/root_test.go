package cmd

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/misterclayt0n/gymtrack/internal/models"
	"github.com/misterclayt0n/gymtrack/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndex(t *testing.T) {
	i, err := parseIndex("1", "set", 3)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	i, err = parseIndex("3", "set", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	for _, bad := range []string{"0", "4", "-1", "x", ""} {
		_, err := parseIndex(bad, "set", 3)
		assert.Error(t, err, bad)
	}
}

func TestParseDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	want := time.Date(2026, 2, 7, 0, 0, 0, 0, loc)

	for _, in := range []string{"2026-02-07", "07/02/2026", "07/02/26"} {
		got, err := parseDay(in, loc)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	_, err = parseDay("Feb 7", loc)
	assert.Error(t, err)

	today, err := parseDay("today", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Now().In(loc).Day(), today.Day())
}

func TestConfirm(t *testing.T) {
	assert.True(t, confirm(strings.NewReader("y\n"), "ok?"))
	assert.True(t, confirm(strings.NewReader(" YES \n"), "ok?"))
	assert.False(t, confirm(strings.NewReader("n\n"), "ok?"))
	assert.False(t, confirm(strings.NewReader(""), "ok?"))
}

func TestDeleteSession(t *testing.T) {
	st, err := storage.Open(filepath.Join(t.TempDir(), "gymtrack.db"))
	require.NoError(t, err)
	defer st.Close()

	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	require.NoError(t, st.AppendSession(models.WorkoutSession{
		ID:        "s1",
		WorkoutID: "w1",
		Name:      "Legs",
		StartTime: start,
		EndTime:   &end,
		Exercises: []models.ExerciseSession{{
			Exercise: models.Exercise{ID: "a", Name: "Squat", Sets: 1, Reps: "5"},
			Logs:     []models.SetLog{{ID: "l1", Weight: 100, Reps: 5, Completed: true}},
		}},
	}))

	require.NoError(t, deleteSession(st, "s1", time.UTC, strings.NewReader("n\n"), false))
	_, err = st.GetSession("s1")
	require.NoError(t, err, "declined prompt keeps the session")

	require.NoError(t, deleteSession(st, "s1", time.UTC, strings.NewReader("y\n"), false))
	_, err = st.GetSession("s1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, deleteSession(st, "s1", time.UTC, strings.NewReader(""), true), storage.ErrNotFound)
}

package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/misterclayt0n/gymtrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "gymtrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

const pushDay = `
name = "Push Day"

[[exercise]]
name = "Barbell Bench Press"
sets = 4
reps = "6-8"

[[exercise]]
name = "lateral raise"

[[exercise]]
name = "Treadmill"
sets = 3

[[exercise]]
name = "Jump Rope"
cardio = true
`

func TestOpenCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "sub", "gymtrack.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, "sub"))
	assert.NoError(t, err)
	assert.NoError(t, initializeDB(s.DB), "schema creation is idempotent")
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("libsql://gym-me.turso.io?authToken=x"))
	assert.True(t, IsRemote("https://gym-me.turso.io"))
	assert.False(t, IsRemote("file:./local.db"))
	assert.False(t, IsRemote("/home/me/.local/share/gymtrack/gymtrack.db"))
}

func TestParseWorkout(t *testing.T) {
	w, err := ParseWorkout([]byte(pushDay))
	require.NoError(t, err)
	assert.Equal(t, "Push Day", w.Name)
	require.Len(t, w.Exercises, 4)

	bench := w.Exercises[0]
	assert.Equal(t, 4, bench.Sets)
	assert.Equal(t, "6-8", bench.Reps)
	assert.False(t, bench.IsCardio)
	assert.NotEmpty(t, bench.ImageURL)

	raise := w.Exercises[1]
	assert.Equal(t, "lateral raise", raise.Name)
	assert.Equal(t, 3, raise.Sets)
	assert.Equal(t, "8-12", raise.Reps)

	treadmill := w.Exercises[2]
	assert.True(t, treadmill.IsCardio)
	assert.Equal(t, 1, treadmill.Sets, "cardio ignores sets")
	assert.Equal(t, "20 min", treadmill.Reps)

	rope := w.Exercises[3]
	assert.True(t, rope.IsCardio)
	assert.Equal(t, 1, rope.Sets)
	assert.Empty(t, rope.ImageURL)

	assert.NotEqual(t, w.Exercises[0].ID, w.Exercises[1].ID)
}

func TestParseWorkoutRejects(t *testing.T) {
	for name, data := range map[string]string{
		"no name":      "[[exercise]]\nname = \"Plank\"\n",
		"no exercises": "name = \"Empty\"\n",
		"nameless":     "name = \"X\"\n[[exercise]]\nsets = 3\n",
		"bad toml":     "name = ",
		"negative":     "name = \"X\"\n[[exercise]]\nname = \"Plank\"\nsets = -1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseWorkout([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestWorkoutCRUD(t *testing.T) {
	s := newTestStorage(t)
	w, err := ParseWorkout([]byte(pushDay))
	require.NoError(t, err)
	require.NoError(t, s.SaveWorkout(&w, false))

	got, err := s.GetWorkout("push day")
	require.NoError(t, err)
	assert.Equal(t, w.ID, got.ID)
	assert.Equal(t, w.Exercises, got.Exercises)

	byID, err := s.GetWorkout(w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Push Day", byID.Name)

	again, err := ParseWorkout([]byte("name = \"Push Day\"\n[[exercise]]\nname = \"Plank\"\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, s.SaveWorkout(&again, false), ErrWorkoutExists)

	require.NoError(t, s.SaveWorkout(&again, true))
	assert.Equal(t, w.ID, again.ID, "replace keeps the id")
	got, err = s.GetWorkout("Push Day")
	require.NoError(t, err)
	require.Len(t, got.Exercises, 1)
	assert.Equal(t, "Plank", got.Exercises[0].Name)

	legs, err := ParseWorkout([]byte("name = \"Leg Day\"\n[[exercise]]\nname = \"Hack Squat\"\n"))
	require.NoError(t, err)
	require.NoError(t, s.SaveWorkout(&legs, false))

	all, err := s.ListWorkouts()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Leg Day", all[0].Name)
	assert.Len(t, all[1].Exercises, 1)

	require.NoError(t, s.DeleteWorkout("leg day"))
	_, err = s.GetWorkout("Leg Day")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteWorkout("Leg Day"), ErrNotFound)
}

func finishedSession(id string, start time.Time) models.WorkoutSession {
	end := start.Add(45 * time.Minute)
	return models.WorkoutSession{
		ID:        id,
		WorkoutID: "w1",
		Name:      "Push Day",
		StartTime: start,
		EndTime:   &end,
		Exercises: []models.ExerciseSession{
			{
				Exercise: models.Exercise{ID: "a", Name: "Barbell Bench Press", Sets: 2, Reps: "8"},
				Logs: []models.SetLog{
					{ID: "set-a-0", Weight: 60, Reps: 8, Completed: true},
					{ID: "set-a-1", Weight: 62.5, Reps: 6, Completed: false},
				},
			},
			{
				Exercise: models.Exercise{ID: "b", Name: "Treadmill", Sets: 1, Reps: "20 min", IsCardio: true},
				Logs:     []models.SetLog{{ID: "set-b-0", Reps: 1200, Completed: true}},
			},
		},
	}
}

func TestAppendAndListSessions(t *testing.T) {
	s := newTestStorage(t)
	day := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	older := finishedSession("s1", day.AddDate(0, 0, -2))
	newer := finishedSession("s2", day)
	require.NoError(t, s.AppendSession(older))
	require.NoError(t, s.AppendSession(newer))
	assert.Error(t, s.AppendSession(newer), "appending twice fails")

	running := finishedSession("s3", day)
	running.EndTime = nil
	assert.Error(t, s.AppendSession(running))

	sessions, err := s.ListSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s2", sessions[0].ID)
	assert.True(t, sessions[0].StartTime.Equal(day))
	require.NotNil(t, sessions[0].EndTime)
	assert.True(t, sessions[0].EndTime.Equal(*newer.EndTime))
	assert.Equal(t, newer.Exercises, sessions[0].Exercises)

	got, err := s.GetSession("s1")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, got.Duration())

	require.NoError(t, s.DeleteSession("s1"))
	_, err = s.GetSession("s1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteSession("s1"), ErrNotFound)
}

func checkpoint() models.SessionState {
	ws := finishedSession("s1", time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	ws.EndTime = nil
	return models.SessionState{Session: ws, CurrentExerciseIndex: 1, Phase: models.PhaseResting, CardioSeconds: 42}
}

func assertCheckpoint(t *testing.T, want, got models.SessionState) {
	t.Helper()
	assert.True(t, want.Session.StartTime.Equal(got.Session.StartTime))
	assert.Nil(t, got.Session.EndTime)
	assert.Equal(t, want.Session.Exercises, got.Session.Exercises)
	assert.Equal(t, want.CurrentExerciseIndex, got.CurrentExerciseIndex)
	assert.Equal(t, want.Phase, got.Phase)
	assert.Equal(t, want.CardioSeconds, got.CardioSeconds)
}

func TestKeyValue(t *testing.T) {
	s := newTestStorage(t)
	var got models.SessionState

	ok, err := s.Load("active_session", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	want := checkpoint()
	require.NoError(t, s.Save("active_session", want))
	want.CardioSeconds = 50
	require.NoError(t, s.Save("active_session", want))

	ok, err = s.Load("active_session", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assertCheckpoint(t, want, got)

	require.NoError(t, s.Delete("active_session"))
	ok, err = s.Load("active_session", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckpointDir(t *testing.T) {
	c := CheckpointDir{Dir: filepath.Join(t.TempDir(), "state")}
	var got models.SessionState

	ok, err := c.Load("active_session", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, c.Delete("active_session"), "deleting a missing key is fine")

	want := checkpoint()
	require.NoError(t, c.Save("active_session", want))
	_, err = os.Stat(filepath.Join(c.Dir, "active_session.toml"))
	require.NoError(t, err)

	ok, err = c.Load("active_session", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assertCheckpoint(t, want, got)

	require.NoError(t, c.Delete("active_session"))
	ok, err = c.Load("active_session", &models.SessionState{})
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Error(t, c.Save("../escape", want))
}

func TestExportImport(t *testing.T) {
	for _, name := range []string{"dump.toml", "dump.yaml"} {
		t.Run(name, func(t *testing.T) {
			s := newTestStorage(t)
			w, err := ParseWorkout([]byte(pushDay))
			require.NoError(t, err)
			require.NoError(t, s.SaveWorkout(&w, false))
			require.NoError(t, s.AppendSession(finishedSession("s1", time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))))

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, s.ExportToFile(path))

			require.NoError(t, s.Reset())
			sessions, err := s.ListSessions()
			require.NoError(t, err)
			assert.Empty(t, sessions)

			require.NoError(t, s.ImportFromFile(path))
			sessions, err = s.ListSessions()
			require.NoError(t, err)
			require.Len(t, sessions, 1)
			assert.Equal(t, finishedSession("s1", time.Time{}).Exercises, sessions[0].Exercises)

			got, err := s.GetWorkout("Push Day")
			require.NoError(t, err)
			assert.Equal(t, w.Exercises, got.Exercises)
		})
	}
}

func TestImportRejectsUnknownTable(t *testing.T) {
	s := newTestStorage(t)
	err := s.Import(Dump{"users": {{"id": "x"}}})
	assert.Error(t, err)
}

func TestExerciseRecord(t *testing.T) {
	s := newTestStorage(t)
	day := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	require.NoError(t, s.AppendSession(finishedSession("s1", day.AddDate(0, 0, -7))))
	later := finishedSession("s2", day)
	later.Exercises[0].Logs[1] = models.SetLog{ID: "set-a-1", Weight: 70, Reps: 5, Completed: true}
	require.NoError(t, s.AppendSession(later))

	rec, err := s.GetExerciseRecord("barbell bench press")
	require.NoError(t, err)
	assert.Equal(t, "Barbell Bench Press", rec.Name)
	assert.Equal(t, 2, rec.Sessions)
	assert.Equal(t, 3, rec.CompletedSets)
	assert.True(t, rec.LastPerformed.Equal(day))
	require.NotNil(t, rec.BestSet)
	assert.Equal(t, 70.0, rec.BestSet.Weight)
	assert.InDelta(t, 81.67, rec.EstimatedOneRM, 0.01)

	cardio, err := s.GetExerciseRecord("Treadmill")
	require.NoError(t, err)
	assert.Nil(t, cardio.BestSet)
	assert.Equal(t, 2, cardio.CompletedSets)

	_, err = s.GetExerciseRecord("Deadlift")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPreviousPerformance(t *testing.T) {
	s := newTestStorage(t)
	day := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	prev, err := s.GetPreviousPerformance("Barbell Bench Press")
	require.NoError(t, err)
	assert.Nil(t, prev)

	require.NoError(t, s.AppendSession(finishedSession("s2", day)))
	require.NoError(t, s.AppendSession(finishedSession("s1", day.AddDate(0, 0, -7))))

	prev, err = s.GetPreviousPerformance("barbell bench press")
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, "s2", prev.SessionID)
	assert.True(t, prev.Date.Equal(day))
	require.Len(t, prev.Logs, 2)
	assert.Equal(t, 60.0, prev.Logs[0].Weight)
}

func TestReset(t *testing.T) {
	s := newTestStorage(t)
	w, err := ParseWorkout([]byte(pushDay))
	require.NoError(t, err)
	require.NoError(t, s.SaveWorkout(&w, false))
	require.NoError(t, s.Save("active_session", map[string]int{"index": 1}))

	require.NoError(t, s.Reset())

	workouts, err := s.ListWorkouts()
	require.NoError(t, err)
	assert.Empty(t, workouts)

	var v map[string]int
	ok, err := s.Load("active_session", &v)
	require.NoError(t, err)
	assert.False(t, ok)
}

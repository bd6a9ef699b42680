package stats

import (
	"testing"
	"time"

	"github.com/misterclayt0n/gymtrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func session(id, workoutID string, start time.Time, minutes int) models.WorkoutSession {
	end := start.Add(time.Duration(minutes) * time.Minute)
	return models.WorkoutSession{
		ID:        id,
		WorkoutID: workoutID,
		Name:      "Session " + id,
		StartTime: start,
		EndTime:   &end,
		Exercises: []models.ExerciseSession{
			{
				Exercise: models.Exercise{ID: "a", Name: "Bench", Sets: 3},
				Logs: []models.SetLog{
					{Weight: 50, Reps: 10, Completed: true},
					{Weight: 60, Reps: 8, Completed: true},
					{Weight: 100, Reps: 10},
				},
			},
			{
				Exercise: models.Exercise{ID: "b", Name: "Treadmill", Sets: 1, IsCardio: true},
				Logs:     []models.SetLog{{Reps: 600, Completed: true}},
			},
		},
	}
}

var now = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC) // a Wednesday

func TestSummarize(t *testing.T) {
	sessions := []models.WorkoutSession{
		session("1", "w1", now.Add(-2*time.Hour), 60),
		session("2", "w2", now.AddDate(0, 0, -7), 45),
	}
	sum := Summarize(sessions, now, time.UTC)
	assert.Equal(t, 2, sum.Workouts)
	assert.Equal(t, 105*time.Minute, sum.Duration)
	assert.Equal(t, 20*time.Minute, sum.CardioTime)
	assert.Equal(t, 2*980.0, sum.WeightLifted)
	assert.Equal(t, 2, sum.WeekStreak)
}

func TestWeekStreakBreaks(t *testing.T) {
	sessions := []models.WorkoutSession{
		session("1", "w1", now, 30),
		session("2", "w1", now.AddDate(0, 0, -14), 30),
	}
	assert.Equal(t, 1, WeekStreak(sessions, now, time.UTC))
	assert.Zero(t, WeekStreak(sessions[1:], now, time.UTC))
	assert.Zero(t, WeekStreak(nil, now, time.UTC))
}

func TestDays(t *testing.T) {
	morning := time.Date(2026, 3, 18, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 18, 19, 0, 0, 0, time.UTC)
	sessions := []models.WorkoutSession{
		session("1", "w1", morning, 30),
		session("2", "w2", evening, 30),
		session("3", "w1", morning.AddDate(0, 0, -1), 30),
	}

	days := WorkoutDays(sessions, time.UTC)
	assert.Equal(t, map[string]bool{"2026-03-18": true, "2026-03-17": true}, days)

	onDay := OnDay(sessions, now, time.UTC)
	require.Len(t, onDay, 2)
	assert.Equal(t, "2", onDay[0].ID, "latest first")

	assert.True(t, TrainedToday(sessions, "w2", now, time.UTC))
	assert.False(t, TrainedToday(sessions, "w3", now, time.UTC))

	recent := Recent(sessions, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, []string{"2", "1"}, []string{recent[0].ID, recent[1].ID})
}

func TestBestSet(t *testing.T) {
	s := session("1", "w1", now, 30)
	best, rm, ok := BestSet(s.Exercises[0])
	require.True(t, ok)
	assert.Equal(t, 60.0, best.Weight, "incomplete heavier set is ignored")
	assert.InDelta(t, 76.0, rm, 0.01)

	_, _, ok = BestSet(s.Exercises[1])
	assert.False(t, ok)
}

func TestLayoutMonth(t *testing.T) {
	// March 2026 starts on a Sunday.
	m := LayoutMonth(2026, time.March, time.UTC)
	require.Len(t, m.Weeks, 5)
	assert.Equal(t, [7]int{1, 2, 3, 4, 5, 6, 7}, m.Weeks[0])
	assert.Equal(t, [7]int{29, 30, 31, 0, 0, 0, 0}, m.Weeks[4])

	// February 2026 starts on a Sunday too and has exactly four weeks.
	assert.Len(t, LayoutMonth(2026, time.February, time.UTC).Weeks, 4)
}

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/misterclayt0n/gymtrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() models.WorkoutSession {
	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	end := start.Add(65 * time.Minute)
	return models.WorkoutSession{
		ID:        "s1",
		Name:      "Push Day",
		StartTime: start,
		EndTime:   &end,
		Exercises: []models.ExerciseSession{
			{
				Exercise: models.Exercise{ID: "a", Name: "Bench Press", Sets: 2, Reps: "8"},
				Logs: []models.SetLog{
					{Weight: 60, Reps: 8, Completed: true},
					{Weight: 62.5, Reps: 6},
				},
			},
			{
				Exercise: models.Exercise{ID: "b", Name: "Treadmill", Sets: 1, IsCardio: true},
				Logs:     []models.SetLog{{Reps: 1230, Completed: true}},
			},
		},
	}
}

func TestSummary(t *testing.T) {
	want := "** Workout: Push Day **\n" +
		"Date: 14/03/2026\n" +
		"Duration: 1h 5m\n\n" +
		"* Bench Press\n" +
		"  - Set 1: 60kg x 8 reps\n\n" +
		"* Treadmill\n" +
		"  - Time: 20:30\n\n"
	assert.Equal(t, want, Summary(sampleSession(), time.UTC))
}

func TestFileName(t *testing.T) {
	s := sampleSession()
	assert.Equal(t, "Workout-Report-Push_Day-14-03-2026.pdf", FileName(s, time.UTC))

	s.Name = "Legs / Glutes"
	assert.Equal(t, "Workout-Report-Legs___Glutes-14-03-2026.pdf", FileName(s, time.UTC))
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, sampleSession(), time.UTC))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	path, err := WritePDF(dir, sampleSession(), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Workout-Report-Push_Day-14-03-2026.pdf"), path)

	qr, err := WriteQRCode(dir, sampleSession(), time.UTC)
	require.NoError(t, err)
	data, err := os.ReadFile(qr)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

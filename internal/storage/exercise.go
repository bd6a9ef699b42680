package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/misterclayt0n/gymtrack/internal/models"
	"github.com/misterclayt0n/gymtrack/internal/utils"
)

// ExerciseRecord is what history knows about one exercise, matched by name.
type ExerciseRecord struct {
	Name           string
	Sessions       int
	CompletedSets  int
	LastPerformed  time.Time
	BestSet        *models.SetLog
	EstimatedOneRM float64
}

// GetExerciseRecord aggregates the recorded sessions that contain an exercise named name.
// Only completed sets count. Returns ErrNotFound if the exercise was never recorded.
func (s *Storage) GetExerciseRecord(name string) (*ExerciseRecord, error) {
	ctx := context.Background()
	rec := ExerciseRecord{Name: name}

	rows, err := s.DB.QueryContext(ctx, `
        SELECT se.name, ts.start_time
        FROM session_exercises se
        JOIN training_sessions ts ON ts.id = se.session_id
        WHERE se.name = ? COLLATE NOCASE`, name)
	if err != nil {
		return nil, fmt.Errorf("Failed to query exercise history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var started string
		if err := rows.Scan(&rec.Name, &started); err != nil {
			return nil, fmt.Errorf("Failed to scan exercise history: %w", err)
		}
		rec.Sessions++
		t, err := time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("Invalid start time %q: %w", started, err)
		}
		if t.After(rec.LastPerformed) {
			rec.LastPerformed = t
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if rec.Sessions == 0 {
		return nil, fmt.Errorf("Exercise %q: %w", name, ErrNotFound)
	}

	err = s.DB.QueryRowContext(ctx, `
        SELECT COUNT(*)
        FROM set_logs sl
        JOIN session_exercises se ON se.id = sl.session_exercise_id
        WHERE se.name = ? COLLATE NOCASE AND sl.completed = 1`, name).Scan(&rec.CompletedSets)
	if err != nil {
		return nil, fmt.Errorf("Failed to count sets: %w", err)
	}

	// Best set by Epley estimate; cardio logs hold seconds and never qualify.
	var best models.SetLog
	err = s.DB.QueryRowContext(ctx, `
        SELECT sl.log_id, sl.weight, sl.reps
        FROM set_logs sl
        JOIN session_exercises se ON se.id = sl.session_exercise_id
        WHERE se.name = ? COLLATE NOCASE
          AND se.is_cardio = 0
          AND sl.completed = 1
          AND sl.weight > 0 AND sl.reps > 0
        ORDER BY sl.weight * (1 + sl.reps / 30.0) DESC
        LIMIT 1`, name).Scan(&best.ID, &best.Weight, &best.Reps)
	if err == nil {
		best.Completed = true
		rec.BestSet = &best
		rec.EstimatedOneRM = utils.CalculateEpley1RM(best.Weight, best.Reps)
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("Failed to query best set: %w", err)
	}

	return &rec, nil
}

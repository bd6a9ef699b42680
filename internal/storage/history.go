package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/gymtrack/internal/models"
)

// AppendSession records a finished session. Appending the same session twice is an error.
func (s *Storage) AppendSession(ws models.WorkoutSession) error {
	if ws.EndTime == nil {
		return fmt.Errorf("Session %s has no end time", ws.ID)
	}

	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO training_sessions (id, workout_id, name, start_time, end_time)
         VALUES (?, ?, ?, ?, ?)`,
		ws.ID,
		ws.WorkoutID,
		ws.Name,
		ws.StartTime.UTC().Format(time.RFC3339Nano),
		ws.EndTime.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("Failed to create training session: %w", err)
	}

	for i, ex := range ws.Exercises {
		rowID := uuid.New().String()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO session_exercises
             (id, session_id, position, exercise_id, name, sets, reps, image_url, is_cardio)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rowID, ws.ID, i, ex.ID, ex.Name, ex.Sets, ex.Reps, ex.ImageURL, boolToInt(ex.IsCardio),
		)
		if err != nil {
			return fmt.Errorf("Failed to create session exercise: %w", err)
		}

		for j, l := range ex.Logs {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO set_logs
                 (id, session_exercise_id, position, log_id, weight, reps, completed)
                 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				uuid.New().String(), rowID, j, l.ID, l.Weight, l.Reps, boolToInt(l.Completed),
			)
			if err != nil {
				return fmt.Errorf("Failed to save set: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Failed to commit transaction: %w", err)
	}
	return nil
}

// ListSessions returns every recorded session, latest first.
func (s *Storage) ListSessions() ([]models.WorkoutSession, error) {
	rows, err := s.DB.Query(
		`SELECT id, COALESCE(workout_id, ''), name, start_time, end_time
         FROM training_sessions
         ORDER BY start_time DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to query sessions: %w", err)
	}

	var sessions []models.WorkoutSession
	for rows.Next() {
		ws, err := scanSession(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		sessions = append(sessions, ws)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sessions {
		if err := s.loadSessionExercises(&sessions[i]); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// GetSession loads one recorded session.
func (s *Storage) GetSession(id string) (*models.WorkoutSession, error) {
	row := s.DB.QueryRow(
		`SELECT id, COALESCE(workout_id, ''), name, start_time, end_time
         FROM training_sessions WHERE id = ?`,
		id,
	)
	ws, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: session %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadSessionExercises(&ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(r scanner) (models.WorkoutSession, error) {
	var ws models.WorkoutSession
	var start string
	var end sql.NullString
	if err := r.Scan(&ws.ID, &ws.WorkoutID, &ws.Name, &start, &end); err != nil {
		return ws, fmt.Errorf("Failed to scan session: %w", err)
	}
	ws.StartTime, _ = time.Parse(time.RFC3339Nano, start)
	if end.Valid {
		t, err := time.Parse(time.RFC3339Nano, end.String)
		if err == nil {
			ws.EndTime = &t
		}
	}
	return ws, nil
}

func (s *Storage) loadSessionExercises(ws *models.WorkoutSession) error {
	rows, err := s.DB.Query(
		`SELECT id, exercise_id, name, sets, reps, COALESCE(image_url, ''), is_cardio
         FROM session_exercises WHERE session_id = ?
         ORDER BY position`,
		ws.ID,
	)
	if err != nil {
		return fmt.Errorf("Failed to query session exercises: %w", err)
	}

	var rowIDs []string
	for rows.Next() {
		var rowID string
		var ex models.ExerciseSession
		var cardio int
		if err := rows.Scan(&rowID, &ex.ID, &ex.Name, &ex.Sets, &ex.Reps, &ex.ImageURL, &cardio); err != nil {
			rows.Close()
			return fmt.Errorf("Failed to scan session exercise: %w", err)
		}
		ex.IsCardio = cardio == 1
		rowIDs = append(rowIDs, rowID)
		ws.Exercises = append(ws.Exercises, ex)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for i, rowID := range rowIDs {
		logs, err := s.setLogs(rowID)
		if err != nil {
			return err
		}
		ws.Exercises[i].Logs = logs
	}
	return nil
}

func (s *Storage) setLogs(sessionExerciseID string) ([]models.SetLog, error) {
	rows, err := s.DB.Query(
		`SELECT log_id, weight, reps, completed
         FROM set_logs WHERE session_exercise_id = ?
         ORDER BY position`,
		sessionExerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to query sets: %w", err)
	}
	defer rows.Close()

	logs := []models.SetLog{}
	for rows.Next() {
		var l models.SetLog
		var completed int
		if err := rows.Scan(&l.ID, &l.Weight, &l.Reps, &completed); err != nil {
			return nil, fmt.Errorf("Failed to scan set: %w", err)
		}
		l.Completed = completed == 1
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// DeleteSession removes a recorded session and its sets.
func (s *Storage) DeleteSession(id string) error {
	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM training_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("Failed to delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: session %q", ErrNotFound, id)
	}
	_, err = tx.ExecContext(ctx,
		`DELETE FROM set_logs WHERE session_exercise_id IN
         (SELECT id FROM session_exercises WHERE session_id = ?)`, id)
	if err != nil {
		return fmt.Errorf("Failed to delete sets: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM session_exercises WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("Failed to delete session exercises: %w", err)
	}
	return tx.Commit()
}

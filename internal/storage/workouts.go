package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/misterclayt0n/gymtrack/internal/library"
	"github.com/misterclayt0n/gymtrack/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrWorkoutExists = errors.New("workout already exists")
)

// ParseWorkout reads a workout definition from TOML. Targets left out are filled from the
// exercise library; cardio exercises always get one set.
func ParseWorkout(tomlData []byte) (models.Workout, error) {
	var wt models.WorkoutTOML
	if err := toml.Unmarshal(tomlData, &wt); err != nil {
		return models.Workout{}, fmt.Errorf("Invalid TOML format: %w", err)
	}

	wt.Name = strings.TrimSpace(wt.Name)
	if wt.Name == "" {
		return models.Workout{}, fmt.Errorf("Workout name is required")
	}
	if len(wt.Exercises) == 0 {
		return models.Workout{}, fmt.Errorf("Workout %q has no exercises", wt.Name)
	}

	w := models.Workout{
		ID:        uuid.New().String(),
		Name:      wt.Name,
		CreatedAt: time.Now().UTC(),
	}
	for i, et := range wt.Exercises {
		name := strings.TrimSpace(et.Name)
		if name == "" {
			return models.Workout{}, fmt.Errorf("Exercise %d of %q has no name", i+1, wt.Name)
		}

		entry, known := library.Lookup(name)
		if !known {
			entry = library.Entry{Name: name}
		}
		sets, reps := entry.Targets()

		ex := models.Exercise{
			ID:       uuid.New().String(),
			Name:     name,
			Sets:     sets,
			Reps:     reps,
			ImageURL: entry.ImageURL,
			IsCardio: entry.IsCardio(),
		}
		if et.Cardio != nil {
			ex.IsCardio = *et.Cardio
			if ex.IsCardio && !entry.IsCardio() {
				ex.Sets, ex.Reps = 1, library.DefaultCardioReps
			}
		}
		if et.Sets > 0 && !ex.IsCardio {
			ex.Sets = et.Sets
		}
		if et.Sets < 0 {
			return models.Workout{}, fmt.Errorf("Exercise %q: sets must be positive", name)
		}
		if et.Reps != "" {
			ex.Reps = et.Reps
		}
		if et.ImageURL != "" {
			ex.ImageURL = et.ImageURL
		}
		w.Exercises = append(w.Exercises, ex)
	}
	return w, nil
}

// SaveWorkout stores w. With replace set, an existing workout of the same name gets the new
// exercise list and keeps its id; otherwise ErrWorkoutExists is returned.
func (s *Storage) SaveWorkout(w *models.Workout, replace bool) error {
	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID, createdAt string
	err = tx.QueryRowContext(ctx, `SELECT id, created_at FROM workouts WHERE name = ?`, w.Name).
		Scan(&existingID, &createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO workouts (id, name, created_at) VALUES (?, ?, ?)`,
			w.ID, w.Name, w.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("Failed to create workout: %w", err)
		}
	case err != nil:
		return fmt.Errorf("Failed to look up workout: %w", err)
	case !replace:
		return fmt.Errorf("%w: %s", ErrWorkoutExists, w.Name)
	default:
		w.ID = existingID
		w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if _, err := tx.ExecContext(ctx, `DELETE FROM workout_exercises WHERE workout_id = ?`, w.ID); err != nil {
			return fmt.Errorf("Failed to clear workout exercises: %w", err)
		}
	}

	for i, ex := range w.Exercises {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO workout_exercises
             (id, workout_id, position, name, sets, reps, image_url, is_cardio)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ex.ID, w.ID, i, ex.Name, ex.Sets, ex.Reps, ex.ImageURL, boolToInt(ex.IsCardio),
		)
		if err != nil {
			return fmt.Errorf("Failed to save exercise %q: %w", ex.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Failed to commit transaction: %w", err)
	}
	return nil
}

// GetWorkout finds a workout by id or by name (case-insensitive).
func (s *Storage) GetWorkout(nameOrID string) (*models.Workout, error) {
	var w models.Workout
	var createdAt string
	err := s.DB.QueryRow(
		`SELECT id, name, created_at FROM workouts
         WHERE id = ? OR name = ? COLLATE NOCASE
         LIMIT 1`,
		nameOrID, nameOrID,
	).Scan(&w.ID, &w.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: workout %q", ErrNotFound, nameOrID)
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to query workout: %w", err)
	}
	w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	w.Exercises, err = s.workoutExercises(w.ID)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Storage) workoutExercises(workoutID string) ([]models.Exercise, error) {
	rows, err := s.DB.Query(
		`SELECT id, name, sets, reps, COALESCE(image_url, ''), is_cardio
         FROM workout_exercises WHERE workout_id = ?
         ORDER BY position`,
		workoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to query workout exercises: %w", err)
	}
	defer rows.Close()

	var out []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		var cardio int
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.Sets, &ex.Reps, &ex.ImageURL, &cardio); err != nil {
			return nil, fmt.Errorf("Failed to scan workout exercise: %w", err)
		}
		ex.IsCardio = cardio == 1
		out = append(out, ex)
	}
	return out, rows.Err()
}

// ListWorkouts returns every workout with its exercises, sorted by name.
func (s *Storage) ListWorkouts() ([]models.Workout, error) {
	rows, err := s.DB.Query(`SELECT id, name, created_at FROM workouts ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("Failed to query workouts: %w", err)
	}

	var workouts []models.Workout
	for rows.Next() {
		var w models.Workout
		var createdAt string
		if err := rows.Scan(&w.ID, &w.Name, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("Failed to scan workout: %w", err)
		}
		w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		workouts = append(workouts, w)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range workouts {
		if workouts[i].Exercises, err = s.workoutExercises(workouts[i].ID); err != nil {
			return nil, err
		}
	}
	return workouts, nil
}

// DeleteWorkout removes a workout definition. Sessions already trained from it stay in history.
func (s *Storage) DeleteWorkout(nameOrID string) error {
	w, err := s.GetWorkout(nameOrID)
	if err != nil {
		return err
	}

	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM workout_exercises WHERE workout_id = ?`, w.ID); err != nil {
		return fmt.Errorf("Failed to delete workout exercises: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, w.ID); err != nil {
		return fmt.Errorf("Failed to delete workout: %w", err)
	}
	return tx.Commit()
}

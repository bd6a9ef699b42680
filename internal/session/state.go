package session

import (
	"fmt"
	"time"

	"github.com/misterclayt0n/gymtrack/internal/models"
)

// The functions in this file are pure: each takes a session and returns a new one. The input
// is never modified, and on error the returned session is the zero value.

// NewWorkoutSession seeds a session from a workout definition. Every exercise gets one empty
// log per target set, cardio exercises get exactly one.
func NewWorkoutSession(w models.Workout, now time.Time, id string) (models.WorkoutSession, error) {
	if len(w.Exercises) == 0 {
		return models.WorkoutSession{}, fmt.Errorf("%w: workout %q has no exercises", ErrInvalidState, w.Name)
	}

	seen := make(map[string]bool, len(w.Exercises))
	exercises := make([]models.ExerciseSession, 0, len(w.Exercises))
	for _, ex := range w.Exercises {
		if seen[ex.ID] {
			return models.WorkoutSession{}, fmt.Errorf("%w: duplicate exercise id %q in workout %q", ErrInvalidState, ex.ID, w.Name)
		}
		seen[ex.ID] = true

		n := ex.Sets
		if ex.IsCardio || n < 1 {
			n = 1
		}
		exercises = append(exercises, models.ExerciseSession{
			Exercise: ex,
			Logs:     appendEmptyLogs(nil, ex.ID, n),
		})
	}

	return models.WorkoutSession{
		ID:        id,
		WorkoutID: w.ID,
		Name:      w.Name,
		StartTime: now,
		Exercises: exercises,
	}, nil
}

func appendEmptyLogs(logs []models.SetLog, exerciseID string, upTo int) []models.SetLog {
	for i := len(logs); i < upTo; i++ {
		logs = append(logs, models.SetLog{ID: fmt.Sprintf("set-%s-%d", exerciseID, i)})
	}
	return logs
}

// locate resolves an exercise id and set index, reporting ErrInvalidReference on a miss.
func locate(s models.WorkoutSession, exerciseID string, setIndex int) (int, error) {
	i := s.IndexOf(exerciseID)
	if i < 0 {
		return -1, unknownExercise(exerciseID)
	}
	ex := s.Exercises[i]
	if setIndex < 0 || setIndex >= len(ex.Logs) {
		return -1, setOutOfRange(ex.Name, setIndex, len(ex.Logs))
	}
	return i, nil
}

// LogChange writes v into a set and pre-fills every later set that is not completed yet.
func LogChange(s models.WorkoutSession, exerciseID string, setIndex int, v FieldValue) (models.WorkoutSession, error) {
	if err := v.validate(); err != nil {
		return models.WorkoutSession{}, err
	}
	i, err := locate(s, exerciseID, setIndex)
	if err != nil {
		return models.WorkoutSession{}, err
	}
	if s.Exercises[i].Logs[setIndex].Completed {
		return models.WorkoutSession{}, fmt.Errorf("%w: set %d of %q is already completed", ErrInvalidState, setIndex+1, s.Exercises[i].Name)
	}

	out := s.Clone()
	out.Exercises[i].Logs = PropagateForward(out.Exercises[i].Logs, setIndex, v)
	return out, nil
}

// CompleteSet marks a strength set as done, keeping the weight and reps last entered.
func CompleteSet(s models.WorkoutSession, exerciseID string, setIndex int) (models.WorkoutSession, error) {
	i, err := locate(s, exerciseID, setIndex)
	if err != nil {
		return models.WorkoutSession{}, err
	}
	ex := s.Exercises[i]
	if ex.IsCardio {
		return models.WorkoutSession{}, fmt.Errorf("%w: %q is cardio, record its duration instead", ErrInvalidState, ex.Name)
	}
	if ex.Logs[setIndex].Completed {
		return models.WorkoutSession{}, fmt.Errorf("%w: set %d of %q is already completed", ErrInvalidState, setIndex+1, ex.Name)
	}

	out := s.Clone()
	out.Exercises[i].Logs[setIndex].Completed = true
	return out, nil
}

// CompleteCardioSet marks the cardio log as done and stores the elapsed seconds in Reps.
func CompleteCardioSet(s models.WorkoutSession, exerciseID string, setIndex, elapsedSeconds int) (models.WorkoutSession, error) {
	i, err := locate(s, exerciseID, setIndex)
	if err != nil {
		return models.WorkoutSession{}, err
	}
	ex := s.Exercises[i]
	if !ex.IsCardio {
		return models.WorkoutSession{}, fmt.Errorf("%w: %q is not a cardio exercise", ErrInvalidState, ex.Name)
	}
	if ex.Logs[setIndex].Completed {
		return models.WorkoutSession{}, fmt.Errorf("%w: %q is already completed", ErrInvalidState, ex.Name)
	}
	if elapsedSeconds < 0 {
		return models.WorkoutSession{}, fmt.Errorf("%w: elapsed time must not be negative", ErrInvalidState)
	}

	out := s.Clone()
	log := &out.Exercises[i].Logs[setIndex]
	log.Reps = elapsedSeconds
	log.Completed = true
	return out, nil
}

// ResizeExercise changes the target sets and reps of an exercise. Growing appends fresh logs;
// shrinking drops trailing logs and refuses to drop a completed one unless allowDiscard is set.
// An empty newReps keeps the current label. Cardio exercises keep their single log and only
// take the new label.
func ResizeExercise(s models.WorkoutSession, exerciseID string, newSets int, newReps string, allowDiscard bool) (models.WorkoutSession, error) {
	i := s.IndexOf(exerciseID)
	if i < 0 {
		return models.WorkoutSession{}, unknownExercise(exerciseID)
	}

	out := s.Clone()
	ex := &out.Exercises[i]
	if newReps != "" {
		ex.Reps = newReps
	}
	if ex.IsCardio {
		return out, nil
	}
	if newSets < 1 {
		return models.WorkoutSession{}, fmt.Errorf("%w: %q needs at least one set (got %d)", ErrInvalidState, ex.Name, newSets)
	}

	if newSets < len(ex.Logs) {
		if !allowDiscard && DiscardsCompleted(s, exerciseID, newSets) {
			return models.WorkoutSession{}, ErrDiscardsCompleted
		}
		ex.Logs = ex.Logs[:newSets]
	} else {
		ex.Logs = appendEmptyLogs(ex.Logs, ex.ID, newSets)
	}
	ex.Sets = newSets
	return out, nil
}

// DiscardsCompleted reports whether shrinking the exercise to newSets would drop a completed log.
func DiscardsCompleted(s models.WorkoutSession, exerciseID string, newSets int) bool {
	i := s.IndexOf(exerciseID)
	if i < 0 || s.Exercises[i].IsCardio || newSets < 0 {
		return false
	}
	logs := s.Exercises[i].Logs
	for j := newSets; j < len(logs); j++ {
		if logs[j].Completed {
			return true
		}
	}
	return false
}

// ReorderSuffix moves one exercise inside the part of the list after current. from and to are
// relative to that suffix.
func ReorderSuffix(s models.WorkoutSession, current, from, to int) (models.WorkoutSession, error) {
	base := current + 1
	n := len(s.Exercises) - base
	if from < 0 || from >= n || to < 0 || to >= n {
		return models.WorkoutSession{}, fmt.Errorf("%w: reorder %d -> %d outside the %d upcoming exercises", ErrInvalidReference, from, to, max(n, 0))
	}

	out := s.Clone()
	if from == to {
		return out, nil
	}
	moved := out.Exercises[base+from]
	rest := append(out.Exercises[:base+from:base+from], out.Exercises[base+from+1:]...)
	dst := base + to
	out.Exercises = append(rest[:dst:dst], append([]models.ExerciseSession{moved}, rest[dst:]...)...)
	return out, nil
}

// DeleteExercise removes an exercise and returns the index that keeps pointing at the same
// logical exercise. When nothing is left it returns ErrEmptySession along with the empty
// session, and the caller must end the run.
func DeleteExercise(s models.WorkoutSession, current int, exerciseID string) (models.WorkoutSession, int, error) {
	i := s.IndexOf(exerciseID)
	if i < 0 {
		return models.WorkoutSession{}, current, unknownExercise(exerciseID)
	}

	out := s.Clone()
	out.Exercises = append(out.Exercises[:i], out.Exercises[i+1:]...)
	if len(out.Exercises) == 0 {
		return out, 0, ErrEmptySession
	}

	next := current
	if i < current {
		next--
	}
	if next >= len(out.Exercises) {
		next = len(out.Exercises) - 1
	}
	if next < 0 {
		next = 0
	}
	return out, next, nil
}

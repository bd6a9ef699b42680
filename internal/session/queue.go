package session

import (
	"errors"
	"fmt"

	"github.com/misterclayt0n/gymtrack/internal/models"
)

type ConfirmKind string

const (
	ConfirmDelete  ConfirmKind = "delete"
	ConfirmDiscard ConfirmKind = "discard_sets"
)

// Confirmation is a destructive queue edit waiting for Confirm or Reject. Only one can be
// pending at a time; a new request replaces the old one.
type Confirmation struct {
	ID           string
	Kind         ConfirmKind
	ExerciseID   string
	ExerciseName string
	Sets         int
	Reps         string
	Prompt       string
}

// Reorder moves an upcoming exercise. from and to count from the exercise after the current one.
func (e *Engine) Reorder(from, to int) (Snapshot, error) {
	return e.do(false, func() error {
		next, err := ReorderSuffix(e.state, e.current, from, to)
		if err != nil {
			return err
		}
		return e.commit(e.record(next, e.current, e.phase))
	})
}

// EditExercise changes the sets and rep label of an upcoming exercise. When that would drop
// completed logs nothing changes and the returned snapshot carries a pending confirmation.
func (e *Engine) EditExercise(exerciseID string, sets int, reps string) (Snapshot, error) {
	return e.do(false, func() error {
		ex, err := e.upcoming(exerciseID)
		if err != nil {
			return err
		}
		next, err := ResizeExercise(e.state, exerciseID, sets, reps, false)
		if errors.Is(err, ErrDiscardsCompleted) {
			e.pending = &Confirmation{
				ID:           e.opts.NewID(),
				Kind:         ConfirmDiscard,
				ExerciseID:   ex.ID,
				ExerciseName: ex.Name,
				Sets:         sets,
				Reps:         reps,
				Prompt:       fmt.Sprintf("Reducing %s to %d sets discards completed sets. Continue?", ex.Name, sets),
			}
			return nil
		}
		if err != nil {
			return err
		}
		e.pending = nil
		return e.commit(e.record(next, e.current, e.phase))
	})
}

// DeleteExercise asks to remove an upcoming exercise. The removal happens on Confirm.
func (e *Engine) DeleteExercise(exerciseID string) (Snapshot, error) {
	return e.do(false, func() error {
		ex, err := e.upcoming(exerciseID)
		if err != nil {
			return err
		}
		e.pending = &Confirmation{
			ID:           e.opts.NewID(),
			Kind:         ConfirmDelete,
			ExerciseID:   ex.ID,
			ExerciseName: ex.Name,
			Prompt:       fmt.Sprintf("Remove %s from this session?", ex.Name),
		}
		return nil
	})
}

// Confirm applies the pending edit with the given id. The edit is validated again against the
// current state. A delete that empties the session ends it unrecorded and returns
// ErrEmptySession.
func (e *Engine) Confirm(id string) (Snapshot, error) {
	return e.do(false, func() error {
		p := e.pending
		if p == nil || p.ID != id {
			return fmt.Errorf("%w: no pending confirmation %q", ErrInvalidReference, id)
		}
		e.pending = nil
		if _, err := e.upcoming(p.ExerciseID); err != nil {
			return err
		}

		switch p.Kind {
		case ConfirmDelete:
			next, idx, err := DeleteExercise(e.state, e.current, p.ExerciseID)
			if errors.Is(err, ErrEmptySession) {
				if derr := e.opts.Store.Delete(e.opts.Key); derr != nil {
					e.log.Warn("failed to clear the active session", "error", derr)
				}
				e.terminate()
				return err
			}
			if err != nil {
				return err
			}
			e.log.Debug("exercise removed", "exercise", p.ExerciseName)
			return e.commit(e.record(next, idx, e.phase))
		case ConfirmDiscard:
			next, err := ResizeExercise(e.state, p.ExerciseID, p.Sets, p.Reps, true)
			if err != nil {
				return err
			}
			return e.commit(e.record(next, e.current, e.phase))
		}
		return fmt.Errorf("%w: unknown confirmation kind %q", ErrInvalidState, p.Kind)
	})
}

// Reject drops the pending edit.
func (e *Engine) Reject() (Snapshot, error) {
	return e.do(false, func() error {
		if e.pending == nil {
			return fmt.Errorf("%w: nothing to reject", ErrInvalidState)
		}
		e.pending = nil
		return nil
	})
}

// upcoming resolves an exercise that sits after the current one.
func (e *Engine) upcoming(exerciseID string) (models.ExerciseSession, error) {
	i := e.state.IndexOf(exerciseID)
	if i < 0 {
		return models.ExerciseSession{}, unknownExercise(exerciseID)
	}
	if i <= e.current {
		return models.ExerciseSession{}, fmt.Errorf("%w: %q is not an upcoming exercise", ErrInvalidState, e.state.Exercises[i].Name)
	}
	return e.state.Exercises[i], nil
}

package session

import (
	"fmt"

	"github.com/misterclayt0n/gymtrack/internal/models"
)

// FieldValue is a typed value for one editable field of a set log: Weight or Reps.
type FieldValue interface {
	apply(log *models.SetLog)
	validate() error
	String() string
}

// Weight in kilograms.
type Weight float64

// Reps performed. For cardio logs this is elapsed seconds.
type Reps int

func (w Weight) apply(log *models.SetLog) { log.Weight = float64(w) }
func (r Reps) apply(log *models.SetLog)   { log.Reps = int(r) }

func (w Weight) validate() error {
	if w < 0 {
		return fmt.Errorf("%w: weight must not be negative (got %g)", ErrInvalidState, float64(w))
	}
	return nil
}

func (r Reps) validate() error {
	if r < 0 {
		return fmt.Errorf("%w: reps must not be negative (got %d)", ErrInvalidState, int(r))
	}
	return nil
}

func (w Weight) String() string { return fmt.Sprintf("weight=%g", float64(w)) }
func (r Reps) String() string   { return fmt.Sprintf("reps=%d", int(r)) }

// SetField writes v into log. Completed logs are frozen: the call is a no-op and returns false.
func SetField(log *models.SetLog, v FieldValue) bool {
	if log.Completed {
		return false
	}
	v.apply(log)
	return true
}

// PropagateForward returns a copy of logs where v is written into logs[from] and into every
// later log that is not completed. Completed logs are skipped one by one; they never stop the
// propagation. Logs before from are left alone.
func PropagateForward(logs []models.SetLog, from int, v FieldValue) []models.SetLog {
	out := append([]models.SetLog(nil), logs...)
	if from < 0 || from >= len(out) {
		return out
	}
	for i := from; i < len(out); i++ {
		SetField(&out[i], v)
	}
	return out
}

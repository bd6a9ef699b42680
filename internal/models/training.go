package models

import "time"

// Phase is where the session engine currently is.
type Phase string

const (
	PhaseActive        Phase = "active"
	PhaseResting       Phase = "resting"
	PhaseTransitioning Phase = "transitioning"
	PhaseFinished      Phase = "finished"
	PhaseAbandoned     Phase = "abandoned"
)

// WorkoutSession is one timed execution of a workout.
type WorkoutSession struct {
	ID        string            `json:"id" toml:"id" yaml:"id"`
	WorkoutID string            `json:"workout_id" toml:"workout_id" yaml:"workout_id"`
	Name      string            `json:"name" toml:"name" yaml:"name"`
	StartTime time.Time         `json:"start_time" toml:"start_time" yaml:"start_time"`
	EndTime   *time.Time        `json:"end_time,omitempty" toml:"end_time,omitempty" yaml:"end_time,omitempty"`
	Exercises []ExerciseSession `json:"exercises" toml:"exercises" yaml:"exercises"`
}

// Duration returns EndTime - StartTime, or zero while the session is running.
func (s WorkoutSession) Duration() time.Duration {
	if s.EndTime == nil {
		return 0
	}
	d := s.EndTime.Sub(s.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// Clone returns a deep copy, so transforms never share log slices.
func (s WorkoutSession) Clone() WorkoutSession {
	out := s
	if s.EndTime != nil {
		t := *s.EndTime
		out.EndTime = &t
	}
	out.Exercises = make([]ExerciseSession, len(s.Exercises))
	for i, ex := range s.Exercises {
		out.Exercises[i] = ex.Clone()
	}
	return out
}

// IndexOf returns the position of the exercise with the given id, or -1.
func (s WorkoutSession) IndexOf(exerciseID string) int {
	for i, ex := range s.Exercises {
		if ex.ID == exerciseID {
			return i
		}
	}
	return -1
}

// SessionState is the checkpoint of an in-progress session.
type SessionState struct {
	Session              WorkoutSession `json:"session" toml:"session"`
	CurrentExerciseIndex int            `json:"current_exercise_index" toml:"current_exercise_index"`
	Phase                Phase          `json:"phase" toml:"phase"`
	CardioSeconds        int            `json:"cardio_seconds" toml:"cardio_seconds"`
}

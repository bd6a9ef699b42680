package models

// Exercise is one entry of a workout definition. A session carries its own copy.
type Exercise struct {
	ID       string `json:"id" toml:"id" yaml:"id"`
	Name     string `json:"name" toml:"name" yaml:"name"`
	Sets     int    `json:"sets" toml:"sets" yaml:"sets"`
	Reps     string `json:"reps" toml:"reps" yaml:"reps"` // Target label, e.g. "8-12" or "20 min".
	ImageURL string `json:"image_url,omitempty" toml:"image_url,omitempty" yaml:"image_url,omitempty"`
	IsCardio bool   `json:"is_cardio" toml:"is_cardio" yaml:"is_cardio"`
}

// SetLog is the outcome of one set. For cardio exercises Reps holds elapsed seconds.
type SetLog struct {
	ID        string  `json:"id" toml:"id" yaml:"id"`
	Weight    float64 `json:"weight" toml:"weight" yaml:"weight"`
	Reps      int     `json:"reps" toml:"reps" yaml:"reps"`
	Completed bool    `json:"completed" toml:"completed" yaml:"completed"`
}

type ExerciseSession struct {
	Exercise `yaml:",inline"`
	Logs     []SetLog `json:"logs" toml:"logs" yaml:"logs"`
}

// AllCompleted reports whether every log of the exercise is completed.
func (e ExerciseSession) AllCompleted() bool {
	for _, l := range e.Logs {
		if !l.Completed {
			return false
		}
	}
	return len(e.Logs) > 0
}

// CompletedCount returns how many logs are completed.
func (e ExerciseSession) CompletedCount() int {
	n := 0
	for _, l := range e.Logs {
		if l.Completed {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (e ExerciseSession) Clone() ExerciseSession {
	out := e
	out.Logs = append([]SetLog(nil), e.Logs...)
	return out
}

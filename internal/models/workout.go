package models

import "time"

type Workout struct {
	ID        string     `json:"id" toml:"id" yaml:"id"`
	Name      string     `json:"name" toml:"name" yaml:"name"`
	CreatedAt time.Time  `json:"created_at" toml:"created_at" yaml:"created_at"`
	Exercises []Exercise `json:"exercises" toml:"exercises" yaml:"exercises"`
}

//
// For TOML parsing only
//

type WorkoutTOML struct {
	Name      string         `toml:"name"`
	Exercises []ExerciseTOML `toml:"exercise"`
}

type ExerciseTOML struct {
	Name     string `toml:"name"`
	Sets     int    `toml:"sets"`
	Reps     string `toml:"reps"`
	ImageURL string `toml:"image_url,omitempty"`
	Cardio   *bool  `toml:"cardio,omitempty"` // Unset means "look it up in the library".
}

// Package library is the static table of known exercises used to fill in defaults when a
// workout is imported.
package library

import (
	"net/url"
	"sort"
	"strings"
)

const (
	CategoryChest  = "Chest"
	CategoryBack   = "Back"
	CategoryLegs   = "Legs"
	CategoryCardio = "Cardio"
)

// Defaults for a new exercise that does not set its own targets.
const (
	DefaultSets       = 3
	DefaultReps       = "8-12"
	DefaultCardioReps = "20 min"
)

type Entry struct {
	Name     string
	Category string
	ImageURL string
}

func (e Entry) IsCardio() bool { return e.Category == CategoryCardio }

// Targets returns the sets and rep label an exercise of this entry starts with.
func (e Entry) Targets() (int, string) {
	if e.IsCardio() {
		return 1, DefaultCardioReps
	}
	return DefaultSets, DefaultReps
}

func placeholder(text string) string {
	return "https://placehold.co/150x150/374151/9ca3af?text=" + url.QueryEscape(text)
}

var entries = []Entry{
	{"Barbell Bench Press", CategoryChest, "https://www.hipertrofia.org/blog/wp-content/uploads/2024/04/barbell-bench-press.gif"},
	{"Incline Bench Press", CategoryChest, placeholder("Incline Bench Press")},
	{"Seated Chest Press", CategoryChest, placeholder("Seated Chest Press")},
	{"Incline Dumbbell Fly", CategoryChest, placeholder("Incline Fly")},
	{"Triceps Rope Pushdown", CategoryChest, placeholder("Triceps Rope")},
	{"Cable Skull Crusher", CategoryChest, placeholder("Skull Crusher")},
	{"Lateral Raise", CategoryChest, placeholder("Lateral Raise")},
	{"Front Raise", CategoryChest, placeholder("Front Raise")},
	{"Crunch", CategoryChest, placeholder("Crunch")},
	{"Plank", CategoryChest, placeholder("Plank")},

	{"Lat Pulldown", CategoryBack, "https://treinototal.com.br/wp-content/uploads/2025/06/puxada-alta-na-polia-pegada-pronada.gif"},
	{"V-Bar Pulldown", CategoryBack, placeholder("V-Bar Pulldown")},
	{"Seated Cable Row", CategoryBack, "https://www.mundoboaforma.com.br/wp-content/uploads/2023/06/10471301-puxada-com-pegada-fechada-no-pulley.gif"},
	{"Machine Row", CategoryBack, "https://www.hipertrofia.org/blog/wp-content/uploads/2024/05/lever-seated-row.gif"},
	{"Cable Curl", CategoryBack, "https://www.hipertrofia.org/blog/wp-content/uploads/2025/01/triceps-corda-na-polia-alta.gif"},
	{"Cable Hammer Curl", CategoryBack, "https://www.hipertrofia.org/blog/wp-content/uploads/2024/08/cable-hammer-curl-with-rope.gif"},
	{"Dumbbell Shoulder Press", CategoryBack, "https://www.mundoboaforma.com.br/wp-content/uploads/2020/12/desenvolvimento-para-ombros-com-halteres.gif"},
	{"Back Extension", CategoryBack, placeholder("Back Extension")},

	{"Hack Squat", CategoryLegs, "https://www.snodesport.com/cdn/shop/files/snodesquatmachine.jpg?v=1729490366&width=720"},
	{"Wide Stance Stiff-Leg Deadlift", CategoryLegs, placeholder("Stiff-Leg Deadlift")},
	{"Leg Extension", CategoryLegs, placeholder("Leg Extension")},
	{"Leg Curl", CategoryLegs, placeholder("Leg Curl")},
	{"Hip Thrust", CategoryLegs, placeholder("Hip Thrust")},
	{"Hip Abduction", CategoryLegs, placeholder("Hip Abduction")},
	{"Standing Calf Raise", CategoryLegs, placeholder("Standing Calf Raise")},
	{"Seated Calf Raise", CategoryLegs, "https://www.hipertrofia.org/blog/wp-content/uploads/2018/10/lever-seated-calf-raise-.gif"},

	{"Treadmill", CategoryCardio, placeholder("Treadmill")},
	{"Elliptical", CategoryCardio, placeholder("Elliptical")},
	{"Stationary Bike", CategoryCardio, placeholder("Stationary Bike")},
	{"Spin Bike", CategoryCardio, placeholder("Spin Bike")},
	{"Rowing Machine", CategoryCardio, placeholder("Rowing Machine")},
	{"Stair Climber", CategoryCardio, placeholder("Stair Climber")},
}

// All returns every entry in table order.
func All() []Entry {
	return append([]Entry(nil), entries...)
}

// Lookup finds an entry by name, ignoring case and surrounding spaces.
func Lookup(name string) (Entry, bool) {
	name = strings.TrimSpace(name)
	for _, e := range entries {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// Categories returns the category names, sorted.
func Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	sort.Strings(out)
	return out
}

// InCategory returns the entries of one category, matched case-insensitively.
func InCategory(category string) []Entry {
	var out []Entry
	for _, e := range entries {
		if strings.EqualFold(e.Category, category) {
			out = append(out, e)
		}
	}
	return out
}

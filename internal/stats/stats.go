// Package stats aggregates recorded sessions for the dashboard, calendar and reports.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/misterclayt0n/gymtrack/internal/models"
	"github.com/misterclayt0n/gymtrack/internal/utils"
)

type Summary struct {
	Workouts     int
	Duration     time.Duration
	CardioTime   time.Duration
	WeightLifted float64 // kg, completed strength sets only
	WeekStreak   int
}

func Summarize(sessions []models.WorkoutSession, now time.Time, loc *time.Location) Summary {
	sum := Summary{Workouts: len(sessions), WeekStreak: WeekStreak(sessions, now, loc)}
	for _, s := range sessions {
		sum.Duration += s.Duration()
		sum.CardioTime += SessionCardio(s)
		sum.WeightLifted += SessionWeight(s)
	}
	return sum
}

// SessionWeight sums weight x reps over the completed strength sets.
func SessionWeight(s models.WorkoutSession) float64 {
	var total float64
	for _, ex := range s.Exercises {
		if ex.IsCardio {
			continue
		}
		for _, l := range ex.Logs {
			if l.Completed {
				total += l.Weight * float64(l.Reps)
			}
		}
	}
	return total
}

// SessionCardio sums the completed cardio durations.
func SessionCardio(s models.WorkoutSession) time.Duration {
	var total time.Duration
	for _, ex := range s.Exercises {
		if !ex.IsCardio {
			continue
		}
		for _, l := range ex.Logs {
			if l.Completed {
				total += time.Duration(l.Reps) * time.Second
			}
		}
	}
	return total
}

// WorkoutDays returns the set of days (utils.DayKey) with at least one session.
func WorkoutDays(sessions []models.WorkoutSession, loc *time.Location) map[string]bool {
	days := make(map[string]bool)
	for _, s := range sessions {
		days[utils.DayKey(s.StartTime, loc)] = true
	}
	return days
}

// OnDay returns the sessions started on the same calendar day as day, latest first.
func OnDay(sessions []models.WorkoutSession, day time.Time, loc *time.Location) []models.WorkoutSession {
	key := utils.DayKey(day, loc)
	var out []models.WorkoutSession
	for _, s := range sessions {
		if utils.DayKey(s.StartTime, loc) == key {
			out = append(out, s)
		}
	}
	sortLatestFirst(out)
	return out
}

// TrainedToday reports whether workoutID has a session started today.
func TrainedToday(sessions []models.WorkoutSession, workoutID string, now time.Time, loc *time.Location) bool {
	today := utils.DayKey(now, loc)
	for _, s := range sessions {
		if s.WorkoutID == workoutID && utils.DayKey(s.StartTime, loc) == today {
			return true
		}
	}
	return false
}

// Recent returns up to n sessions, latest first.
func Recent(sessions []models.WorkoutSession, n int) []models.WorkoutSession {
	out := append([]models.WorkoutSession(nil), sessions...)
	sortLatestFirst(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func sortLatestFirst(s []models.WorkoutSession) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].StartTime.After(s[j].StartTime) })
}

// WeekStreak counts consecutive ISO weeks, ending with the current one, that have at least
// one session.
func WeekStreak(sessions []models.WorkoutSession, now time.Time, loc *time.Location) int {
	weeks := make(map[string]bool)
	for _, s := range sessions {
		year, week := s.StartTime.In(loc).ISOWeek()
		weeks[fmt.Sprintf("%d-%02d", year, week)] = true
	}

	streak := 0
	cursor := now.In(loc)
	for {
		year, week := cursor.ISOWeek()
		if !weeks[fmt.Sprintf("%d-%02d", year, week)] {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -7)
	}
	return streak
}

// BestSet returns the completed strength set with the highest estimated 1RM.
func BestSet(ex models.ExerciseSession) (models.SetLog, float64, bool) {
	var best models.SetLog
	var bestRM float64
	found := false
	if ex.IsCardio {
		return best, 0, false
	}
	for _, l := range ex.Logs {
		if !l.Completed {
			continue
		}
		if rm := utils.CalculateEpley1RM(l.Weight, l.Reps); !found || rm > bestRM {
			best, bestRM, found = l, rm, true
		}
	}
	return best, bestRM, found
}

// Month is one calendar month laid out in weeks starting on Sunday. Zero entries are padding.
type Month struct {
	Year  int
	Month time.Month
	Weeks [][7]int
}

func LayoutMonth(year int, month time.Month, loc *time.Location) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	days := first.AddDate(0, 1, -1).Day()

	m := Month{Year: year, Month: month}
	var week [7]int
	col := int(first.Weekday())
	for day := 1; day <= days; day++ {
		week[col] = day
		col++
		if col == 7 {
			m.Weeks = append(m.Weeks, week)
			week, col = [7]int{}, 0
		}
	}
	if col > 0 {
		m.Weeks = append(m.Weeks, week)
	}
	return m
}

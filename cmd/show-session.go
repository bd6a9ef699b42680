package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/gymtrack/internal/models"
	"github.com/misterclayt0n/gymtrack/internal/session"
	"github.com/misterclayt0n/gymtrack/internal/utils"
	"github.com/spf13/cobra"
)

var showSessionCmd = &cobra.Command{
	Use:   "show-session",
	Short: "Show current session status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(a *app, e *session.Engine) error {
			printSession(a, e.Snapshot())
			return nil
		})
	},
}

func printSession(a *app, snap session.Snapshot) {
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	s := snap.Session
	fmt.Printf("%s\n", green(s.Name))
	fmt.Printf("%s %s\n", red("Started:"), s.StartTime.In(a.loc).Format("15:04"))
	fmt.Printf("%s %s\n\n", red("Duration:"), utils.FormatDuration(time.Since(s.StartTime)))

	for i, ex := range s.Exercises {
		marker := "  "
		switch {
		case i == snap.CurrentIndex:
			marker = yellow("▶ ")
		case ex.AllCompleted():
			marker = green("✓ ")
		}
		fmt.Printf("%s%s %s\n", marker, cyan(fmt.Sprintf("%d. %s", i+1, ex.Name)), yellow("("+target(ex.Exercise)+")"))
		if i == snap.CurrentIndex {
			printLogs(a, ex)
		}
	}
	fmt.Println()
	printPhase(snap)
}

// printLogs prints the set table of one exercise next to how it went last time.
func printLogs(a *app, ex models.ExerciseSession) {
	var prev []models.SetLog
	if p, err := a.st.GetPreviousPerformance(ex.Name); err != nil {
		a.log.Warn("failed to load previous session", "exercise", ex.Name, "error", err)
	} else if p != nil {
		prev = p.Logs
	}

	if ex.IsCardio {
		l := ex.Logs[0]
		value := "not done"
		if l.Completed {
			value = utils.FormatClock(l.Reps)
		}
		fmt.Printf("     Time: %s", value)
		if len(prev) > 0 {
			fmt.Printf("   (last time %s)", utils.FormatClock(prev[0].Reps))
		}
		fmt.Println()
		return
	}

	table := newTable([]string{"   Set", "Current", "Done", "Prev Session"})
	for i, l := range ex.Logs {
		done, last := "", "-"
		if l.Completed {
			done = "✓"
		}
		if i < len(prev) {
			last = fmt.Sprintf("%.1fkg × %d", prev[i].Weight, prev[i].Reps)
		}
		table.Append([]string{fmt.Sprintf("   %d", i+1), fmt.Sprintf("%.1fkg × %d", l.Weight, l.Reps), done, last})
	}
	table.Render()
}

func printPhase(snap session.Snapshot) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()

	switch snap.Phase {
	case models.PhaseResting:
		fmt.Printf("%s %s\n", yellow("Rest:"), utils.FormatClock(snap.RestRemaining))
	case models.PhaseTransitioning:
		if snap.HasNext() {
			fmt.Printf("%s %s\n", green("Exercise done! Next up:"), snap.Session.Exercises[snap.CurrentIndex+1].Name)
		}
	default:
		if ex, ok := snap.Current(); ok && ex.AllCompleted() && !snap.HasNext() {
			fmt.Println(green("All exercises done. Finish with `gymtrack end-session`."))
		}
	}
}

func target(ex models.Exercise) string {
	if ex.IsCardio {
		return ex.Reps
	}
	return fmt.Sprintf("%d × %s", ex.Sets, ex.Reps)
}

func init() {
	rootCmd.AddCommand(showSessionCmd)
}

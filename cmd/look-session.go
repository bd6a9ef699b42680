package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/misterclayt0n/gymtrack/internal/models"
	"github.com/misterclayt0n/gymtrack/internal/stats"
	"github.com/misterclayt0n/gymtrack/internal/utils"
	"github.com/spf13/cobra"
)

var (
	dateStr string
)

var lookSessionCmd = &cobra.Command{
	Use:   "look-session [session-id]",
	Short: "Display a recorded session by its ID, or every session of a day using --date",
	// Allow 0 or 1 argument.
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && dateStr == "" {
			return fmt.Errorf("Pass a session ID or --date")
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			s, err := a.st.GetSession(args[0])
			if err != nil {
				return err
			}
			printRecordedSession(a, *s)
			return nil
		}

		day, err := parseDay(dateStr, a.loc)
		if err != nil {
			return err
		}
		sessions, err := sessionsOn(a, day)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println(color.New(color.FgMagenta).Sprint("No sessions found on that date."))
			return nil
		}

		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Println(boldGreen("Training Sessions on:"), yellow(day.Format("02/01/2006")))
		fmt.Println(strings.Repeat("=", 50))
		var total float64
		for _, s := range sessions {
			printRecordedSession(a, s)
			total += stats.SessionWeight(s)
		}
		fmt.Printf("%s %s kg\n", boldGreen("Total weight lifted:"), humanize.FormatFloat("#,###.#", total))
		return nil
	},
}

// parseDay accepts YYYY-MM-DD, DD/MM/YYYY, DD/MM/YY and "today".
func parseDay(s string, loc *time.Location) (time.Time, error) {
	if s == "today" {
		now := time.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	}
	for _, layout := range []string{time.DateOnly, "02/01/2006", "02/01/06"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("Failed to parse date %q, use YYYY-MM-DD or DD/MM/YY", s)
}

func sessionsOn(a *app, day time.Time) ([]models.WorkoutSession, error) {
	sessions, err := a.st.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("Failed to retrieve sessions: %w", err)
	}
	return stats.OnDay(sessions, day, a.loc), nil
}

func printRecordedSession(a *app, s models.WorkoutSession) {
	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Printf("\n%s %s\n", boldGreen("Session:"), s.Name)
	fmt.Printf("  %s: %s\n", blue("ID"), s.ID)
	fmt.Printf("  %s: %s\n", blue("Start Time"), s.StartTime.In(a.loc).Format("02/01/2006 15:04"))
	if s.EndTime != nil {
		fmt.Printf("  %s: %s\n", blue("End Time"), s.EndTime.In(a.loc).Format("02/01/2006 15:04"))
	}
	fmt.Printf("  %s: %s\n\n", red("Duration"), utils.FormatDuration(s.Duration()))

	for _, ex := range s.Exercises {
		fmt.Printf("  %s %s\n", cyan("• "+ex.Name), fmt.Sprintf("(%s)", target(ex.Exercise)))
		if ex.IsCardio {
			if l := ex.Logs[0]; l.Completed {
				fmt.Printf("      Time: %s\n", utils.FormatClock(l.Reps))
			} else {
				fmt.Println("      Not done")
			}
			continue
		}
		table := newTable([]string{"      Set", "Weight (kg)", "Reps", "Done"})
		for i, l := range ex.Logs {
			done := ""
			if l.Completed {
				done = "✓"
			}
			table.Append([]string{fmt.Sprintf("      %d", i+1), fmt.Sprintf("%.1f", l.Weight), fmt.Sprintf("%d", l.Reps), done})
		}
		table.Render()
		if best, rm, ok := stats.BestSet(ex); ok {
			fmt.Printf("      Best set %.1fkg × %d (1RM %.1fkg)\n", best.Weight, best.Reps, rm)
		}
	}
	fmt.Printf("  %s %s kg\n", boldGreen("Volume:"), humanize.FormatFloat("#,###.#", stats.SessionWeight(s)))
}

func init() {
	lookSessionCmd.Flags().StringVarP(&dateStr, "date", "d", "", "Show every session of a day (YYYY-MM-DD, DD/MM/YY or today)")
	rootCmd.AddCommand(lookSessionCmd)
}

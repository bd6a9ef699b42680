package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/misterclayt0n/gymtrack/internal/session"
	"github.com/misterclayt0n/gymtrack/internal/stats"
	"github.com/misterclayt0n/gymtrack/internal/utils"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var recentLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show totals: workouts, time trained, cardio time, weight lifted, week streak and recent activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sessions, err := a.st.ListSessions()
		if err != nil {
			return fmt.Errorf("Failed to retrieve sessions: %w", err)
		}
		sum := stats.Summarize(sessions, time.Now(), a.loc)

		// Print a stylish header.
		printBoxedHeader("STATUS")

		printMetric("Total workouts", sum.Workouts)
		printMetric("Total time at gym", utils.FormatDuration(sum.Duration))
		printMetric("Cardio time", utils.FormatDuration(sum.CardioTime))
		printMetric("Total weight lifted", humanize.FormatFloat("#,###.#", sum.WeightLifted)+" kg")
		printMetric("Week streak", fmt.Sprintf("%d weeks", sum.WeekStreak))
		fmt.Println()

		active, err := hasActiveSession(a)
		if err != nil {
			a.log.Warn("failed to check for an active session", "error", err)
		}
		if active {
			fmt.Println(color.New(color.FgYellow, color.Bold).Sprint("A session is in progress. See `gymtrack show-session`."))
			fmt.Println()
		}

		recent := stats.Recent(sessions, recentLimit)
		if len(recent) == 0 {
			fmt.Println("No workouts recorded yet.")
			return nil
		}
		fmt.Println(color.New(color.FgGreen, color.Bold).Sprint("Recent activity:"))
		table := newTable([]string{"  Workout", "Date", "Duration", "Volume"})
		for _, s := range recent {
			table.Append([]string{
				"  " + s.Name,
				fmt.Sprintf("%s (%s)", s.StartTime.In(a.loc).Format("02/01/2006"), humanize.Time(s.StartTime)),
				utils.FormatDuration(s.Duration()),
				humanize.FormatFloat("#,###.#", stats.SessionWeight(s)) + " kg",
			})
		}
		table.Render()
		return nil
	},
}

func hasActiveSession(a *app) (bool, error) {
	return session.HasActive(a.checkpoints(), session.ActiveSessionKey)
}

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + centerText(title, width, true) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

// centerText centers s in a field of the given width, optionally padding the right side too.
func centerText(s string, width int, padRight bool) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	padding := (width - n) / 2
	out := strings.Repeat(" ", padding) + s
	if padRight {
		out += strings.Repeat(" ", width-n-padding)
	}
	return out
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(label string, value any) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}

// newTable creates a borderless left-aligned table on stdout.
func newTable(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

func init() {
	statusCmd.Flags().IntVarP(&recentLimit, "recent", "n", 10, "Number of recent workouts to list")
	rootCmd.AddCommand(statusCmd)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/misterclayt0n/gymtrack/internal/models"
	"github.com/misterclayt0n/gymtrack/internal/stats"
	"github.com/misterclayt0n/gymtrack/internal/utils"
	"github.com/spf13/cobra"
)

var (
	filterWorkout string
	filterDay     string
	historyLimit  int
)

// historyCmd lists recorded sessions, latest first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display session history, optionally filtered by workout and/or day",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sessions, err := a.st.ListSessions()
		if err != nil {
			return fmt.Errorf("failed to retrieve sessions: %w", err)
		}

		// Case insensitive filtering by workout name.
		if filterWorkout != "" {
			var filtered []models.WorkoutSession
			for _, s := range sessions {
				if strings.EqualFold(s.Name, filterWorkout) {
					filtered = append(filtered, s)
				}
			}
			sessions = filtered
		}

		if filterDay != "" {
			day, err := parseDay(filterDay, a.loc)
			if err != nil {
				return err
			}
			sessions = stats.OnDay(sessions, day, a.loc)
		}

		sessions = stats.Recent(sessions, historyLimit)
		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		table := newTable([]string{"ID", "Workout", "Date", "Start", "Duration", "Sets", "Volume"})
		for _, s := range sessions {
			done, total := 0, 0
			for _, ex := range s.Exercises {
				done += ex.CompletedCount()
				total += len(ex.Logs)
			}
			table.Append([]string{
				s.ID[:min(8, len(s.ID))],
				s.Name,
				s.StartTime.In(a.loc).Format("02/01/2006"),
				s.StartTime.In(a.loc).Format("15:04"),
				utils.FormatDuration(s.Duration()),
				fmt.Sprintf("%d/%d", done, total),
				humanize.FormatFloat("#,###.#", stats.SessionWeight(s)) + " kg",
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVarP(&filterWorkout, "workout", "w", "", "Filter by workout name (case insensitive)")
	historyCmd.Flags().StringVarP(&filterDay, "day", "d", "", "Filter by day (e.g. 2026-02-07 or 07/02/26)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of sessions to list")
}

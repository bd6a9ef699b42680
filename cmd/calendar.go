package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/gymtrack/internal/stats"
	"github.com/misterclayt0n/gymtrack/internal/utils"
	"github.com/spf13/cobra"
)

// details is a flag to enable verbose session details.
var details bool

// calendarCmd prints the month grid. Days with at least one recorded workout are highlighted.
var calendarCmd = &cobra.Command{
	Use:   "calendar [month] [year]",
	Short: "Display a calendar of training days",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		// Determine month and year (default to current month/year).
		now := time.Now().In(a.loc)
		month := now.Month()
		year := now.Year()
		if len(args) >= 1 {
			m, err := strconv.Atoi(args[0])
			if err != nil || m < 1 || m > 12 {
				return fmt.Errorf("invalid month: %s", args[0])
			}
			month = time.Month(m)
		}
		if len(args) == 2 {
			y, err := strconv.Atoi(args[1])
			if err != nil || y < 1 {
				return fmt.Errorf("invalid year: %s", args[1])
			}
			year = y
		}

		sessions, err := a.st.ListSessions()
		if err != nil {
			return fmt.Errorf("failed to get sessions: %w", err)
		}
		trained := stats.WorkoutDays(sessions, a.loc)
		today := utils.DayKey(now, a.loc)

		trainedDay := color.New(color.FgBlack, color.BgGreen, color.Bold).SprintFunc()
		todayDay := color.New(color.FgCyan, color.Bold, color.Underline).SprintFunc()

		// Print the calendar header.
		fmt.Println(centerText(fmt.Sprintf("%s %d", month.String(), year), 20, false))
		fmt.Println("Su Mo Tu We Th Fr Sa")

		layout := stats.LayoutMonth(year, month, a.loc)
		var trainedThisMonth []int
		for _, week := range layout.Weeks {
			for _, day := range week {
				if day == 0 {
					fmt.Print("   ")
					continue
				}
				dayStr := fmt.Sprintf("%2d", day)
				key := utils.DayKey(time.Date(year, month, day, 12, 0, 0, 0, a.loc), a.loc)
				switch {
				case trained[key]:
					dayStr = trainedDay(dayStr)
					trainedThisMonth = append(trainedThisMonth, day)
				case key == today:
					dayStr = todayDay(dayStr)
				}
				fmt.Printf("%s ", dayStr)
			}
			fmt.Println()
		}
		fmt.Println()
		fmt.Printf("Legend: %s workout  %s today\n", trainedDay("  "), todayDay("  "))
		fmt.Printf("%d training days this month\n", len(trainedThisMonth))

		// If the details flag is set, print additional session details.
		if details {
			for _, day := range trainedThisMonth {
				dayDate := time.Date(year, month, day, 12, 0, 0, 0, a.loc)
				fmt.Printf("\n%s:\n", dayDate.Format("Mon, 02 Jan 2006"))
				for _, s := range stats.OnDay(sessions, dayDate, a.loc) {
					fmt.Printf("  %s at %s", s.Name, s.StartTime.In(a.loc).Format("15:04"))
					if s.EndTime != nil {
						fmt.Printf(" - %s", s.EndTime.In(a.loc).Format("15:04"))
					}
					fmt.Println()
				}
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().BoolVarP(&details, "details", "d", false, "Print the sessions of each training day")
}

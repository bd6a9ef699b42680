package cmd

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/misterclayt0n/gymtrack/internal/library"
	"github.com/misterclayt0n/gymtrack/internal/storage"
	"github.com/misterclayt0n/gymtrack/internal/utils"
	"github.com/spf13/cobra"
)

var showExCmd = &cobra.Command{
	Use:   "show-ex [exercise-name]",
	Short: "Display library information and training history for an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		magenta := color.New(color.FgMagenta).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		name := args[0]
		entry, known := library.Lookup(name)
		if known {
			name = entry.Name
			sets, reps := entry.Targets()
			fmt.Println(boldGreen("Exercise Information:"))
			fmt.Printf("  %s: %s\n", boldCyan("Name"), entry.Name)
			fmt.Printf("  %s: %s\n", boldCyan("Category"), entry.Category)
			fmt.Printf("  %s: %d × %s\n", boldCyan("Default target"), sets, reps)
			fmt.Printf("  %s: %s\n", boldCyan("Image"), entry.ImageURL)
			fmt.Println()
		}

		rec, err := a.st.GetExerciseRecord(name)
		if errors.Is(err, storage.ErrNotFound) {
			if !known {
				return fmt.Errorf("Unknown exercise %q", args[0])
			}
			fmt.Println(magenta("  No training sessions found."))
			return nil
		}
		if err != nil {
			return fmt.Errorf("Failed to get exercise: %w", err)
		}

		fmt.Printf("%s %s:\n", boldGreen("History for"), rec.Name)
		fmt.Printf("  %s: %d\n", boldCyan("Sessions"), rec.Sessions)
		fmt.Printf("  %s: %d\n", boldCyan("Completed sets"), rec.CompletedSets)
		fmt.Printf("  %s: %s (%s)\n", boldCyan("Last performed"),
			rec.LastPerformed.In(a.loc).Format("02/01/2006"), humanize.Time(rec.LastPerformed))
		if rec.BestSet != nil {
			fmt.Printf("  %s: %.1fkg × %d (%s: %.1fkg)\n",
				boldCyan("All-time PR"),
				rec.BestSet.Weight, rec.BestSet.Reps,
				yellow("Calculated 1RM"), rec.EstimatedOneRM)
		}

		prev, err := a.st.GetPreviousPerformance(rec.Name)
		if err != nil {
			return err
		}
		if prev != nil {
			fmt.Printf("\n%s %s\n", boldGreen("Last session"), prev.Date.In(a.loc).Format("02/01/2006 15:04"))
			table := newTable([]string{"Set", "Weight (kg)", "Reps", "Done"})
			for i, l := range prev.Logs {
				done := ""
				if l.Completed {
					done = "✓"
				}
				reps := fmt.Sprintf("%d", l.Reps)
				if known && entry.IsCardio() {
					reps = utils.FormatClock(l.Reps)
				}
				table.Append([]string{fmt.Sprintf("%d", i+1), fmt.Sprintf("%.1f", l.Weight), reps, done})
			}
			table.Render()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showExCmd)
}

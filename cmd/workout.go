package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/gymtrack/internal/stats"
	"github.com/misterclayt0n/gymtrack/internal/storage"
	"github.com/spf13/cobra"
)

var replaceWorkout bool

var createWorkoutCmd = &cobra.Command{
	Use:   "create-workout [file]",
	Short: "Create a workout from a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return importWorkout(args[0], replaceWorkout)
	},
}

var listWorkoutsCmd = &cobra.Command{
	Use:   "list-workouts",
	Short: "List all workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		workouts, err := a.st.ListWorkouts()
		if err != nil {
			return fmt.Errorf("Failed to list workouts: %w", err)
		}
		if len(workouts) == 0 {
			fmt.Println("No workouts yet. Create one with `gymtrack create-workout <file>`.")
			return nil
		}

		sessions, err := a.st.ListSessions()
		if err != nil {
			return fmt.Errorf("Failed to retrieve sessions: %w", err)
		}
		now := time.Now()

		done := color.New(color.FgGreen).SprintFunc()
		table := newTable([]string{"Name", "Exercises", "Today"})
		for _, w := range workouts {
			today := ""
			if stats.TrainedToday(sessions, w.ID, now, a.loc) {
				today = done("✓ done")
			}
			table.Append([]string{w.Name, fmt.Sprintf("%d", len(w.Exercises)), today})
		}
		table.Render()
		return nil
	},
}

func importWorkout(path string, replace bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Failed to read file: %w", err)
	}
	w, err := storage.ParseWorkout(data)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.st.SaveWorkout(&w, replace); err != nil {
		if errors.Is(err, storage.ErrWorkoutExists) {
			return fmt.Errorf("%w (use update-workout to replace it)", err)
		}
		return fmt.Errorf("Failed to save workout: %w", err)
	}

	a.log.Debug("workout saved", "workout", w.ID, "exercises", len(w.Exercises))
	fmt.Printf("✅ Saved workout %s with %d exercises\n", w.Name, len(w.Exercises))
	return nil
}

func init() {
	createWorkoutCmd.Flags().BoolVarP(&replaceWorkout, "replace", "r", false, "Replace a workout with the same name")
	rootCmd.AddCommand(createWorkoutCmd)
	rootCmd.AddCommand(listWorkoutsCmd)
}

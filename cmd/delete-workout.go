package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteWorkoutYes bool

var deleteWorkoutCmd = &cobra.Command{
	Use:   "delete-workout [name]",
	Short: "Delete a workout definition. Recorded sessions are kept",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		w, err := a.st.GetWorkout(args[0])
		if err != nil {
			return err
		}
		if !deleteWorkoutYes && !confirm(os.Stdin, fmt.Sprintf("Delete workout %s?", w.Name)) {
			fmt.Println("Nothing deleted.")
			return nil
		}

		if err := a.st.DeleteWorkout(w.ID); err != nil {
			return fmt.Errorf("Failed to delete workout: %w", err)
		}
		fmt.Printf("✅ Deleted workout %s\n", w.Name)
		return nil
	},
}

func init() {
	deleteWorkoutCmd.Flags().BoolVarP(&deleteWorkoutYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(deleteWorkoutCmd)
}

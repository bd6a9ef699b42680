package cmd

import (
	"github.com/spf13/cobra"
)

var updateWorkoutCmd = &cobra.Command{
	Use:   "update-workout [file]",
	Short: "Replace an existing workout with the definition in a TOML file",
	Long: `Replace the exercise list of the workout named in the file. The workout keeps its id,
so sessions already trained from it still count as that workout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return importWorkout(args[0], true)
	},
}

func init() {
	rootCmd.AddCommand(updateWorkoutCmd)
}

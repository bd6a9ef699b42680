package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var showWorkoutCmd = &cobra.Command{
	Use:   "show-workout [name]",
	Short: "Show the exercises of a workout",
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

		green := color.New(color.FgGreen, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Println(green(w.Name))
		fmt.Printf("%s %s\n\n", yellow("Created:"), w.CreatedAt.In(a.loc).Format("02/01/2006"))

		table := newTable([]string{"#", "Exercise", "Sets", "Target", "Type"})
		for i, ex := range w.Exercises {
			kind, sets := "strength", fmt.Sprintf("%d", ex.Sets)
			if ex.IsCardio {
				kind, sets = "cardio", "-"
			}
			table.Append([]string{fmt.Sprintf("%d", i+1), ex.Name, sets, ex.Reps, kind})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showWorkoutCmd)
}

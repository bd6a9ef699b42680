package cmd

import (
	"fmt"

	"github.com/misterclayt0n/gymtrack/internal/session"
	"github.com/spf13/cobra"
)

var (
	setWeight float64
	setReps   int
)

var editSetCmd = &cobra.Command{
	Use:   "edit-set [exercise-index] [set-index]",
	Short: "Log weight and/or reps of a set. Later open sets of the exercise are pre-filled",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weightSet := cmd.Flags().Changed("weight")
		repsSet := cmd.Flags().Changed("reps")
		if !weightSet && !repsSet {
			return fmt.Errorf("Nothing to change: pass --weight and/or --reps")
		}

		return withSession(func(a *app, e *session.Engine) error {
			snap := e.Snapshot()
			exIdx, err := parseIndex(args[0], "exercise", len(snap.Session.Exercises))
			if err != nil {
				return err
			}
			ex := snap.Session.Exercises[exIdx]
			setIdx, err := parseIndex(args[1], "set", len(ex.Logs))
			if err != nil {
				return err
			}

			var values []session.FieldValue
			if weightSet {
				values = append(values, session.Weight(setWeight))
			}
			if repsSet {
				values = append(values, session.Reps(setReps))
			}
			for _, v := range values {
				if snap, err = e.LogChange(ex.ID, setIdx, v); err != nil {
					return fmt.Errorf("Failed to update set: %w", err)
				}
			}

			l := snap.Session.Exercises[exIdx].Logs[setIdx]
			fmt.Printf("✅ %s set %d: %.1fkg × %d\n", ex.Name, setIdx+1, l.Weight, l.Reps)
			return nil
		})
	},
}

func init() {
	editSetCmd.Flags().Float64VarP(&setWeight, "weight", "w", 0, "Weight used")
	editSetCmd.Flags().IntVarP(&setReps, "reps", "r", 0, "Reps performed")

	rootCmd.AddCommand(editSetCmd)
}

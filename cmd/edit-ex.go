package cmd

import (
	"fmt"
	"os"

	"github.com/misterclayt0n/gymtrack/internal/session"
	"github.com/spf13/cobra"
)

var (
	editExSets int
	editExReps string
	assumeYes  bool
)

var editExCmd = &cobra.Command{
	Use:   "edit-ex [queue-position]",
	Short: "Change the target sets and/or reps of an upcoming exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("sets") && editExReps == "" {
			return fmt.Errorf("Nothing to change: pass --sets and/or --reps")
		}

		return withSession(func(a *app, e *session.Engine) error {
			upcoming := e.Snapshot().Upcoming()
			pos, err := parseIndex(args[0], "queue", len(upcoming))
			if err != nil {
				return err
			}
			ex := upcoming[pos]
			sets := ex.Sets
			if cmd.Flags().Changed("sets") {
				sets = editExSets
			}

			snap, err := e.EditExercise(ex.ID, sets, editExReps)
			if err != nil {
				return fmt.Errorf("Failed to edit exercise: %w", err)
			}
			if snap.Pending != nil {
				if snap, err = resolvePending(e, snap.Pending); err != nil || snap.Pending != nil {
					return err
				}
			}

			updated := snap.Session.Exercises[snap.Session.IndexOf(ex.ID)]
			fmt.Printf("✅ %s: %s\n", updated.Name, target(updated.Exercise))
			return nil
		})
	},
}

// resolvePending asks the user about a pending confirmation, or takes --yes as the answer.
// A rejected confirmation comes back with the snapshot still carrying it.
func resolvePending(e *session.Engine, p *session.Confirmation) (session.Snapshot, error) {
	if !assumeYes && !confirm(os.Stdin, p.Prompt) {
		snap, err := e.Reject()
		if err == nil {
			fmt.Println("Nothing changed.")
			snap.Pending = p
		}
		return snap, err
	}
	snap, err := e.Confirm(p.ID)
	if err != nil {
		return snap, fmt.Errorf("Failed to apply change: %w", err)
	}
	return snap, nil
}

func init() {
	editExCmd.Flags().IntVarP(&editExSets, "sets", "s", 0, "New number of sets")
	editExCmd.Flags().StringVarP(&editExReps, "reps", "r", "", "New target label, e.g. 10-12")
	editExCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Confirm without asking")
	rootCmd.AddCommand(editExCmd)
}

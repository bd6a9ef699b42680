package cmd

import (
	"errors"
	"fmt"

	"github.com/misterclayt0n/gymtrack/internal/session"
	"github.com/spf13/cobra"
)

var deleteExCmd = &cobra.Command{
	Use:   "delete-ex [queue-position]",
	Short: "Remove an upcoming exercise from the current session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(a *app, e *session.Engine) error {
			upcoming := e.Snapshot().Upcoming()
			pos, err := parseIndex(args[0], "queue", len(upcoming))
			if err != nil {
				return err
			}

			snap, err := e.DeleteExercise(upcoming[pos].ID)
			if err != nil {
				return fmt.Errorf("Failed to delete exercise: %w", err)
			}
			snap, err = resolvePending(e, snap.Pending)
			if errors.Is(err, session.ErrEmptySession) {
				fmt.Println("No exercises left, session ended without saving.")
				return nil
			}
			if err != nil || snap.Pending != nil {
				return err
			}

			fmt.Printf("✅ Removed %s\n", upcoming[pos].Name)
			printQueue(snap)
			return nil
		})
	},
}

func init() {
	deleteExCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Confirm without asking")
	rootCmd.AddCommand(deleteExCmd)
}

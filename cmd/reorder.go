package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/misterclayt0n/gymtrack/internal/session"
	"github.com/spf13/cobra"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "List the exercises still ahead in the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(a *app, e *session.Engine) error {
			printQueue(e.Snapshot())
			return nil
		})
	},
}

var reorderCmd = &cobra.Command{
	Use:   "reorder [from] [to]",
	Short: "Move an upcoming exercise to another queue position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(a *app, e *session.Engine) error {
			n := len(e.Snapshot().Upcoming())
			from, err := parseIndex(args[0], "queue", n)
			if err != nil {
				return err
			}
			to, err := parseIndex(args[1], "queue", n)
			if err != nil {
				return err
			}

			snap, err := e.Reorder(from, to)
			if err != nil {
				return fmt.Errorf("Failed to reorder: %w", err)
			}
			printQueue(snap)
			return nil
		})
	},
}

func printQueue(snap session.Snapshot) {
	upcoming := snap.Upcoming()
	if len(upcoming) == 0 {
		fmt.Println("Nothing left after the current exercise.")
		return
	}
	gray := color.New(color.FgHiBlack).SprintFunc()
	for i, ex := range upcoming {
		fmt.Printf("  %d. %s %s\n", i+1, ex.Name, gray(target(ex.Exercise)))
	}
}

func init() {
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(reorderCmd)
}

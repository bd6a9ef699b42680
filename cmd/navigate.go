package cmd

import (
	"fmt"

	"github.com/misterclayt0n/gymtrack/internal/session"
	"github.com/spf13/cobra"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Move to the next exercise without completing anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		return move(func(e *session.Engine) (session.Snapshot, error) { return e.Next() })
	},
}

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Move back to the previous exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		return move(func(e *session.Engine) (session.Snapshot, error) { return e.Previous() })
	},
}

func move(step func(e *session.Engine) (session.Snapshot, error)) error {
	return withSession(func(a *app, e *session.Engine) error {
		snap, err := step(e)
		if err != nil {
			return err
		}
		ex, _ := snap.Current()
		fmt.Printf("✅ Now on %d/%d: %s\n", snap.CurrentIndex+1, len(snap.Session.Exercises), ex.Name)
		return nil
	})
}

func init() {
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/misterclayt0n/gymtrack/internal/session"
	"github.com/spf13/cobra"
)

var cancelYes bool

var cancelSessionCmd = &cobra.Command{
	Use:   "cancel-session",
	Short: "Cancel the current training session without saving any data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(a *app, e *session.Engine) error {
			name := e.Snapshot().Session.Name
			if !cancelYes && !confirm(os.Stdin, fmt.Sprintf("Discard the %s session? This cannot be undone.", name)) {
				fmt.Println("Session kept.")
				return nil
			}

			if err := e.Abandon(); err != nil {
				return fmt.Errorf("Failed to cancel session: %w", err)
			}
			fmt.Println("✅ Session cancelled successfully")
			return nil
		})
	},
}

func init() {
	cancelSessionCmd.Flags().BoolVarP(&cancelYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(cancelSessionCmd)
}

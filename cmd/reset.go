package cmd

import (
	"fmt"
	"os"

	"github.com/misterclayt0n/gymtrack/internal/session"
	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every workout, session and the active session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if !resetYes && !confirm(os.Stdin, "Delete ALL data? This cannot be undone.") {
			fmt.Println("Nothing deleted.")
			return nil
		}

		if err := a.checkpoints().Delete(session.ActiveSessionKey); err != nil {
			return fmt.Errorf("Failed to clear the active session: %w", err)
		}
		if err := a.st.Reset(); err != nil {
			return fmt.Errorf("Failed to reset database: %w", err)
		}
		fmt.Println("✅ All data deleted")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(resetCmd)
}

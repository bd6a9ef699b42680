package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/misterclayt0n/gymtrack/internal/storage"
	"github.com/spf13/cobra"
)

var deleteSessionYes bool

var deleteSessionCmd = &cobra.Command{
	Use:   "delete-session [session-id]",
	Short: "Delete a recorded session from history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return deleteSession(a.st, args[0], a.loc, os.Stdin, deleteSessionYes)
	},
}

func deleteSession(st *storage.Storage, id string, loc *time.Location, in io.Reader, yes bool) error {
	s, err := st.GetSession(id)
	if err != nil {
		return err
	}
	prompt := fmt.Sprintf("Delete session %s from %s?", s.Name, s.StartTime.In(loc).Format("02/01/2006 15:04"))
	if !yes && !confirm(in, prompt) {
		fmt.Println("Nothing deleted.")
		return nil
	}

	if err := st.DeleteSession(s.ID); err != nil {
		return fmt.Errorf("Failed to delete session: %w", err)
	}
	fmt.Printf("✅ Deleted session %s\n", s.ID)
	return nil
}

func init() {
	deleteSessionCmd.Flags().BoolVarP(&deleteSessionYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(deleteSessionCmd)
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/misterclayt0n/gymtrack/internal/session"
	"github.com/misterclayt0n/gymtrack/internal/tui"
	"github.com/spf13/cobra"
)

var (
	workoutName string
	startAndRun bool
)

var startCmd = &cobra.Command{
	Use:   "start-session",
	Short: "Starts a new training session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		w, err := a.st.GetWorkout(workoutName)
		if err != nil {
			return err
		}

		opts := a.engineOptions()
		var notifier *tui.Notifier
		if startAndRun {
			notifier = tui.NewNotifier()
			opts.OnChange = notifier.Notify
		}

		e, err := session.Start(*w, opts)
		if errors.Is(err, session.ErrSessionActive) {
			return fmt.Errorf("A session is already in progress. Use run, end-session or cancel-session")
		}
		if err != nil {
			return fmt.Errorf("Failed to start session: %w", err)
		}
		defer e.Close()

		fmt.Printf("✅ Started %s\n", w.Name)
		if startAndRun {
			return runSession(a, e, notifier)
		}
		printSession(a, e.Snapshot())
		return nil
	},
}

func init() {
	// Registers the command as a subcommand of rootCmd.
	rootCmd.AddCommand(startCmd)

	// Define flags.
	startCmd.Flags().StringVarP(&workoutName, "workout", "w", "", "Workout name/ID")
	startCmd.Flags().BoolVarP(&startAndRun, "run", "r", false, "Open the live session runner right away")
	startCmd.MarkFlagRequired("workout")
}

package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/misterclayt0n/gymtrack/internal/session"
	"github.com/misterclayt0n/gymtrack/internal/tui"
	"github.com/misterclayt0n/gymtrack/internal/utils"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the live session runner for the active session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		notifier := tui.NewNotifier()
		opts := a.engineOptions()
		opts.OnChange = notifier.Notify
		e, err := a.resumeWith(opts)
		if err != nil {
			return err
		}
		defer e.Close()

		return runSession(a, e, notifier)
	},
}

// runSession blocks until the user quits the runner. Quitting without finishing keeps the
// session checkpointed.
func runSession(a *app, e *session.Engine, notifier *tui.Notifier) error {
	p := tea.NewProgram(tui.NewModel(e, notifier.Changes()), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("Session runner failed: %w", err)
	}

	m, ok := finalModel.(tui.Model)
	switch {
	case !ok:
		return nil
	case m.Finished() != nil:
		s := m.Finished()
		fmt.Printf("✅ Session saved: %s, %s\n", s.Name, utils.FormatDuration(s.Duration()))
	case m.Ended():
		fmt.Println("✅ Session discarded")
	default:
		a.log.Debug("runner closed, session kept")
		fmt.Println("Session paused. Resume with `gymtrack run`.")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
}

package cmd

import (
	"fmt"
	"time"

	"github.com/misterclayt0n/gymtrack/internal/session"
	"github.com/misterclayt0n/gymtrack/internal/utils"
	"github.com/spf13/cobra"
)

var cardioDuration time.Duration

var completeSetCmd = &cobra.Command{
	Use:   "complete-set [set-index]",
	Short: "Mark a set of the current exercise as done",
	Long: `Mark a set of the current exercise as done. Without an index the first open set is
completed. Cardio exercises take their time from --duration, e.g. --duration 22m30s.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(a *app, e *session.Engine) error {
			snap := e.Snapshot()
			ex, ok := snap.Current()
			if !ok {
				return fmt.Errorf("Session has no exercises")
			}

			setIdx := -1
			if len(args) == 1 {
				i, err := parseIndex(args[0], "set", len(ex.Logs))
				if err != nil {
					return err
				}
				setIdx = i
			} else {
				for i, l := range ex.Logs {
					if !l.Completed {
						setIdx = i
						break
					}
				}
				if setIdx < 0 {
					return fmt.Errorf("All sets of %s are already done", ex.Name)
				}
			}

			var err error
			if ex.IsCardio {
				if cardioDuration <= 0 {
					return fmt.Errorf("%s is cardio: pass --duration", ex.Name)
				}
				snap, err = e.RecordCardio(ex.ID, setIdx, cardioDuration)
			} else {
				snap, err = e.CompleteSet(ex.ID, setIdx)
			}
			if err != nil {
				return fmt.Errorf("Failed to complete set: %w", err)
			}

			if ex.IsCardio {
				fmt.Printf("✅ %s done in %s\n", ex.Name, utils.FormatClock(snap.Session.Exercises[snap.CurrentIndex].Logs[setIdx].Reps))
			} else {
				l := snap.Session.Exercises[snap.CurrentIndex].Logs[setIdx]
				fmt.Printf("✅ %s set %d done: %.1fkg × %d\n", ex.Name, setIdx+1, l.Weight, l.Reps)
			}
			printPhase(snap)
			return nil
		})
	},
}

func init() {
	completeSetCmd.Flags().DurationVarP(&cardioDuration, "duration", "d", 0, "Elapsed time of a cardio exercise")
	rootCmd.AddCommand(completeSetCmd)
}

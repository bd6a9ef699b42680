package cmd

import (
	"fmt"

	"github.com/misterclayt0n/gymtrack/internal/report"
	"github.com/misterclayt0n/gymtrack/internal/session"
	"github.com/misterclayt0n/gymtrack/internal/stats"
	"github.com/misterclayt0n/gymtrack/internal/utils"
	"github.com/spf13/cobra"
)

var endWithPDF string

var endSessionCmd = &cobra.Command{
	Use:   "end-session",
	Short: "Finish the current training session and save it to history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(a *app, e *session.Engine) error {
			s, err := e.Finish()
			if err != nil {
				return fmt.Errorf("Failed to save session: %w", err)
			}

			fmt.Printf("✅ Session saved: %s, %s, %.1f kg lifted\n",
				s.Name, utils.FormatDuration(s.Duration()), stats.SessionWeight(s))

			if endWithPDF != "" {
				path, err := report.WritePDF(endWithPDF, s, a.loc)
				if err != nil {
					return err
				}
				fmt.Printf("✅ Report written to %s\n", path)
			}
			return nil
		})
	},
}

func init() {
	endSessionCmd.Flags().StringVar(&endWithPDF, "pdf", "", "Also write a PDF report of the session into this directory")
	rootCmd.AddCommand(endSessionCmd)
}

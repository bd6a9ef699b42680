package cmd

import (
	"fmt"
	"os"

	"github.com/misterclayt0n/gymtrack/internal/report"
	"github.com/spf13/cobra"
)

var (
	reportPDF bool
	reportQR  bool
	reportDir string
)

var reportCmd = &cobra.Command{
	Use:   "report [date]",
	Short: "Export the sessions of a day as PDF reports and/or QR codes",
	Long: `Export the sessions of a day (default today) as PDF reports and/or QR code images.
Without --pdf or --qr the text summary that the QR code carries is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		when := "today"
		if len(args) == 1 {
			when = args[0]
		}
		day, err := parseDay(when, a.loc)
		if err != nil {
			return err
		}
		sessions, err := sessionsOn(a, day)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return fmt.Errorf("No sessions on %s", day.Format("02/01/2006"))
		}

		if reportPDF || reportQR {
			if err := os.MkdirAll(reportDir, 0755); err != nil {
				return fmt.Errorf("Failed to create %s: %w", reportDir, err)
			}
		}
		for _, s := range sessions {
			if !reportPDF && !reportQR {
				fmt.Println(report.Summary(s, a.loc))
				continue
			}
			if reportPDF {
				path, err := report.WritePDF(reportDir, s, a.loc)
				if err != nil {
					return err
				}
				fmt.Printf("✅ PDF written to %s\n", path)
			}
			if reportQR {
				path, err := report.WriteQRCode(reportDir, s, a.loc)
				if err != nil {
					return err
				}
				fmt.Printf("✅ QR code written to %s\n", path)
			}
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportPDF, "pdf", false, "Write a PDF report per session")
	reportCmd.Flags().BoolVar(&reportQR, "qr", false, "Write a QR code PNG of each session summary")
	reportCmd.Flags().StringVar(&reportDir, "dir", ".", "Output directory")
	rootCmd.AddCommand(reportCmd)
}

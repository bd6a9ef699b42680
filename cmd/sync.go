package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importYes bool

var exportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Export all the database data to a TOML or YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile := "gymtrack_dump.toml" // Default filename.
		if len(args) == 1 {
			outputFile = args[0]
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.st.ExportToFile(outputFile); err != nil {
			return fmt.Errorf("error exporting database: %w", err)
		}

		fmt.Printf("✅ Database exported successfully to %s\n", outputFile)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [dump-file]",
	Short: "Replace the entire database with the contents of a dump file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if !importYes && !confirm(os.Stdin, "This replaces every workout and session. Continue?") {
			fmt.Println("Nothing imported.")
			return nil
		}
		if err := a.st.ImportFromFile(args[0]); err != nil {
			return fmt.Errorf("Failed to build database: %w", err)
		}
		fmt.Println("✅ Database built successfully from dump.")
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/misterclayt0n/gymtrack/internal/config"
	"github.com/spf13/cobra"
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config and create the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GetConfigPath()
		if configPath != "" {
			path = config.ExpandPath(configPath)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := config.Default().Save(path); err != nil {
				return err
			}
			fmt.Printf("✅ Config written to %s\n", path)
		}

		a, err := openApp()
		if err != nil {
			return fmt.Errorf("Failed to initialize database: %w", err)
		}
		defer a.Close()

		fmt.Printf("✅ Database initialized successfully at %s\n", a.cfg.DB.ConnectionString)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}

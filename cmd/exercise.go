package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/misterclayt0n/gymtrack/internal/library"
	"github.com/spf13/cobra"
)

var exercisesCmd = &cobra.Command{
	Use:   "exercises [category]",
	Short: "List the built-in exercise library, optionally one category",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		categories := library.Categories()
		if len(args) == 1 {
			var match string
			for _, c := range categories {
				if strings.EqualFold(c, args[0]) {
					match = c
				}
			}
			if match == "" {
				return fmt.Errorf("Unknown category %q (one of: %s)", args[0], strings.Join(categories, ", "))
			}
			categories = []string{match}
		}

		header := color.New(color.FgGreen, color.Bold).SprintFunc()
		for _, c := range categories {
			fmt.Println(header(c))
			for _, e := range library.InCategory(c) {
				sets, reps := e.Targets()
				target := fmt.Sprintf("%d × %s", sets, reps)
				if e.IsCardio() {
					target = reps
				}
				fmt.Printf("  • %-28s %s\n", e.Name, color.New(color.FgHiBlack).Sprint(target))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exercisesCmd)
}

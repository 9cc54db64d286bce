// Package categories implements the command that prints the classification
// table.
package categories

import (
	"fmt"

	"pocketpilot/budget-engine/cmd/root"
	"pocketpilot/budget-engine/internal/logging"
	"pocketpilot/budget-engine/internal/models"
	"pocketpilot/budget-engine/internal/store"

	"github.com/spf13/cobra"
)

// Cmd is the categories command.
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the fixed/flexible category table and minimum daily rates",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.NewLogrusAdapterFromLogger(root.Log)

		table, err := store.NewClassificationStore(root.ClassificationFile(cmd), logger).Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Fixed needs:")
		for _, category := range table.FixedCategories() {
			fmt.Fprintf(out, "  %s\n", category)
		}
		fmt.Fprintln(out, "\nFlexible needs (minimum daily rate):")
		for _, category := range table.FlexibleCategories() {
			rate, _ := table.MinimumDailyRate(category)
			fmt.Fprintf(out, "  %-26s %s/day\n", category, models.FormatPesoExact(rate))
		}
		return nil
	},
}

// Package months implements the data-quality report command.
package months

import (
	"fmt"
	"sort"

	"pocketpilot/budget-engine/cmd/root"
	"pocketpilot/budget-engine/internal/csvsource"
	"pocketpilot/budget-engine/internal/logging"
	"pocketpilot/budget-engine/internal/models"
	"pocketpilot/budget-engine/internal/quality"

	"github.com/spf13/cobra"
)

var inputFile string

// Cmd is the months command.
var Cmd = &cobra.Command{
	Use:   "months",
	Short: "Show per-month data quality for a transaction CSV",
	Long: `Classifies every recorded month by completeness and transaction
density, showing which months qualify as budgeting sources.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "transaction CSV file (required)")
	_ = Cmd.MarkFlagRequired("input")
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	transactions, warnings, err := csvsource.Load(inputFile, logger)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		logger.Warn(warning)
	}

	byMonth := make(map[models.MonthID][]models.Transaction)
	expected := make(map[models.Category]bool)
	for _, tx := range transactions {
		byMonth[tx.Month()] = append(byMonth[tx.Month()], tx)
		if tx.IsSpending() && tx.Category.IsAllocatable() {
			expected[tx.Category] = true
		}
	}

	months := make([]models.MonthID, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	classifier := quality.NewClassifier(logger)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-8s  %-13s  %13s  %13s  %11s\n",
		"month", "tier", "completeness", "transactions", "days logged")
	for _, month := range months {
		summary, _ := classifier.Summarize(month, byMonth[month], len(expected))
		fmt.Fprintf(out, "%-8s  %-13s  %12.1f%%  %13d  %11d\n",
			summary.Month, summary.Tier, summary.CompletenessPercent,
			summary.TransactionCount, summary.DaysLogged)
	}
	return nil
}

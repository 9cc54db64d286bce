// Package prescribe implements the command that computes a budget
// prescription from a transaction CSV.
package prescribe

import (
	"fmt"
	"os"

	"pocketpilot/budget-engine/cmd/root"
	"pocketpilot/budget-engine/internal/csvsource"
	"pocketpilot/budget-engine/internal/engine"
	"pocketpilot/budget-engine/internal/logging"
	"pocketpilot/budget-engine/internal/models"
	"pocketpilot/budget-engine/internal/report"
	"pocketpilot/budget-engine/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	inputFile  string
	outputFile string
	monthFlag  string
	incomeFlag string
	formatFlag string
)

// Cmd is the prescribe command.
var Cmd = &cobra.Command{
	Use:   "prescribe",
	Short: "Compute a budget prescription for a target month",
	Long: `Reads a transaction CSV (columns: date, amount, category, kind,
description), computes the prescription for the target month, and renders it
as text or JSON.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "transaction CSV file (required)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the report to a file instead of stdout")
	Cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "target month as YYYY-MM (required)")
	Cmd.Flags().StringVar(&incomeFlag, "income", "", "declared monthly income; derived from income transactions when omitted")
	Cmd.Flags().StringVarP(&formatFlag, "format", "f", "text", "output format: text or json")
	_ = Cmd.MarkFlagRequired("input")
	_ = Cmd.MarkFlagRequired("month")
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	target, err := models.ParseMonthID(monthFlag)
	if err != nil {
		return err
	}

	income := engine.StaticIncome{}
	if incomeFlag != "" {
		amount, err := decimal.NewFromString(incomeFlag)
		if err != nil {
			return fmt.Errorf("invalid income %q: %w", incomeFlag, err)
		}
		income = engine.StaticIncome{Amount: amount, Declared: true}
	}

	table, err := store.NewClassificationStore(root.ClassificationFile(cmd), logger).Load()
	if err != nil {
		return err
	}

	transactions, warnings, err := csvsource.Load(inputFile, logger)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		logger.Warn(warning)
	}

	options := engine.Options{Table: table, Logger: logger}
	if root.Cfg != nil {
		options.RetentionMonths = root.Cfg.Engine.RetentionMonths
		options.FrequencyThreshold = root.Cfg.Engine.FrequencyThreshold
	}
	eng := engine.New(csvsource.NewFileSource(transactions), income, options)

	prescription, err := eng.ComputeBudgetPrescription("local", target)
	if err != nil {
		return err
	}

	rendered, err := report.NewGenerator(logger).Render(prescription, formatFlag)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, rendered, models.PermissionReportFile); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Report written",
			logging.Field{Key: logging.FieldFile, Value: outputFile})
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(rendered))
	return nil
}

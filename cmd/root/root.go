// Package root contains the root command for the application.
package root

import (
	"pocketpilot/budget-engine/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration, available to subcommands
	// after PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "budget-engine",
		Short: "Compute monthly budget prescriptions from transaction history.",
		Long: `budget-engine reads a user's transaction history, selects a reliable
source month, reconstructs spending categories across time, and prescribes
per-category allocations for an upcoming month, validated against income.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)
			return nil
		},
	}
)

// Init wires persistent flags. Called once from main before subcommands are
// attached.
func Init() {
	Cmd.PersistentFlags().String("classification", "",
		"path to a classification.yaml overriding the built-in category table")
}

// ClassificationFile resolves the classification table path: flag first,
// then configuration.
func ClassificationFile(cmd *cobra.Command) string {
	if file, err := cmd.Flags().GetString("classification"); err == nil && file != "" {
		return file
	}
	if Cfg != nil {
		return Cfg.Classification.File
	}
	return ""
}

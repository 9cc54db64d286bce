// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Currency string `mapstructure:"currency" yaml:"currency"`

	Engine struct {
		// RetentionMonths is the category lookback window: a category last
		// seen more than this many calendar months before the target month
		// is dropped from the prescription.
		RetentionMonths int `mapstructure:"retention_months" yaml:"retention_months"`
		// FrequencyThreshold is the minimum appearance ratio for a
		// non-fixed category absent from the base month to be estimated.
		FrequencyThreshold float64 `mapstructure:"frequency_threshold" yaml:"frequency_threshold"`
	} `mapstructure:"engine" yaml:"engine"`

	Classification struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"classification" yaml:"classification"`
}

var loadEnvOnce sync.Once

// LoadEnv loads environment variables from a .env file if one exists.
func LoadEnv() {
	loadEnvOnce.Do(func() {
		if _, err := os.Stat(".env"); err == nil {
			_ = godotenv.Load(".env")
		}
	})
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then POCKETPILOT_* environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.config/pocketpilot")
	v.AddConfigPath(".pocketpilot")
	v.AddConfigPath(".")

	v.SetEnvPrefix("POCKETPILOT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars; a broken file is noisy, not fatal.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("currency", "PHP")

	v.SetDefault("engine.retention_months", 6)
	v.SetDefault("engine.frequency_threshold", 0.5)

	v.SetDefault("classification.file", "classification.yaml")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Engine.RetentionMonths < 1 {
		return fmt.Errorf("engine.retention_months must be at least 1, got: %d", config.Engine.RetentionMonths)
	}

	if config.Engine.FrequencyThreshold < 0.0 || config.Engine.FrequencyThreshold > 1.0 {
		return fmt.Errorf("engine.frequency_threshold must be between 0.0 and 1.0, got: %f", config.Engine.FrequencyThreshold)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// Package store loads the static category-classification table: which
// categories are fixed needs, which are flexible needs, and the minimum
// daily rate enforced for each flexible category.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"pocketpilot/budget-engine/internal/logging"
	"pocketpilot/budget-engine/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FlexibleRateConfig is one flexible category and its floor in the YAML file.
type FlexibleRateConfig struct {
	Name             string `yaml:"name"`
	MinimumDailyRate string `yaml:"minimum_daily_rate"`
}

// ClassificationConfig is the YAML shape of the classification table.
type ClassificationConfig struct {
	Fixed    []string             `yaml:"fixed"`
	Flexible []FlexibleRateConfig `yaml:"flexible"`
}

// Table is the loaded, immutable classification table. It is built once at
// startup and only read afterwards, so no locking is needed.
type Table struct {
	fixed        map[models.Category]bool
	minimumDaily map[models.Category]decimal.Decimal
}

// DefaultTable returns the compiled-in classification table used when no
// configuration file overrides it. Rates are pesos per day.
func DefaultTable() *Table {
	return &Table{
		fixed: map[models.Category]bool{
			models.CategoryHousing:   true,
			models.CategoryDebt:      true,
			models.CategoryEducation: true,
			models.CategoryChildcare: true,
			models.CategoryHealth:    true,
		},
		minimumDaily: map[models.Category]decimal.Decimal{
			models.CategoryFood:          decimal.NewFromInt(100),
			models.CategoryTransport:     decimal.NewFromInt(50),
			models.CategoryEntertainment: decimal.NewFromInt(25),
		},
	}
}

// IsFixed reports whether the category is a fixed need.
func (t *Table) IsFixed(category models.Category) bool {
	return t.fixed[category]
}

// Classify returns the fixed/flexible classification for a category.
func (t *Table) Classify(category models.Category) models.Classification {
	if t.fixed[category] {
		return models.ClassificationFixed
	}
	return models.ClassificationFlexible
}

// MinimumDailyRate returns the enforced daily floor for a flexible category.
// The second return is false when no floor is configured.
func (t *Table) MinimumDailyRate(category models.Category) (decimal.Decimal, bool) {
	rate, ok := t.minimumDaily[category]
	return rate, ok
}

// FixedCategories returns the fixed-need categories sorted by name.
func (t *Table) FixedCategories() []models.Category {
	categories := make([]models.Category, 0, len(t.fixed))
	for category := range t.fixed {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}

// FlexibleCategories returns the flexible categories with configured floors,
// sorted by name.
func (t *Table) FlexibleCategories() []models.Category {
	categories := make([]models.Category, 0, len(t.minimumDaily))
	for category := range t.minimumDaily {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}

// ClassificationStore manages loading of the classification table.
type ClassificationStore struct {
	ConfigFile string
	logger     logging.Logger
}

// NewClassificationStore creates a store for the classification table.
func NewClassificationStore(configFile string, logger logging.Logger) *ClassificationStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &ClassificationStore{ConfigFile: configFile, logger: logger}
}

// findConfigFile looks for the configuration file in standard locations.
func (s *ClassificationStore) findConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "pocketpilot", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// Load reads the classification table, falling back to the compiled-in
// defaults when no file is found. A missing file is not an error.
func (s *ClassificationStore) Load() (*Table, error) {
	filename := s.ConfigFile
	if filename == "" {
		filename = "classification.yaml"
	}

	filePath, err := s.findConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Classification file not found, using defaults",
				logging.Field{Key: logging.FieldFile, Value: filename})
			return DefaultTable(), nil
		}
		return nil, fmt.Errorf("error resolving classification file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading classification file: %w", err)
	}

	var config ClassificationConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing classification file %s: %w", filePath, err)
	}

	table, err := tableFromConfig(config)
	if err != nil {
		return nil, fmt.Errorf("invalid classification file %s: %w", filePath, err)
	}

	s.logger.Info("Loaded classification table",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: "fixed", Value: len(table.fixed)},
		logging.Field{Key: "flexible", Value: len(table.minimumDaily)})
	return table, nil
}

func tableFromConfig(config ClassificationConfig) (*Table, error) {
	table := &Table{
		fixed:        make(map[models.Category]bool),
		minimumDaily: make(map[models.Category]decimal.Decimal),
	}

	for _, name := range config.Fixed {
		category, err := models.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		table.fixed[category] = true
	}

	for _, entry := range config.Flexible {
		category, err := models.ParseCategory(entry.Name)
		if err != nil {
			return nil, err
		}
		if table.fixed[category] {
			return nil, fmt.Errorf("category %q is listed as both fixed and flexible", entry.Name)
		}
		rate, err := decimal.NewFromString(entry.MinimumDailyRate)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum daily rate for %q: %w", entry.Name, err)
		}
		if rate.IsNegative() {
			return nil, fmt.Errorf("minimum daily rate for %q cannot be negative", entry.Name)
		}
		table.minimumDaily[category] = rate
	}

	return table, nil
}

// Package csvsource reads transaction snapshots from CSV files and adapts
// them to the engine's TransactionSource contract. It is a boundary adapter:
// malformed rows degrade with warnings, they never abort the load.
package csvsource

import (
	"fmt"
	"os"
	"strings"
	"time"

	"pocketpilot/budget-engine/internal/logging"
	"pocketpilot/budget-engine/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Row maps one CSV line. Kind defaults to expense and description is
// optional, so minimal exports with just date, amount and category load fine.
type Row struct {
	Date        string `csv:"date"`
	Amount      string `csv:"amount"`
	Category    string `csv:"category"`
	Kind        string `csv:"kind"`
	Description string `csv:"description"`
}

// dateFormats lists the layouts accepted for the date column.
var dateFormats = []string{
	"2006-01-02",
	"02.01.2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// parseDate tries each accepted layout in order.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// Load reads a transaction CSV. Rows with an unparseable date or category
// are skipped with a warning; unparseable amounts load as zero with a
// warning, mirroring how the engine treats malformed amounts.
func Load(filePath string, logger logging.Logger) ([]models.Transaction, []string, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.Info("Reading transaction CSV",
		logging.Field{Key: logging.FieldFile, Value: filePath})

	file, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []Row
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	var transactions []models.Transaction
	var warnings []string
	for i, row := range rows {
		line := i + 2 // header is line 1

		date, err := parseDate(row.Date)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v; row skipped", line, err))
			continue
		}

		category, err := models.ParseCategory(row.Category)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v; row skipped", line, err))
			continue
		}

		kind, err := models.ParseKind(row.Kind)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v; row skipped", line, err))
			continue
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(row.Amount))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: invalid amount %q treated as zero", line, row.Amount))
			amount = decimal.Zero
		}

		transactions = append(transactions, models.Transaction{
			Date:        date,
			Amount:      amount,
			Category:    category,
			Kind:        kind,
			Description: strings.TrimSpace(row.Description),
		})
	}

	logger.Info("Loaded transactions",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions, warnings, nil
}

// FileSource serves a loaded CSV snapshot as a TransactionSource.
type FileSource struct {
	transactions []models.Transaction
}

// NewFileSource wraps an already-loaded snapshot.
func NewFileSource(transactions []models.Transaction) *FileSource {
	return &FileSource{transactions: transactions}
}

// Transactions returns the snapshot filtered to the requested range. A zero
// from or to leaves that side unbounded; to is exclusive.
func (s *FileSource) Transactions(_ string, from, to time.Time) ([]models.Transaction, error) {
	var result []models.Transaction
	for _, tx := range s.transactions {
		if !from.IsZero() && tx.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !tx.Date.Before(to) {
			continue
		}
		result = append(result, tx)
	}
	return result, nil
}

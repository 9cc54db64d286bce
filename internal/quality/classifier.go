// Package quality scores each recorded month's data completeness and picks
// the base month that seeds the next budget cycle.
package quality

import (
	"fmt"

	"pocketpilot/budget-engine/internal/logging"
	"pocketpilot/budget-engine/internal/models"

	"github.com/shopspring/decimal"
)

// Reliability tier thresholds. Each tier is an OR of a completeness floor and
// a transaction-count floor; the highest satisfied tier wins.
const (
	reliableCompleteness = 80.0
	reliableCount        = 25
	strongCompleteness   = 70.0
	strongCount          = 20
	usableCompleteness   = 50.0
	usableCount          = 15
)

// Classifier builds MonthSummary values from raw transactions.
type Classifier struct {
	logger logging.Logger
}

// NewClassifier creates a Classifier.
func NewClassifier(logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Classifier{logger: logger}
}

// Summarize computes the MonthSummary for one calendar month's transactions.
// expectedCategories is the number of distinct spending categories observed
// across the user's full history. Malformed amounts (negative where spending
// is expected) are aggregated as zero; each such case is reported as a warning
// rather than an error, since rejecting bad input is the persistence layer's
// job.
func (c *Classifier) Summarize(month models.MonthID, transactions []models.Transaction, expectedCategories int) (models.MonthSummary, []string) {
	summary := models.MonthSummary{
		Month:          month,
		CategoryTotals: make(map[models.Category]decimal.Decimal),
		IncomeTotal:    decimal.Zero,
	}
	var warnings []string

	daysSeen := make(map[int]bool)
	categoriesFilled := make(map[models.Category]bool)

	for _, tx := range transactions {
		if !month.Contains(tx.Date) {
			continue
		}
		summary.TransactionCount++
		daysSeen[tx.Date.Day()] = true

		amount := tx.Amount
		if amount.IsNegative() {
			warnings = append(warnings, fmt.Sprintf(
				"malformed amount %s for %s on %s treated as zero",
				amount.String(), tx.Category, tx.Date.Format("2006-01-02")))
			amount = decimal.Zero
		}

		if tx.Kind == models.KindIncome {
			summary.IncomeTotal = summary.IncomeTotal.Add(amount)
			continue
		}

		categoriesFilled[tx.Category] = true
		summary.CategoryTotals[tx.Category] = summary.CategoryTotals[tx.Category].Add(amount)
	}

	summary.DaysLogged = len(daysSeen)
	if expectedCategories > 0 {
		summary.CompletenessPercent = float64(len(categoriesFilled)) / float64(expectedCategories) * 100
	}
	summary.Tier = TierFor(summary.CompletenessPercent, summary.TransactionCount)

	c.logger.Debug("Summarized month",
		logging.Field{Key: logging.FieldMonth, Value: month.String()},
		logging.Field{Key: logging.FieldTier, Value: summary.Tier},
		logging.Field{Key: logging.FieldCount, Value: summary.TransactionCount})

	return summary, warnings
}

// TierFor assigns the reliability tier for a month given its completeness
// percentage and transaction count.
func TierFor(completenessPercent float64, transactionCount int) models.ReliabilityTier {
	switch {
	case completenessPercent >= reliableCompleteness || transactionCount >= reliableCount:
		return models.TierReliable
	case completenessPercent >= strongCompleteness || transactionCount >= strongCount:
		return models.TierStrong
	case completenessPercent >= usableCompleteness || transactionCount >= usableCount:
		return models.TierUsable
	default:
		return models.TierInsufficient
	}
}

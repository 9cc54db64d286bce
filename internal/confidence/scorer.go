// Package confidence assigns trust labels to prescriptions and to individual
// category allocations. Its thresholds are deliberately different from the
// reliability tiers used for base-month selection; the two concepts look
// similar but are calibrated independently.
package confidence

import (
	"pocketpilot/budget-engine/internal/models"
)

const (
	highCompleteness   = 80.0
	highCount          = 25
	mediumCompleteness = 50.0
	mediumCount        = 15
)

// Overall labels the whole prescription from the base month's quality.
func Overall(base models.MonthSummary) models.ConfidenceLevel {
	switch {
	case base.CompletenessPercent >= highCompleteness || base.TransactionCount >= highCount:
		return models.ConfidenceHigh
	case base.CompletenessPercent >= mediumCompleteness || base.TransactionCount >= mediumCount:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// ForCategory labels one allocation. Actual base-month values are trusted;
// estimates degrade with the amount of history behind them, and a value that
// had to be floored up to its minimum is never better than medium.
func ForCategory(isEstimated bool, appearanceCount int, wasAdjustedUp bool) models.ConfidenceLevel {
	if !isEstimated {
		if wasAdjustedUp {
			return models.ConfidenceMedium
		}
		return models.ConfidenceHigh
	}
	if appearanceCount >= 2 {
		return models.ConfidenceMedium
	}
	return models.ConfidenceLow
}

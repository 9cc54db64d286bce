package quality

import (
	"testing"
	"time"

	"pocketpilot/budget-engine/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(date string, amount float64, category models.Category, kind models.Kind) models.Transaction {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		Date:     parsed,
		Amount:   decimal.NewFromFloat(amount),
		Category: category,
		Kind:     kind,
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		name         string
		completeness float64
		count        int
		expected     models.ReliabilityTier
	}{
		{name: "reliable by completeness", completeness: 80, count: 0, expected: models.TierReliable},
		{name: "reliable by count", completeness: 0, count: 25, expected: models.TierReliable},
		{name: "strong by completeness", completeness: 70, count: 0, expected: models.TierStrong},
		{name: "strong by count", completeness: 10, count: 20, expected: models.TierStrong},
		{name: "usable by completeness", completeness: 50, count: 0, expected: models.TierUsable},
		{name: "usable by count", completeness: 10, count: 15, expected: models.TierUsable},
		{name: "insufficient", completeness: 49.9, count: 14, expected: models.TierInsufficient},
		{name: "empty month", completeness: 0, count: 0, expected: models.TierInsufficient},
		{name: "just below reliable lands strong", completeness: 79.9, count: 24, expected: models.TierStrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TierFor(tt.completeness, tt.count))
		})
	}
}

func TestSummarize(t *testing.T) {
	classifier := NewClassifier(nil)
	july := models.MonthID{Year: 2025, Month: time.July}

	transactions := []models.Transaction{
		tx("2025-07-01", 2500, models.CategoryFood, models.KindExpense),
		tx("2025-07-05", 1800, models.CategoryFood, models.KindExpense),
		tx("2025-07-05", 8000, models.CategoryHousing, models.KindExpense),
		tx("2025-07-10", 30000, models.CategoryIncome, models.KindIncome),
		// Transactions outside the month are ignored entirely.
		tx("2025-06-30", 999, models.CategoryFood, models.KindExpense),
	}

	summary, warnings := classifier.Summarize(july, transactions, 4)

	assert.Empty(t, warnings)
	assert.Equal(t, july, summary.Month)
	assert.Equal(t, 4, summary.TransactionCount)
	assert.Equal(t, 3, summary.DaysLogged)
	// 2 of 4 expected categories filled; income does not count.
	assert.InDelta(t, 50.0, summary.CompletenessPercent, 0.001)
	assert.Equal(t, models.TierUsable, summary.Tier)
	assert.True(t, decimal.NewFromInt(4300).Equal(summary.CategoryTotals[models.CategoryFood]))
	assert.True(t, decimal.NewFromInt(8000).Equal(summary.CategoryTotals[models.CategoryHousing]))
	assert.True(t, decimal.NewFromInt(30000).Equal(summary.IncomeTotal))
}

func TestSummarizeMalformedAmount(t *testing.T) {
	classifier := NewClassifier(nil)
	july := models.MonthID{Year: 2025, Month: time.July}

	transactions := []models.Transaction{
		tx("2025-07-01", -500, models.CategoryFood, models.KindExpense),
		tx("2025-07-02", 1000, models.CategoryFood, models.KindExpense),
	}

	summary, warnings := classifier.Summarize(july, transactions, 1)

	// The negative amount aggregates as zero with a warning, not an error.
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "treated as zero")
	assert.True(t, decimal.NewFromInt(1000).Equal(summary.CategoryTotals[models.CategoryFood]))
	assert.Equal(t, 2, summary.TransactionCount)
}

func TestSummarizeCompletenessBounds(t *testing.T) {
	classifier := NewClassifier(nil)
	july := models.MonthID{Year: 2025, Month: time.July}

	// Empty month.
	summary, _ := classifier.Summarize(july, nil, 5)
	assert.Equal(t, 0.0, summary.CompletenessPercent)

	// All expected categories filled caps at 100.
	transactions := []models.Transaction{
		tx("2025-07-01", 100, models.CategoryFood, models.KindExpense),
		tx("2025-07-02", 100, models.CategoryTransport, models.KindExpense),
	}
	summary, _ = classifier.Summarize(july, transactions, 2)
	assert.Equal(t, 100.0, summary.CompletenessPercent)

	// Zero expected categories guards the division.
	summary, _ = classifier.Summarize(july, transactions, 0)
	assert.Equal(t, 0.0, summary.CompletenessPercent)
}

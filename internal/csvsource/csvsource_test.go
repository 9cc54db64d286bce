package csvsource

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pocketpilot/budget-engine/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, `date,amount,category,kind,description
2025-07-01,8000,Housing & Utilities,expense,Rent
2025-07-03,300.50,Food,,Groceries
15.07.2025,25000,Income,income,Salary
`)

	transactions, warnings, err := Load(path, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, transactions, 3)

	assert.Equal(t, models.CategoryHousing, transactions[0].Category)
	assert.True(t, decimal.NewFromInt(8000).Equal(transactions[0].Amount))
	assert.Equal(t, "Rent", transactions[0].Description)

	// An empty kind column defaults to expense.
	assert.Equal(t, models.KindExpense, transactions[1].Kind)

	// European dotted dates are accepted alongside ISO.
	assert.Equal(t, time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), transactions[2].Date)
	assert.Equal(t, models.KindIncome, transactions[2].Kind)
}

func TestLoadMalformedRows(t *testing.T) {
	path := writeCSV(t, `date,amount,category,kind,description
not-a-date,100,Food,expense,
2025-07-02,100,Knitting Supplies,expense,
2025-07-03,abc,Food,expense,
2025-07-04,100,Food,sideways,
2025-07-05,450,Food,expense,Groceries
`)

	transactions, warnings, err := Load(path, nil)
	require.NoError(t, err)

	// Bad dates, categories and kinds skip the row; a bad amount keeps the
	// row and zeroes the amount.
	require.Len(t, transactions, 2)
	assert.True(t, transactions[0].Amount.IsZero())
	assert.True(t, decimal.NewFromInt(450).Equal(transactions[1].Amount))

	require.Len(t, warnings, 4)
	assert.Contains(t, warnings[0], "line 2")
	assert.Contains(t, warnings[0], "row skipped")
	assert.Contains(t, warnings[2], "treated as zero")
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent.csv"), nil)
	assert.Error(t, err)
}

func TestFileSourceRangeFilter(t *testing.T) {
	transactions := []models.Transaction{
		{Date: time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(1), Category: models.CategoryFood, Kind: models.KindExpense},
		{Date: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(2), Category: models.CategoryFood, Kind: models.KindExpense},
		{Date: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(3), Category: models.CategoryFood, Kind: models.KindExpense},
	}
	source := NewFileSource(transactions)

	// to is exclusive: the August 1 transaction is outside a July window.
	got, err := source.Transactions("local",
		time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, decimal.NewFromInt(2).Equal(got[0].Amount))

	// Zero bounds leave both sides open.
	got, err = source.Transactions("local", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable snapshot of one recorded transaction.
// The persistence collaborator owns the records; the engine only reads them.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Kind        Kind            `json:"kind"`
	Description string          `json:"description,omitempty"`
}

// Month returns the calendar month the transaction falls in.
func (t Transaction) Month() MonthID {
	return MonthOf(t.Date)
}

// IsSpending reports whether the transaction counts toward category spending
// totals. Income feeds the declared-income fallback instead.
func (t Transaction) IsSpending() bool {
	return t.Kind != KindIncome
}

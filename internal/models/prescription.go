package models

import (
	"github.com/shopspring/decimal"
)

// MonthSummary is the derived data-quality view of one calendar month.
// It is recomputed on demand from the transaction snapshot, never mutated.
type MonthSummary struct {
	Month               MonthID                      `json:"monthId"`
	CompletenessPercent float64                      `json:"completenessPercent"`
	TransactionCount    int                          `json:"transactionCount"`
	Tier                ReliabilityTier              `json:"reliabilityTier"`
	CategoryTotals      map[Category]decimal.Decimal `json:"categoryTotals"`
	IncomeTotal         decimal.Decimal              `json:"incomeTotal"`
	DaysLogged          int                          `json:"daysLogged"`
}

// MonthTotal is one month's spending total for a category.
type MonthTotal struct {
	Month MonthID         `json:"monthId"`
	Total decimal.Decimal `json:"total"`
}

// CategoryHistoryEntry is a per-category timeline across all recorded months.
// MonthlyTotals is kept in chronological order.
type CategoryHistoryEntry struct {
	Category            Category     `json:"category"`
	MonthlyTotals       []MonthTotal `json:"monthlyTotals"`
	LastSeenMonth       MonthID      `json:"lastSeenMonth"`
	AppearanceCount     int          `json:"appearanceCount"`
	TotalRecordedMonths int          `json:"totalRecordedMonths"`
}

// FrequencyRatio is the share of recorded months the category appeared in.
func (e CategoryHistoryEntry) FrequencyRatio() float64 {
	if e.TotalRecordedMonths == 0 {
		return 0
	}
	return float64(e.AppearanceCount) / float64(e.TotalRecordedMonths)
}

// CategoryAllocation is one category's share of the prescribed budget.
type CategoryAllocation struct {
	Category       Category        `json:"category"`
	Classification Classification  `json:"classification"`
	Amount         decimal.Decimal `json:"amount"`
	Minimum        decimal.Decimal `json:"minimum"`
	IsEstimated    bool            `json:"isEstimated"`
	WasAdjustedUp  bool            `json:"wasAdjustedUp"`
	Confidence     ConfidenceLevel `json:"confidenceLabel"`
}

// BudgetPrescription is the engine's sole output: a pure, serializable
// snapshot computed fresh for a (user, target month) pair. It has no
// independent persistence; callers cache it keyed by Fingerprint if desired.
type BudgetPrescription struct {
	TargetMonth       MonthID              `json:"targetMonth"`
	BaseMonth         MonthID              `json:"baseMonth"`
	CarriedOver       bool                 `json:"carriedOver"`
	Fixed             []CategoryAllocation `json:"fixed"`
	Flexible          []CategoryAllocation `json:"flexible"`
	DeclaredIncome    decimal.Decimal      `json:"declaredIncome"`
	TotalAllocated    decimal.Decimal      `json:"totalAllocated"`
	Remaining         decimal.Decimal      `json:"remaining"`
	ValidationCase    ValidationCase       `json:"validationCase"`
	Recommendation    string               `json:"recommendation,omitempty"`
	OverallConfidence ConfidenceLevel      `json:"overallConfidence"`
	Warnings          []string             `json:"warnings,omitempty"`
	Fingerprint       string               `json:"fingerprint"`
}

// FixedTotal sums the fixed allocations.
func (p BudgetPrescription) FixedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, allocation := range p.Fixed {
		total = total.Add(allocation.Amount)
	}
	return total
}

// FlexibleTotal sums the flexible allocations.
func (p BudgetPrescription) FlexibleTotal() decimal.Decimal {
	total := decimal.Zero
	for _, allocation := range p.Flexible {
		total = total.Add(allocation.Amount)
	}
	return total
}

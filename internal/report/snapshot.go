package report

import (
	"fmt"

	"pocketpilot/budget-engine/internal/models"

	"github.com/shopspring/decimal"
)

// defaultBudget is shown before any prescription exists.
var defaultBudget = decimal.NewFromInt(500)

// SpendingSnapshot is the compact mid-month view consumed by the home-screen
// widget collaborator: prescribed budget, spending so far, and a progress
// percentage capped at 100.
type SpendingSnapshot struct {
	Budget     decimal.Decimal `json:"budget"`
	Expenses   decimal.Decimal `json:"expenses"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage int             `json:"percentage"`
}

// NewSpendingSnapshot builds a snapshot from a prescription's total and the
// expenses recorded so far in the target month. Negative expense input is
// clamped to zero.
func NewSpendingSnapshot(budget, expenses decimal.Decimal) SpendingSnapshot {
	if budget.IsNegative() {
		budget = decimal.Zero
	}
	if expenses.IsNegative() {
		expenses = decimal.Zero
	}

	percentage := 0
	if budget.IsPositive() {
		ratio := expenses.Mul(decimal.NewFromInt(100)).Div(budget).IntPart()
		percentage = int(ratio)
		if percentage > 100 {
			percentage = 100
		}
	}

	return SpendingSnapshot{
		Budget:     budget,
		Expenses:   expenses,
		Remaining:  budget.Sub(expenses),
		Percentage: percentage,
	}
}

// DefaultSnapshot is the placeholder shown when no prescription has been
// computed yet: a ₱500 budget with nothing spent.
func DefaultSnapshot() SpendingSnapshot {
	return NewSpendingSnapshot(defaultBudget, decimal.Zero)
}

// SnapshotFor derives the snapshot for a prescription and the expense total
// recorded so far in its target month.
func SnapshotFor(prescription models.BudgetPrescription, expensesToDate decimal.Decimal) SpendingSnapshot {
	return NewSpendingSnapshot(prescription.TotalAllocated, expensesToDate)
}

// DailyTip returns a short nudge keyed on the spent percentage.
func (s SpendingSnapshot) DailyTip() string {
	switch {
	case s.Percentage >= 100:
		return "Budget fully used! Consider saving for tomorrow."
	case s.Percentage >= 90:
		return "Budget almost used! Consider saving for tomorrow."
	case s.Percentage >= 70:
		return fmt.Sprintf("Watch your spending! You're at %d%% of budget.", s.Percentage)
	case s.Percentage >= 50:
		return "Halfway through your budget. Stay mindful of expenses."
	case s.Percentage >= 25:
		return "Good spending pace! Keep tracking your expenses."
	default:
		return "Great start! Every peso saved builds wealth."
	}
}

// String renders the snapshot in the compact widget form.
func (s SpendingSnapshot) String() string {
	return fmt.Sprintf("%s of %s spent (%d%%)",
		models.FormatPeso(s.Expenses), models.FormatPeso(s.Budget), s.Percentage)
}

// Package allocation turns included category candidates into fixed and
// flexible budget amounts for the target month.
package allocation

import (
	"sort"

	"pocketpilot/budget-engine/internal/confidence"
	"pocketpilot/budget-engine/internal/history"
	"pocketpilot/budget-engine/internal/logging"
	"pocketpilot/budget-engine/internal/models"
	"pocketpilot/budget-engine/internal/store"

	"github.com/shopspring/decimal"
)

// Result holds allocations before income validation. Totals are unrounded;
// rounding to centavos happens only at the final output boundary.
type Result struct {
	Fixed    []models.CategoryAllocation
	Flexible []models.CategoryAllocation

	FixedTotal    decimal.Decimal
	FlexibleTotal decimal.Decimal

	// MinimumFlexTotal is the sum of the flexible floors, used by the
	// validator to detect an unsustainable budget.
	MinimumFlexTotal decimal.Decimal
}

// Engine computes per-category amounts.
type Engine struct {
	table  *store.Table
	logger logging.Logger
}

// NewEngine creates an allocation Engine over the classification table.
func NewEngine(table *store.Table, logger logging.Logger) *Engine {
	if table == nil {
		table = store.DefaultTable()
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Engine{table: table, logger: logger}
}

// Allocate computes the amount for every candidate.
//
// Fixed needs pass through unmodified. Flexible needs present in the base
// month are projected at the observed daily rate over the target month's
// days; estimated flexible needs use their estimate. Both are then floored at
// the category's minimum daily rate times the days in the target month, with
// WasAdjustedUp set when the floor applied.
func (e *Engine) Allocate(candidates []history.Candidate, base models.MonthSummary, target models.MonthID) Result {
	result := Result{
		FixedTotal:       decimal.Zero,
		FlexibleTotal:    decimal.Zero,
		MinimumFlexTotal: decimal.Zero,
	}
	daysInTarget := decimal.NewFromInt(int64(target.Days()))

	for _, candidate := range candidates {
		if candidate.Classification == models.ClassificationFixed {
			allocation := models.CategoryAllocation{
				Category:       candidate.Entry.Category,
				Classification: models.ClassificationFixed,
				Amount:         candidate.Amount,
				IsEstimated:    candidate.IsEstimated,
			}
			allocation.Confidence = confidence.ForCategory(
				allocation.IsEstimated, candidate.Entry.AppearanceCount, false)
			result.Fixed = append(result.Fixed, allocation)
			result.FixedTotal = result.FixedTotal.Add(allocation.Amount)
			continue
		}

		allocation := e.allocateFlexible(candidate, base, daysInTarget)
		result.Flexible = append(result.Flexible, allocation)
		result.FlexibleTotal = result.FlexibleTotal.Add(allocation.Amount)
		result.MinimumFlexTotal = result.MinimumFlexTotal.Add(allocation.Minimum)
	}

	sortAllocations(result.Fixed)
	sortAllocations(result.Flexible)
	return result
}

func (e *Engine) allocateFlexible(candidate history.Candidate, base models.MonthSummary, daysInTarget decimal.Decimal) models.CategoryAllocation {
	category := candidate.Entry.Category

	minimum := decimal.Zero
	if rate, ok := e.table.MinimumDailyRate(category); ok {
		minimum = rate.Mul(daysInTarget)
	}

	var projected decimal.Decimal
	floorDirect := false
	if candidate.FromBaseMonth {
		if base.DaysLogged == 0 {
			// Nothing to derive a daily rate from; the floor stands in.
			projected = minimum
			floorDirect = true
		} else {
			daily := candidate.Amount.Div(decimal.NewFromInt(int64(base.DaysLogged)))
			projected = daily.Mul(daysInTarget)
		}
	} else {
		projected = candidate.Amount
	}

	amount := projected
	adjustedUp := floorDirect
	if minimum.GreaterThan(projected) {
		amount = minimum
		adjustedUp = true
		e.logger.Debug("Applied minimum daily-rate floor",
			logging.Field{Key: logging.FieldCategory, Value: category},
			logging.Field{Key: logging.FieldAmount, Value: minimum.String()})
	}

	return models.CategoryAllocation{
		Category:       category,
		Classification: models.ClassificationFlexible,
		Amount:         amount,
		Minimum:        minimum,
		IsEstimated:    candidate.IsEstimated,
		WasAdjustedUp:  adjustedUp,
		Confidence: confidence.ForCategory(
			candidate.IsEstimated, candidate.Entry.AppearanceCount, adjustedUp),
	}
}

func sortAllocations(allocations []models.CategoryAllocation) {
	sort.Slice(allocations, func(i, j int) bool {
		return allocations[i].Category < allocations[j].Category
	})
}

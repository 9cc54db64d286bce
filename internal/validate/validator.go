// Package validate reconciles the computed allocation against declared
// income, applying one of three mutually exclusive adjustment policies.
package validate

import (
	"pocketpilot/budget-engine/internal/allocation"
	"pocketpilot/budget-engine/internal/logging"
	"pocketpilot/budget-engine/internal/models"

	"github.com/shopspring/decimal"
)

// RecommendationUnsustainable is surfaced on a Case C prescription in place
// of a feasible allocation.
const RecommendationUnsustainable = "Fixed obligations plus minimum flexible needs exceed income. " +
	"Reduce fixed obligations or increase income to reach a sustainable budget."

// Outcome is the validated allocation.
type Outcome struct {
	Fixed    []models.CategoryAllocation
	Flexible []models.CategoryAllocation

	Case           models.ValidationCase
	Recommendation string
}

// Validate applies the income-reconciliation policy:
//
//   - Case A: the fixed total alone exceeds income. Flexible categories are
//     forced down to their bare minimums; the total may still exceed income,
//     which is reported rather than hidden.
//   - Case C: fixed plus the flexible minimums exceeds income. No feasible
//     in-budget allocation exists; minimums are emitted as-is and the
//     prescription is flagged unsustainable with a remediation
//     recommendation.
//   - Case B: fixed plus the floored flexible total exceeds income, but
//     fixed alone fits. Every flexible category scales proportionally into
//     the remaining room.
//   - Otherwise the allocation stands as computed.
func Validate(result allocation.Result, declaredIncome decimal.Decimal, logger logging.Logger) Outcome {
	if logger == nil {
		logger = logging.GetLogger()
	}

	outcome := Outcome{
		Fixed:    result.Fixed,
		Flexible: result.Flexible,
		Case:     models.ValidationNone,
	}

	switch {
	case result.FixedTotal.GreaterThan(declaredIncome):
		outcome.Case = models.ValidationA
		outcome.Flexible = forceToMinimums(result.Flexible)

	case result.FixedTotal.Add(result.MinimumFlexTotal).GreaterThan(declaredIncome):
		outcome.Case = models.ValidationC
		outcome.Flexible = forceToMinimums(result.Flexible)
		outcome.Recommendation = RecommendationUnsustainable

	case result.FixedTotal.Add(result.FlexibleTotal).GreaterThan(declaredIncome):
		outcome.Case = models.ValidationB
		outcome.Flexible = scaleProportionally(result.Flexible, result.FlexibleTotal,
			declaredIncome.Sub(result.FixedTotal))
	}

	if outcome.Case != models.ValidationNone {
		logger.Info("Budget adjusted against income",
			logging.Field{Key: logging.FieldCase, Value: outcome.Case})
	}

	return outcome
}

// forceToMinimums replaces every flexible amount with its bare minimum,
// ignoring projected values entirely. A category whose minimum is zero has no
// positive amount left and is dropped rather than emitted at zero.
func forceToMinimums(flexible []models.CategoryAllocation) []models.CategoryAllocation {
	forced := make([]models.CategoryAllocation, 0, len(flexible))
	for _, a := range flexible {
		if !a.Minimum.IsPositive() {
			continue
		}
		a.Amount = a.Minimum
		forced = append(forced, a)
	}
	return forced
}

// scaleProportionally multiplies every flexible amount by
// available/flexibleTotal, never below zero. Multiplication happens before
// division so no precision is lost to an intermediate scale factor.
func scaleProportionally(flexible []models.CategoryAllocation, flexibleTotal, available decimal.Decimal) []models.CategoryAllocation {
	if available.IsNegative() {
		available = decimal.Zero
	}
	scaled := make([]models.CategoryAllocation, 0, len(flexible))
	for _, a := range flexible {
		a.Amount = a.Amount.Mul(available).Div(flexibleTotal)
		if !a.Amount.IsPositive() {
			continue
		}
		scaled = append(scaled, a)
	}
	return scaled
}

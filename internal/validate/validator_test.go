package validate

import (
	"testing"

	"pocketpilot/budget-engine/internal/allocation"
	"pocketpilot/budget-engine/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flexAllocation(category models.Category, amount, minimum float64) models.CategoryAllocation {
	return models.CategoryAllocation{
		Category:       category,
		Classification: models.ClassificationFlexible,
		Amount:         decimal.NewFromFloat(amount),
		Minimum:        decimal.NewFromFloat(minimum),
	}
}

func fixedAllocation(category models.Category, amount float64) models.CategoryAllocation {
	return models.CategoryAllocation{
		Category:       category,
		Classification: models.ClassificationFixed,
		Amount:         decimal.NewFromFloat(amount),
	}
}

func resultOf(fixed []models.CategoryAllocation, flexible []models.CategoryAllocation) allocation.Result {
	result := allocation.Result{
		Fixed:            fixed,
		Flexible:         flexible,
		FixedTotal:       decimal.Zero,
		FlexibleTotal:    decimal.Zero,
		MinimumFlexTotal: decimal.Zero,
	}
	for _, a := range fixed {
		result.FixedTotal = result.FixedTotal.Add(a.Amount)
	}
	for _, a := range flexible {
		result.FlexibleTotal = result.FlexibleTotal.Add(a.Amount)
		result.MinimumFlexTotal = result.MinimumFlexTotal.Add(a.Minimum)
	}
	return result
}

func TestValidateCaseNone(t *testing.T) {
	result := resultOf(
		[]models.CategoryAllocation{fixedAllocation(models.CategoryHousing, 8000)},
		[]models.CategoryAllocation{flexAllocation(models.CategoryFood, 6000, 3000)},
	)

	outcome := Validate(result, decimal.NewFromInt(30000), nil)

	assert.Equal(t, models.ValidationNone, outcome.Case)
	assert.Empty(t, outcome.Recommendation)
	assert.True(t, decimal.NewFromInt(6000).Equal(outcome.Flexible[0].Amount))
}

// Whenever the fixed total alone exceeds income the outcome is Case A,
// regardless of how the flexible side looks.
func TestValidateCaseAOrdering(t *testing.T) {
	tests := []struct {
		name     string
		flexible []models.CategoryAllocation
	}{
		{name: "no flexible categories", flexible: nil},
		{
			name: "cheap flexible",
			flexible: []models.CategoryAllocation{
				flexAllocation(models.CategoryFood, 3000, 3000),
			},
		},
		{
			name: "expensive flexible",
			flexible: []models.CategoryAllocation{
				flexAllocation(models.CategoryFood, 20000, 3000),
				flexAllocation(models.CategoryTransport, 9000, 1500),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resultOf(
				[]models.CategoryAllocation{fixedAllocation(models.CategoryHousing, 35000)},
				tt.flexible,
			)

			outcome := Validate(result, decimal.NewFromInt(30000), nil)

			assert.Equal(t, models.ValidationA, outcome.Case)
			// Flexible categories are forced to their bare minimums.
			for _, a := range outcome.Flexible {
				assert.True(t, a.Minimum.Equal(a.Amount),
					"%s: amount %s != minimum %s", a.Category, a.Amount, a.Minimum)
			}
		})
	}
}

// Documented proportional-scaling scenario: fixed 20,000, flexible 15,000,
// income 30,000. Every flexible category scales by (30,000-20,000)/15,000.
func TestValidateCaseBProportionalScaling(t *testing.T) {
	result := resultOf(
		[]models.CategoryAllocation{fixedAllocation(models.CategoryHousing, 20000)},
		[]models.CategoryAllocation{
			flexAllocation(models.CategoryFood, 9000, 3000),
			flexAllocation(models.CategoryTransport, 6000, 1500),
		},
	)

	outcome := Validate(result, decimal.NewFromInt(30000), nil)

	assert.Equal(t, models.ValidationB, outcome.Case)
	require.Len(t, outcome.Flexible, 2)

	assert.True(t, decimal.NewFromInt(6000).Equal(outcome.Flexible[0].Amount),
		"got %s", outcome.Flexible[0].Amount)
	assert.True(t, decimal.NewFromInt(4000).Equal(outcome.Flexible[1].Amount),
		"got %s", outcome.Flexible[1].Amount)

	// The scaled total lands exactly on the available income.
	total := outcome.Flexible[0].Amount.Add(outcome.Flexible[1].Amount)
	assert.True(t, decimal.NewFromInt(10000).Equal(total))
}

func TestValidateCaseCUnsustainable(t *testing.T) {
	// Even the bare minimums do not fit under income.
	result := resultOf(
		[]models.CategoryAllocation{fixedAllocation(models.CategoryHousing, 25000)},
		[]models.CategoryAllocation{
			flexAllocation(models.CategoryFood, 9000, 3000),
			flexAllocation(models.CategoryTransport, 6000, 1500),
		},
	)

	outcome := Validate(result, decimal.NewFromInt(28000), nil)

	assert.Equal(t, models.ValidationC, outcome.Case)
	assert.Equal(t, RecommendationUnsustainable, outcome.Recommendation)

	// Minimums are emitted as-is; the overrun is reported, not hidden.
	require.Len(t, outcome.Flexible, 2)
	assert.True(t, decimal.NewFromInt(3000).Equal(outcome.Flexible[0].Amount))
	assert.True(t, decimal.NewFromInt(1500).Equal(outcome.Flexible[1].Amount))
}

func TestValidateCasePrecedence(t *testing.T) {
	// Fixed alone over income satisfies the Case C condition too; A wins.
	result := resultOf(
		[]models.CategoryAllocation{fixedAllocation(models.CategoryHousing, 40000)},
		[]models.CategoryAllocation{flexAllocation(models.CategoryFood, 9000, 3000)},
	)

	outcome := Validate(result, decimal.NewFromInt(30000), nil)
	assert.Equal(t, models.ValidationA, outcome.Case)
}

func TestValidateZeroMinimumDropped(t *testing.T) {
	// A flexible category with no configured floor cannot be emitted at
	// zero when minimums are forced; it is dropped instead.
	result := resultOf(
		[]models.CategoryAllocation{fixedAllocation(models.CategoryHousing, 35000)},
		[]models.CategoryAllocation{
			flexAllocation(models.CategoryFood, 6000, 3000),
			flexAllocation(models.CategoryEntertainment, 2000, 0),
		},
	)

	outcome := Validate(result, decimal.NewFromInt(30000), nil)

	assert.Equal(t, models.ValidationA, outcome.Case)
	require.Len(t, outcome.Flexible, 1)
	assert.Equal(t, models.CategoryFood, outcome.Flexible[0].Category)
}

// Package history reconstructs per-category spending timelines across all
// recorded months and decides which categories enter the prescription, which
// are excluded, and what value an absent category is estimated at.
package history

import (
	"sort"

	"pocketpilot/budget-engine/internal/logging"
	"pocketpilot/budget-engine/internal/models"
	"pocketpilot/budget-engine/internal/store"

	"github.com/shopspring/decimal"
)

// Candidate is a category that survived inclusion analysis. Amount holds the
// resolved monthly value: the actual base-month total, or an estimate for
// categories absent from the base month.
type Candidate struct {
	Entry          models.CategoryHistoryEntry
	Classification models.Classification
	Amount         decimal.Decimal
	IsEstimated    bool
	FromBaseMonth  bool
}

// Exclusion records why a category was dropped from the prescription.
type Exclusion struct {
	Category models.Category
	Reason   string
}

// Exclusion reasons
const (
	ReasonStale      = "last seen more than the retention window before the target month"
	ReasonInfrequent = "infrequent, non-fixed, and absent from the base month"
	ReasonNoValue    = "no positive historical value to estimate from"
)

// Analyzer builds category timelines and applies the inclusion rules.
type Analyzer struct {
	table              *store.Table
	retentionMonths    int
	frequencyThreshold float64
	logger             logging.Logger
}

// NewAnalyzer creates an Analyzer over the given classification table.
// retentionMonths and frequencyThreshold default to 6 and 0.5 when zero.
func NewAnalyzer(table *store.Table, retentionMonths int, frequencyThreshold float64, logger logging.Logger) *Analyzer {
	if table == nil {
		table = store.DefaultTable()
	}
	if retentionMonths <= 0 {
		retentionMonths = 6
	}
	if frequencyThreshold <= 0 {
		frequencyThreshold = 0.5
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Analyzer{
		table:              table,
		retentionMonths:    retentionMonths,
		frequencyThreshold: frequencyThreshold,
		logger:             logger,
	}
}

// BuildEntries assembles the per-category timeline from month summaries.
// summaries must be in chronological order; the returned entries are sorted
// by category name so downstream output is deterministic.
func (a *Analyzer) BuildEntries(summaries []models.MonthSummary) []models.CategoryHistoryEntry {
	totalMonths := len(summaries)
	byCategory := make(map[models.Category]*models.CategoryHistoryEntry)

	for _, summary := range summaries {
		for category, total := range summary.CategoryTotals {
			if !category.IsAllocatable() || !total.IsPositive() {
				continue
			}
			entry, ok := byCategory[category]
			if !ok {
				entry = &models.CategoryHistoryEntry{
					Category:            category,
					TotalRecordedMonths: totalMonths,
				}
				byCategory[category] = entry
			}
			entry.MonthlyTotals = append(entry.MonthlyTotals, models.MonthTotal{
				Month: summary.Month,
				Total: total,
			})
			entry.LastSeenMonth = summary.Month
			entry.AppearanceCount++
		}
	}

	entries := make([]models.CategoryHistoryEntry, 0, len(byCategory))
	for _, entry := range byCategory {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Category < entries[j].Category })
	return entries
}

// Analyze applies the inclusion rules to every category ever observed and
// returns the allocation candidates plus the exclusion decisions.
//
// Per category: a positive base-month total is used directly; a category last
// seen beyond the retention window is excluded; otherwise frequent categories
// and fixed needs are included as estimates; everything else is excluded.
func (a *Analyzer) Analyze(summaries []models.MonthSummary, base models.MonthSummary, target models.MonthID) ([]Candidate, []Exclusion) {
	entries := a.BuildEntries(summaries)

	var candidates []Candidate
	var exclusions []Exclusion

	for _, entry := range entries {
		isFixed := a.table.IsFixed(entry.Category)
		classification := a.table.Classify(entry.Category)

		if total, ok := base.CategoryTotals[entry.Category]; ok && total.IsPositive() {
			candidates = append(candidates, Candidate{
				Entry:          entry,
				Classification: classification,
				Amount:         total,
				FromBaseMonth:  true,
			})
			continue
		}

		if target.MonthsSince(entry.LastSeenMonth) > a.retentionMonths {
			a.excludeLog(entry.Category, ReasonStale, &exclusions)
			continue
		}

		if !isFixed && entry.FrequencyRatio() < a.frequencyThreshold {
			a.excludeLog(entry.Category, ReasonInfrequent, &exclusions)
			continue
		}

		estimate := a.estimate(entry, base.Month, target, isFixed)
		if !estimate.IsPositive() {
			// A category with no positive value is excluded, never zeroed.
			a.excludeLog(entry.Category, ReasonNoValue, &exclusions)
			continue
		}

		candidates = append(candidates, Candidate{
			Entry:          entry,
			Classification: classification,
			Amount:         estimate,
			IsEstimated:    true,
		})
	}

	return candidates, exclusions
}

// estimate resolves the value of a category absent from the base month.
// Fixed needs prefer the most recent value before the base month, preserving
// continuity of recurring costs like rent and debt even when infrequent;
// everything else uses the mean of non-zero totals within the retention
// window. A single data point degenerates to that value.
func (a *Analyzer) estimate(entry models.CategoryHistoryEntry, baseMonth, target models.MonthID, isFixed bool) decimal.Decimal {
	if isFixed {
		for i := len(entry.MonthlyTotals) - 1; i >= 0; i-- {
			monthTotal := entry.MonthlyTotals[i]
			if monthTotal.Month.Before(baseMonth) && monthTotal.Total.IsPositive() {
				return monthTotal.Total
			}
		}
		// No value before the base month; fall through to the windowed mean.
	}

	sum := decimal.Zero
	count := 0
	for _, monthTotal := range entry.MonthlyTotals {
		if target.MonthsSince(monthTotal.Month) > a.retentionMonths {
			continue
		}
		if !monthTotal.Total.IsPositive() {
			continue
		}
		sum = sum.Add(monthTotal.Total)
		count++
	}
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

func (a *Analyzer) excludeLog(category models.Category, reason string, exclusions *[]Exclusion) {
	a.logger.Debug("Excluding category",
		logging.Field{Key: logging.FieldCategory, Value: category},
		logging.Field{Key: logging.FieldReason, Value: reason})
	*exclusions = append(*exclusions, Exclusion{Category: category, Reason: reason})
}

// Package engine orchestrates the full budget-prescription pipeline:
// data-quality classification, base-month selection, category history
// analysis, allocation, income validation, and confidence scoring.
//
// The engine is a pure, synchronous computation over an immutable input
// snapshot. It holds no mutable state, performs no I/O, and given an
// identical snapshot, target month, and income, produces an identical
// prescription on every call. Cancellation and caching are the host's
// responsibility; a call is cheap and non-blocking once started.
package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"pocketpilot/budget-engine/internal/allocation"
	"pocketpilot/budget-engine/internal/confidence"
	"pocketpilot/budget-engine/internal/history"
	"pocketpilot/budget-engine/internal/logging"
	"pocketpilot/budget-engine/internal/models"
	"pocketpilot/budget-engine/internal/quality"
	"pocketpilot/budget-engine/internal/store"
	"pocketpilot/budget-engine/internal/validate"

	"github.com/shopspring/decimal"
)

// TransactionSource supplies transaction snapshots. The persistence
// collaborator implements this; the engine never writes through it.
type TransactionSource interface {
	Transactions(userID string, from, to time.Time) ([]models.Transaction, error)
}

// IncomeSource supplies the user's declared monthly income. The boolean is
// false when no income was declared, in which case the engine computes one
// from income-kind transactions.
type IncomeSource interface {
	DeclaredMonthlyIncome(userID string) (decimal.Decimal, bool, error)
}

// StaticIncome is an IncomeSource with a constant answer, useful at the CLI
// boundary and in tests.
type StaticIncome struct {
	Amount   decimal.Decimal
	Declared bool
}

// DeclaredMonthlyIncome implements IncomeSource.
func (s StaticIncome) DeclaredMonthlyIncome(string) (decimal.Decimal, bool, error) {
	return s.Amount, s.Declared, nil
}

// Snapshot is the immutable transaction input to one computation.
type Snapshot struct {
	Transactions []models.Transaction
}

// WarningNoHistory is recorded on the minimal prescription returned when the
// user has no transaction history at all.
const WarningNoHistory = "no transaction history recorded; flexible needs are set to platform minimums"

// Engine computes budget prescriptions.
type Engine struct {
	table        *store.Table
	classifier   *quality.Classifier
	analyzer     *history.Analyzer
	allocator    *allocation.Engine
	transactions TransactionSource
	income       IncomeSource
	logger       logging.Logger
}

// Options tunes engine construction. Zero values fall back to defaults.
type Options struct {
	Table              *store.Table
	RetentionMonths    int
	FrequencyThreshold float64
	Logger             logging.Logger
}

// New creates an Engine over the given collaborators.
func New(transactions TransactionSource, income IncomeSource, opts Options) *Engine {
	table := opts.Table
	if table == nil {
		table = store.DefaultTable()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Engine{
		table:        table,
		classifier:   quality.NewClassifier(logger),
		analyzer:     history.NewAnalyzer(table, opts.RetentionMonths, opts.FrequencyThreshold, logger),
		allocator:    allocation.NewEngine(table, logger),
		transactions: transactions,
		income:       income,
		logger:       logger,
	}
}

// ComputeBudgetPrescription is the sole externally-driven entry point. It
// reads the user's transaction history up to the target month, resolves the
// declared income, and computes the prescription.
func (e *Engine) ComputeBudgetPrescription(userID string, target models.MonthID) (models.BudgetPrescription, error) {
	if e.transactions == nil {
		return models.BudgetPrescription{}, fmt.Errorf("no transaction source configured")
	}

	transactions, err := e.transactions.Transactions(userID, time.Time{}, target.Start())
	if err != nil {
		return models.BudgetPrescription{}, fmt.Errorf("failed to read transactions for %s: %w", userID, err)
	}

	income := decimal.Zero
	declared := false
	if e.income != nil {
		income, declared, err = e.income.DeclaredMonthlyIncome(userID)
		if err != nil {
			return models.BudgetPrescription{}, fmt.Errorf("failed to read declared income for %s: %w", userID, err)
		}
	}

	e.logger.Info("Computing budget prescription",
		logging.Field{Key: logging.FieldUser, Value: userID},
		logging.Field{Key: logging.FieldTargetMonth, Value: target.String()},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	return e.Compute(Snapshot{Transactions: transactions}, target, income, declared), nil
}

// Compute runs the pipeline over an explicit snapshot. It is the pure form
// of ComputeBudgetPrescription and never fails: degraded input degrades the
// prescription, it does not abort it.
func (e *Engine) Compute(snapshot Snapshot, target models.MonthID, declaredIncome decimal.Decimal, incomeDeclared bool) models.BudgetPrescription {
	fingerprint := Fingerprint(snapshot, target)

	summaries, warnings := e.summarizeHistory(snapshot, target)

	selection, ok := quality.SelectBaseMonth(summaries, e.logger)
	if !ok {
		return e.minimalPrescription(target, declaredIncome, fingerprint)
	}

	income := declaredIncome
	if !incomeDeclared {
		income = computedIncome(selection.Summary, summaries)
		warnings = append(warnings, "no declared income; using income computed from recorded transactions")
	}

	candidates, exclusions := e.analyzer.Analyze(summaries, selection.Summary, target)
	for _, exclusion := range exclusions {
		e.logger.Debug("Category excluded from prescription",
			logging.Field{Key: logging.FieldCategory, Value: exclusion.Category},
			logging.Field{Key: logging.FieldReason, Value: exclusion.Reason})
	}

	allocated := e.allocator.Allocate(candidates, selection.Summary, target)
	outcome := validate.Validate(allocated, income, e.logger)

	overall := confidence.Overall(selection.Summary)
	if selection.LowConfidence {
		overall = models.ConfidenceLow
	}

	return finalize(models.BudgetPrescription{
		TargetMonth:       target,
		BaseMonth:         selection.Summary.Month,
		CarriedOver:       selection.CarriedOver,
		Fixed:             outcome.Fixed,
		Flexible:          outcome.Flexible,
		DeclaredIncome:    income,
		ValidationCase:    outcome.Case,
		Recommendation:    outcome.Recommendation,
		OverallConfidence: overall,
		Warnings:          warnings,
		Fingerprint:       fingerprint,
	})
}

// summarizeHistory groups the snapshot by calendar month and builds a
// summary for every month from the first recorded one through the month
// immediately preceding the target, gap months included: an empty month
// classifies as insufficient and still counts toward frequency ratios.
func (e *Engine) summarizeHistory(snapshot Snapshot, target models.MonthID) ([]models.MonthSummary, []string) {
	byMonth := make(map[models.MonthID][]models.Transaction)
	var firstMonth models.MonthID
	expected := make(map[models.Category]bool)

	for _, tx := range snapshot.Transactions {
		month := tx.Month()
		if !month.Before(target) {
			continue
		}
		byMonth[month] = append(byMonth[month], tx)
		if firstMonth.IsZero() || month.Before(firstMonth) {
			firstMonth = month
		}
		if tx.IsSpending() && tx.Category.IsAllocatable() {
			expected[tx.Category] = true
		}
	}

	if len(byMonth) == 0 {
		return nil, nil
	}

	var summaries []models.MonthSummary
	var warnings []string
	for month := firstMonth; month.Before(target); month = month.AddMonths(1) {
		summary, monthWarnings := e.classifier.Summarize(month, byMonth[month], len(expected))
		summaries = append(summaries, summary)
		warnings = append(warnings, monthWarnings...)
	}
	return summaries, warnings
}

// minimalPrescription handles the no-history case: every configured flexible
// category at its platform minimum, empty fixed needs, low confidence, and a
// descriptive warning. Never an error.
func (e *Engine) minimalPrescription(target models.MonthID, declaredIncome decimal.Decimal, fingerprint string) models.BudgetPrescription {
	daysInTarget := decimal.NewFromInt(int64(target.Days()))

	result := allocation.Result{
		FixedTotal:       decimal.Zero,
		FlexibleTotal:    decimal.Zero,
		MinimumFlexTotal: decimal.Zero,
	}
	for _, category := range e.table.FlexibleCategories() {
		rate, _ := e.table.MinimumDailyRate(category)
		minimum := rate.Mul(daysInTarget)
		if !minimum.IsPositive() {
			continue
		}
		result.Flexible = append(result.Flexible, models.CategoryAllocation{
			Category:       category,
			Classification: models.ClassificationFlexible,
			Amount:         minimum,
			Minimum:        minimum,
			IsEstimated:    true,
			WasAdjustedUp:  true,
			Confidence:     models.ConfidenceLow,
		})
		result.FlexibleTotal = result.FlexibleTotal.Add(minimum)
		result.MinimumFlexTotal = result.MinimumFlexTotal.Add(minimum)
	}

	outcome := validate.Validate(result, declaredIncome, e.logger)

	return finalize(models.BudgetPrescription{
		TargetMonth:       target,
		Fixed:             outcome.Fixed,
		Flexible:          outcome.Flexible,
		DeclaredIncome:    declaredIncome,
		ValidationCase:    outcome.Case,
		Recommendation:    outcome.Recommendation,
		OverallConfidence: models.ConfidenceLow,
		Warnings:          []string{WarningNoHistory},
		Fingerprint:       fingerprint,
	})
}

// computedIncome derives a monthly income when none was declared: the base
// month's income total, or the mean of non-zero monthly income totals when
// the base month recorded none.
func computedIncome(base models.MonthSummary, summaries []models.MonthSummary) decimal.Decimal {
	if base.IncomeTotal.IsPositive() {
		return base.IncomeTotal
	}
	sum := decimal.Zero
	count := 0
	for _, summary := range summaries {
		if summary.IncomeTotal.IsPositive() {
			sum = sum.Add(summary.IncomeTotal)
			count++
		}
	}
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

// finalize rounds every amount to centavo precision and computes the totals.
// This is the only place rounding happens, so intermediate computation never
// compounds rounding error.
func finalize(prescription models.BudgetPrescription) models.BudgetPrescription {
	total := decimal.Zero
	for i := range prescription.Fixed {
		prescription.Fixed[i].Amount = models.RoundCentavos(prescription.Fixed[i].Amount)
		prescription.Fixed[i].Minimum = models.RoundCentavos(prescription.Fixed[i].Minimum)
		total = total.Add(prescription.Fixed[i].Amount)
	}
	for i := range prescription.Flexible {
		prescription.Flexible[i].Amount = models.RoundCentavos(prescription.Flexible[i].Amount)
		prescription.Flexible[i].Minimum = models.RoundCentavos(prescription.Flexible[i].Minimum)
		total = total.Add(prescription.Flexible[i].Amount)
	}
	prescription.DeclaredIncome = models.RoundCentavos(prescription.DeclaredIncome)
	prescription.TotalAllocated = total
	prescription.Remaining = prescription.DeclaredIncome.Sub(total)
	return prescription
}

// Fingerprint hashes the input snapshot and target month. Callers may use it
// as a cache key: two inputs with the same fingerprint yield byte-identical
// prescriptions.
func Fingerprint(snapshot Snapshot, target models.MonthID) string {
	lines := make([]string, 0, len(snapshot.Transactions)+1)
	for _, tx := range snapshot.Transactions {
		lines = append(lines, fmt.Sprintf("%s|%s|%s|%s",
			tx.Date.UTC().Format(time.RFC3339), tx.Amount.String(), tx.Category, tx.Kind))
	}
	sort.Strings(lines)

	hash := sha256.New()
	hash.Write([]byte(target.String()))
	for _, line := range lines {
		hash.Write([]byte{'\n'})
		hash.Write([]byte(line))
	}
	return hex.EncodeToString(hash.Sum(nil))
}

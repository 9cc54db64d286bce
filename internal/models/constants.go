package models

// Category identifies one of the closed set of budget categories.
// String-keyed duck typing from ad-hoc inputs is rejected at the boundary:
// ParseCategory validates against this set before anything reaches the engine.
type Category string

// Spending categories
const (
	CategoryHousing       Category = "Housing & Utilities"
	CategoryDebt          Category = "Debt"
	CategoryEducation     Category = "Education"
	CategoryChildcare     Category = "Childcare"
	CategoryHealth        Category = "Health & Personal Care"
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transportation"
	CategoryEntertainment Category = "Entertainment & Lifestyle"
	CategorySavings       Category = "Savings"
	CategoryEmergencyFund Category = "Emergency Fund"
	CategoryIncome        Category = "Income"
)

// Kind classifies what a transaction represents.
type Kind string

// Transaction kinds
const (
	KindIncome        Kind = "income"
	KindExpense       Kind = "expense"
	KindSavings       Kind = "savings"
	KindDebt          Kind = "debt"
	KindEmergencyFund Kind = "emergency-fund"
)

// Classification splits allocatable categories into fixed and flexible needs.
type Classification string

const (
	ClassificationFixed    Classification = "fixed"
	ClassificationFlexible Classification = "flexible"
)

// ReliabilityTier grades how trustworthy one month of data is as a budgeting source.
type ReliabilityTier string

const (
	TierReliable     ReliabilityTier = "reliable"
	TierStrong       ReliabilityTier = "strong"
	TierUsable       ReliabilityTier = "usable"
	TierInsufficient ReliabilityTier = "insufficient"
)

// ConfidenceLevel is the display-facing trust label on a prescription
// or an individual estimated category. Its thresholds are intentionally
// different from the reliability tiers above.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// ValidationCase is the income-reconciliation outcome of a prescription.
type ValidationCase string

const (
	ValidationNone ValidationCase = "none"
	ValidationA    ValidationCase = "A"
	ValidationB    ValidationCase = "B"
	ValidationC    ValidationCase = "C"
)

// DefaultCurrency is the currency every amount in the engine is denominated in.
const DefaultCurrency = "PHP"

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionReportFile = 0644
)

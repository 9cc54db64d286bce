package models

import (
	"fmt"
	"strings"
)

// AllCategories lists every recognized category in canonical order.
var AllCategories = []Category{
	CategoryHousing,
	CategoryDebt,
	CategoryEducation,
	CategoryChildcare,
	CategoryHealth,
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategorySavings,
	CategoryEmergencyFund,
	CategoryIncome,
}

// categoryAliases maps normalized spellings to canonical categories so that
// boundary inputs like "housing", "transport" or "food" resolve cleanly.
var categoryAliases = map[string]Category{
	"housing":                   CategoryHousing,
	"housing & utilities":       CategoryHousing,
	"housing and utilities":     CategoryHousing,
	"utilities":                 CategoryHousing,
	"debt":                      CategoryDebt,
	"education":                 CategoryEducation,
	"childcare":                 CategoryChildcare,
	"health":                    CategoryHealth,
	"health & personal care":    CategoryHealth,
	"health and personal care":  CategoryHealth,
	"personal care":             CategoryHealth,
	"food":                      CategoryFood,
	"transport":                 CategoryTransport,
	"transportation":            CategoryTransport,
	"entertainment":             CategoryEntertainment,
	"entertainment & lifestyle": CategoryEntertainment,
	"lifestyle":                 CategoryEntertainment,
	"savings":                   CategorySavings,
	"emergency fund":            CategoryEmergencyFund,
	"emergency-fund":            CategoryEmergencyFund,
	"income":                    CategoryIncome,
}

// ParseCategory resolves a raw string to a canonical Category.
// Unknown names are an error; the engine never sees unvalidated categories.
func ParseCategory(raw string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", fmt.Errorf("category cannot be empty")
	}
	if category, ok := categoryAliases[normalized]; ok {
		return category, nil
	}
	return "", fmt.Errorf("unknown category: %q", raw)
}

// ParseKind resolves a raw string to a transaction Kind.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "income":
		return KindIncome, nil
	case "expense", "":
		return KindExpense, nil
	case "savings":
		return KindSavings, nil
	case "debt":
		return KindDebt, nil
	case "emergency-fund", "emergency fund", "emergency":
		return KindEmergencyFund, nil
	default:
		return "", fmt.Errorf("unknown transaction kind: %q", raw)
	}
}

// IsAllocatable reports whether a category participates in budget allocation.
// Income is never allocated; savings and the emergency fund are contribution
// targets owned by other collaborators, not spending needs.
func (c Category) IsAllocatable() bool {
	switch c {
	case CategoryIncome, CategorySavings, CategoryEmergencyFund:
		return false
	default:
		return true
	}
}

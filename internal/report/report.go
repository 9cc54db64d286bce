// Package report renders budget prescriptions for consumers: machine-readable
// JSON and a human-readable text summary.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"pocketpilot/budget-engine/internal/logging"
	"pocketpilot/budget-engine/internal/models"
)

// Generator renders prescriptions in various formats.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Generator{logger: logger}
}

// Render produces the prescription in the given format (json or text).
func (g *Generator) Render(prescription models.BudgetPrescription, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.renderJSON(prescription)
	case "text":
		return g.renderText(prescription), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) renderJSON(prescription models.BudgetPrescription) ([]byte, error) {
	data, err := json.MarshalIndent(prescription, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal prescription")
		return nil, fmt.Errorf("failed to marshal prescription: %w", err)
	}
	return data, nil
}

func (g *Generator) renderText(prescription models.BudgetPrescription) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "Budget prescription for %s", prescription.TargetMonth)
	if !prescription.BaseMonth.IsZero() {
		fmt.Fprintf(&b, " (base month %s", prescription.BaseMonth)
		if prescription.CarriedOver {
			b.WriteString(", carried over")
		}
		b.WriteString(")")
	}
	fmt.Fprintf(&b, "\nConfidence: %s\n", prescription.OverallConfidence)

	if len(prescription.Fixed) > 0 {
		b.WriteString("\nFixed needs:\n")
		writeAllocations(&b, prescription.Fixed)
	}
	if len(prescription.Flexible) > 0 {
		b.WriteString("\nFlexible needs:\n")
		writeAllocations(&b, prescription.Flexible)
	}

	fmt.Fprintf(&b, "\nDeclared income:  %s\n", models.FormatPesoExact(prescription.DeclaredIncome))
	fmt.Fprintf(&b, "Total allocated:  %s\n", models.FormatPesoExact(prescription.TotalAllocated))
	fmt.Fprintf(&b, "Remaining:        %s\n", models.FormatPesoExact(prescription.Remaining))

	if prescription.ValidationCase != models.ValidationNone {
		fmt.Fprintf(&b, "Validation case:  %s\n", prescription.ValidationCase)
	}
	if prescription.Recommendation != "" {
		fmt.Fprintf(&b, "\n%s\n", prescription.Recommendation)
	}
	for _, warning := range prescription.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", warning)
	}

	return []byte(b.String())
}

func writeAllocations(b *strings.Builder, allocations []models.CategoryAllocation) {
	for _, a := range allocations {
		fmt.Fprintf(b, "  %-26s %12s", a.Category, models.FormatPesoExact(a.Amount))
		var notes []string
		if a.IsEstimated {
			notes = append(notes, "Estimated")
		}
		if a.WasAdjustedUp {
			notes = append(notes, "raised to minimum")
		}
		if len(notes) > 0 {
			fmt.Fprintf(b, "  (%s)", strings.Join(notes, ", "))
		}
		b.WriteString("\n")
	}
}

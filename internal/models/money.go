package models

import (
	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1000)
	million  = decimal.NewFromInt(1000000)
)

// RoundCentavos rounds an amount to centavo precision. Intermediate engine
// arithmetic stays unrounded; this is applied only at the output boundary.
func RoundCentavos(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// FormatPeso renders an amount in compact peso notation: ₱1234 below a
// thousand, ₱1.2K up to a million, ₱1.2M beyond.
func FormatPeso(amount decimal.Decimal) string {
	if amount.GreaterThanOrEqual(million) {
		return "₱" + amount.Div(million).StringFixed(1) + "M"
	}
	if amount.GreaterThanOrEqual(thousand) {
		return "₱" + amount.Div(thousand).StringFixed(1) + "K"
	}
	return "₱" + amount.Round(0).String()
}

// FormatPesoExact renders an amount with full centavo precision, e.g. "₱7500.00".
func FormatPesoExact(amount decimal.Decimal) string {
	return "₱" + amount.StringFixed(2)
}

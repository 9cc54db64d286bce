package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPeso(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		expected string
	}{
		{name: "small amount", amount: decimal.NewFromInt(500), expected: "₱500"},
		{name: "zero", amount: decimal.Zero, expected: "₱0"},
		{name: "thousands", amount: decimal.NewFromInt(7500), expected: "₱7.5K"},
		{name: "exact thousand", amount: decimal.NewFromInt(1000), expected: "₱1.0K"},
		{name: "millions", amount: decimal.NewFromInt(1200000), expected: "₱1.2M"},
		{name: "fractional below thousand", amount: decimal.NewFromFloat(999.4), expected: "₱999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPeso(tt.amount))
		})
	}
}

func TestFormatPesoExact(t *testing.T) {
	assert.Equal(t, "₱7500.00", FormatPesoExact(decimal.NewFromInt(7500)))
	assert.Equal(t, "₱123.46", FormatPesoExact(decimal.NewFromFloat(123.456)))
}

func TestRoundCentavos(t *testing.T) {
	assert.True(t, decimal.NewFromFloat(10.67).Equal(RoundCentavos(decimal.NewFromFloat(10.666666))))
	assert.True(t, decimal.NewFromInt(10).Equal(RoundCentavos(decimal.NewFromInt(10))))
}

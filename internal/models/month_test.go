package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthID(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  MonthID
		expectErr bool
	}{
		{
			name:     "valid month",
			input:    "2025-08",
			expected: MonthID{Year: 2025, Month: time.August},
		},
		{
			name:     "january",
			input:    "2024-01",
			expected: MonthID{Year: 2024, Month: time.January},
		},
		{
			name:      "missing month",
			input:     "2025",
			expectErr: true,
		},
		{
			name:      "day included",
			input:     "2025-08-01",
			expectErr: true,
		},
		{
			name:      "garbage",
			input:     "not-a-month",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, err := ParseMonthID(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, month)
		})
	}
}

func TestMonthIDDays(t *testing.T) {
	tests := []struct {
		month    MonthID
		expected int
	}{
		{MonthID{2025, time.January}, 31},
		{MonthID{2025, time.February}, 28},
		{MonthID{2024, time.February}, 29}, // leap year
		{MonthID{2025, time.April}, 30},
		{MonthID{2025, time.December}, 31},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.month.Days())
		})
	}
}

func TestMonthIDArithmetic(t *testing.T) {
	august := MonthID{2025, time.August}

	assert.Equal(t, MonthID{2025, time.July}, august.Prev())
	assert.Equal(t, MonthID{2026, time.February}, august.AddMonths(6))
	assert.Equal(t, MonthID{2024, time.December}, august.AddMonths(-8))

	assert.Equal(t, 7, august.MonthsSince(MonthID{2025, time.January}))
	assert.Equal(t, 6, august.MonthsSince(MonthID{2025, time.February}))
	assert.Equal(t, 13, august.MonthsSince(MonthID{2024, time.July}))
	assert.Equal(t, -1, august.MonthsSince(MonthID{2025, time.September}))
}

func TestMonthIDBefore(t *testing.T) {
	assert.True(t, MonthID{2025, time.July}.Before(MonthID{2025, time.August}))
	assert.True(t, MonthID{2024, time.December}.Before(MonthID{2025, time.January}))
	assert.False(t, MonthID{2025, time.August}.Before(MonthID{2025, time.August}))
	assert.False(t, MonthID{2025, time.September}.Before(MonthID{2025, time.August}))
}

func TestMonthIDContains(t *testing.T) {
	august := MonthID{2025, time.August}

	assert.True(t, august.Contains(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, august.Contains(time.Date(2025, 8, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, august.Contains(time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, august.Contains(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMonthIDString(t *testing.T) {
	assert.Equal(t, "2025-08", MonthID{2025, time.August}.String())
	assert.Equal(t, "2024-01", MonthID{2024, time.January}.String())
}

func TestMonthIDTextRoundTrip(t *testing.T) {
	august := MonthID{2025, time.August}

	text, err := august.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2025-08", string(text))

	var decoded MonthID
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, august, decoded)

	// A zero month renders empty and decodes back to zero.
	text, err = MonthID{}.MarshalText()
	require.NoError(t, err)
	assert.Empty(t, text)
	require.NoError(t, decoded.UnmarshalText(nil))
	assert.True(t, decoded.IsZero())

	assert.Error(t, decoded.UnmarshalText([]byte("August 2025")))
}

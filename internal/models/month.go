package models

import (
	"fmt"
	"time"
)

// MonthID identifies a single calendar month. It is a small value type used
// as a map key and for month arithmetic throughout the engine. It serializes
// as "YYYY-MM".
type MonthID struct {
	Year  int
	Month time.Month
}

// MonthOf returns the MonthID containing the given instant.
func MonthOf(t time.Time) MonthID {
	return MonthID{Year: t.Year(), Month: t.Month()}
}

// ParseMonthID parses a month in "YYYY-MM" form.
func ParseMonthID(raw string) (MonthID, error) {
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return MonthID{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", raw, err)
	}
	return MonthOf(t), nil
}

// String renders the month as "YYYY-MM".
func (m MonthID) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// MarshalText implements encoding.TextMarshaler. The zero MonthID renders as
// an empty string.
func (m MonthID) MarshalText() ([]byte, error) {
	if m.IsZero() {
		return nil, nil
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MonthID) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*m = MonthID{}
		return nil
	}
	parsed, err := ParseMonthID(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// IsZero reports whether the MonthID is the zero value.
func (m MonthID) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Start returns midnight UTC on the first day of the month.
func (m MonthID) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Days returns the number of calendar days in the month.
func (m MonthID) Days() int {
	return m.Start().AddDate(0, 1, -1).Day()
}

// AddMonths returns the month n calendar months later (earlier for negative n).
func (m MonthID) AddMonths(n int) MonthID {
	return MonthOf(m.Start().AddDate(0, n, 0))
}

// Prev returns the immediately preceding month.
func (m MonthID) Prev() MonthID {
	return m.AddMonths(-1)
}

// Before reports whether m is chronologically earlier than other.
func (m MonthID) Before(other MonthID) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// MonthsSince returns the number of whole calendar months from other to m.
// The result is positive when other is in the past relative to m.
func (m MonthID) MonthsSince(other MonthID) int {
	return (m.Year-other.Year)*12 + int(m.Month-other.Month)
}

// Contains reports whether the given instant falls inside the month.
func (m MonthID) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

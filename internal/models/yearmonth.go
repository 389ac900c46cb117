package models

import (
	"fmt"
	"time"
)

// YearMonth is the (year, month) key used to bucket transactions.
type YearMonth struct {
	Year  int        `json:"year" yaml:"year"`
	Month time.Month `json:"month" yaml:"month"`
}

// YearMonthOf returns the YearMonth containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses "YYYY-MM".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month '%s': %w", s, err)
	}
	return YearMonthOf(t), nil
}

// String formats the key as "YYYY-MM".
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Before reports whether ym sorts before other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// MarshalText encodes the key as "YYYY-MM" so it can be used as a JSON or
// YAML map key.
func (ym YearMonth) MarshalText() ([]byte, error) {
	return []byte(ym.String()), nil
}

// UnmarshalText decodes "YYYY-MM".
func (ym *YearMonth) UnmarshalText(text []byte) error {
	parsed, err := ParseYearMonth(string(text))
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}

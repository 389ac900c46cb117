package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ParseAmount parses a statement amount such as "45.67", "1,234.56" or "$12.00".
// Commas are thousands separators. Empty input is an error; callers decide
// what an empty field means.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount strips whitespace, currency symbols and thousands separators.
func StandardizeAmount(amountStr string) string {
	replacer := strings.NewReplacer(" ", "", "\u00a0", "", "$", "", ",", "")
	return replacer.Replace(strings.TrimSpace(amountStr))
}

// FormatAmount renders an amount rounded to two decimals with thousands
// separators, e.g. "-1,234.50".
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.Round(2).Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err == nil {
		whole = humanize.Comma(n)
	}

	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + whole + "." + frac
}

// PadAmount right-aligns a formatted amount to width.
func PadAmount(amount decimal.Decimal, width int) string {
	return fmt.Sprintf("%*s", width, FormatAmount(amount))
}

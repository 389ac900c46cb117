package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{name: "plain", input: "45.67", expected: "45.67"},
		{name: "thousands separator", input: "1,234.56", expected: "1234.56"},
		{name: "currency symbol and spaces", input: " $12.00 ", expected: "12"},
		{name: "integer", input: "656", expected: "656"},
		{name: "negative", input: "-3.20", expected: "-3.2"},
		{name: "empty", input: "", expectError: true},
		{name: "blank", input: "   ", expectError: true},
		{name: "garbage", input: "abc", expectError: true},
		{name: "not a number", input: "NaN", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := ParseAmount(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(amount), "got %s", amount)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"0", "0.00"},
		{"45.67", "45.67"},
		{"-45.67", "-45.67"},
		{"1954.33", "1,954.33"},
		{"-129090.54", "-129,090.54"},
		{"1234567.891", "1,234,567.89"},
		{"0.004", "0.00"},
		{"-0.004", "0.00"},
		{"2.345", "2.35"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAmount(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestPadAmount(t *testing.T) {
	assert.Equal(t, "      -45.67", PadAmount(decimal.RequireFromString("-45.67"), 12))
	assert.Equal(t, "2,000.00", PadAmount(decimal.RequireFromString("2000"), 4))
}

func TestFormatAmount_RoundTrip(t *testing.T) {
	tolerance := decimal.RequireFromString("0.005")
	for _, s := range []string{"-45.67", "1954.33", "0.125", "-1000000.999", "3.14159"} {
		original := decimal.RequireFromString(s)

		parsed, err := ParseAmount(FormatAmount(original))
		require.NoError(t, err)
		assert.True(t, parsed.Sub(original).Abs().LessThanOrEqual(tolerance), "%s -> %s", original, parsed)
	}
}

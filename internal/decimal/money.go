package decimal

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// Hundred is decimal 100, used for percentage math
var Hundred = decimal.NewFromInt(100)

// FromInt creates a decimal from an int
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// FromFloat creates a decimal from a float, rounded to 2 places
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// FromString parses a decimal from a string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal from a string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Round2 rounds to 2 decimal places (cents)
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Mul multiplies two decimals, rounds to 2 places
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b).Round(2)
}

// ApplyRate computes amount * (ratePercent/100), rounded to 2 places
func ApplyRate(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return amount.Mul(ratePercent).Div(Hundred).Round(2)
}

// Sum sums a slice of decimals without intermediate rounding
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// AbsDiff returns |a - b|
func AbsDiff(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b).Abs()
}

// WithinTolerance reports whether |a - b| <= tolerance
func WithinTolerance(a, b, tolerance decimal.Decimal) bool {
	return AbsDiff(a, b).LessThanOrEqual(tolerance)
}

// IsPositive returns true if decimal is greater than zero
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(Zero)
}

// IsNonNegative returns true if decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}

// String2 formats a decimal with exactly 2 decimal places, as printed
// in UBL amount elements
func String2(d decimal.Decimal) string {
	return d.StringFixed(2)
}

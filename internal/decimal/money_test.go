package decimal_test

import (
	"testing"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/einvoice/internal/decimal"
)

func TestFromFloat(t *testing.T) {
	d := decimal.FromFloat(100.555)
	// rounds to 2 decimal places
	assert.True(t, d.Equal(dec.NewFromFloat(100.56)))
}

func TestFromString(t *testing.T) {
	d, err := decimal.FromString("123456.78")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec.RequireFromString("123456.78")))

	_, err = decimal.FromString("not-a-number")
	require.Error(t, err)
}

func TestMustFromString(t *testing.T) {
	d := decimal.MustFromString("999.99")
	assert.True(t, d.Equal(dec.RequireFromString("999.99")))

	assert.Panics(t, func() {
		decimal.MustFromString("invalid")
	})
}

func TestApplyRate(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		rate     string
		expected string
	}{
		{"21% of 1000", "1000.00", "21", "210.00"},
		{"6% of 250", "250.00", "6", "15.00"},
		{"0% of anything", "842.17", "0", "0.00"},
		{"21% of 33.33 rounds", "33.33", "21", "7.00"}, // 6.9993
		{"12% of 99.99", "99.99", "12", "12.00"},       // 11.9988
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := dec.RequireFromString(tt.amount)
			rate := dec.RequireFromString(tt.rate)
			result := decimal.ApplyRate(amount, rate)
			assert.True(t, result.Equal(dec.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, result.String())
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tolerance := dec.NewFromFloat(0.02)

	assert.True(t, decimal.WithinTolerance(dec.NewFromFloat(210.00), dec.NewFromFloat(210.01), tolerance))
	assert.True(t, decimal.WithinTolerance(dec.NewFromFloat(210.00), dec.NewFromFloat(210.02), tolerance))
	assert.False(t, decimal.WithinTolerance(dec.NewFromFloat(210.00), dec.NewFromFloat(210.05), tolerance))
}

func TestSum(t *testing.T) {
	values := []dec.Decimal{
		dec.RequireFromString("10.10"),
		dec.RequireFromString("20.20"),
		dec.RequireFromString("30.30"),
	}
	assert.True(t, decimal.Sum(values).Equal(dec.RequireFromString("60.60")))
	assert.True(t, decimal.Sum(nil).IsZero())
}

func TestString2(t *testing.T) {
	assert.Equal(t, "1210.00", decimal.String2(dec.RequireFromString("1210")))
	assert.Equal(t, "0.50", decimal.String2(dec.RequireFromString("0.5")))
}

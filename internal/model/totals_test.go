package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/einvoice/internal/codes"
	"github.com/rezonia/einvoice/internal/model"
)

func testInvoice(t *testing.T) *model.Invoice {
	t.Helper()
	inv, err := model.NewInvoice("2026-042", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), "EUR")
	require.NoError(t, err)
	return inv
}

func addLine(t *testing.T, inv *model.Invoice, id string, qty, price int64, category codes.VATCategory, rate int64) {
	t.Helper()
	line, err := model.NewInvoiceLine(id, "Item "+id, decimal.NewFromInt(qty), "C62",
		decimal.NewFromInt(price), category, decimal.NewFromInt(rate))
	require.NoError(t, err)
	require.NoError(t, inv.AddLine(line))
}

func TestCalculateTotals_SingleBucket(t *testing.T) {
	inv := testInvoice(t)
	// three standard-rated lines share one bucket
	addLine(t, inv, "1", 2, 100, codes.VATStandard, 21)
	addLine(t, inv, "2", 1, 300, codes.VATStandard, 21)
	addLine(t, inv, "3", 5, 100, codes.VATStandard, 21)

	inv.CalculateTotals()

	require.Len(t, inv.VATBreakdown, 1)
	bucket := inv.VATBreakdown[0]
	assert.Equal(t, codes.VATStandard, bucket.Category)
	assert.True(t, bucket.TaxableAmount.Equal(decimal.NewFromInt(1000)),
		"expected taxable 1000, got %s", bucket.TaxableAmount.String())
	assert.True(t, bucket.TaxAmount.Equal(decimal.NewFromInt(210)),
		"expected tax 210, got %s", bucket.TaxAmount.String())

	assert.True(t, inv.Totals.TaxExclusiveAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, inv.Totals.TotalVATAmount.Equal(decimal.NewFromInt(210)))
	assert.True(t, inv.Totals.TaxInclusiveAmount.Equal(decimal.NewFromInt(1210)))
	assert.True(t, inv.Totals.PayableAmount.Equal(decimal.NewFromInt(1210)))
}

func TestCalculateTotals_BucketOrderFirstSeen(t *testing.T) {
	inv := testInvoice(t)
	addLine(t, inv, "1", 1, 100, codes.VATStandard, 21)
	addLine(t, inv, "2", 1, 100, codes.VATStandard, 6)
	addLine(t, inv, "3", 1, 100, codes.VATStandard, 21)
	addLine(t, inv, "4", 1, 100, codes.VATZeroRated, 0)

	inv.CalculateTotals()

	require.Len(t, inv.VATBreakdown, 3)
	assert.True(t, inv.VATBreakdown[0].Rate.Equal(decimal.NewFromInt(21)))
	assert.True(t, inv.VATBreakdown[1].Rate.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, codes.VATZeroRated, inv.VATBreakdown[2].Category)
}

func TestCalculateTotals_Idempotent(t *testing.T) {
	inv := testInvoice(t)
	addLine(t, inv, "1", 3, 33, codes.VATStandard, 21)
	addLine(t, inv, "2", 7, 19, codes.VATStandard, 6)

	inv.CalculateTotals()
	first := inv.Totals
	firstBuckets := make([]model.VATBreakdown, len(inv.VATBreakdown))
	copy(firstBuckets, inv.VATBreakdown)

	inv.CalculateTotals()

	assert.True(t, first.TaxExclusiveAmount.Equal(inv.Totals.TaxExclusiveAmount))
	assert.True(t, first.TotalVATAmount.Equal(inv.Totals.TotalVATAmount))
	assert.True(t, first.TaxInclusiveAmount.Equal(inv.Totals.TaxInclusiveAmount))
	assert.True(t, first.PayableAmount.Equal(inv.Totals.PayableAmount))
	require.Len(t, inv.VATBreakdown, len(firstBuckets))
	for i := range firstBuckets {
		assert.True(t, firstBuckets[i].TaxableAmount.Equal(inv.VATBreakdown[i].TaxableAmount))
		assert.True(t, firstBuckets[i].TaxAmount.Equal(inv.VATBreakdown[i].TaxAmount))
	}
}

func TestCalculateTotals_DocumentAllowanceAdjustsBucket(t *testing.T) {
	inv := testInvoice(t)
	addLine(t, inv, "1", 1, 1000, codes.VATStandard, 21)

	allowance, err := model.NewAllowance(decimal.NewFromInt(100), "year-end rebate", codes.VATStandard, decimal.NewFromInt(21))
	require.NoError(t, err)
	require.NoError(t, inv.AddAllowanceCharge(allowance))

	inv.CalculateTotals()

	require.Len(t, inv.VATBreakdown, 1)
	// the allowance reduces the bucket's taxable amount, not the grand
	// total directly
	assert.True(t, inv.VATBreakdown[0].TaxableAmount.Equal(decimal.NewFromInt(900)))
	assert.True(t, inv.VATBreakdown[0].TaxAmount.Equal(decimal.NewFromInt(189)))
	assert.True(t, inv.Totals.TaxExclusiveAmount.Equal(decimal.NewFromInt(900)))
	assert.True(t, inv.Totals.TaxInclusiveAmount.Equal(decimal.NewFromInt(1089)))
}

func TestCalculateTotals_ChargeCreatesBucket(t *testing.T) {
	inv := testInvoice(t)
	addLine(t, inv, "1", 1, 500, codes.VATStandard, 21)

	charge, err := model.NewCharge(decimal.NewFromInt(25), "transport", codes.VATStandard, decimal.NewFromInt(6))
	require.NoError(t, err)
	require.NoError(t, inv.AddAllowanceCharge(charge))

	inv.CalculateTotals()

	// the charge declares a rate no line uses, so it opens its own bucket
	require.Len(t, inv.VATBreakdown, 2)
	assert.True(t, inv.VATBreakdown[1].TaxableAmount.Equal(decimal.NewFromInt(25)))
	assert.True(t, inv.VATBreakdown[1].TaxAmount.Equal(decimal.RequireFromString("1.50")))
	assert.True(t, inv.Totals.TaxExclusiveAmount.Equal(decimal.NewFromInt(525)))
}

func TestCalculateTotals_PrepaidReducesPayable(t *testing.T) {
	inv := testInvoice(t)
	addLine(t, inv, "1", 1, 1000, codes.VATStandard, 21)
	require.NoError(t, inv.SetPrepaidAmount(decimal.NewFromInt(500)))

	inv.CalculateTotals()

	assert.True(t, inv.Totals.TaxInclusiveAmount.Equal(decimal.NewFromInt(1210)))
	assert.True(t, inv.Totals.PayableAmount.Equal(decimal.NewFromInt(710)))
}

func TestCalculateTotals_CumulativeRounding(t *testing.T) {
	inv := testInvoice(t)
	// each line amount is 0.335 -> rounds to 0.34 at the line, and the
	// bucket accumulates rounded values step by step
	for _, id := range []string{"1", "2", "3"} {
		line, err := model.NewInvoiceLine(id, "Half cent "+id, decimal.NewFromInt(1), "C62",
			decimal.RequireFromString("0.335"), codes.VATStandard, decimal.NewFromInt(21))
		require.NoError(t, err)
		require.NoError(t, inv.AddLine(line))
	}

	inv.CalculateTotals()

	// 0.34 * 3, not round(1.005) = 1.00 or 1.01 from deferred rounding
	assert.True(t, inv.Totals.TaxExclusiveAmount.Equal(decimal.RequireFromString("1.02")),
		"expected 1.02, got %s", inv.Totals.TaxExclusiveAmount.String())
}

func TestSetVATExemptionReason_AfterLineExists(t *testing.T) {
	inv := testInvoice(t)
	addLine(t, inv, "1", 1, 1000, codes.VATExport, 0)

	require.NoError(t, inv.SetVATExemptionReason(codes.VATExport, "VATEX-EU-G", ""))

	inv.CalculateTotals()

	require.Len(t, inv.VATBreakdown, 1)
	assert.Equal(t, "VATEX-EU-G", inv.VATBreakdown[0].ExemptionReasonCode)
	assert.NotEmpty(t, inv.VATBreakdown[0].ExemptionReason)

	// the reason survives further recomputes
	inv.CalculateTotals()
	assert.Equal(t, "VATEX-EU-G", inv.VATBreakdown[0].ExemptionReasonCode)
}

func TestSetVATExemptionReason_BeforeLineIsNoOp(t *testing.T) {
	inv := testInvoice(t)

	// no G line exists yet: the call does not record anything
	require.NoError(t, inv.SetVATExemptionReason(codes.VATExport, "VATEX-EU-G", ""))

	addLine(t, inv, "1", 1, 1000, codes.VATExport, 0)
	inv.CalculateTotals()

	require.Len(t, inv.VATBreakdown, 1)
	assert.Empty(t, inv.VATBreakdown[0].ExemptionReason,
		"reason set before any G line must stay unresolved")

	// a later propagation pass resolves the gap
	require.NoError(t, inv.SetVATExemptionReason(codes.VATExport, "VATEX-EU-G", ""))
	inv.CalculateTotals()
	assert.NotEmpty(t, inv.VATBreakdown[0].ExemptionReason)
}

func TestSetVATExemptionReason_UnknownCode(t *testing.T) {
	inv := testInvoice(t)
	addLine(t, inv, "1", 1, 1000, codes.VATExport, 0)

	err := inv.SetVATExemptionReason(codes.VATExport, "VATEX-XX-NOPE", "")
	require.Error(t, err)
}

func TestPlain_MirrorsAggregate(t *testing.T) {
	inv := testInvoice(t)
	addLine(t, inv, "1", 2, 100, codes.VATStandard, 21)
	inv.CalculateTotals()

	plain := inv.Plain()
	assert.Equal(t, "2026-042", plain["number"])
	assert.Equal(t, "EUR", plain["currency"])

	lines, ok := plain["lines"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, lines, 1)
	assert.Equal(t, "200", lines[0]["amount"])

	totals, ok := plain["totals"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "242", totals["taxInclusiveAmount"])
}

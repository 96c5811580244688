package codes_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rezonia/einvoice/internal/codes"
)

func TestVATCategories(t *testing.T) {
	for _, id := range []string{"S", "Z", "E", "AE", "K", "G", "O"} {
		assert.True(t, codes.IsVATCategory(id), id)
		assert.NotEmpty(t, codes.CategoryName(codes.VATCategory(id)))
	}
	assert.False(t, codes.IsVATCategory("X"))
	assert.False(t, codes.IsVATCategory(""))
}

func TestRequiresExemptionReason(t *testing.T) {
	needs := map[codes.VATCategory]bool{
		codes.VATStandard:       false,
		codes.VATZeroRated:      false,
		codes.VATExempt:         true,
		codes.VATReverseCharge:  true,
		codes.VATIntraCommunity: true,
		codes.VATExport:         true,
		codes.VATOutOfScope:     true,
	}
	for category, want := range needs {
		assert.Equal(t, want, codes.RequiresExemptionReason(category), string(category))
	}
}

func TestExemptionReasonCodes(t *testing.T) {
	assert.True(t, codes.IsExemptionReasonCode("VATEX-EU-G"))
	assert.True(t, codes.IsExemptionReasonCode("VATEX-EU-IC"))
	assert.NotEmpty(t, codes.ExemptionReasonText("VATEX-EU-G"))

	assert.False(t, codes.IsExemptionReasonCode("VATEX-XX-NOPE"))
	assert.Empty(t, codes.ExemptionReasonText("VATEX-XX-NOPE"))
}

func TestEASSchemes(t *testing.T) {
	assert.True(t, codes.IsEASScheme("0208"))
	assert.True(t, codes.IsEASScheme("9925"))
	assert.True(t, codes.IsEASScheme("0088"))
	assert.False(t, codes.IsEASScheme("9999"))
}

func TestBelgianStandardRates(t *testing.T) {
	rates := codes.BelgianStandardRates()
	want := []int64{0, 6, 12, 21}
	assert.Len(t, rates, len(want))
	for i, w := range want {
		assert.True(t, rates[i].Equal(decimal.NewFromInt(w)), "rate %d", w)
	}
}

func TestInvoiceTypeCodes(t *testing.T) {
	for _, code := range []string{"380", "381", "384", "386"} {
		assert.True(t, codes.IsInvoiceTypeCode(code), code)
	}
	assert.False(t, codes.IsInvoiceTypeCode("999"))
}

func TestPaymentMeansCodes(t *testing.T) {
	assert.True(t, codes.IsPaymentMeansCode("30"))
	assert.True(t, codes.IsPaymentMeansCode("58"))
	assert.False(t, codes.IsPaymentMeansCode("77"))
}

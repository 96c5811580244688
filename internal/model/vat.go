package model

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/einvoice/internal/codes"
)

// VATBreakdown is one tax subtotal bucket, keyed by (category, rate).
// Buckets are rebuilt by CalculateTotals in first-seen line order;
// exemption reasons recorded on the aggregate survive the rebuild.
type VATBreakdown struct {
	Category      codes.VATCategory
	Rate          decimal.Decimal
	TaxableAmount decimal.Decimal
	TaxAmount     decimal.Decimal

	// Required when Category is one of E, AE, K, G, O
	ExemptionReasonCode string
	ExemptionReason     string
}

// Key identifies the bucket a line or allowance/charge feeds into
func (b VATBreakdown) Key() VATKey {
	return VATKey{Category: b.Category, Rate: b.Rate.String()}
}

// VATKey is a comparable (category, rate) bucket key
type VATKey struct {
	Category codes.VATCategory
	Rate     string
}

// RequiresExemptionReason reports whether this bucket's category mandates
// an exemption reason.
func (b VATBreakdown) RequiresExemptionReason() bool {
	return codes.RequiresExemptionReason(b.Category)
}

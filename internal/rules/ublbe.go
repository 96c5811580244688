package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rezonia/einvoice/internal/codes"
	"github.com/rezonia/einvoice/internal/model"
)

// UBLBEConfig holds the lookup tables the Belgian layer checks against.
// They are injected per layer instance so profiles can be tested in
// isolation and extended without touching process-wide state.
type UBLBEConfig struct {
	// AllowedStandardRates are the category-S rates a domestic Belgian
	// seller may invoice with
	AllowedStandardRates []decimal.Decimal

	// MinAttachments is the minimum number of embedded documents
	// (UBL.BE expects the commercial invoice itself to be attached)
	MinAttachments int
}

// DefaultUBLBEConfig returns the standard Belgian tables
func DefaultUBLBEConfig() UBLBEConfig {
	return UBLBEConfig{
		AllowedStandardRates: codes.BelgianStandardRates(),
		MinAttachments:       1,
	}
}

// UBLBELayer adds the Belgian UBL.BE mandates on top of base and Peppol
type UBLBELayer struct {
	config UBLBEConfig
}

// NewUBLBELayer creates the Belgian extension layer with its tables
func NewUBLBELayer(config UBLBEConfig) *UBLBELayer {
	return &UBLBELayer{config: config}
}

// Name identifies the layer
func (l *UBLBELayer) Name() string {
	return "ublbe"
}

// Check runs the Belgian mandates
func (l *UBLBELayer) Check(inv *model.Invoice) []string {
	var findings []string

	if inv.Seller.Address.CountryCode == "BE" && inv.Seller.VATID == "" {
		findings = append(findings, "Belgian seller must carry a VAT identifier")
	}

	if inv.Seller.Address.CountryCode == "BE" {
		for _, b := range inv.VATBreakdown {
			if b.Category != codes.VATStandard {
				continue
			}
			if !l.rateAllowed(b.Rate) {
				findings = append(findings, fmt.Sprintf(
					"standard VAT rate %s%% is not an allowed Belgian rate", b.Rate.String()))
			}
		}
	}

	if len(inv.Attachments) < l.config.MinAttachments {
		findings = append(findings, fmt.Sprintf(
			"at least %d attached document(s) required, found %d",
			l.config.MinAttachments, len(inv.Attachments)))
	}

	return findings
}

func (l *UBLBELayer) rateAllowed(rate decimal.Decimal) bool {
	for _, allowed := range l.config.AllowedStandardRates {
		if rate.Equal(allowed) {
			return true
		}
	}
	return false
}

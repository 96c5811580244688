package rules

import (
	"fmt"
	"strings"

	"github.com/rezonia/einvoice/internal/model"
)

// BaseLayer carries the EN16931 core rules applied to every document
// regardless of profile: entity completeness, VAT coherence per bucket,
// and exemption reasons where the category demands one.
type BaseLayer struct{}

// NewBaseLayer creates the base rule layer
func NewBaseLayer() *BaseLayer {
	return &BaseLayer{}
}

// Name identifies the layer
func (l *BaseLayer) Name() string {
	return "en16931"
}

// Check runs the core rules
func (l *BaseLayer) Check(inv *model.Invoice) []string {
	var findings []string

	if strings.TrimSpace(inv.Number) == "" {
		findings = append(findings, "invoice number is missing")
	}
	if inv.IssueDate.IsZero() {
		findings = append(findings, "issue date is missing")
	}
	if inv.Currency == "" {
		findings = append(findings, "document currency is missing")
	}
	if strings.TrimSpace(inv.Seller.Name) == "" {
		findings = append(findings, "seller name is missing")
	}
	if inv.Seller.Address.CountryCode == "" {
		findings = append(findings, "seller address is incomplete: country code is missing")
	}
	if strings.TrimSpace(inv.Buyer.Name) == "" {
		findings = append(findings, "buyer name is missing")
	}
	if inv.Buyer.Address.CountryCode == "" {
		findings = append(findings, "buyer address is incomplete: country code is missing")
	}
	if len(inv.Lines) == 0 {
		findings = append(findings, "invoice must have at least one line")
	}

	for _, b := range inv.VATBreakdown {
		if diff, ok := coherent(b); !ok {
			findings = append(findings, fmt.Sprintf(
				"VAT bucket %s %s%%: tax amount %s differs from taxable x rate by %s (tolerance 0.02)",
				b.Category, b.Rate.String(), b.TaxAmount.StringFixed(2), diff.StringFixed(2)))
		}
		if b.RequiresExemptionReason() && strings.TrimSpace(b.ExemptionReason) == "" {
			findings = append(findings, fmt.Sprintf(
				"VAT bucket %s %s%%: missing exemption reason", b.Category, b.Rate.String()))
		}
	}

	if inv.Totals.PayableAmount.IsPositive() && inv.DueDate.IsZero() && strings.TrimSpace(inv.Payment.Terms) == "" {
		findings = append(findings, "due date or payment terms required when payable amount is positive")
	}

	return findings
}

package rules

import (
	"github.com/rezonia/einvoice/internal/model"
)

// PeppolLayer adds the Peppol BIS Billing mandates on top of the base
// rules: routable electronic addresses on both parties and at least one
// of the buyer reference / purchase order reference pair.
type PeppolLayer struct{}

// NewPeppolLayer creates the Peppol extension layer
func NewPeppolLayer() *PeppolLayer {
	return &PeppolLayer{}
}

// Name identifies the layer
func (l *PeppolLayer) Name() string {
	return "peppol"
}

// Check runs the Peppol mandates
func (l *PeppolLayer) Check(inv *model.Invoice) []string {
	var findings []string

	if inv.Seller.ElectronicAddress.IsZero() {
		findings = append(findings, "seller electronic address is required on the Peppol network")
	}
	if inv.Buyer.ElectronicAddress.IsZero() {
		findings = append(findings, "buyer electronic address is required on the Peppol network")
	}
	if inv.References.BuyerReference == "" && inv.References.PurchaseOrder == "" {
		findings = append(findings, "either a buyer reference or a purchase order reference is required")
	}

	return findings
}

package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/einvoice/internal/codes"
)

// References groups the document-level references an invoice may carry
type References struct {
	PurchaseOrder          string
	SalesOrder             string
	Contract               string
	Project                string
	BuyerReference         string
	PrecedingInvoiceNumber string
	PrecedingInvoiceDate   time.Time
}

// Totals are the derived monetary totals of an invoice. They reflect the
// state at the last CalculateTotals call, never live mutations.
type Totals struct {
	TaxExclusiveAmount decimal.Decimal
	TotalVATAmount     decimal.Decimal
	TaxInclusiveAmount decimal.Decimal
	PrepaidAmount      decimal.Decimal
	PayableAmount      decimal.Decimal
}

// Invoice is the document aggregate.
//
// Derived state (Totals, VATBreakdown, line amounts) is not kept in sync
// with mutations: it reflects the last explicit CalculateTotals call.
// Callers batch their edits and recompute once before validating or
// exporting.
type Invoice struct {
	Number    string
	IssueDate time.Time
	DueDate   time.Time // optional
	TypeCode  string    // UNCL1001, "380" for a commercial invoice
	Currency  string    // ISO 4217

	Seller Party
	Buyer  Party

	Lines            []InvoiceLine
	AllowanceCharges []AllowanceCharge // document level
	VATBreakdown     []VATBreakdown    // rebuilt by CalculateTotals

	Payment     PaymentInfo
	References  References
	Period      *Period
	Attachments []Attachment

	Totals Totals

	// exemption reasons recorded per category, stamped onto buckets at
	// each recompute
	exemptionReasons map[codes.VATCategory]exemptionReason
}

type exemptionReason struct {
	code string
	text string
}

// NewInvoice creates the aggregate root with its identifying header
func NewInvoice(number string, issueDate time.Time, currency string) (*Invoice, error) {
	if strings.TrimSpace(number) == "" {
		return nil, NewConstructionError("Invoice", "Number", nil, "required", "invoice number is required")
	}
	if issueDate.IsZero() {
		return nil, NewConstructionError("Invoice", "IssueDate", nil, "required", "issue date is required")
	}
	if len(currency) != 3 || strings.ToUpper(currency) != currency {
		return nil, NewConstructionError("Invoice", "Currency", currency, "iso4217", "currency must be a three-letter ISO code")
	}
	return &Invoice{
		Number:           number,
		IssueDate:        issueDate,
		TypeCode:         "380",
		Currency:         currency,
		exemptionReasons: make(map[codes.VATCategory]exemptionReason),
	}, nil
}

// SetTypeCode sets the document type code
func (inv *Invoice) SetTypeCode(code string) error {
	if !codes.IsInvoiceTypeCode(code) {
		return NewConstructionError("Invoice", "TypeCode", code, "uncl1001", "unknown invoice type code")
	}
	inv.TypeCode = code
	return nil
}

// SetSeller sets the supplier party after validating it
func (inv *Invoice) SetSeller(p Party) error {
	if err := p.Validate(); err != nil {
		return err
	}
	inv.Seller = p
	return nil
}

// SetBuyer sets the customer party after validating it
func (inv *Invoice) SetBuyer(p Party) error {
	if err := p.Validate(); err != nil {
		return err
	}
	inv.Buyer = p
	return nil
}

// AddLine appends a validated invoice line. Totals are stale until the
// next CalculateTotals.
func (inv *Invoice) AddLine(l InvoiceLine) error {
	if err := l.Validate(); err != nil {
		return err
	}
	inv.Lines = append(inv.Lines, l)
	return nil
}

// AddAllowanceCharge appends a validated document-level allowance or
// charge. Totals are stale until the next CalculateTotals.
func (inv *Invoice) AddAllowanceCharge(ac AllowanceCharge) error {
	if err := ac.Validate(); err != nil {
		return err
	}
	inv.AllowanceCharges = append(inv.AllowanceCharges, ac)
	return nil
}

// SetPayment sets validated payment information
func (inv *Invoice) SetPayment(p PaymentInfo) error {
	if err := p.Validate(); err != nil {
		return err
	}
	inv.Payment = p
	return nil
}

// AddAttachment appends a validated attachment
func (inv *Invoice) AddAttachment(a Attachment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	inv.Attachments = append(inv.Attachments, a)
	return nil
}

// SetPrepaidAmount records an amount already paid. Payable is stale
// until the next CalculateTotals.
func (inv *Invoice) SetPrepaidAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return NewConstructionError("Invoice", "PrepaidAmount", amount.String(), "non-negative", "prepaid amount must not be negative")
	}
	inv.Totals.PrepaidAmount = amount
	return nil
}

// SetVATExemptionReason records the exemption reason for a VAT category.
// The reason is recorded only when some line or document-level
// allowance/charge already carries the category; calling it earlier is a
// no-op and the gap stays until the setter runs again after such an
// entity exists. Recorded reasons are stamped onto the matching buckets
// at every recompute.
func (inv *Invoice) SetVATExemptionReason(category codes.VATCategory, reasonCode, reasonText string) error {
	if reasonCode != "" && !codes.IsExemptionReasonCode(reasonCode) {
		return NewConstructionError("Invoice", "ExemptionReasonCode", reasonCode, "vatex", "unknown exemption reason code")
	}
	if reasonText == "" {
		reasonText = codes.ExemptionReasonText(reasonCode)
	}
	if reasonText == "" {
		return NewConstructionError("Invoice", "ExemptionReason", nil, "required", "exemption reason text is required")
	}
	if !inv.categoryInUse(category) {
		return nil
	}
	if inv.exemptionReasons == nil {
		inv.exemptionReasons = make(map[codes.VATCategory]exemptionReason)
	}
	inv.exemptionReasons[category] = exemptionReason{code: reasonCode, text: reasonText}
	for i := range inv.VATBreakdown {
		if inv.VATBreakdown[i].Category == category {
			inv.VATBreakdown[i].ExemptionReasonCode = reasonCode
			inv.VATBreakdown[i].ExemptionReason = reasonText
		}
	}
	return nil
}

func (inv *Invoice) categoryInUse(category codes.VATCategory) bool {
	for _, l := range inv.Lines {
		if l.VATCategory == category {
			return true
		}
	}
	for _, ac := range inv.AllowanceCharges {
		if ac.VATCategory == category {
			return true
		}
	}
	return false
}

// exemptionReasonFor returns the recorded reason for a category, if any
func (inv *Invoice) exemptionReasonFor(category codes.VATCategory) (exemptionReason, bool) {
	r, ok := inv.exemptionReasons[category]
	return r, ok
}

package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/einvoice/internal/codes"
	dec "github.com/rezonia/einvoice/internal/decimal"
)

// Period is a date range (invoicing or line period)
type Period struct {
	Start time.Time
	End   time.Time
}

// AllowanceCharge is a deduction (allowance) or addition (charge) applied
// either to a single line or to the document. It always declares the VAT
// category and rate of the amounts it adjusts.
type AllowanceCharge struct {
	Charge      bool // true = charge (addition), false = allowance (deduction)
	Amount      decimal.Decimal
	Reason      string
	ReasonCode  string // optional UNCL5189/7161 code
	VATCategory codes.VATCategory
	VATRate     decimal.Decimal
}

// NewAllowance creates a validated allowance (deduction)
func NewAllowance(amount decimal.Decimal, reason string, category codes.VATCategory, rate decimal.Decimal) (AllowanceCharge, error) {
	ac := AllowanceCharge{Amount: amount, Reason: reason, VATCategory: category, VATRate: rate}
	if err := ac.Validate(); err != nil {
		return AllowanceCharge{}, err
	}
	return ac, nil
}

// NewCharge creates a validated charge (addition)
func NewCharge(amount decimal.Decimal, reason string, category codes.VATCategory, rate decimal.Decimal) (AllowanceCharge, error) {
	ac := AllowanceCharge{Charge: true, Amount: amount, Reason: reason, VATCategory: category, VATRate: rate}
	if err := ac.Validate(); err != nil {
		return AllowanceCharge{}, err
	}
	return ac, nil
}

// Validate checks amount sign, reason, and category
func (ac AllowanceCharge) Validate() error {
	if ac.Amount.IsNegative() {
		return NewConstructionError("AllowanceCharge", "Amount", ac.Amount.String(), "non-negative", "amount must not be negative")
	}
	if strings.TrimSpace(ac.Reason) == "" {
		return NewConstructionError("AllowanceCharge", "Reason", nil, "required", "reason is required")
	}
	if !codes.IsVATCategory(string(ac.VATCategory)) {
		return NewConstructionError("AllowanceCharge", "VATCategory", string(ac.VATCategory), "uncl5305", "unknown VAT category")
	}
	return nil
}

// InvoiceLine is a single invoiced item. Amount is derived: it reflects
// the state at the last Calculate call, not live mutations.
type InvoiceLine struct {
	ID          string
	Name        string
	Description string
	Note        string
	Quantity    decimal.Decimal
	UnitCode    string // UNECE Rec 20
	UnitPrice   decimal.Decimal
	VATCategory codes.VATCategory
	VATRate     decimal.Decimal
	Period      *Period

	// optional item identifiers
	SellerItemID   string
	StandardItemID string

	AllowanceCharges []AllowanceCharge

	// Amount = round(Quantity*UnitPrice - allowances + charges, 2),
	// set by Calculate
	Amount decimal.Decimal
}

// NewInvoiceLine creates a validated line and computes its amount
func NewInvoiceLine(id, name string, quantity decimal.Decimal, unitCode string, unitPrice decimal.Decimal, category codes.VATCategory, rate decimal.Decimal) (InvoiceLine, error) {
	l := InvoiceLine{
		ID:          id,
		Name:        name,
		Quantity:    quantity,
		UnitCode:    unitCode,
		UnitPrice:   unitPrice,
		VATCategory: category,
		VATRate:     rate,
	}
	if err := l.Validate(); err != nil {
		return InvoiceLine{}, err
	}
	l.Calculate()
	return l, nil
}

// Validate checks required fields and the VAT category
func (l InvoiceLine) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return NewConstructionError("InvoiceLine", "ID", nil, "required", "line id is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return NewConstructionError("InvoiceLine", "Name", nil, "required", "item name is required")
	}
	if strings.TrimSpace(l.UnitCode) == "" {
		return NewConstructionError("InvoiceLine", "UnitCode", nil, "required", "unit code is required")
	}
	if !codes.IsVATCategory(string(l.VATCategory)) {
		return NewConstructionError("InvoiceLine", "VATCategory", string(l.VATCategory), "uncl5305", "unknown VAT category")
	}
	if l.VATRate.IsNegative() {
		return NewConstructionError("InvoiceLine", "VATRate", l.VATRate.String(), "non-negative", "VAT rate must not be negative")
	}
	for _, ac := range l.AllowanceCharges {
		if err := ac.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AddAllowanceCharge appends a line-level allowance or charge. The line
// amount is stale until the next Calculate.
func (l *InvoiceLine) AddAllowanceCharge(ac AllowanceCharge) error {
	if err := ac.Validate(); err != nil {
		return err
	}
	l.AllowanceCharges = append(l.AllowanceCharges, ac)
	return nil
}

// Calculate recomputes the line amount from quantity, price and the
// line-level allowances and charges, rounding to 2 decimals.
func (l *InvoiceLine) Calculate() {
	amount := l.Quantity.Mul(l.UnitPrice)
	for _, ac := range l.AllowanceCharges {
		if ac.Charge {
			amount = amount.Add(ac.Amount)
		} else {
			amount = amount.Sub(ac.Amount)
		}
	}
	l.Amount = dec.Round2(amount)
}

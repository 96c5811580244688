// Package einvoice provides the public API for building, validating and
// serializing EN16931 electronic invoices.
//
// Example usage:
//
//	inv, err := einvoice.NewInvoice("2026-001", issueDate, "EUR")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	inv.AddLine(line)
//	inv.CalculateTotals()
//	data, err := einvoice.Export(inv)
package einvoice

import (
	"github.com/rezonia/einvoice/internal/checksum"
	"github.com/rezonia/einvoice/internal/codes"
	"github.com/rezonia/einvoice/internal/model"
	"github.com/rezonia/einvoice/internal/rules"
	"github.com/rezonia/einvoice/internal/schematron"
	"github.com/rezonia/einvoice/internal/ubl"
)

// Re-export core types for the public API
type (
	Invoice           = model.Invoice
	InvoiceLine       = model.InvoiceLine
	Party             = model.Party
	Address           = model.Address
	ElectronicAddress = model.ElectronicAddress
	AllowanceCharge   = model.AllowanceCharge
	VATBreakdown      = model.VATBreakdown
	PaymentInfo       = model.PaymentInfo
	Attachment        = model.Attachment
	Period            = model.Period
	References        = model.References
	Totals            = model.Totals
	VATCategory       = codes.VATCategory
)

// Re-export VAT categories
const (
	VATStandard       = codes.VATStandard
	VATZeroRated      = codes.VATZeroRated
	VATExempt         = codes.VATExempt
	VATReverseCharge  = codes.VATReverseCharge
	VATIntraCommunity = codes.VATIntraCommunity
	VATExport         = codes.VATExport
	VATOutOfScope     = codes.VATOutOfScope
)

// Re-export error types
type (
	ConstructionError = model.ConstructionError
	ImportError       = model.ImportError
)

// Re-export codec types
type (
	ImportResult  = ubl.ImportResult
	TotalMismatch = ubl.TotalMismatch
	Status        = ubl.Status
)

// Re-export import statuses
const (
	StatusOK             = ubl.StatusOK
	StatusOKWithWarnings = ubl.StatusOKWithWarnings
)

// Re-export validation types
type (
	RuleLayer       = rules.Layer
	Profile         = rules.Profile
	ProfileRegistry = rules.Registry
)

// Re-export the external validator contract
type (
	SchematronValidator = schematron.Validator
	SchematronReport    = schematron.Report
	SchematronFinding   = schematron.Finding
)

// Constructors

// NewInvoice creates the aggregate root
var NewInvoice = model.NewInvoice

// NewAddress creates a validated address
var NewAddress = model.NewAddress

// NewParty creates a validated party
var NewParty = model.NewParty

// NewInvoiceLine creates a validated line
var NewInvoiceLine = model.NewInvoiceLine

// NewAllowance creates a validated allowance
var NewAllowance = model.NewAllowance

// NewCharge creates a validated charge
var NewCharge = model.NewCharge

// NewPaymentInfo creates validated payment information
var NewPaymentInfo = model.NewPaymentInfo

// NewAttachment creates a validated attachment
var NewAttachment = model.NewAttachment

// Export serializes an aggregate as a UBL 2.1 document
var Export = ubl.Export

// Import parses a UBL 2.1 document, strict or lenient
var Import = ubl.Import

// DefaultProfiles returns the built-in validation profile registry
var DefaultProfiles = rules.DefaultRegistry

// ValidateStructuredReference verifies a structured payment reference
var ValidateStructuredReference = checksum.ValidateStructuredReference

// StructuredReferenceFromBase appends check digits to a 10-digit base
var StructuredReferenceFromBase = checksum.StructuredReferenceFromBase

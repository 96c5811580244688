// Package codes holds the fixed code lists the invoice model and the
// validation profiles draw from: electronic address schemes (EAS), VAT
// category codes, VAT exemption reason codes, payment means codes and the
// domestic standard-rate table. Tables are exposed as lookup functions over
// unexported maps so callers cannot mutate them; profiles that need their
// own tables take a Registry value instead of reaching for the defaults.
package codes

import "github.com/shopspring/decimal"

// VATCategory is an EN16931 VAT category code (UNCL5305 subset)
type VATCategory string

const (
	VATStandard       VATCategory = "S"  // Standard rated
	VATZeroRated      VATCategory = "Z"  // Zero rated goods
	VATExempt         VATCategory = "E"  // Exempt from tax
	VATReverseCharge  VATCategory = "AE" // VAT reverse charge
	VATIntraCommunity VATCategory = "K"  // Intra-community supply
	VATExport         VATCategory = "G"  // Free export, tax not charged
	VATOutOfScope     VATCategory = "O"  // Outside scope of tax
)

// vatCategories is the closed set of recognized category codes
var vatCategories = map[VATCategory]string{
	VATStandard:       "Standard rated",
	VATZeroRated:      "Zero rated goods",
	VATExempt:         "Exempt from tax",
	VATReverseCharge:  "VAT reverse charge",
	VATIntraCommunity: "Intra-community supply",
	VATExport:         "Free export item, tax not charged",
	VATOutOfScope:     "Services outside scope of tax",
}

// exemptionRequired lists the categories whose breakdown buckets must
// carry an exemption reason (BR-E-10, BR-AE-10, BR-IC-10, BR-G-10, BR-O-10)
var exemptionRequired = map[VATCategory]bool{
	VATExempt:         true,
	VATReverseCharge:  true,
	VATIntraCommunity: true,
	VATExport:         true,
	VATOutOfScope:     true,
}

// IsVATCategory reports whether code is a recognized VAT category.
func IsVATCategory(code string) bool {
	_, ok := vatCategories[VATCategory(code)]
	return ok
}

// CategoryName returns the human name of a VAT category, empty if unknown.
func CategoryName(c VATCategory) string {
	return vatCategories[c]
}

// RequiresExemptionReason reports whether breakdown buckets of the given
// category must carry an exemption reason.
func RequiresExemptionReason(c VATCategory) bool {
	return exemptionRequired[c]
}

// easSchemes is the EAS electronic address scheme registry (subset of the
// CEF code list relevant for western-European exchange)
var easSchemes = map[string]string{
	"0002": "System Information et Repertoire des Entreprise (SIRENE)",
	"0007": "Organisationsnummer (Sweden)",
	"0060": "DUNS Number",
	"0088": "EAN Location Code (GLN)",
	"0096": "Danish CVR",
	"0106": "Dutch KvK",
	"0190": "Dutch OIN",
	"0192": "Norwegian organisasjonsnummer",
	"0193": "UBL.BE party identifier",
	"0208": "Belgian enterprise number (KBO/BCE)",
	"9925": "Belgian VAT number",
	"9930": "German VAT number",
	"9931": "Austrian VAT number",
	"9938": "Luxembourg VAT number",
	"9944": "Dutch VAT number",
	"9956": "Belgian crossroad bank of enterprises",
	"9957": "French VAT number",
	"0230": "National e-Invoicing Framework (Malaysia)",
}

// IsEASScheme reports whether schemeID is a registered electronic address
// scheme identifier.
func IsEASScheme(schemeID string) bool {
	_, ok := easSchemes[schemeID]
	return ok
}

// EASSchemeName returns the registry name of a scheme, empty if unknown.
func EASSchemeName(schemeID string) string {
	return easSchemes[schemeID]
}

// exemptionReasonCodes maps VATEX reason codes to their text (subset used
// by Belgian invoices)
var exemptionReasonCodes = map[string]string{
	"VATEX-EU-AE":     "Reverse charge",
	"VATEX-EU-D":      "Intra-community acquisition from second hand means of transport",
	"VATEX-EU-G":      "Export outside the EU",
	"VATEX-EU-IC":     "Intra-community supply",
	"VATEX-EU-O":      "Not subject to VAT",
	"VATEX-EU-79-C":   "Exempt based on article 79, point c of Council Directive 2006/112/EC",
	"VATEX-EU-132":    "Exempt based on article 132 of Council Directive 2006/112/EC",
	"VATEX-EU-143":    "Exempt based on article 143 of Council Directive 2006/112/EC",
	"VATEX-EU-148":    "Exempt based on article 148 of Council Directive 2006/112/EC",
	"VATEX-EU-151":    "Exempt based on article 151 of Council Directive 2006/112/EC",
	"VATEX-EU-309":    "Exempt based on article 309 of Council Directive 2006/112/EC",
	"VATEX-BE-SMALL":  "Special exemption scheme for small enterprises (art. 56bis)",
	"VATEX-BE-COCONT": "Reverse charge for works on immovable property (co-contractor)",
}

// IsExemptionReasonCode reports whether code is a registered VATEX code.
func IsExemptionReasonCode(code string) bool {
	_, ok := exemptionReasonCodes[code]
	return ok
}

// ExemptionReasonText returns the registered text for a VATEX code,
// empty if unknown.
func ExemptionReasonText(code string) string {
	return exemptionReasonCodes[code]
}

// paymentMeansCodes is the UNCL4461 subset accepted on outgoing invoices
var paymentMeansCodes = map[string]string{
	"1":  "Instrument not defined",
	"10": "In cash",
	"20": "Cheque",
	"30": "Credit transfer",
	"42": "Payment to bank account",
	"48": "Bank card",
	"49": "Direct debit",
	"58": "SEPA credit transfer",
	"59": "SEPA direct debit",
}

// IsPaymentMeansCode reports whether code is a recognized payment means.
func IsPaymentMeansCode(code string) bool {
	_, ok := paymentMeansCodes[code]
	return ok
}

// BelgianStandardRates returns the VAT rates a domestic Belgian seller may
// use with category S. The slice is freshly allocated on each call.
func BelgianStandardRates() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.NewFromInt(0),
		decimal.NewFromInt(6),
		decimal.NewFromInt(12),
		decimal.NewFromInt(21),
	}
}

// InvoiceTypeCodes is the UNCL1001 subset this system emits
var invoiceTypeCodes = map[string]string{
	"380": "Commercial invoice",
	"381": "Credit note",
	"384": "Corrected invoice",
	"386": "Prepayment invoice",
}

// IsInvoiceTypeCode reports whether code is an accepted document type.
func IsInvoiceTypeCode(code string) bool {
	_, ok := invoiceTypeCodes[code]
	return ok
}

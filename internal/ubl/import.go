package ubl

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/einvoice/internal/codes"
	dec "github.com/rezonia/einvoice/internal/decimal"
	"github.com/rezonia/einvoice/internal/model"
)

// ReconciliationTolerance is the maximum accepted difference between a
// declared total and its recomputed value
var ReconciliationTolerance = decimal.NewFromFloat(0.02)

// Read-side document structure. Tags carry local names only so elements
// match regardless of the cbc:/cac: namespace prefixes on the input.
// Every leaf is a string; the conversion layer parses and reports.
type importInvoice struct {
	XMLName          xml.Name `xml:"Invoice"`
	ID               string   `xml:"ID"`
	IssueDate        string   `xml:"IssueDate"`
	DueDate          string   `xml:"DueDate"`
	InvoiceTypeCode  string   `xml:"InvoiceTypeCode"`
	DocumentCurrency string   `xml:"DocumentCurrencyCode"`
	BuyerReference   string   `xml:"BuyerReference"`

	InvoicePeriod     *importPeriod         `xml:"InvoicePeriod"`
	OrderReference    *importOrderReference `xml:"OrderReference"`
	BillingReference  *importBillingRef     `xml:"BillingReference"`
	ContractReference string                `xml:"ContractDocumentReference>ID"`
	ProjectReference  string                `xml:"ProjectReference>ID"`
	AdditionalRefs    []importDocReference  `xml:"AdditionalDocumentReference"`

	Supplier importPartyWrapper `xml:"AccountingSupplierParty"`
	Customer importPartyWrapper `xml:"AccountingCustomerParty"`

	PaymentMeans *importPaymentMeans `xml:"PaymentMeans"`
	PaymentTerms string              `xml:"PaymentTerms>Note"`

	AllowanceCharges []importAllowanceCharge `xml:"AllowanceCharge"`

	TaxTotal      importTaxTotal      `xml:"TaxTotal"`
	MonetaryTotal importMonetaryTotal `xml:"LegalMonetaryTotal"`
	Lines         []importLine        `xml:"InvoiceLine"`
}

type importPeriod struct {
	StartDate string `xml:"StartDate"`
	EndDate   string `xml:"EndDate"`
}

type importOrderReference struct {
	ID           string `xml:"ID"`
	SalesOrderID string `xml:"SalesOrderID"`
}

type importBillingRef struct {
	ID        string `xml:"InvoiceDocumentReference>ID"`
	IssueDate string `xml:"InvoiceDocumentReference>IssueDate"`
}

type importDocReference struct {
	ID                  string            `xml:"ID"`
	DocumentTypeCode    string            `xml:"DocumentTypeCode"`
	DocumentDescription string            `xml:"DocumentDescription"`
	Embedded            *importBinaryData `xml:"Attachment>EmbeddedDocumentBinaryObject"`
}

type importBinaryData struct {
	Value    string `xml:",chardata"`
	MimeCode string `xml:"mimeCode,attr"`
	Filename string `xml:"filename,attr"`
}

type importPartyWrapper struct {
	Party importParty `xml:"Party"`
}

type importParty struct {
	EndpointID       *importEndpointID `xml:"EndpointID"`
	Name             string            `xml:"PartyName>Name"`
	Street           string            `xml:"PostalAddress>StreetName"`
	City             string            `xml:"PostalAddress>CityName"`
	PostalZone       string            `xml:"PostalAddress>PostalZone"`
	CountryCode      string            `xml:"PostalAddress>Country>IdentificationCode"`
	VATID            string            `xml:"PartyTaxScheme>CompanyID"`
	RegistrationName string            `xml:"PartyLegalEntity>RegistrationName"`
	CompanyID        string            `xml:"PartyLegalEntity>CompanyID"`
	Telephone        string            `xml:"Contact>Telephone"`
	Email            string            `xml:"Contact>ElectronicMail"`
}

type importEndpointID struct {
	Value    string `xml:",chardata"`
	SchemeID string `xml:"schemeID,attr"`
}

type importPaymentMeans struct {
	Code      string `xml:"PaymentMeansCode"`
	PaymentID string `xml:"PaymentID"`
	IBAN      string `xml:"PayeeFinancialAccount>ID"`
	BIC       string `xml:"PayeeFinancialAccount>FinancialInstitutionBranch>ID"`
}

type importAllowanceCharge struct {
	ChargeIndicator string            `xml:"ChargeIndicator"`
	ReasonCode      string            `xml:"AllowanceChargeReasonCode"`
	Reason          string            `xml:"AllowanceChargeReason"`
	Amount          string            `xml:"Amount"`
	TaxCategory     importTaxCategory `xml:"TaxCategory"`
}

type importTaxCategory struct {
	ID                  string `xml:"ID"`
	Percent             string `xml:"Percent"`
	ExemptionReasonCode string `xml:"TaxExemptionReasonCode"`
	ExemptionReason     string `xml:"TaxExemptionReason"`
}

type importTaxTotal struct {
	TaxAmount   string              `xml:"TaxAmount"`
	TaxSubtotal []importTaxSubtotal `xml:"TaxSubtotal"`
}

type importTaxSubtotal struct {
	TaxableAmount string            `xml:"TaxableAmount"`
	TaxAmount     string            `xml:"TaxAmount"`
	TaxCategory   importTaxCategory `xml:"TaxCategory"`
}

type importMonetaryTotal struct {
	LineExtensionAmount string `xml:"LineExtensionAmount"`
	TaxExclusiveAmount  string `xml:"TaxExclusiveAmount"`
	TaxInclusiveAmount  string `xml:"TaxInclusiveAmount"`
	PrepaidAmount       string `xml:"PrepaidAmount"`
	PayableAmount       string `xml:"PayableAmount"`
}

type importLine struct {
	ID               string                  `xml:"ID"`
	Note             string                  `xml:"Note"`
	Quantity         importQuantity          `xml:"InvoicedQuantity"`
	Amount           string                  `xml:"LineExtensionAmount"`
	Period           *importPeriod           `xml:"InvoicePeriod"`
	AllowanceCharges []importAllowanceCharge `xml:"AllowanceCharge"`
	Description      string                  `xml:"Item>Description"`
	Name             string                  `xml:"Item>Name"`
	SellerItemID     string                  `xml:"Item>SellersItemIdentification>ID"`
	StandardItemID   string                  `xml:"Item>StandardItemIdentification>ID"`
	TaxCategory      importTaxCategory       `xml:"Item>ClassifiedTaxCategory"`
	Price            string                  `xml:"Price>PriceAmount"`
}

type importQuantity struct {
	Value    string `xml:",chardata"`
	UnitCode string `xml:"unitCode,attr"`
}

// Import parses a UBL Invoice document into the aggregate.
//
// Strict mode aborts on any missing mandatory field, malformed leaf value
// or out-of-tolerance declared total; no partial aggregate is returned.
// Lenient mode retains defective leaves, records them as anomalies,
// recomputes every total and reports declared/recomputed disagreements
// alongside a fully usable aggregate.
func Import(data []byte, strict bool) (*ImportResult, error) {
	var doc importInvoice
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, model.NewImportError("document", "failed to parse XML", err)
	}

	imp := &importer{strict: strict}
	inv := imp.convert(&doc)
	if imp.failure != nil {
		return nil, imp.failure
	}

	inv.CalculateTotals()

	mismatches := imp.reconcile(inv, &doc)
	if imp.failure != nil {
		return nil, imp.failure
	}
	if strict && len(mismatches) > 0 {
		for _, field := range []string{"taxExclusiveAmount", "taxInclusiveAmount", "payableAmount", "totalVatAmount"} {
			if m, ok := mismatches[field]; ok {
				return nil, model.NewImportError(field, fmt.Sprintf(
					"declared total %s differs from calculated %s by %s",
					m.Declared.StringFixed(2), m.Calculated.StringFixed(2), m.Diff.StringFixed(2)), nil)
			}
		}
	}

	status := StatusOK
	if len(imp.anomalies) > 0 || len(mismatches) > 0 {
		status = StatusOKWithWarnings
	}
	return &ImportResult{
		Invoice:         inv,
		Status:          status,
		TotalMismatches: mismatches,
		Anomalies:       imp.anomalies,
	}, nil
}

// importer accumulates anomalies in lenient mode and captures the first
// hard failure in strict mode
type importer struct {
	strict    bool
	failure   *model.ImportError
	anomalies []string
}

func (imp *importer) fail(field, message string, cause error) {
	if imp.strict {
		if imp.failure == nil {
			imp.failure = model.NewImportError(field, message, cause)
		}
		return
	}
	desc := fmt.Sprintf("%s: %s", field, message)
	if cause != nil {
		desc = fmt.Sprintf("%s (%v)", desc, cause)
	}
	imp.anomalies = append(imp.anomalies, desc)
}

// checkEntity validates a built entity; lenient mode keeps the defective
// value verbatim and records the defect
func (imp *importer) checkEntity(err error) {
	if err == nil {
		return
	}
	if imp.strict {
		if imp.failure == nil {
			imp.failure = model.NewImportError("entity", err.Error(), err)
		}
		return
	}
	imp.anomalies = append(imp.anomalies, err.Error())
}

func (imp *importer) convert(doc *importInvoice) *model.Invoice {
	inv := &model.Invoice{
		Number:   doc.ID,
		TypeCode: doc.InvoiceTypeCode,
		Currency: doc.DocumentCurrency,
	}
	if doc.ID == "" {
		imp.fail("ID", "invoice number is missing", nil)
	}
	if doc.DocumentCurrency == "" {
		imp.fail("DocumentCurrencyCode", "document currency is missing", nil)
	}
	if doc.InvoiceTypeCode == "" {
		inv.TypeCode = "380"
	}

	inv.IssueDate = imp.date("IssueDate", doc.IssueDate, true)
	if doc.DueDate != "" {
		inv.DueDate = imp.date("DueDate", doc.DueDate, false)
	}
	if doc.InvoicePeriod != nil {
		inv.Period = &model.Period{
			Start: imp.date("InvoicePeriod.StartDate", doc.InvoicePeriod.StartDate, false),
			End:   imp.date("InvoicePeriod.EndDate", doc.InvoicePeriod.EndDate, false),
		}
	}

	inv.References.BuyerReference = doc.BuyerReference
	if doc.OrderReference != nil {
		inv.References.PurchaseOrder = doc.OrderReference.ID
		inv.References.SalesOrder = doc.OrderReference.SalesOrderID
	}
	if doc.BillingReference != nil {
		inv.References.PrecedingInvoiceNumber = doc.BillingReference.ID
		if doc.BillingReference.IssueDate != "" {
			inv.References.PrecedingInvoiceDate = imp.date("BillingReference.IssueDate", doc.BillingReference.IssueDate, false)
		}
	}
	inv.References.Contract = doc.ContractReference
	inv.References.Project = doc.ProjectReference

	inv.Seller = imp.party("AccountingSupplierParty", doc.Supplier.Party)
	inv.Buyer = imp.party("AccountingCustomerParty", doc.Customer.Party)

	if doc.PaymentMeans != nil || doc.PaymentTerms != "" {
		payment := model.PaymentInfo{Terms: doc.PaymentTerms}
		if doc.PaymentMeans != nil {
			payment.MeansCode = doc.PaymentMeans.Code
			payment.IBAN = doc.PaymentMeans.IBAN
			payment.BIC = doc.PaymentMeans.BIC
			payment.StructuredReference = doc.PaymentMeans.PaymentID
		}
		imp.checkEntity(payment.Validate())
		inv.Payment = payment
	}

	for _, ac := range doc.AllowanceCharges {
		inv.AllowanceCharges = append(inv.AllowanceCharges, imp.allowanceCharge("AllowanceCharge", ac))
	}

	if len(doc.Lines) == 0 {
		imp.fail("InvoiceLine", "invoice must have at least one line", nil)
	}
	for i, l := range doc.Lines {
		inv.Lines = append(inv.Lines, imp.line(i, l))
	}

	for _, ref := range doc.AdditionalRefs {
		if ref.Embedded == nil {
			continue
		}
		att := imp.attachment(ref)
		inv.Attachments = append(inv.Attachments, att)
	}

	if doc.MonetaryTotal.PrepaidAmount != "" {
		inv.Totals.PrepaidAmount = imp.amount("LegalMonetaryTotal.PrepaidAmount", doc.MonetaryTotal.PrepaidAmount)
	}

	imp.exemptionReasons(inv, doc)

	return inv
}

func (imp *importer) party(field string, p importParty) model.Party {
	party := model.Party{
		Name: p.Name,
		Address: model.Address{
			Street:      p.Street,
			City:        p.City,
			PostalCode:  p.PostalZone,
			CountryCode: p.CountryCode,
		},
		VATID:     p.VATID,
		CompanyID: p.CompanyID,
		Email:     p.Email,
		Phone:     p.Telephone,
	}
	if party.Name == "" {
		party.Name = p.RegistrationName
	}
	if p.EndpointID != nil {
		party.ElectronicAddress = model.ElectronicAddress{
			SchemeID:   p.EndpointID.SchemeID,
			Identifier: p.EndpointID.Value,
		}
	}
	if party.Name == "" {
		imp.fail(field, "party name is missing", nil)
		return party
	}
	imp.checkEntity(party.Validate())
	return party
}

func (imp *importer) allowanceCharge(field string, ac importAllowanceCharge) model.AllowanceCharge {
	result := model.AllowanceCharge{
		Charge:      strings.EqualFold(strings.TrimSpace(ac.ChargeIndicator), "true"),
		Amount:      imp.amount(field+".Amount", ac.Amount),
		Reason:      ac.Reason,
		ReasonCode:  ac.ReasonCode,
		VATCategory: codes.VATCategory(ac.TaxCategory.ID),
		VATRate:     imp.amount(field+".TaxCategory.Percent", ac.TaxCategory.Percent),
	}
	imp.checkEntity(result.Validate())
	return result
}

func (imp *importer) line(i int, l importLine) model.InvoiceLine {
	field := fmt.Sprintf("InvoiceLine[%d]", i)
	line := model.InvoiceLine{
		ID:             l.ID,
		Name:           l.Name,
		Description:    l.Description,
		Note:           l.Note,
		Quantity:       imp.amount(field+".InvoicedQuantity", l.Quantity.Value),
		UnitCode:       l.Quantity.UnitCode,
		UnitPrice:      imp.amount(field+".Price.PriceAmount", l.Price),
		VATCategory:    codes.VATCategory(l.TaxCategory.ID),
		VATRate:        imp.amount(field+".ClassifiedTaxCategory.Percent", l.TaxCategory.Percent),
		SellerItemID:   l.SellerItemID,
		StandardItemID: l.StandardItemID,
	}
	if l.Period != nil {
		line.Period = &model.Period{
			Start: imp.date(field+".InvoicePeriod.StartDate", l.Period.StartDate, false),
			End:   imp.date(field+".InvoicePeriod.EndDate", l.Period.EndDate, false),
		}
	}
	for _, ac := range l.AllowanceCharges {
		line.AllowanceCharges = append(line.AllowanceCharges, imp.allowanceCharge(field+".AllowanceCharge", ac))
	}
	imp.checkEntity(line.Validate())
	line.Calculate()
	return line
}

func (imp *importer) attachment(ref importDocReference) model.Attachment {
	att := model.Attachment{
		Filename:    ref.Embedded.Filename,
		MimeType:    ref.Embedded.MimeCode,
		Description: ref.DocumentDescription,
		TypeCode:    ref.DocumentTypeCode,
	}
	if att.Filename == "" {
		att.Filename = ref.ID
	}
	content, err := base64.StdEncoding.DecodeString(strings.TrimSpace(ref.Embedded.Value))
	if err != nil {
		imp.fail("AdditionalDocumentReference."+ref.ID, "embedded document is not valid base64", err)
		att.Content = []byte(ref.Embedded.Value)
	} else {
		att.Content = content
	}
	imp.checkEntity(att.Validate())
	return att
}

// exemptionReasons records declared exemption reasons so they survive
// the recompute that rebuilds the buckets
func (imp *importer) exemptionReasons(inv *model.Invoice, doc *importInvoice) {
	for _, sub := range doc.TaxTotal.TaxSubtotal {
		reasonCode := sub.TaxCategory.ExemptionReasonCode
		reasonText := sub.TaxCategory.ExemptionReason
		if reasonCode == "" && reasonText == "" {
			continue
		}
		category := codes.VATCategory(sub.TaxCategory.ID)
		if reasonCode != "" && !codes.IsExemptionReasonCode(reasonCode) {
			imp.fail("TaxSubtotal.TaxExemptionReasonCode", fmt.Sprintf("unknown exemption reason code %q", reasonCode), nil)
			reasonCode = ""
			if reasonText == "" {
				continue
			}
		}
		if err := inv.SetVATExemptionReason(category, reasonCode, reasonText); err != nil {
			imp.checkEntity(err)
		}
	}
}

// reconcile compares each declared total against the recomputed value
func (imp *importer) reconcile(inv *model.Invoice, doc *importInvoice) map[string]TotalMismatch {
	mismatches := make(map[string]TotalMismatch)
	compare := func(field, declared string, calculated decimal.Decimal) {
		if declared == "" {
			if imp.strict {
				imp.fail("LegalMonetaryTotal."+field, "declared total is missing", nil)
			}
			return
		}
		d, err := dec.FromString(strings.TrimSpace(declared))
		if err != nil {
			imp.fail("LegalMonetaryTotal."+field, fmt.Sprintf("unparseable amount %q", declared), err)
			return
		}
		diff := dec.AbsDiff(d, calculated)
		if diff.GreaterThan(ReconciliationTolerance) {
			mismatches[field] = TotalMismatch{
				Declared:   d,
				Calculated: calculated,
				Diff:       diff,
			}
		}
	}

	compare("taxExclusiveAmount", doc.MonetaryTotal.TaxExclusiveAmount, inv.Totals.TaxExclusiveAmount)
	compare("taxInclusiveAmount", doc.MonetaryTotal.TaxInclusiveAmount, inv.Totals.TaxInclusiveAmount)
	compare("payableAmount", doc.MonetaryTotal.PayableAmount, inv.Totals.PayableAmount)
	compare("totalVatAmount", doc.TaxTotal.TaxAmount, inv.Totals.TotalVATAmount)

	if len(mismatches) == 0 {
		return nil
	}
	return mismatches
}

// amount parses a decimal leaf; defective values fall back to zero with
// the verbatim text recorded
func (imp *importer) amount(field, s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return dec.Zero
	}
	d, err := dec.FromString(s)
	if err != nil {
		imp.fail(field, fmt.Sprintf("unparseable amount %q", s), err)
		return dec.Zero
	}
	return d
}

// date parses a date leaf, accepting the formats seen in the wild
func (imp *importer) date(field, s string, required bool) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		if required {
			imp.fail(field, "date is missing", nil)
		}
		return time.Time{}
	}
	for _, format := range []string{dateFormat, "2006-01-02T15:04:05", time.RFC3339, "02/01/2006"} {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	imp.fail(field, fmt.Sprintf("unparseable date %q", s), nil)
	return time.Time{}
}

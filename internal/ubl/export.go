// Package ubl converts the invoice aggregate to and from the UBL 2.1
// Invoice document, populated per the EN16931 semantic mapping.
//
// Export is deterministic: identical aggregate state yields byte-identical
// output. Import runs either strict (any structural defect aborts) or
// lenient (defective leaves are retained and reported, declared totals are
// reconciled against a recompute).
package ubl

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/einvoice/internal/decimal"
	"github.com/rezonia/einvoice/internal/model"
)

const (
	xmlnsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	xmlnsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	xmlnsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	customizationID = "urn:cen.eu:en16931:2017#compliant#urn:fdc:peppol.eu:2017:poacc:billing:3.0"
	profileID       = "urn:fdc:peppol.eu:2017:poacc:billing:01:1.0"

	dateFormat = "2006-01-02"
)

// Export serializes the aggregate as a UBL 2.1 Invoice document. It fails
// before producing any output when the minimally required fields (seller,
// buyer, currency, at least one line) are absent.
func Export(inv *model.Invoice) ([]byte, error) {
	if inv.Currency == "" {
		return nil, model.NewImportError("Currency", "cannot export without a document currency", nil)
	}
	if inv.Seller.Name == "" {
		return nil, model.NewImportError("Seller", "cannot export without a seller party", nil)
	}
	if inv.Buyer.Name == "" {
		return nil, model.NewImportError("Buyer", "cannot export without a buyer party", nil)
	}
	if len(inv.Lines) == 0 {
		return nil, model.NewImportError("Lines", "cannot export without at least one invoice line", nil)
	}

	doc := &xmlInvoice{
		Xmlns:            xmlnsInvoice,
		Cac:              xmlnsCac,
		Cbc:              xmlnsCbc,
		CustomizationID:  customizationID,
		ProfileID:        profileID,
		ID:               inv.Number,
		IssueDate:        inv.IssueDate.Format(dateFormat),
		InvoiceTypeCode:  inv.TypeCode,
		DocumentCurrency: inv.Currency,
		BuyerReference:   inv.References.BuyerReference,
	}
	if !inv.DueDate.IsZero() {
		doc.DueDate = inv.DueDate.Format(dateFormat)
	}
	if inv.Period != nil {
		doc.InvoicePeriod = exportPeriod(inv.Period)
	}
	if inv.References.PurchaseOrder != "" || inv.References.SalesOrder != "" {
		doc.OrderReference = &xmlOrderReference{
			ID:           inv.References.PurchaseOrder,
			SalesOrderID: inv.References.SalesOrder,
		}
	}
	if inv.References.PrecedingInvoiceNumber != "" {
		ref := xmlDatedReference{ID: inv.References.PrecedingInvoiceNumber}
		if !inv.References.PrecedingInvoiceDate.IsZero() {
			ref.IssueDate = inv.References.PrecedingInvoiceDate.Format(dateFormat)
		}
		doc.BillingReference = &xmlBillingReference{InvoiceDocumentReference: ref}
	}
	if inv.References.Contract != "" {
		doc.ContractReference = &xmlDocReference{ID: inv.References.Contract}
	}
	if inv.References.Project != "" {
		doc.ProjectReference = &xmlProjectReference{ID: inv.References.Project}
	}

	for _, a := range inv.Attachments {
		doc.AdditionalReferences = append(doc.AdditionalReferences, xmlDocumentReference{
			ID:                  a.Filename,
			DocumentTypeCode:    a.TypeCode,
			DocumentDescription: a.Description,
			Attachment: &xmlAttachment{
				EmbeddedDocumentBinaryObject: xmlEmbeddedDocumentBinaryObject{
					Value:    base64.StdEncoding.EncodeToString(a.Content),
					MimeCode: a.MimeType,
					Filename: a.Filename,
				},
			},
		})
	}

	doc.SupplierParty = xmlSupplierParty{Party: exportParty(inv.Seller)}
	doc.CustomerParty = xmlCustomerParty{Party: exportParty(inv.Buyer)}

	if !inv.Payment.IsZero() {
		doc.PaymentMeans = exportPaymentMeans(inv.Payment)
	}
	if inv.Payment.Terms != "" {
		doc.PaymentTerms = &xmlPaymentTerms{Note: inv.Payment.Terms}
	}

	for _, ac := range inv.AllowanceCharges {
		doc.AllowanceCharges = append(doc.AllowanceCharges, exportAllowanceCharge(ac, inv.Currency))
	}

	doc.TaxTotal = xmlTaxTotal{
		TaxAmount: amount(inv.Totals.TotalVATAmount, inv.Currency),
	}
	for _, b := range inv.VATBreakdown {
		doc.TaxTotal.TaxSubtotal = append(doc.TaxTotal.TaxSubtotal, xmlTaxSubtotal{
			TaxableAmount: amount(b.TaxableAmount, inv.Currency),
			TaxAmount:     amount(b.TaxAmount, inv.Currency),
			TaxCategory: xmlTaxCategory{
				ID:                     string(b.Category),
				Percent:                b.Rate.String(),
				TaxExemptionReasonCode: b.ExemptionReasonCode,
				TaxExemptionReason:     b.ExemptionReason,
				TaxScheme:              xmlTaxScheme{ID: "VAT"},
			},
		})
	}

	doc.LegalMonetaryTotal = exportMonetaryTotal(inv)

	for _, l := range inv.Lines {
		doc.InvoiceLines = append(doc.InvoiceLines, exportLine(l, inv.Currency))
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("xml marshal failed: %w", err)
	}
	return []byte(xml.Header + string(output)), nil
}

func exportPeriod(p *model.Period) *xmlPeriod {
	return &xmlPeriod{
		StartDate: p.Start.Format(dateFormat),
		EndDate:   p.End.Format(dateFormat),
	}
}

func exportParty(p model.Party) xmlParty {
	party := xmlParty{
		PartyName: p.Name,
		PostalAddress: xmlPostalAddress{
			StreetName: p.Address.Street,
			CityName:   p.Address.City,
			PostalZone: p.Address.PostalCode,
			Country:    xmlCountry{IdentificationCode: p.Address.CountryCode},
		},
		PartyLegalEntity: xmlPartyLegalEntity{
			RegistrationName: p.Name,
			CompanyID:        p.CompanyID,
		},
	}
	if !p.ElectronicAddress.IsZero() {
		party.EndpointID = &xmlEndpointID{
			Value:    p.ElectronicAddress.Identifier,
			SchemeID: p.ElectronicAddress.SchemeID,
		}
	}
	if p.VATID != "" {
		party.PartyTaxScheme = &xmlPartyTaxScheme{
			CompanyID: p.VATID,
			TaxScheme: xmlTaxScheme{ID: "VAT"},
		}
	}
	if p.Phone != "" || p.Email != "" {
		party.Contact = &xmlContact{
			Telephone:      p.Phone,
			ElectronicMail: p.Email,
		}
	}
	return party
}

func exportPaymentMeans(p model.PaymentInfo) *xmlPaymentMeans {
	means := &xmlPaymentMeans{
		PaymentMeansCode: p.MeansCode,
		PaymentID:        p.StructuredReference,
	}
	if p.IBAN != "" {
		account := &xmlFinancialAccount{ID: p.IBAN}
		if p.BIC != "" {
			account.FinancialInstitutionBranch = &xmlFinancialInstitutionBranch{ID: p.BIC}
		}
		means.PayeeFinancialAccount = account
	}
	return means
}

func exportAllowanceCharge(ac model.AllowanceCharge, currency string) xmlAllowanceCharge {
	indicator := "false"
	if ac.Charge {
		indicator = "true"
	}
	return xmlAllowanceCharge{
		ChargeIndicator:           indicator,
		AllowanceChargeReasonCode: ac.ReasonCode,
		AllowanceChargeReason:     ac.Reason,
		Amount:                    amount(ac.Amount, currency),
		TaxCategory: xmlTaxCategory{
			ID:        string(ac.VATCategory),
			Percent:   ac.VATRate.String(),
			TaxScheme: xmlTaxScheme{ID: "VAT"},
		},
	}
}

func exportMonetaryTotal(inv *model.Invoice) xmlMonetaryTotal {
	total := xmlMonetaryTotal{
		LineExtensionAmount: amount(inv.LineExtensionTotal(), inv.Currency),
		TaxExclusiveAmount:  amount(inv.Totals.TaxExclusiveAmount, inv.Currency),
		TaxInclusiveAmount:  amount(inv.Totals.TaxInclusiveAmount, inv.Currency),
		PayableAmount:       amount(inv.Totals.PayableAmount, inv.Currency),
	}
	if allowances := inv.AllowanceTotal(); allowances.IsPositive() {
		a := amount(allowances, inv.Currency)
		total.AllowanceTotalAmount = &a
	}
	if charges := inv.ChargeTotal(); charges.IsPositive() {
		a := amount(charges, inv.Currency)
		total.ChargeTotalAmount = &a
	}
	if inv.Totals.PrepaidAmount.IsPositive() {
		a := amount(inv.Totals.PrepaidAmount, inv.Currency)
		total.PrepaidAmount = &a
	}
	return total
}

func exportLine(l model.InvoiceLine, currency string) xmlInvoiceLine {
	line := xmlInvoiceLine{
		ID:   l.ID,
		Note: l.Note,
		InvoicedQuantity: xmlQuantity{
			Value:    l.Quantity.String(),
			UnitCode: l.UnitCode,
		},
		LineExtensionAmount: amount(l.Amount, currency),
		Item: xmlItem{
			Description: l.Description,
			Name:        l.Name,
			ClassifiedTaxCategory: xmlTaxCategory{
				ID:        string(l.VATCategory),
				Percent:   l.VATRate.String(),
				TaxScheme: xmlTaxScheme{ID: "VAT"},
			},
		},
		Price: xmlPrice{PriceAmount: amount(l.UnitPrice, currency)},
	}
	if l.Period != nil {
		line.InvoicePeriod = exportPeriod(l.Period)
	}
	for _, ac := range l.AllowanceCharges {
		line.AllowanceCharges = append(line.AllowanceCharges, exportAllowanceCharge(ac, currency))
	}
	if l.SellerItemID != "" {
		line.Item.SellersItemID = &xmlItemID{ID: l.SellerItemID}
	}
	if l.StandardItemID != "" {
		line.Item.StandardItemID = &xmlItemID{ID: l.StandardItemID}
	}
	return line
}

func amount(d decimal.Decimal, currency string) xmlAmount {
	return xmlAmount{Value: dec.String2(d), CurrencyID: currency}
}

package ubl

import "encoding/xml"

// Export document structure. Field order follows the UBL 2.1 Invoice
// element sequence; downstream schema validation is order-sensitive.
// Tags carry the cbc:/cac: prefixes literally, with the namespaces
// declared on the root.
type xmlInvoice struct {
	XMLName          xml.Name `xml:"Invoice"`
	Xmlns            string   `xml:"xmlns,attr"`
	Cac              string   `xml:"xmlns:cac,attr"`
	Cbc              string   `xml:"xmlns:cbc,attr"`
	CustomizationID  string   `xml:"cbc:CustomizationID"`
	ProfileID        string   `xml:"cbc:ProfileID"`
	ID               string   `xml:"cbc:ID"`
	IssueDate        string   `xml:"cbc:IssueDate"`
	DueDate          string   `xml:"cbc:DueDate,omitempty"`
	InvoiceTypeCode  string   `xml:"cbc:InvoiceTypeCode"`
	DocumentCurrency string   `xml:"cbc:DocumentCurrencyCode"`
	BuyerReference   string   `xml:"cbc:BuyerReference,omitempty"`

	InvoicePeriod        *xmlPeriod             `xml:"cac:InvoicePeriod,omitempty"`
	OrderReference       *xmlOrderReference     `xml:"cac:OrderReference,omitempty"`
	BillingReference     *xmlBillingReference   `xml:"cac:BillingReference,omitempty"`
	ContractReference    *xmlDocReference       `xml:"cac:ContractDocumentReference,omitempty"`
	ProjectReference     *xmlProjectReference   `xml:"cac:ProjectReference,omitempty"`
	AdditionalReferences []xmlDocumentReference `xml:"cac:AdditionalDocumentReference"`

	SupplierParty xmlSupplierParty `xml:"cac:AccountingSupplierParty"`
	CustomerParty xmlCustomerParty `xml:"cac:AccountingCustomerParty"`

	PaymentMeans *xmlPaymentMeans `xml:"cac:PaymentMeans,omitempty"`
	PaymentTerms *xmlPaymentTerms `xml:"cac:PaymentTerms,omitempty"`

	AllowanceCharges []xmlAllowanceCharge `xml:"cac:AllowanceCharge"`

	TaxTotal           xmlTaxTotal      `xml:"cac:TaxTotal"`
	LegalMonetaryTotal xmlMonetaryTotal `xml:"cac:LegalMonetaryTotal"`
	InvoiceLines       []xmlInvoiceLine `xml:"cac:InvoiceLine"`
}

type xmlPeriod struct {
	StartDate string `xml:"cbc:StartDate"`
	EndDate   string `xml:"cbc:EndDate"`
}

type xmlOrderReference struct {
	ID           string `xml:"cbc:ID"`
	SalesOrderID string `xml:"cbc:SalesOrderID,omitempty"`
}

type xmlBillingReference struct {
	InvoiceDocumentReference xmlDatedReference `xml:"cac:InvoiceDocumentReference"`
}

type xmlDatedReference struct {
	ID        string `xml:"cbc:ID"`
	IssueDate string `xml:"cbc:IssueDate,omitempty"`
}

type xmlDocReference struct {
	ID string `xml:"cbc:ID"`
}

type xmlProjectReference struct {
	ID string `xml:"cbc:ID"`
}

type xmlDocumentReference struct {
	ID                  string         `xml:"cbc:ID"`
	DocumentTypeCode    string         `xml:"cbc:DocumentTypeCode,omitempty"`
	DocumentDescription string         `xml:"cbc:DocumentDescription,omitempty"`
	Attachment          *xmlAttachment `xml:"cac:Attachment,omitempty"`
}

type xmlAttachment struct {
	EmbeddedDocumentBinaryObject xmlEmbeddedDocumentBinaryObject `xml:"cbc:EmbeddedDocumentBinaryObject"`
}

type xmlEmbeddedDocumentBinaryObject struct {
	Value    string `xml:",chardata"`
	MimeCode string `xml:"mimeCode,attr"`
	Filename string `xml:"filename,attr"`
}

type xmlSupplierParty struct {
	Party xmlParty `xml:"cac:Party"`
}

type xmlCustomerParty struct {
	Party xmlParty `xml:"cac:Party"`
}

type xmlParty struct {
	EndpointID       *xmlEndpointID      `xml:"cbc:EndpointID,omitempty"`
	PartyName        string              `xml:"cac:PartyName>cbc:Name"`
	PostalAddress    xmlPostalAddress    `xml:"cac:PostalAddress"`
	PartyTaxScheme   *xmlPartyTaxScheme  `xml:"cac:PartyTaxScheme,omitempty"`
	PartyLegalEntity xmlPartyLegalEntity `xml:"cac:PartyLegalEntity"`
	Contact          *xmlContact         `xml:"cac:Contact,omitempty"`
}

type xmlEndpointID struct {
	Value    string `xml:",chardata"`
	SchemeID string `xml:"schemeID,attr"`
}

type xmlPostalAddress struct {
	StreetName string     `xml:"cbc:StreetName,omitempty"`
	CityName   string     `xml:"cbc:CityName,omitempty"`
	PostalZone string     `xml:"cbc:PostalZone,omitempty"`
	Country    xmlCountry `xml:"cac:Country"`
}

type xmlCountry struct {
	IdentificationCode string `xml:"cbc:IdentificationCode"`
}

type xmlPartyTaxScheme struct {
	CompanyID string       `xml:"cbc:CompanyID"`
	TaxScheme xmlTaxScheme `xml:"cac:TaxScheme"`
}

type xmlTaxScheme struct {
	ID string `xml:"cbc:ID"`
}

type xmlPartyLegalEntity struct {
	RegistrationName string `xml:"cbc:RegistrationName"`
	CompanyID        string `xml:"cbc:CompanyID,omitempty"`
}

type xmlContact struct {
	Telephone      string `xml:"cbc:Telephone,omitempty"`
	ElectronicMail string `xml:"cbc:ElectronicMail,omitempty"`
}

type xmlPaymentMeans struct {
	PaymentMeansCode      string               `xml:"cbc:PaymentMeansCode"`
	PaymentID             string               `xml:"cbc:PaymentID,omitempty"`
	PayeeFinancialAccount *xmlFinancialAccount `xml:"cac:PayeeFinancialAccount,omitempty"`
}

type xmlFinancialAccount struct {
	ID                         string                         `xml:"cbc:ID"`
	FinancialInstitutionBranch *xmlFinancialInstitutionBranch `xml:"cac:FinancialInstitutionBranch,omitempty"`
}

type xmlFinancialInstitutionBranch struct {
	ID string `xml:"cbc:ID"`
}

type xmlPaymentTerms struct {
	Note string `xml:"cbc:Note"`
}

type xmlAllowanceCharge struct {
	ChargeIndicator           string         `xml:"cbc:ChargeIndicator"`
	AllowanceChargeReasonCode string         `xml:"cbc:AllowanceChargeReasonCode,omitempty"`
	AllowanceChargeReason     string         `xml:"cbc:AllowanceChargeReason"`
	Amount                    xmlAmount      `xml:"cbc:Amount"`
	TaxCategory               xmlTaxCategory `xml:"cac:TaxCategory"`
}

type xmlTaxTotal struct {
	TaxAmount   xmlAmount        `xml:"cbc:TaxAmount"`
	TaxSubtotal []xmlTaxSubtotal `xml:"cac:TaxSubtotal"`
}

type xmlTaxSubtotal struct {
	TaxableAmount xmlAmount      `xml:"cbc:TaxableAmount"`
	TaxAmount     xmlAmount      `xml:"cbc:TaxAmount"`
	TaxCategory   xmlTaxCategory `xml:"cac:TaxCategory"`
}

type xmlTaxCategory struct {
	ID                     string       `xml:"cbc:ID"`
	Percent                string       `xml:"cbc:Percent"`
	TaxExemptionReasonCode string       `xml:"cbc:TaxExemptionReasonCode,omitempty"`
	TaxExemptionReason     string       `xml:"cbc:TaxExemptionReason,omitempty"`
	TaxScheme              xmlTaxScheme `xml:"cac:TaxScheme"`
}

type xmlMonetaryTotal struct {
	LineExtensionAmount  xmlAmount  `xml:"cbc:LineExtensionAmount"`
	TaxExclusiveAmount   xmlAmount  `xml:"cbc:TaxExclusiveAmount"`
	TaxInclusiveAmount   xmlAmount  `xml:"cbc:TaxInclusiveAmount"`
	AllowanceTotalAmount *xmlAmount `xml:"cbc:AllowanceTotalAmount,omitempty"`
	ChargeTotalAmount    *xmlAmount `xml:"cbc:ChargeTotalAmount,omitempty"`
	PrepaidAmount        *xmlAmount `xml:"cbc:PrepaidAmount,omitempty"`
	PayableAmount        xmlAmount  `xml:"cbc:PayableAmount"`
}

type xmlAmount struct {
	Value      string `xml:",chardata"`
	CurrencyID string `xml:"currencyID,attr"`
}

type xmlQuantity struct {
	Value    string `xml:",chardata"`
	UnitCode string `xml:"unitCode,attr"`
}

type xmlInvoiceLine struct {
	ID                  string               `xml:"cbc:ID"`
	Note                string               `xml:"cbc:Note,omitempty"`
	InvoicedQuantity    xmlQuantity          `xml:"cbc:InvoicedQuantity"`
	LineExtensionAmount xmlAmount            `xml:"cbc:LineExtensionAmount"`
	InvoicePeriod       *xmlPeriod           `xml:"cac:InvoicePeriod,omitempty"`
	AllowanceCharges    []xmlAllowanceCharge `xml:"cac:AllowanceCharge"`
	Item                xmlItem              `xml:"cac:Item"`
	Price               xmlPrice             `xml:"cac:Price"`
}

type xmlItem struct {
	Description           string         `xml:"cbc:Description,omitempty"`
	Name                  string         `xml:"cbc:Name"`
	SellersItemID         *xmlItemID     `xml:"cac:SellersItemIdentification,omitempty"`
	StandardItemID        *xmlItemID     `xml:"cac:StandardItemIdentification,omitempty"`
	ClassifiedTaxCategory xmlTaxCategory `xml:"cac:ClassifiedTaxCategory"`
}

type xmlItemID struct {
	ID string `xml:"cbc:ID"`
}

type xmlPrice struct {
	PriceAmount xmlAmount `xml:"cbc:PriceAmount"`
}

package model

import (
	"regexp"
	"strings"

	"github.com/rezonia/einvoice/internal/checksum"
	"github.com/rezonia/einvoice/internal/codes"
)

var ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Za-z0-9]{10,30}$`)

// PaymentInfo carries how an invoice should be paid
type PaymentInfo struct {
	MeansCode           string // UNCL4461
	IBAN                string // optional
	BIC                 string // optional
	StructuredReference string // optional, Belgian OGM with check digits
	Terms               string // optional free text
}

// NewPaymentInfo creates validated payment information
func NewPaymentInfo(meansCode string) (PaymentInfo, error) {
	p := PaymentInfo{MeansCode: meansCode}
	if err := p.Validate(); err != nil {
		return PaymentInfo{}, err
	}
	return p, nil
}

// Validate checks the means code, IBAN shape and the structured
// reference check digits
func (p PaymentInfo) Validate() error {
	if p.MeansCode != "" && !codes.IsPaymentMeansCode(p.MeansCode) {
		return NewConstructionError("PaymentInfo", "MeansCode", p.MeansCode, "uncl4461", "unknown payment means code")
	}
	if p.IBAN != "" {
		cleaned := strings.ReplaceAll(p.IBAN, " ", "")
		if !ibanPattern.MatchString(cleaned) {
			return NewConstructionError("PaymentInfo", "IBAN", p.IBAN, "iban-format", "malformed IBAN")
		}
	}
	if p.StructuredReference != "" {
		if err := checksum.ValidateStructuredReference(p.StructuredReference); err != nil {
			return NewConstructionError("PaymentInfo", "StructuredReference", p.StructuredReference, "mod97", err.Error())
		}
	}
	return nil
}

// IsZero reports whether no payment information was provided
func (p PaymentInfo) IsZero() bool {
	return p == PaymentInfo{}
}

// Attachment is an embedded supporting document
type Attachment struct {
	Filename    string
	Content     []byte
	MimeType    string
	Description string
	TypeCode    string // optional UNCL1001 document type
}

// NewAttachment creates a validated attachment
func NewAttachment(filename string, content []byte, mimeType, description string) (Attachment, error) {
	a := Attachment{
		Filename:    filename,
		Content:     content,
		MimeType:    mimeType,
		Description: description,
	}
	if err := a.Validate(); err != nil {
		return Attachment{}, err
	}
	return a, nil
}

// Validate checks required attachment metadata
func (a Attachment) Validate() error {
	if strings.TrimSpace(a.Filename) == "" {
		return NewConstructionError("Attachment", "Filename", nil, "required", "filename is required")
	}
	if len(a.Content) == 0 {
		return NewConstructionError("Attachment", "Content", nil, "required", "content is required")
	}
	if strings.TrimSpace(a.MimeType) == "" {
		return NewConstructionError("Attachment", "MimeType", nil, "required", "mime type is required")
	}
	return nil
}

// Size returns the attachment content size in bytes
func (a Attachment) Size() int {
	return len(a.Content)
}

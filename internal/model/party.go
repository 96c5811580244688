package model

import (
	"strings"

	"github.com/rezonia/einvoice/internal/checksum"
	"github.com/rezonia/einvoice/internal/codes"
)

// Address is a postal address
type Address struct {
	Street      string
	City        string
	PostalCode  string
	CountryCode string
}

// NewAddress creates a validated address
func NewAddress(street, city, postalCode, countryCode string) (Address, error) {
	a := Address{
		Street:      street,
		City:        city,
		PostalCode:  postalCode,
		CountryCode: countryCode,
	}
	if err := a.Validate(); err != nil {
		return Address{}, err
	}
	return a, nil
}

// Validate checks required fields and the country code format
func (a Address) Validate() error {
	if strings.TrimSpace(a.Street) == "" {
		return NewConstructionError("Address", "Street", nil, "required", "street is required")
	}
	if strings.TrimSpace(a.City) == "" {
		return NewConstructionError("Address", "City", nil, "required", "city is required")
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		return NewConstructionError("Address", "PostalCode", nil, "required", "postal code is required")
	}
	if err := checksum.ValidateCountryCode(a.CountryCode); err != nil {
		return NewConstructionError("Address", "CountryCode", a.CountryCode, "iso3166", err.Error())
	}
	return nil
}

// ElectronicAddress is an electronic routing address: a scheme from the
// EAS registry plus an identifier within that scheme
type ElectronicAddress struct {
	SchemeID   string
	Identifier string
}

// NewElectronicAddress creates a validated electronic address
func NewElectronicAddress(schemeID, identifier string) (ElectronicAddress, error) {
	e := ElectronicAddress{SchemeID: schemeID, Identifier: identifier}
	if err := e.Validate(); err != nil {
		return ElectronicAddress{}, err
	}
	return e, nil
}

// Validate checks the scheme against the EAS registry
func (e ElectronicAddress) Validate() error {
	if !codes.IsEASScheme(e.SchemeID) {
		return NewConstructionError("ElectronicAddress", "SchemeID", e.SchemeID, "eas", "unknown electronic address scheme")
	}
	if strings.TrimSpace(e.Identifier) == "" {
		return NewConstructionError("ElectronicAddress", "Identifier", nil, "required", "identifier is required")
	}
	return nil
}

// IsZero reports whether the electronic address is unset
func (e ElectronicAddress) IsZero() bool {
	return e.SchemeID == "" && e.Identifier == ""
}

// Party is a trading party (seller or buyer)
type Party struct {
	Name              string
	Address           Address
	VATID             string // optional, EU format when present
	CompanyID         string // optional registration number
	Email             string // optional
	ElectronicAddress ElectronicAddress
	Phone             string // optional
}

// NewParty creates a validated party
func NewParty(name string, address Address) (Party, error) {
	p := Party{Name: name, Address: address}
	if err := p.Validate(); err != nil {
		return Party{}, err
	}
	return p, nil
}

// Validate checks the party name, address, and optional identifier formats
func (p Party) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewConstructionError("Party", "Name", nil, "required", "party name is required")
	}
	if err := p.Address.Validate(); err != nil {
		return err
	}
	if p.VATID != "" {
		if err := checksum.ValidateVATID(p.VATID); err != nil {
			return NewConstructionError("Party", "VATID", p.VATID, "vat-format", err.Error())
		}
	}
	if p.Email != "" {
		if err := checksum.ValidateEmail(p.Email); err != nil {
			return NewConstructionError("Party", "Email", p.Email, "email-format", err.Error())
		}
	}
	if !p.ElectronicAddress.IsZero() {
		if err := p.ElectronicAddress.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Package checksum implements the stateless field-level checks used across
// the invoice model: EU VAT identifier patterns, the Belgian modulo-97 check
// digit scheme, structured payment references, and simple pattern checks for
// email addresses and country codes.
package checksum

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	emailPattern       = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)
	genericVATPattern  = regexp.MustCompile(`^[A-Z]{2}[0-9A-Za-z]{2,12}$`)
	digitsOnly         = regexp.MustCompile(`[^0-9]`)
)

// vatPatterns holds per-country VAT number patterns (digits after the
// two-letter prefix). Countries not listed fall back to the generic
// EU pattern.
var vatPatterns = map[string]*regexp.Regexp{
	"BE": regexp.MustCompile(`^BE[01][0-9]{9}$`),
	"NL": regexp.MustCompile(`^NL[0-9]{9}B[0-9]{2}$`),
	"FR": regexp.MustCompile(`^FR[0-9A-Z]{2}[0-9]{9}$`),
	"DE": regexp.MustCompile(`^DE[0-9]{9}$`),
	"LU": regexp.MustCompile(`^LU[0-9]{8}$`),
	"ES": regexp.MustCompile(`^ES[0-9A-Z][0-9]{7}[0-9A-Z]$`),
	"IT": regexp.MustCompile(`^IT[0-9]{11}$`),
	"IE": regexp.MustCompile(`^IE[0-9][0-9A-Z+*][0-9]{5}[A-Z]{1,2}$`),
	"PT": regexp.MustCompile(`^PT[0-9]{9}$`),
	"AT": regexp.MustCompile(`^ATU[0-9]{8}$`),
	"DK": regexp.MustCompile(`^DK[0-9]{8}$`),
	"SE": regexp.MustCompile(`^SE[0-9]{12}$`),
	"FI": regexp.MustCompile(`^FI[0-9]{8}$`),
	"PL": regexp.MustCompile(`^PL[0-9]{10}$`),
	"EL": regexp.MustCompile(`^EL[0-9]{9}$`),
}

// Mod97CheckDigits returns the check digits for a numeric base under the
// Belgian modulo-97 scheme: 97 - (base mod 97), substituting 97 when the
// remainder is zero.
func Mod97CheckDigits(base int64) int64 {
	c := 97 - base%97
	if base%97 == 0 {
		c = 97
	}
	return c
}

// ValidateVATID checks an EU VAT identifier: two-letter country prefix
// followed by the country-specific number pattern. Belgian identifiers
// additionally carry modulo-97 check digits in their last two positions.
func ValidateVATID(vatID string) error {
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.ReplaceAll(vatID, " ", ""), ".", ""))
	if len(cleaned) < 4 {
		return fmt.Errorf("VAT identifier %q too short", vatID)
	}

	prefix := cleaned[:2]
	pattern, ok := vatPatterns[prefix]
	if !ok {
		if !genericVATPattern.MatchString(cleaned) {
			return fmt.Errorf("VAT identifier %q does not match EU format", vatID)
		}
		return nil
	}
	if !pattern.MatchString(cleaned) {
		return fmt.Errorf("VAT identifier %q does not match %s format", vatID, prefix)
	}

	if prefix == "BE" {
		return validateBelgianVAT(cleaned)
	}
	return nil
}

// validateBelgianVAT verifies the modulo-97 check digits of a Belgian
// enterprise number (BE + 10 digits, last two are the check).
func validateBelgianVAT(cleaned string) error {
	digits := cleaned[2:]
	base, err := strconv.ParseInt(digits[:8], 10, 64)
	if err != nil {
		return fmt.Errorf("VAT identifier %q: %w", cleaned, err)
	}
	check, err := strconv.ParseInt(digits[8:], 10, 64)
	if err != nil {
		return fmt.Errorf("VAT identifier %q: %w", cleaned, err)
	}
	if check != Mod97CheckDigits(base) {
		return fmt.Errorf("VAT identifier %q fails modulo-97 check", cleaned)
	}
	return nil
}

// ValidateStructuredReference verifies a Belgian structured payment
// reference (OGM/VCS): 12 digits, the last two being modulo-97 check
// digits over the 10-digit base. Formatting characters (+, /, spaces)
// are ignored.
func ValidateStructuredReference(ref string) error {
	digits := digitsOnly.ReplaceAllString(ref, "")
	if len(digits) != 12 {
		return fmt.Errorf("structured reference %q must contain 12 digits, got %d", ref, len(digits))
	}
	base, err := strconv.ParseInt(digits[:10], 10, 64)
	if err != nil {
		return fmt.Errorf("structured reference %q: %w", ref, err)
	}
	check, err := strconv.ParseInt(digits[10:], 10, 64)
	if err != nil {
		return fmt.Errorf("structured reference %q: %w", ref, err)
	}
	if check != Mod97CheckDigits(base) {
		return fmt.Errorf("structured reference %q fails modulo-97 check (expected %02d)", ref, Mod97CheckDigits(base))
	}
	return nil
}

// StructuredReferenceFromBase builds a full 12-digit structured reference
// from a 10-digit base by appending its modulo-97 check digits, formatted
// as +++xxx/xxxx/xxxxx+++.
func StructuredReferenceFromBase(base string) (string, error) {
	digits := digitsOnly.ReplaceAllString(base, "")
	if len(digits) != 10 {
		return "", fmt.Errorf("structured reference base %q must contain 10 digits, got %d", base, len(digits))
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return "", fmt.Errorf("structured reference base %q: %w", base, err)
	}
	full := fmt.Sprintf("%s%02d", digits, Mod97CheckDigits(n))
	return fmt.Sprintf("+++%s/%s/%s+++", full[:3], full[3:7], full[7:]), nil
}

// ValidateEmail checks an email address against a simple pattern.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("email %q is not a valid address", email)
	}
	return nil
}

// ValidateCountryCode checks an ISO 3166-1 alpha-2 country code.
func ValidateCountryCode(code string) error {
	if !countryCodePattern.MatchString(code) {
		return fmt.Errorf("country code %q is not a two-letter ISO code", code)
	}
	return nil
}

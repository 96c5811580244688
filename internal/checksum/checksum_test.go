package checksum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/einvoice/internal/checksum"
)

func TestMod97CheckDigits(t *testing.T) {
	tests := []struct {
		name     string
		base     int64
		expected int64
	}{
		{"plain remainder", 1234567890, 95}, // 1234567890 mod 97 = 2
		{"remainder one", 98, 96},
		{"zero remainder substitutes 97", 97, 97},
		{"zero base substitutes 97", 0, 97},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, checksum.Mod97CheckDigits(tt.base))
		})
	}
}

func TestValidateStructuredReference(t *testing.T) {
	// base 1234567890 -> check digits 97 - (1234567890 mod 97) = 95
	assert.NoError(t, checksum.ValidateStructuredReference("123456789095"))
	assert.NoError(t, checksum.ValidateStructuredReference("+++123/4567/89095+++"))

	assert.Error(t, checksum.ValidateStructuredReference("123456789094"))
	assert.Error(t, checksum.ValidateStructuredReference("12345678"))
	assert.Error(t, checksum.ValidateStructuredReference(""))
}

func TestStructuredReferenceFromBase(t *testing.T) {
	full, err := checksum.StructuredReferenceFromBase("1234567890")
	require.NoError(t, err)
	assert.Equal(t, "+++123/4567/89095+++", full)

	// the generated reference passes its own verification
	assert.NoError(t, checksum.ValidateStructuredReference(full))

	_, err = checksum.StructuredReferenceFromBase("12345")
	require.Error(t, err)
}

func TestValidateVATID_Belgian(t *testing.T) {
	// base 01234567 -> 1234567 mod 97 = 48 -> check 49
	assert.NoError(t, checksum.ValidateVATID("BE0123456749"))
	assert.NoError(t, checksum.ValidateVATID("BE 0123 456 749"))

	// wrong check digits
	assert.Error(t, checksum.ValidateVATID("BE0123456748"))
	// wrong length
	assert.Error(t, checksum.ValidateVATID("BE012345674"))
	// must start with 0 or 1
	assert.Error(t, checksum.ValidateVATID("BE9123456749"))
}

func TestValidateVATID_OtherCountries(t *testing.T) {
	assert.NoError(t, checksum.ValidateVATID("NL123456789B01"))
	assert.NoError(t, checksum.ValidateVATID("DE123456789"))
	assert.NoError(t, checksum.ValidateVATID("FR12345678901"))
	// unknown prefix falls back to the generic EU shape
	assert.NoError(t, checksum.ValidateVATID("XI123456789"))

	assert.Error(t, checksum.ValidateVATID("DE12345"))
	assert.Error(t, checksum.ValidateVATID("X"))
	assert.Error(t, checksum.ValidateVATID(""))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, checksum.ValidateEmail("billing@example.com"))
	assert.NoError(t, checksum.ValidateEmail("jan.peeters+invoices@firma.be"))

	assert.Error(t, checksum.ValidateEmail("not-an-email"))
	assert.Error(t, checksum.ValidateEmail("missing@tld"))
	assert.Error(t, checksum.ValidateEmail(""))
}

func TestValidateCountryCode(t *testing.T) {
	assert.NoError(t, checksum.ValidateCountryCode("BE"))
	assert.NoError(t, checksum.ValidateCountryCode("NL"))

	assert.Error(t, checksum.ValidateCountryCode("be"))
	assert.Error(t, checksum.ValidateCountryCode("BEL"))
	assert.Error(t, checksum.ValidateCountryCode(""))
}

package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstpilot/internal/domain"
)

func TestValidateGSTIN_Valid(t *testing.T) {
	d, err := ValidateGSTIN("27AAAPL1234C1ZE")
	require.NoError(t, err)
	assert.Equal(t, "27", d.StateCode)
	assert.Equal(t, "Maharashtra", d.StateName)
	assert.Equal(t, "AAAPL1234C", d.PAN)
	assert.Equal(t, "1", d.EntityNumber)
	assert.Equal(t, "E", d.CheckDigit)
}

func TestValidateGSTIN_KnownRegistration(t *testing.T) {
	d, err := ValidateGSTIN("27AAPFU0939F1ZV")
	require.NoError(t, err)
	assert.Equal(t, "Maharashtra", d.StateName)
	assert.Equal(t, "V", d.CheckDigit)
}

func TestValidateGSTIN_Lowercase(t *testing.T) {
	d, err := ValidateGSTIN("27aaapl1234c1ze")
	require.NoError(t, err)
	assert.Equal(t, "27AAAPL1234C1ZE", d.GSTIN)
}

func TestValidateGSTIN_Length(t *testing.T) {
	_, err := ValidateGSTIN("27AAAPL1234C1Z")
	assert.ErrorIs(t, err, domain.ErrInvalidGSTINLength)
}

func TestValidateGSTIN_Format(t *testing.T) {
	_, err := ValidateGSTIN("27AAAP91234C1ZE")
	assert.ErrorIs(t, err, domain.ErrInvalidGSTINFormat)
}

func TestValidateGSTIN_UnknownState(t *testing.T) {
	_, err := ValidateGSTIN("00AAAPL1234C1ZE")
	assert.ErrorIs(t, err, domain.ErrUnknownStateCode)
}

func TestValidateGSTIN_BadChecksum(t *testing.T) {
	_, err := ValidateGSTIN("27AAAPL1234C1Z5")
	assert.ErrorIs(t, err, domain.ErrBadGSTINChecksum)
}

// Recomputing the check character from the first 14 characters of any
// accepted GSTIN must reproduce the 15th.
func TestChecksum_Idempotent(t *testing.T) {
	for _, gstin := range []string{
		"27AAAPL1234C1ZE",
		"27AAPFU0939F1ZV",
		"29AAAPL1234C1ZA",
	} {
		d, err := ValidateGSTIN(gstin)
		if err != nil {
			continue
		}
		c, err := Checksum(d.GSTIN[:14])
		require.NoError(t, err)
		assert.Equal(t, d.GSTIN[14], c, "gstin %s", gstin)
	}
}

func TestChecksum_BadLength(t *testing.T) {
	_, err := Checksum("27AAAPL")
	assert.Error(t, err)
}

func TestIsWellFormedGSTIN(t *testing.T) {
	assert.True(t, IsWellFormedGSTIN("27AAAPL1234C1Z5"))
	assert.False(t, IsWellFormedGSTIN("not-a-gstin"))
	assert.False(t, IsWellFormedGSTIN(""))
}

package gst

import (
	"fmt"
	"regexp"
	"strings"

	"gstpilot/internal/domain"
)

const checksumAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)

// GSTINDetails is the decoded content of a validated GSTIN.
type GSTINDetails struct {
	GSTIN        string `json:"gstin"`
	StateCode    string `json:"state_code"`
	StateName    string `json:"state_name"`
	PAN          string `json:"pan"`
	EntityNumber string `json:"entity_number"`
	CheckDigit   string `json:"check_digit"`
}

// ValidateGSTIN validates a 15-character GSTIN: length, format, state code
// and checksum. The returned error names the specific failure so callers
// can distinguish a bad checksum from an unknown state.
func ValidateGSTIN(s string) (*GSTINDetails, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 15 {
		return nil, fmt.Errorf("%w: got %d characters", domain.ErrInvalidGSTINLength, len(s))
	}
	if !gstinPattern.MatchString(s) {
		return nil, domain.ErrInvalidGSTINFormat
	}
	stateCode := s[0:2]
	stateName, ok := StateName(stateCode)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownStateCode, stateCode)
	}
	want, err := Checksum(s[:14])
	if err != nil {
		return nil, err
	}
	if s[14] != want {
		return nil, fmt.Errorf("%w: expected %c, got %c", domain.ErrBadGSTINChecksum, want, s[14])
	}
	return &GSTINDetails{
		GSTIN:        s,
		StateCode:    stateCode,
		StateName:    stateName,
		PAN:          s[2:12],
		EntityNumber: s[12:13],
		CheckDigit:   s[14:15],
	}, nil
}

// Checksum computes the Luhn mod-36 check character over the first 14
// characters of a GSTIN. The multiplier alternates 2,1 starting from the
// rightmost character, each product is digit-summed in base 36, and the
// check character is alphabet[(36 - sum%36) % 36].
func Checksum(first14 string) (byte, error) {
	if len(first14) != 14 {
		return 0, fmt.Errorf("checksum input must be 14 characters, got %d", len(first14))
	}
	factor := 2
	sum := 0
	for i := len(first14) - 1; i >= 0; i-- {
		v := strings.IndexByte(checksumAlphabet, first14[i])
		if v < 0 {
			return 0, fmt.Errorf("%w: character %q", domain.ErrInvalidGSTINFormat, first14[i])
		}
		p := v * factor
		sum += p/36 + p%36
		if factor == 2 {
			factor = 1
		} else {
			factor = 2
		}
	}
	return checksumAlphabet[(36-sum%36)%36], nil
}

// IsWellFormedGSTIN reports whether s looks like a GSTIN without checking
// the checksum. The category classifier uses this weaker test.
func IsWellFormedGSTIN(s string) bool {
	return len(s) == 15 && gstinPattern.MatchString(strings.ToUpper(s))
}

package gst

import (
	"github.com/shopspring/decimal"

	"gstpilot/internal/domain"
)

// HSNLookup provides in-memory rate lookups for HSN/SAC codes. It is
// immutable after construction and safe for concurrent access.
type HSNLookup struct {
	byCode map[string]domain.HSNCode
}

// NewHSNLookup builds an HSNLookup from reference entries.
func NewHSNLookup(entries []domain.HSNCode) *HSNLookup {
	m := make(map[string]domain.HSNCode, len(entries))
	for idx := range entries {
		m[entries[idx].Code] = entries[idx]
	}
	return &HSNLookup{byCode: m}
}

// Rates returns the GST and cess rate for a code. It checks the exact code
// first, then falls back from 8 to 6 to 4 digit prefixes.
func (h *HSNLookup) Rates(code string) (gstRate, cessRate decimal.Decimal, ok bool) {
	if h == nil || len(h.byCode) == 0 || code == "" {
		return decimal.Zero, decimal.Zero, false
	}
	if e, found := h.byCode[code]; found {
		return e.GSTRate, e.CessRate, true
	}
	for _, prefixLen := range []int{6, 4} {
		if len(code) > prefixLen {
			if e, found := h.byCode[code[:prefixLen]]; found {
				return e.GSTRate, e.CessRate, true
			}
		}
	}
	return decimal.Zero, decimal.Zero, false
}

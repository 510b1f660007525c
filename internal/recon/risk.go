package recon

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gstpilot/internal/domain"
	"gstpilot/internal/gst"
)

var riskValueAbove = decimal.NewFromInt(500000)

// Generic chapter-level HSN codes that carry no item detail. Purchases
// booked under these are a common audit flag.
var genericHSNCodes = map[string]bool{
	"9999": true, "99":   true,
	"0000": true, "00":   true,
}

// InvoiceRisk carries the score and the plain-language factors behind it.
type InvoiceRisk struct {
	Score   float64          `json:"score"`
	Level   domain.RiskLevel `json:"level"`
	Factors []string         `json:"factors"`
}

// PredictRisk scores an invoice's audit risk from additive heuristics,
// capped at 1.0. Factors name the triggers so a reviewer can see why.
func PredictRisk(inv *domain.GSTInvoice) InvoiceRisk {
	score := 0.0
	var factors []string

	if inv.TotalAmount.GreaterThan(riskValueAbove) {
		score += 0.2
		factors = append(factors, "invoice value above 5 lakh")
	}
	if !gst.IsWellFormedGSTIN(inv.CounterpartyGSTIN) {
		score += 0.4
		factors = append(factors, "counterparty GSTIN missing or malformed")
	}
	if hasGenericHSN(inv.LineItems) {
		score += 0.1
		factors = append(factors, "generic HSN code on line items")
	}
	if hasHighRate(inv.LineItems) {
		score += 0.05
		factors = append(factors, "top-slab GST rate")
	}
	if nearMonthEnd(inv.InvoiceDate) {
		score += 0.15
		factors = append(factors, "dated within three days of month end")
	}
	if inv.ReverseCharge {
		score += 0.1
		factors = append(factors, "reverse charge supply")
	}

	if score > 1.0 {
		score = 1.0
	}
	return InvoiceRisk{Score: score, Level: riskLevel(score), Factors: factors}
}

func riskLevel(score float64) domain.RiskLevel {
	switch {
	case score >= 0.6:
		return domain.RiskHigh
	case score >= 0.3:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func hasGenericHSN(items domain.LineItems) bool {
	for _, li := range items {
		code := strings.TrimSpace(li.HSNCode)
		if code == "" || genericHSNCodes[code] {
			return true
		}
	}
	return false
}

var topSlabRate = decimal.NewFromInt(28)

func hasHighRate(items domain.LineItems) bool {
	for _, li := range items {
		if li.GSTRate.GreaterThanOrEqual(topSlabRate) {
			return true
		}
	}
	return false
}

// nearMonthEnd reports whether d falls within the last three days of its
// month. Back-dated month-end billing clusters are an audit heuristic.
func nearMonthEnd(d time.Time) bool {
	lastDay := time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location()).Day()
	return lastDay-d.Day() < 3
}

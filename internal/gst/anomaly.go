package gst

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gstpilot/internal/domain"
)

var (
	roundAmountUnit  = decimal.NewFromInt(1000)
	roundAmountFloor = decimal.NewFromInt(10000)
)

// DetectAnomalies scans a profile's full invoice history for suspicious
// patterns: duplicate (counterparty, number) pairs, suspiciously round
// totals and future-dated invoices. It never fails; partial data simply
// yields fewer findings.
func DetectAnomalies(invoices []domain.GSTInvoice, now time.Time) []domain.Anomaly {
	anomalies := []domain.Anomaly{}

	seen := make(map[string]*domain.GSTInvoice, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		key := inv.CounterpartyGSTIN + "|" + inv.InvoiceNumber
		if first, dup := seen[key]; dup {
			anomalies = append(anomalies, domain.Anomaly{
				Type:          domain.AnomalyDuplicateInvoice,
				Severity:      domain.SeverityHigh,
				InvoiceID:     inv.ID,
				InvoiceNumber: inv.InvoiceNumber,
				Message: fmt.Sprintf("invoice number %s duplicates invoice %s for the same counterparty",
					inv.InvoiceNumber, first.ID),
			})
		} else {
			seen[key] = inv
		}

		if inv.TotalAmount.GreaterThanOrEqual(roundAmountFloor) &&
			inv.TotalAmount.Mod(roundAmountUnit).IsZero() {
			anomalies = append(anomalies, domain.Anomaly{
				Type:          domain.AnomalyRoundAmount,
				Severity:      domain.SeverityLow,
				InvoiceID:     inv.ID,
				InvoiceNumber: inv.InvoiceNumber,
				Message:       fmt.Sprintf("total amount %s is an exact multiple of 1000", inv.TotalAmount.StringFixed(2)),
			})
		}

		if inv.InvoiceDate.After(now) {
			anomalies = append(anomalies, domain.Anomaly{
				Type:          domain.AnomalyFutureDate,
				Severity:      domain.SeverityMedium,
				InvoiceID:     inv.ID,
				InvoiceNumber: inv.InvoiceNumber,
				Message:       fmt.Sprintf("invoice dated %s is in the future", inv.InvoiceDate.Format("2006-01-02")),
			})
		}
	}
	return anomalies
}

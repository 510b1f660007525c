package gst

import (
	"time"

	"github.com/shopspring/decimal"

	"gstpilot/internal/domain"
)

// Late fee and interest constants per the CGST Act: ₹40/day (₹20+₹20)
// capped at ₹500 for nil returns, ₹100/day (₹50+₹50) capped at ₹10,000
// otherwise; interest at 18% per annum, simple daily proration.
var (
	nilDailyFee     = decimal.NewFromInt(40)
	nilFeeCap       = decimal.NewFromInt(500)
	regularDailyFee = decimal.NewFromInt(100)
	regularFeeCap   = decimal.NewFromInt(10000)
	interestRate    = decimal.NewFromInt(18)
	daysPerYear     = decimal.NewFromInt(365)
)

// Penalty is the computed late fee and interest for a delayed filing.
type Penalty struct {
	DaysLate int             `json:"days_late"`
	LateFee  decimal.Decimal `json:"late_fee"`
	Interest decimal.Decimal `json:"interest"`
	Total    decimal.Decimal `json:"total"`
}

// ComputePenalty returns the late fee and interest owed when a return with
// the given tax liability is filed after its due date. Filing on or before
// the due date yields an all-zero penalty.
func ComputePenalty(dueDate, filedDate time.Time, liability domain.TaxBreakdown) Penalty {
	if !filedDate.After(dueDate) {
		return Penalty{LateFee: decimal.Zero, Interest: decimal.Zero, Total: decimal.Zero}
	}
	daysLate := int(filedDate.Sub(dueDate).Hours() / 24)
	if filedDate.Sub(dueDate)%(24*time.Hour) != 0 {
		daysLate++
	}
	days := decimal.NewFromInt(int64(daysLate))

	outputTax := liability.CGST.Add(liability.SGST).Add(liability.IGST)

	var lateFee decimal.Decimal
	if outputTax.IsZero() {
		lateFee = decimal.Min(days.Mul(nilDailyFee), nilFeeCap)
	} else {
		lateFee = decimal.Min(days.Mul(regularDailyFee), regularFeeCap)
	}

	interest := outputTax.Mul(interestRate).Mul(days).
		Div(daysPerYear.Mul(decimal.NewFromInt(100)))

	lateFee = round2(lateFee)
	interest = round2(interest)
	return Penalty{
		DaysLate: daysLate,
		LateFee:  lateFee,
		Interest: interest,
		Total:    lateFee.Add(interest),
	}
}

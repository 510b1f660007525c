package gst

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gstpilot/internal/domain"
)

var penaltyDue = time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)

func TestComputePenalty_OnTime(t *testing.T) {
	p := ComputePenalty(penaltyDue, penaltyDue, domain.TaxBreakdown{CGST: dec("900")})
	assert.Equal(t, 0, p.DaysLate)
	assert.True(t, p.LateFee.IsZero())
	assert.True(t, p.Interest.IsZero())
	assert.True(t, p.Total.IsZero())

	early := penaltyDue.AddDate(0, 0, -3)
	p = ComputePenalty(penaltyDue, early, domain.TaxBreakdown{CGST: dec("900")})
	assert.True(t, p.Total.IsZero())
}

func TestComputePenalty_NilReturn(t *testing.T) {
	filed := penaltyDue.AddDate(0, 0, 5)
	p := ComputePenalty(penaltyDue, filed, domain.TaxBreakdown{})
	assert.Equal(t, 5, p.DaysLate)
	assert.True(t, p.LateFee.Equal(dec("200")), "late fee %s", p.LateFee)
	assert.True(t, p.Interest.IsZero())
	assert.True(t, p.Total.Equal(dec("200")))
}

func TestComputePenalty_NilReturnCap(t *testing.T) {
	filed := penaltyDue.AddDate(0, 0, 60)
	p := ComputePenalty(penaltyDue, filed, domain.TaxBreakdown{})
	assert.True(t, p.LateFee.Equal(dec("500")), "late fee %s", p.LateFee)
}

func TestComputePenalty_RegularTier(t *testing.T) {
	filed := penaltyDue.AddDate(0, 0, 10)
	liability := domain.TaxBreakdown{CGST: dec("5000"), SGST: dec("5000")}
	p := ComputePenalty(penaltyDue, filed, liability)
	assert.Equal(t, 10, p.DaysLate)
	assert.True(t, p.LateFee.Equal(dec("1000")), "late fee %s", p.LateFee)
	// 10000 * 18% * 10/365 = 49.32
	assert.True(t, p.Interest.Equal(dec("49.32")), "interest %s", p.Interest)
	assert.True(t, p.Total.Equal(dec("1049.32")))
}

func TestComputePenalty_RegularCap(t *testing.T) {
	filed := penaltyDue.AddDate(0, 0, 200)
	p := ComputePenalty(penaltyDue, filed, domain.TaxBreakdown{IGST: dec("100")})
	assert.True(t, p.LateFee.Equal(dec("10000")))
}

func TestComputePenalty_PartialDayRoundsUp(t *testing.T) {
	filed := penaltyDue.Add(36 * time.Hour)
	p := ComputePenalty(penaltyDue, filed, domain.TaxBreakdown{})
	assert.Equal(t, 2, p.DaysLate)
}

func TestComputePenalty_MonotonicInDaysLate(t *testing.T) {
	liability := domain.TaxBreakdown{IGST: dec("50000")}
	prev := ComputePenalty(penaltyDue, penaltyDue.AddDate(0, 0, 1), liability)
	for days := 2; days <= 30; days++ {
		p := ComputePenalty(penaltyDue, penaltyDue.AddDate(0, 0, days), liability)
		assert.True(t, p.Total.GreaterThan(prev.Total), "day %d", days)
		prev = p
	}
}

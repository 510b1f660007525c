package gst

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstpilot/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestComputeInvoice_IntraState(t *testing.T) {
	calc := NewCalculator(NewHSNLookup(nil))
	res, err := calc.ComputeInvoice([]LineInput{
		{Description: "Widget", Quantity: dec("2"), Rate: dec("500"), GSTRate: decPtr("18")},
	}, "27", "27")
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)

	line := res.Lines[0]
	assert.True(t, line.TaxableValue.Equal(dec("1000")), "taxable %s", line.TaxableValue)
	assert.True(t, line.CGST.Equal(dec("90")), "cgst %s", line.CGST)
	assert.True(t, line.SGST.Equal(dec("90")), "sgst %s", line.SGST)
	assert.True(t, line.IGST.IsZero())
	assert.True(t, res.TotalAmount.Equal(dec("1180")), "total %s", res.TotalAmount)
	assert.False(t, res.InterState)
}

func TestComputeInvoice_InterState(t *testing.T) {
	calc := NewCalculator(NewHSNLookup(nil))
	res, err := calc.ComputeInvoice([]LineInput{
		{Description: "Widget", Quantity: dec("2"), Rate: dec("500"), GSTRate: decPtr("18")},
	}, "29", "27")
	require.NoError(t, err)

	line := res.Lines[0]
	assert.True(t, line.CGST.IsZero())
	assert.True(t, line.SGST.IsZero())
	assert.True(t, line.IGST.Equal(dec("180")), "igst %s", line.IGST)
	assert.True(t, res.TotalAmount.Equal(dec("1180")))
	assert.True(t, res.InterState)
}

func TestComputeInvoice_HSNFallback(t *testing.T) {
	lookup := NewHSNLookup([]domain.HSNCode{
		{Code: "8517", GSTRate: dec("12"), CessRate: decimal.Zero},
	})
	calc := NewCalculator(lookup)

	res, err := calc.ComputeInvoice([]LineInput{
		{Description: "Phone", HSNCode: "8517", Quantity: dec("1"), Rate: dec("100")},
	}, "27", "27")
	require.NoError(t, err)
	assert.True(t, res.Lines[0].GSTRate.Equal(dec("12")))
	assert.True(t, res.Lines[0].CGST.Equal(dec("6")))
}

func TestComputeInvoice_DefaultRate(t *testing.T) {
	calc := NewCalculator(NewHSNLookup(nil))
	res, err := calc.ComputeInvoice([]LineInput{
		{Description: "Misc", Quantity: dec("1"), Rate: dec("100")},
	}, "27", "27")
	require.NoError(t, err)
	assert.True(t, res.Lines[0].GSTRate.Equal(dec("18")))
}

func TestComputeInvoice_Cess(t *testing.T) {
	calc := NewCalculator(NewHSNLookup(nil))
	res, err := calc.ComputeInvoice([]LineInput{
		{Description: "Aerated drink", Quantity: dec("10"), Rate: dec("100"), GSTRate: decPtr("28"), CessRate: decPtr("12")},
	}, "29", "27")
	require.NoError(t, err)

	line := res.Lines[0]
	assert.True(t, line.IGST.Equal(dec("280")))
	assert.True(t, line.Cess.Equal(dec("120")))
	assert.True(t, res.TotalAmount.Equal(dec("1400")))
}

func TestComputeInvoice_EmptyItems(t *testing.T) {
	calc := NewCalculator(NewHSNLookup(nil))
	_, err := calc.ComputeInvoice(nil, "27", "27")
	assert.ErrorIs(t, err, domain.ErrEmptyLineItems)
}

// The invariant every downstream consumer assumes: exactly one of
// (CGST+SGST) or IGST is non-zero per line, and the grand total equals
// taxable value plus all tax heads.
func TestComputeInvoice_SplitInvariant(t *testing.T) {
	calc := NewCalculator(NewHSNLookup(nil))
	cases := []struct {
		pos, seller string
	}{
		{"27", "27"},
		{"29", "27"},
		{"07", "33"},
		{"33", "33"},
	}
	for _, tc := range cases {
		res, err := calc.ComputeInvoice([]LineInput{
			{Quantity: dec("3"), Rate: dec("333.33"), GSTRate: decPtr("18")},
			{Quantity: dec("7"), Rate: dec("142.85"), GSTRate: decPtr("5"), CessRate: decPtr("1")},
		}, tc.pos, tc.seller)
		require.NoError(t, err)

		for _, line := range res.Lines {
			if res.InterState {
				assert.True(t, line.CGST.IsZero() && line.SGST.IsZero())
			} else {
				assert.True(t, line.IGST.IsZero())
				assert.True(t, line.CGST.Equal(line.SGST))
			}
		}
		sum := res.Summary.TaxableValue.Add(res.Summary.TotalTax())
		diff := res.TotalAmount.Sub(sum).Abs()
		assert.True(t, diff.LessThanOrEqual(dec("0.01")), "total drift %s", diff)
	}
}

package gst

import (
	"github.com/shopspring/decimal"

	"gstpilot/internal/domain"
)

var (
	hundred    = decimal.NewFromInt(100)
	twoHundred = decimal.NewFromInt(200)
)

// DefaultGSTRate is applied when a line carries no explicit rate and its
// HSN code is not in the reference table.
var DefaultGSTRate = decimal.NewFromInt(18)

// LineInput is one raw invoice line before tax computation. GSTRate and
// CessRate are nil when the rate should be resolved from the HSN table.
type LineInput struct {
	Description string
	HSNCode     string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	GSTRate     *decimal.Decimal
	CessRate    *decimal.Decimal
}

// InvoiceTax is the computed result for a whole invoice.
type InvoiceTax struct {
	Lines       domain.LineItems
	Summary     domain.TaxBreakdown
	TotalAmount decimal.Decimal
	InterState  bool
}

// Calculator computes per-line CGST/SGST/IGST/cess splits. The split rule
// is the load-bearing invariant: exactly one of (CGST+SGST) or IGST is
// non-zero per line, decided by whether place of supply differs from the
// seller's state.
type Calculator struct {
	hsn         *HSNLookup
	defaultRate decimal.Decimal
}

// NewCalculator creates a Calculator backed by the given HSN reference table.
func NewCalculator(hsn *HSNLookup) *Calculator {
	return &Calculator{hsn: hsn, defaultRate: DefaultGSTRate}
}

// ComputeInvoice computes each line's taxable value and tax split plus the
// invoice aggregate. Monetary outputs are rounded half-up to 2 decimals.
func (c *Calculator) ComputeInvoice(items []LineInput, placeOfSupply, sellerState string) (*InvoiceTax, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyLineItems
	}
	interState := placeOfSupply != sellerState

	out := &InvoiceTax{
		Lines:      make(domain.LineItems, 0, len(items)),
		InterState: interState,
	}
	for i := range items {
		line := c.computeLine(&items[i], interState)
		out.Lines = append(out.Lines, line)
		out.Summary = out.Summary.Add(domain.TaxBreakdown{
			TaxableValue: line.TaxableValue,
			CGST:         line.CGST,
			SGST:         line.SGST,
			IGST:         line.IGST,
			Cess:         line.Cess,
		})
	}
	out.TotalAmount = out.Summary.TaxableValue.Add(out.Summary.TotalTax())
	return out, nil
}

func (c *Calculator) computeLine(in *LineInput, interState bool) domain.LineItem {
	gstRate, cessRate := c.resolveRates(in)
	taxable := round2(in.Quantity.Mul(in.Rate))

	line := domain.LineItem{
		Description:  in.Description,
		HSNCode:      in.HSNCode,
		Quantity:     in.Quantity,
		Rate:         in.Rate,
		GSTRate:      gstRate,
		CessRate:     cessRate,
		TaxableValue: taxable,
	}
	if interState {
		line.IGST = round2(taxable.Mul(gstRate).Div(hundred))
		line.CGST = decimal.Zero
		line.SGST = decimal.Zero
	} else {
		// Half the nominal rate on each of the two heads.
		half := round2(taxable.Mul(gstRate).Div(twoHundred))
		line.CGST = half
		line.SGST = half
		line.IGST = decimal.Zero
	}
	if cessRate.IsPositive() {
		line.Cess = round2(taxable.Mul(cessRate).Div(hundred))
	} else {
		line.Cess = decimal.Zero
	}
	line.Total = taxable.Add(line.CGST).Add(line.SGST).Add(line.IGST).Add(line.Cess)
	return line
}

// resolveRates picks the GST and cess rate for a line: explicit override,
// then HSN table, then the 18% default. Cess defaults to zero.
func (c *Calculator) resolveRates(in *LineInput) (gstRate, cessRate decimal.Decimal) {
	if in.GSTRate != nil {
		gstRate = *in.GSTRate
	}
	if in.CessRate != nil {
		cessRate = *in.CessRate
	}
	if in.GSTRate == nil {
		if hsnGST, hsnCess, ok := c.hsn.Rates(in.HSNCode); ok {
			gstRate = hsnGST
			if in.CessRate == nil {
				cessRate = hsnCess
			}
		} else {
			gstRate = c.defaultRate
		}
	}
	return gstRate, cessRate
}

// round2 rounds half-up to two decimal places.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Package recon matches purchase-register invoices against externally
// reported GSTR-2A/2B records and grades the differences. It never fails
// on partial data: every input lands in exactly one partition and the
// result is always a complete best-effort report.
package recon

import (
	"github.com/shopspring/decimal"

	"gstpilot/internal/domain"
)

var (
	// Taxable value differences within 1% are ignored; per-head tax
	// differences within ₹1 are ignored.
	valueTolerancePct = decimal.NewFromInt(1)
	headToleranceAbs  = decimal.NewFromInt(1)

	severityHighAbove   = decimal.NewFromInt(10000)
	severityMediumAbove = decimal.NewFromInt(1000)
)

// FieldDiff is one out-of-tolerance field on a mismatched pair.
type FieldDiff struct {
	Field    string          `json:"field"`
	Books    decimal.Decimal `json:"books"`
	External decimal.Decimal `json:"external"`
	Diff     decimal.Decimal `json:"diff"`
}

// MatchPair links a purchase invoice with its 2A counterpart.
type MatchPair struct {
	Invoice  *domain.GSTInvoice      `json:"invoice"`
	External *domain.ExternalInvoice `json:"external"`
}

// Mismatch is a matched pair whose amounts disagree beyond tolerance.
type Mismatch struct {
	Invoice   *domain.GSTInvoice      `json:"invoice"`
	External  *domain.ExternalInvoice `json:"external"`
	Diffs     []FieldDiff             `json:"diffs"`
	Status    domain.MatchStatus      `json:"status"`
	Severity  domain.Severity         `json:"severity"`
	RiskScore float64                 `json:"risk_score"`
}

// Summary aggregates a reconciliation run.
type Summary struct {
	TotalBooks      int             `json:"total_books"`
	TotalExternal   int             `json:"total_external"`
	MatchedCount    int             `json:"matched_count"`
	MismatchCount   int             `json:"mismatch_count"`
	NotInBooksCount int             `json:"not_in_books_count"`
	NotIn2ACount    int             `json:"not_in_2a_count"`
	MatchedITC      decimal.Decimal `json:"matched_itc"`
	MismatchedITC   decimal.Decimal `json:"mismatched_itc"`
	PotentialLoss   decimal.Decimal `json:"potential_loss"`
}

// Result is the full partitioned outcome of one run. The four partitions
// are pairwise disjoint and together account for every input exactly once.
type Result struct {
	Matched    []MatchPair              `json:"matched"`
	Mismatched []Mismatch               `json:"mismatched"`
	NotInBooks []domain.ExternalInvoice `json:"not_in_books"`
	NotIn2A    []domain.GSTInvoice      `json:"not_in_2a"`
	Summary    Summary                  `json:"summary"`
}

func matchKey(gstin, invoiceNumber string) string {
	return gstin + "|" + invoiceNumber
}

// Reconcile partitions books (purchase invoices) and external (2A/2B
// records) four ways, keyed by supplier GSTIN + invoice number.
func Reconcile(books []domain.GSTInvoice, external []domain.ExternalInvoice) *Result {
	res := &Result{
		Matched:    []MatchPair{},
		Mismatched: []Mismatch{},
		NotInBooks: []domain.ExternalInvoice{},
		NotIn2A:    []domain.GSTInvoice{},
	}
	res.Summary.TotalBooks = len(books)
	res.Summary.TotalExternal = len(external)
	res.Summary.MatchedITC = decimal.Zero
	res.Summary.MismatchedITC = decimal.Zero
	res.Summary.PotentialLoss = decimal.Zero

	byKey := make(map[string]*domain.GSTInvoice, len(books))
	for i := range books {
		inv := &books[i]
		byKey[matchKey(inv.CounterpartyGSTIN, inv.InvoiceNumber)] = inv
	}

	consumed := make(map[string]bool, len(books))
	for i := range external {
		ext := &external[i]
		key := matchKey(ext.SupplierGSTIN, ext.InvoiceNumber)
		inv, ok := byKey[key]
		if !ok || consumed[key] {
			res.NotInBooks = append(res.NotInBooks, *ext)
			continue
		}
		consumed[key] = true

		diffs := compareFields(inv, ext)
		if len(diffs) == 0 {
			res.Matched = append(res.Matched, MatchPair{Invoice: inv, External: ext})
			res.Summary.MatchedITC = res.Summary.MatchedITC.Add(invoiceTax(inv))
			continue
		}
		mm := Mismatch{
			Invoice:  inv,
			External: ext,
			Diffs:    diffs,
			Status:   mismatchStatus(diffs),
			Severity: severity(diffs),
		}
		mm.RiskScore = mismatchRisk(mm.Severity, len(diffs))
		res.Mismatched = append(res.Mismatched, mm)
		res.Summary.MismatchedITC = res.Summary.MismatchedITC.Add(invoiceTax(inv))
	}

	for i := range books {
		inv := &books[i]
		if !consumed[matchKey(inv.CounterpartyGSTIN, inv.InvoiceNumber)] {
			res.NotIn2A = append(res.NotIn2A, *inv)
			res.Summary.PotentialLoss = res.Summary.PotentialLoss.Add(invoiceTax(inv))
		}
	}

	res.Summary.MatchedCount = len(res.Matched)
	res.Summary.MismatchCount = len(res.Mismatched)
	res.Summary.NotInBooksCount = len(res.NotInBooks)
	res.Summary.NotIn2ACount = len(res.NotIn2A)
	return res
}

func invoiceTax(inv *domain.GSTInvoice) decimal.Decimal {
	return inv.TotalCGST.Add(inv.TotalSGST).Add(inv.TotalIGST).Add(inv.TotalCess)
}

// compareFields returns the out-of-tolerance fields between a book
// invoice and its 2A record. Taxable value is compared on percentage
// difference, tax heads on absolute difference.
func compareFields(inv *domain.GSTInvoice, ext *domain.ExternalInvoice) []FieldDiff {
	var diffs []FieldDiff

	if !ext.TaxableValue.IsZero() || !inv.TotalTaxableValue.IsZero() {
		diff := inv.TotalTaxableValue.Sub(ext.TaxableValue)
		base := inv.TotalTaxableValue
		if base.IsZero() {
			base = ext.TaxableValue
		}
		pct := diff.Abs().Div(base).Mul(decimal.NewFromInt(100))
		if pct.GreaterThan(valueTolerancePct) {
			diffs = append(diffs, FieldDiff{
				Field: "taxable_value", Books: inv.TotalTaxableValue,
				External: ext.TaxableValue, Diff: diff,
			})
		}
	}

	heads := []struct {
		name     string
		books    decimal.Decimal
		external decimal.Decimal
	}{
		{"igst", inv.TotalIGST, ext.IGST},
		{"cgst", inv.TotalCGST, ext.CGST},
		{"sgst", inv.TotalSGST, ext.SGST},
	}
	for _, h := range heads {
		diff := h.books.Sub(h.external)
		if diff.Abs().GreaterThan(headToleranceAbs) {
			diffs = append(diffs, FieldDiff{
				Field: h.name, Books: h.books, External: h.external, Diff: diff,
			})
		}
	}
	return diffs
}

// mismatchStatus maps the diff shape to a MatchStatus: a pure value
// mismatch, a pure tax mismatch, or both (partial).
func mismatchStatus(diffs []FieldDiff) domain.MatchStatus {
	hasValue, hasTax := false, false
	for _, d := range diffs {
		if d.Field == "taxable_value" {
			hasValue = true
		} else {
			hasTax = true
		}
	}
	switch {
	case hasValue && hasTax:
		return domain.MatchStatusPartial
	case hasValue:
		return domain.MatchStatusMismatchValue
	default:
		return domain.MatchStatusMismatchTax
	}
}

// severity grades a mismatch by the summed absolute tax-head difference.
func severity(diffs []FieldDiff) domain.Severity {
	taxDiff := decimal.Zero
	for _, d := range diffs {
		if d.Field != "taxable_value" {
			taxDiff = taxDiff.Add(d.Diff.Abs())
		}
	}
	switch {
	case taxDiff.GreaterThan(severityHighAbove):
		return domain.SeverityHigh
	case taxDiff.GreaterThan(severityMediumAbove):
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

// mismatchRisk scores a mismatched record: a severity base plus 0.1 per
// extra mismatched field beyond the first, capped at 1.0.
func mismatchRisk(sev domain.Severity, fieldCount int) float64 {
	var base float64
	switch sev {
	case domain.SeverityHigh:
		base = 0.8
	case domain.SeverityMedium:
		base = 0.5
	default:
		base = 0.2
	}
	score := base + 0.1*float64(fieldCount-1)
	if score > 1.0 {
		score = 1.0
	}
	return score
}

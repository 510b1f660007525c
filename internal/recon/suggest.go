package recon

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"gstpilot/internal/domain"
)

// Suggestion is one prioritized remediation action derived from a
// reconciliation result. Lower Priority sorts first.
type Suggestion struct {
	Priority int                       `json:"priority"`
	Category domain.SuggestionCategory `json:"category"`
	Message  string                    `json:"message"`
	Impact   decimal.Decimal           `json:"impact"`
}

// Suggest turns a reconciliation result into an ordered action list.
// Credit at risk (books invoices the supplier never reported) ranks
// first, then high-severity mismatches, then missed claims.
func Suggest(res *Result) []Suggestion {
	var out []Suggestion

	if n := len(res.NotIn2A); n > 0 {
		out = append(out, Suggestion{
			Priority: 1,
			Category: domain.SuggestionFollowUp,
			Message: fmt.Sprintf(
				"%d purchase invoice(s) not reported by suppliers; follow up before the credit lapses", n),
			Impact: res.Summary.PotentialLoss,
		})
	}

	high := 0
	highImpact := decimal.Zero
	for _, mm := range res.Mismatched {
		if mm.Severity == domain.SeverityHigh {
			high++
			highImpact = highImpact.Add(absTaxDiff(mm.Diffs))
		}
	}
	if high > 0 {
		out = append(out, Suggestion{
			Priority: 2,
			Category: domain.SuggestionResolveMismatch,
			Message: fmt.Sprintf(
				"%d high-severity mismatch(es) with suppliers; reconcile amounts before claiming credit", high),
			Impact: highImpact,
		})
	}

	if rest := len(res.Mismatched) - high; rest > 0 {
		out = append(out, Suggestion{
			Priority: 3,
			Category: domain.SuggestionRiskManagement,
			Message: fmt.Sprintf(
				"%d lower-severity mismatch(es); review and accept or raise with suppliers", rest),
			Impact: res.Summary.MismatchedITC.Sub(highImpact),
		})
	}

	if n := len(res.NotInBooks); n > 0 {
		missed := decimal.Zero
		for _, ext := range res.NotInBooks {
			missed = missed.Add(ext.IGST.Add(ext.CGST).Add(ext.SGST).Add(ext.Cess))
		}
		out = append(out, Suggestion{
			Priority: 4,
			Category: domain.SuggestionMissedClaim,
			Message: fmt.Sprintf(
				"%d supplier-reported invoice(s) missing from books; record them to claim the credit", n),
			Impact: missed,
		})
	}

	if len(out) == 0 {
		out = append(out, Suggestion{
			Priority: 5,
			Category: domain.SuggestionGeneral,
			Message:  "all records reconciled; no action needed",
			Impact:   decimal.Zero,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

func absTaxDiff(diffs []FieldDiff) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range diffs {
		if d.Field != "taxable_value" {
			sum = sum.Add(d.Diff.Abs())
		}
	}
	return sum
}

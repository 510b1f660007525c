package domain

// InvoiceType distinguishes sales (outward) from purchase (inward) invoices.
type InvoiceType string

const (
	InvoiceTypeSales    InvoiceType = "sales"
	InvoiceTypePurchase InvoiceType = "purchase"
)

// DocumentType is the commercial document kind behind an invoice record.
type DocumentType string

const (
	DocumentTypeInvoice    DocumentType = "invoice"
	DocumentTypeCreditNote DocumentType = "credit_note"
	DocumentTypeDebitNote  DocumentType = "debit_note"
)

// InvoiceStatus represents the lifecycle of an invoice record.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusExtracted InvoiceStatus = "extracted"
	InvoiceStatusVerified  InvoiceStatus = "verified"
	InvoiceStatusFinalized InvoiceStatus = "finalized"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// FilingFrequency is how often a profile files its returns.
type FilingFrequency string

const (
	FilingMonthly   FilingFrequency = "monthly"
	FilingQuarterly FilingFrequency = "quarterly"
)

// GSTRCategory is the GSTR-1 bucket an invoice is reported under.
type GSTRCategory string

const (
	CategoryB2B      GSTRCategory = "B2B"
	CategoryB2CS     GSTRCategory = "B2CS"
	CategoryB2CL     GSTRCategory = "B2CL"
	CategoryCDNR     GSTRCategory = "CDNR"
	CategoryEXP      GSTRCategory = "EXP"
	CategoryNIL      GSTRCategory = "NIL"
	CategoryPurchase GSTRCategory = "PURCHASE"
)

// ReturnType is the statutory return form.
type ReturnType string

const (
	ReturnGSTR1  ReturnType = "GSTR1"
	ReturnGSTR3B ReturnType = "GSTR3B"
	ReturnGSTR9  ReturnType = "GSTR9"
	ReturnGSTR9C ReturnType = "GSTR9C"
)

// FilingStatus represents the lifecycle of a GSTFiling record.
type FilingStatus string

const (
	FilingStatusDraft         FilingStatus = "draft"
	FilingStatusGenerated     FilingStatus = "generated"
	FilingStatusPendingReview FilingStatus = "pending_review"
	FilingStatusCAVerified    FilingStatus = "ca_verified"
	FilingStatusExported      FilingStatus = "exported"
	FilingStatusFiled         FilingStatus = "filed"
)

// filingTransitions is the closed set of legal status moves. The only
// backward edge is the CA rejection from pending_review to generated;
// generated may re-enter itself for idempotent regeneration.
var filingTransitions = map[FilingStatus][]FilingStatus{
	FilingStatusDraft:         {FilingStatusGenerated},
	FilingStatusGenerated:     {FilingStatusGenerated, FilingStatusPendingReview},
	FilingStatusPendingReview: {FilingStatusCAVerified, FilingStatusGenerated},
	FilingStatusCAVerified:    {FilingStatusExported},
	FilingStatusExported:      {FilingStatusFiled},
	FilingStatusFiled:         {},
}

// CanTransition reports whether moving from s to next is a legal filing
// status transition.
func (s FilingStatus) CanTransition(next FilingStatus) bool {
	for _, allowed := range filingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// MatchStatus is the reconciliation outcome for an ITC record.
type MatchStatus string

const (
	MatchStatusMatched       MatchStatus = "matched"
	MatchStatusUnmatched     MatchStatus = "unmatched"
	MatchStatusPartial       MatchStatus = "partial"
	MatchStatusMismatchValue MatchStatus = "mismatch_value"
	MatchStatusMismatchTax   MatchStatus = "mismatch_tax"
	MatchStatusNotInBooks    MatchStatus = "not_in_books"
)

// Severity grades reconciliation mismatches and anomalies.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// RiskLevel buckets heuristic risk scores.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// SuggestionCategory classifies reconciliation remediation actions.
type SuggestionCategory string

const (
	SuggestionFollowUp        SuggestionCategory = "follow_up"
	SuggestionResolveMismatch SuggestionCategory = "resolve_mismatch"
	SuggestionRiskManagement  SuggestionCategory = "risk_management"
	SuggestionMissedClaim     SuggestionCategory = "missed_claim"
	SuggestionGeneral         SuggestionCategory = "general"
)

// AnomalyType identifies the heuristic that flagged an invoice.
type AnomalyType string

const (
	AnomalyDuplicateInvoice AnomalyType = "duplicate_invoice"
	AnomalyRoundAmount      AnomalyType = "round_amount"
	AnomalyFutureDate       AnomalyType = "future_date"
)

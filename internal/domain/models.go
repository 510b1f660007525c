package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GSTProfile represents one registered business entity.
type GSTProfile struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	GSTIN             string          `db:"gstin" json:"gstin"`
	LegalName         string          `db:"legal_name" json:"legal_name"`
	BusinessName      string          `db:"business_name" json:"business_name"`
	State             string          `db:"state" json:"state"`
	StateCode         string          `db:"state_code" json:"state_code"`
	FilingFrequency   FilingFrequency `db:"filing_frequency" json:"filing_frequency"`
	TurnoverCategory  string          `db:"turnover_category" json:"turnover_category"`
	CompositionDealer bool            `db:"composition_dealer" json:"composition_dealer"`
	Address           string          `db:"address" json:"address"`
	Email             string          `db:"email" json:"email"`
	Phone             string          `db:"phone" json:"phone"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// LineItem is a single invoice line with its computed tax split.
type LineItem struct {
	Description  string          `json:"description"`
	HSNCode      string          `json:"hsn_code"`
	Quantity     decimal.Decimal `json:"quantity"`
	Rate         decimal.Decimal `json:"rate"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
	CessRate     decimal.Decimal `json:"cess_rate"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	Cess         decimal.Decimal `json:"cess"`
	Total        decimal.Decimal `json:"total"`
}

// LineItems is stored as a JSONB column.
type LineItems []LineItem

// Value implements driver.Valuer for JSONB storage.
func (l LineItems) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB storage.
func (l *LineItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported type %T for LineItems", src)
	}
}

// GSTInvoice represents one sales or purchase transaction.
type GSTInvoice struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	ProfileID         uuid.UUID       `db:"profile_id" json:"profile_id"`
	InvoiceNumber     string          `db:"invoice_number" json:"invoice_number"`
	InvoiceDate       time.Time       `db:"invoice_date" json:"invoice_date"`
	InvoiceType       InvoiceType     `db:"invoice_type" json:"invoice_type"`
	DocumentType      DocumentType    `db:"document_type" json:"document_type"`
	CounterpartyGSTIN string          `db:"counterparty_gstin" json:"counterparty_gstin"`
	CounterpartyName  string          `db:"counterparty_name" json:"counterparty_name"`
	PlaceOfSupply     string          `db:"place_of_supply" json:"place_of_supply"`
	IsExport          bool            `db:"is_export" json:"is_export"`
	ReverseCharge     bool            `db:"reverse_charge" json:"reverse_charge"`
	LineItems         LineItems       `db:"line_items" json:"line_items"`
	TotalTaxableValue decimal.Decimal `db:"total_taxable_value" json:"total_taxable_value"`
	TotalCGST         decimal.Decimal `db:"total_cgst" json:"total_cgst"`
	TotalSGST         decimal.Decimal `db:"total_sgst" json:"total_sgst"`
	TotalIGST         decimal.Decimal `db:"total_igst" json:"total_igst"`
	TotalCess         decimal.Decimal `db:"total_cess" json:"total_cess"`
	TotalAmount       decimal.Decimal `db:"total_amount" json:"total_amount"`
	Category          GSTRCategory    `db:"category" json:"category"`
	Status            InvoiceStatus   `db:"status" json:"status"`
	FilingPeriod      string          `db:"filing_period" json:"filing_period"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// IsInterState reports whether the invoice crosses state lines, judged
// against the seller profile's state code.
func (i *GSTInvoice) IsInterState(sellerStateCode string) bool {
	return i.PlaceOfSupply != sellerStateCode
}

// TaxBreakdown is a per-head monetary summary.
type TaxBreakdown struct {
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	Cess         decimal.Decimal `json:"cess"`
}

// TotalTax returns cgst+sgst+igst+cess.
func (t TaxBreakdown) TotalTax() decimal.Decimal {
	return t.CGST.Add(t.SGST).Add(t.IGST).Add(t.Cess)
}

// Add returns the element-wise sum of two breakdowns.
func (t TaxBreakdown) Add(o TaxBreakdown) TaxBreakdown {
	return TaxBreakdown{
		TaxableValue: t.TaxableValue.Add(o.TaxableValue),
		CGST:         t.CGST.Add(o.CGST),
		SGST:         t.SGST.Add(o.SGST),
		IGST:         t.IGST.Add(o.IGST),
		Cess:         t.Cess.Add(o.Cess),
	}
}

// GSTFiling represents one return for a (profile, return type, period).
type GSTFiling struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	ProfileID      uuid.UUID       `db:"profile_id" json:"profile_id"`
	ReturnType     ReturnType      `db:"return_type" json:"return_type"`
	Period         string          `db:"period" json:"period"`
	FinancialYear  string          `db:"financial_year" json:"financial_year"`
	Status         FilingStatus    `db:"status" json:"status"`
	DueDate        time.Time       `db:"due_date" json:"due_date"`
	TaxableValue   decimal.Decimal `db:"taxable_value" json:"taxable_value"`
	CGST           decimal.Decimal `db:"cgst" json:"cgst"`
	SGST           decimal.Decimal `db:"sgst" json:"sgst"`
	IGST           decimal.Decimal `db:"igst" json:"igst"`
	Cess           decimal.Decimal `db:"cess" json:"cess"`
	ITCCGST        decimal.Decimal `db:"itc_cgst" json:"itc_cgst"`
	ITCSGST        decimal.Decimal `db:"itc_sgst" json:"itc_sgst"`
	ITCIGST        decimal.Decimal `db:"itc_igst" json:"itc_igst"`
	ITCCess        decimal.Decimal `db:"itc_cess" json:"itc_cess"`
	NetPayable     decimal.Decimal `db:"net_payable" json:"net_payable"`
	Payload        json.RawMessage `db:"payload" json:"payload,omitempty"`
	GeneratedAt    *time.Time      `db:"generated_at" json:"generated_at"`
	ExportedAt     *time.Time      `db:"exported_at" json:"exported_at"`
	FiledAt        *time.Time      `db:"filed_at" json:"filed_at"`
	VerifiedBy     *uuid.UUID      `db:"verified_by" json:"verified_by"`
	VerifiedAt     *time.Time      `db:"verified_at" json:"verified_at"`
	ReviewComments string          `db:"review_comments" json:"review_comments"`
	AckNumber      string          `db:"ack_number" json:"ack_number"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// ITCRecord is one externally reported purchase line from GSTR-2A/2B.
type ITCRecord struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	ProfileID        uuid.UUID       `db:"profile_id" json:"profile_id"`
	RunID            uuid.UUID       `db:"run_id" json:"run_id"`
	Period           string          `db:"period" json:"period"`
	SupplierGSTIN    string          `db:"supplier_gstin" json:"supplier_gstin"`
	SupplierName     string          `db:"supplier_name" json:"supplier_name"`
	InvoiceNumber    string          `db:"invoice_number" json:"invoice_number"`
	InvoiceDate      time.Time       `db:"invoice_date" json:"invoice_date"`
	InvoiceValue     decimal.Decimal `db:"invoice_value" json:"invoice_value"`
	TaxableValue     decimal.Decimal `db:"taxable_value" json:"taxable_value"`
	IGST             decimal.Decimal `db:"igst" json:"igst"`
	CGST             decimal.Decimal `db:"cgst" json:"cgst"`
	SGST             decimal.Decimal `db:"sgst" json:"sgst"`
	Cess             decimal.Decimal `db:"cess" json:"cess"`
	MatchStatus      MatchStatus     `db:"match_status" json:"match_status"`
	MatchedInvoiceID *uuid.UUID      `db:"matched_invoice_id" json:"matched_invoice_id"`
	Eligible         bool            `db:"eligible" json:"eligible"`
	RiskScore        float64         `db:"risk_score" json:"risk_score"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}

// ExternalInvoice is one supplier-reported invoice parsed from a GSTR-2A
// or 2B document, before reconciliation against the purchase register.
type ExternalInvoice struct {
	SupplierGSTIN string          `json:"supplier_gstin"`
	SupplierName  string          `json:"supplier_name"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	InvoiceValue  decimal.Decimal `json:"invoice_value"`
	TaxableValue  decimal.Decimal `json:"taxable_value"`
	IGST          decimal.Decimal `json:"igst"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	Cess          decimal.Decimal `json:"cess"`
}

// HSNCode is a static reference entry mapping an HSN/SAC code to its
// default GST and cess rates.
type HSNCode struct {
	Code        string          `db:"code" json:"code"`
	Description string          `db:"description" json:"description"`
	GSTRate     decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	CessRate    decimal.Decimal `db:"cess_rate" json:"cess_rate"`
}

// Anomaly is one flagged finding from the anomaly scan.
type Anomaly struct {
	Type          AnomalyType `json:"type"`
	Severity      Severity    `json:"severity"`
	InvoiceID     uuid.UUID   `json:"invoice_id"`
	InvoiceNumber string      `json:"invoice_number"`
	Message       string      `json:"message"`
}

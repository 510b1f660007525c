package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"gstpilot/internal/domain"
	"gstpilot/internal/gst"
	"gstpilot/internal/ingest"
	"gstpilot/internal/port"
	"gstpilot/internal/recon"
)

// ImportFormat selects the parser for an uploaded GSTR-2A/2B document.
type ImportFormat string

const (
	ImportFormatJSON ImportFormat = "json"
	ImportFormatXLSX ImportFormat = "xlsx"
)

// ReconOutput is the full result of one reconciliation run.
type ReconOutput struct {
	RunID       uuid.UUID          `json:"run_id"`
	Period      string             `json:"period"`
	Skipped     int                `json:"skipped"`
	Result      *recon.Result      `json:"result"`
	Suggestions []recon.Suggestion `json:"suggestions"`
}

// ReconService ingests supplier-reported data and reconciles it against
// the purchase register. A re-run for a period supersedes the previous
// run's persisted records.
type ReconService interface {
	Run(ctx context.Context, profileID uuid.UUID, period string, format ImportFormat, r io.Reader) (*ReconOutput, error)
	ListRecords(ctx context.Context, profileID uuid.UUID, period string) ([]domain.ITCRecord, error)
	InvoiceRisk(ctx context.Context, profileID, invoiceID uuid.UUID) (*recon.InvoiceRisk, error)
}

type reconService struct {
	invoices port.InvoiceRepository
	itc      port.ITCRepository
}

// NewReconService creates a new ReconService implementation.
func NewReconService(invoices port.InvoiceRepository, itc port.ITCRepository) ReconService {
	return &reconService{invoices: invoices, itc: itc}
}

func (s *reconService) Run(ctx context.Context, profileID uuid.UUID, period string, format ImportFormat, r io.Reader) (*ReconOutput, error) {
	if _, _, err := gst.ParsePeriod(period); err != nil {
		return nil, err
	}

	var parsed *ingest.Result
	var err error
	switch format {
	case ImportFormatJSON:
		parsed, err = ingest.ParseJSON(r)
	case ImportFormatXLSX:
		parsed, err = ingest.ParseXLSX(r)
	default:
		err = fmt.Errorf("unsupported import format %q", format)
	}
	if err != nil {
		return nil, err
	}

	all, err := s.invoices.ListByPeriod(ctx, profileID, period)
	if err != nil {
		return nil, err
	}
	var books []domain.GSTInvoice
	for i := range all {
		if all[i].InvoiceType == domain.InvoiceTypePurchase && all[i].Status != domain.InvoiceStatusCancelled {
			books = append(books, all[i])
		}
	}

	result := recon.Reconcile(books, parsed.Invoices)

	runID := uuid.New()
	records := buildRecords(profileID, runID, period, result)
	if err := s.itc.DeleteByPeriod(ctx, profileID, period); err != nil {
		return nil, err
	}
	if err := s.itc.CreateBatch(ctx, records); err != nil {
		return nil, err
	}

	return &ReconOutput{
		RunID:       runID,
		Period:      period,
		Skipped:     parsed.Skipped,
		Result:      result,
		Suggestions: recon.Suggest(result),
	}, nil
}

func (s *reconService) ListRecords(ctx context.Context, profileID uuid.UUID, period string) ([]domain.ITCRecord, error) {
	return s.itc.ListByPeriod(ctx, profileID, period)
}

func (s *reconService) InvoiceRisk(ctx context.Context, profileID, invoiceID uuid.UUID) (*recon.InvoiceRisk, error) {
	invoice, err := s.invoices.GetByID(ctx, profileID, invoiceID)
	if err != nil {
		return nil, err
	}
	risk := recon.PredictRisk(invoice)
	return &risk, nil
}

// buildRecords flattens a reconciliation result into persistable ITC
// records. Matched credit is eligible; everything else is parked until a
// human resolves it.
func buildRecords(profileID, runID uuid.UUID, period string, result *recon.Result) []domain.ITCRecord {
	var records []domain.ITCRecord

	for _, pair := range result.Matched {
		rec := externalRecord(profileID, runID, period, pair.External)
		rec.MatchStatus = domain.MatchStatusMatched
		invoiceID := pair.Invoice.ID
		rec.MatchedInvoiceID = &invoiceID
		rec.Eligible = true
		records = append(records, rec)
	}
	for _, mm := range result.Mismatched {
		rec := externalRecord(profileID, runID, period, mm.External)
		rec.MatchStatus = mm.Status
		invoiceID := mm.Invoice.ID
		rec.MatchedInvoiceID = &invoiceID
		rec.RiskScore = mm.RiskScore
		records = append(records, rec)
	}
	for i := range result.NotInBooks {
		rec := externalRecord(profileID, runID, period, &result.NotInBooks[i])
		rec.MatchStatus = domain.MatchStatusNotInBooks
		records = append(records, rec)
	}
	return records
}

func externalRecord(profileID, runID uuid.UUID, period string, ext *domain.ExternalInvoice) domain.ITCRecord {
	return domain.ITCRecord{
		ProfileID:     profileID,
		RunID:         runID,
		Period:        period,
		SupplierGSTIN: ext.SupplierGSTIN,
		SupplierName:  ext.SupplierName,
		InvoiceNumber: ext.InvoiceNumber,
		InvoiceDate:   ext.InvoiceDate,
		InvoiceValue:  ext.InvoiceValue,
		TaxableValue:  ext.TaxableValue,
		IGST:          ext.IGST,
		CGST:          ext.CGST,
		SGST:          ext.SGST,
		Cess:          ext.Cess,
	}
}

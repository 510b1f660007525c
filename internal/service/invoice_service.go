package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstpilot/internal/domain"
	"gstpilot/internal/gst"
	"gstpilot/internal/port"
)

// LineItemInput is one invoice line as submitted by the caller. GSTRate
// and CessRate are optional; when absent the HSN reference table decides.
type LineItemInput struct {
	Description string           `json:"description"`
	HSNCode     string           `json:"hsn_code"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	Rate        decimal.Decimal  `json:"rate" binding:"required"`
	GSTRate     *decimal.Decimal `json:"gst_rate"`
	CessRate    *decimal.Decimal `json:"cess_rate"`
}

// CreateInvoiceInput is the DTO for recording an invoice.
type CreateInvoiceInput struct {
	InvoiceNumber     string          `json:"invoice_number" binding:"required"`
	InvoiceDate       time.Time       `json:"invoice_date" binding:"required"`
	InvoiceType       string          `json:"invoice_type"`
	DocumentType      string          `json:"document_type"`
	CounterpartyGSTIN string          `json:"counterparty_gstin"`
	CounterpartyName  string          `json:"counterparty_name"`
	PlaceOfSupply     string          `json:"place_of_supply" binding:"required"`
	IsExport          bool            `json:"is_export"`
	ReverseCharge     bool            `json:"reverse_charge"`
	LineItems         []LineItemInput `json:"line_items" binding:"required"`
}

// InvoiceService defines the invoice recording contract. Creation runs
// the full pipeline: tax computation, category classification and
// filing-period assignment.
type InvoiceService interface {
	Create(ctx context.Context, profileID uuid.UUID, input CreateInvoiceInput) (*domain.GSTInvoice, error)
	GetByID(ctx context.Context, profileID, invoiceID uuid.UUID) (*domain.GSTInvoice, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID, offset, limit int) ([]domain.GSTInvoice, int, error)
	ListByPeriod(ctx context.Context, profileID uuid.UUID, period string) ([]domain.GSTInvoice, error)
	Cancel(ctx context.Context, profileID, invoiceID uuid.UUID) error
	Delete(ctx context.Context, profileID, invoiceID uuid.UUID) error
	DetectAnomalies(ctx context.Context, profileID uuid.UUID) ([]domain.Anomaly, error)
}

type invoiceService struct {
	invoices port.InvoiceRepository
	profiles port.ProfileRepository
	filings  port.FilingRepository
	calc     *gst.Calculator
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(invoices port.InvoiceRepository, profiles port.ProfileRepository, filings port.FilingRepository, calc *gst.Calculator) InvoiceService {
	return &invoiceService{invoices: invoices, profiles: profiles, filings: filings, calc: calc}
}

func (s *invoiceService) Create(ctx context.Context, profileID uuid.UUID, input CreateInvoiceInput) (*domain.GSTInvoice, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if input.CounterpartyGSTIN != "" {
		if _, err := gst.ValidateGSTIN(input.CounterpartyGSTIN); err != nil {
			return nil, err
		}
	}

	lines := make([]gst.LineInput, 0, len(input.LineItems))
	for _, li := range input.LineItems {
		lines = append(lines, gst.LineInput{
			Description: li.Description,
			HSNCode:     li.HSNCode,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
			GSTRate:     li.GSTRate,
			CessRate:    li.CessRate,
		})
	}
	tax, err := s.calc.ComputeInvoice(lines, input.PlaceOfSupply, profile.StateCode)
	if err != nil {
		return nil, err
	}

	invoiceType := domain.InvoiceType(input.InvoiceType)
	if invoiceType == "" {
		invoiceType = domain.InvoiceTypeSales
	}
	documentType := domain.DocumentType(input.DocumentType)
	if documentType == "" {
		documentType = domain.DocumentTypeInvoice
	}

	invoice := &domain.GSTInvoice{
		ProfileID:         profileID,
		InvoiceNumber:     input.InvoiceNumber,
		InvoiceDate:       input.InvoiceDate,
		InvoiceType:       invoiceType,
		DocumentType:      documentType,
		CounterpartyGSTIN: input.CounterpartyGSTIN,
		CounterpartyName:  input.CounterpartyName,
		PlaceOfSupply:     input.PlaceOfSupply,
		IsExport:          input.IsExport,
		ReverseCharge:     input.ReverseCharge,
		LineItems:         tax.Lines,
		TotalTaxableValue: tax.Summary.TaxableValue,
		TotalCGST:         tax.Summary.CGST,
		TotalSGST:         tax.Summary.SGST,
		TotalIGST:         tax.Summary.IGST,
		TotalCess:         tax.Summary.Cess,
		TotalAmount:       tax.TotalAmount,
		Status:            domain.InvoiceStatusFinalized,
		FilingPeriod:      gst.FilingPeriod(input.InvoiceDate),
	}
	invoice.Category = gst.Classify(invoice, profile.StateCode)

	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) GetByID(ctx context.Context, profileID, invoiceID uuid.UUID) (*domain.GSTInvoice, error) {
	return s.invoices.GetByID(ctx, profileID, invoiceID)
}

func (s *invoiceService) ListByProfile(ctx context.Context, profileID uuid.UUID, offset, limit int) ([]domain.GSTInvoice, int, error) {
	return s.invoices.ListByProfile(ctx, profileID, offset, limit)
}

func (s *invoiceService) ListByPeriod(ctx context.Context, profileID uuid.UUID, period string) ([]domain.GSTInvoice, error) {
	if _, _, err := gst.ParsePeriod(period); err != nil {
		return nil, err
	}
	return s.invoices.ListByPeriod(ctx, profileID, period)
}

func (s *invoiceService) Cancel(ctx context.Context, profileID, invoiceID uuid.UUID) error {
	if err := s.ensureMutable(ctx, profileID, invoiceID); err != nil {
		return err
	}
	return s.invoices.UpdateStatus(ctx, profileID, invoiceID, domain.InvoiceStatusCancelled)
}

func (s *invoiceService) Delete(ctx context.Context, profileID, invoiceID uuid.UUID) error {
	if err := s.ensureMutable(ctx, profileID, invoiceID); err != nil {
		return err
	}
	return s.invoices.Delete(ctx, profileID, invoiceID)
}

// ensureMutable rejects changes to an invoice whose period already has a
// filed return. A filed GSTR is on record with the portal; the register
// behind it must not drift.
func (s *invoiceService) ensureMutable(ctx context.Context, profileID, invoiceID uuid.UUID) error {
	invoice, err := s.invoices.GetByID(ctx, profileID, invoiceID)
	if err != nil {
		return err
	}
	for _, rt := range []domain.ReturnType{domain.ReturnGSTR1, domain.ReturnGSTR3B} {
		filing, err := s.filings.GetByPeriod(ctx, profileID, rt, invoice.FilingPeriod)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if filing.Status == domain.FilingStatusFiled {
			return fmt.Errorf("%w: %s period %s", domain.ErrInvoiceFrozen, rt, invoice.FilingPeriod)
		}
	}
	return nil
}

// DetectAnomalies scans the profile's entire invoice history. Duplicate
// invoice numbers can straddle filing periods, so the scan is never
// period-scoped.
func (s *invoiceService) DetectAnomalies(ctx context.Context, profileID uuid.UUID) ([]domain.Anomaly, error) {
	invoices, err := s.invoices.ListAll(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return gst.DetectAnomalies(invoices, time.Now().UTC()), nil
}

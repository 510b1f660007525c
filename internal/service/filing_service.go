package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstpilot/internal/domain"
	"gstpilot/internal/gst"
	"gstpilot/internal/gstr"
	"gstpilot/internal/port"
	"gstpilot/internal/xlsxexport"
)

// GenerateFilingInput is the DTO for generating (or regenerating) a return.
type GenerateFilingInput struct {
	ReturnType string `json:"return_type" binding:"required"`
	Period     string `json:"period" binding:"required"`
}

// ReviewFilingInput is the DTO for the CA review decision.
type ReviewFilingInput struct {
	Approve    bool      `json:"approve"`
	ReviewerID uuid.UUID `json:"reviewer_id" binding:"required"`
	Comments   string    `json:"comments"`
}

// FileFilingInput is the DTO for marking a return as filed with the portal.
type FileFilingInput struct {
	AckNumber string `json:"ack_number" binding:"required"`
}

// FilingService drives the return lifecycle: generate from the invoice
// register, submit for CA review, approve or reject, export the official
// payload, and record the portal acknowledgement.
type FilingService interface {
	Generate(ctx context.Context, profileID uuid.UUID, input GenerateFilingInput) (*domain.GSTFiling, error)
	GetByID(ctx context.Context, profileID, filingID uuid.UUID) (*domain.GSTFiling, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID, offset, limit int) ([]domain.GSTFiling, int, error)
	Submit(ctx context.Context, profileID, filingID uuid.UUID) (*domain.GSTFiling, error)
	Review(ctx context.Context, profileID, filingID uuid.UUID, input ReviewFilingInput) (*domain.GSTFiling, error)
	Export(ctx context.Context, profileID, filingID uuid.UUID) (*domain.GSTFiling, error)
	ExportXLSX(ctx context.Context, w io.Writer, profileID, filingID uuid.UUID) error
	File(ctx context.Context, profileID, filingID uuid.UUID, input FileFilingInput) (*domain.GSTFiling, error)
	Penalty(ctx context.Context, profileID, filingID uuid.UUID, asOf time.Time) (*gst.Penalty, error)
}

type filingService struct {
	filings  port.FilingRepository
	invoices port.InvoiceRepository
	profiles port.ProfileRepository

	// genMu serializes generation per (profile, return, period) so two
	// concurrent requests cannot both pass the find-or-create check.
	genMu sync.Map
}

// NewFilingService creates a new FilingService implementation.
func NewFilingService(filings port.FilingRepository, invoices port.InvoiceRepository, profiles port.ProfileRepository) FilingService {
	return &filingService{filings: filings, invoices: invoices, profiles: profiles}
}

func (s *filingService) Generate(ctx context.Context, profileID uuid.UUID, input GenerateFilingInput) (*domain.GSTFiling, error) {
	returnType := domain.ReturnType(input.ReturnType)
	if returnType != domain.ReturnGSTR1 && returnType != domain.ReturnGSTR3B {
		return nil, domain.ErrUnsupportedReturn
	}
	if _, _, err := gst.ParsePeriod(input.Period); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s/%s", profileID, returnType, input.Period)
	muAny, _ := s.genMu.LoadOrStore(key, &sync.Mutex{})
	mu := muAny.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	filing, err := s.findOrCreate(ctx, profile, returnType, input.Period)
	if err != nil {
		return nil, err
	}
	if !filing.Status.CanTransition(domain.FilingStatusGenerated) {
		return nil, fmt.Errorf("%w: %s -> generated", domain.ErrInvalidTransition, filing.Status)
	}

	invoices, err := s.invoices.ListByPeriod(ctx, profileID, input.Period)
	if err != nil {
		return nil, err
	}

	if err := s.populate(filing, profile, invoices); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	filing.Status = domain.FilingStatusGenerated
	filing.GeneratedAt = &now
	filing.VerifiedBy = nil
	filing.VerifiedAt = nil

	if err := s.filings.Update(ctx, filing); err != nil {
		return nil, err
	}
	return filing, nil
}

func (s *filingService) findOrCreate(ctx context.Context, profile *domain.GSTProfile, returnType domain.ReturnType, period string) (*domain.GSTFiling, error) {
	filing, err := s.filings.GetByPeriod(ctx, profile.ID, returnType, period)
	if err == nil {
		return filing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	fy, err := gst.PeriodFinancialYear(period)
	if err != nil {
		return nil, err
	}
	due, err := gst.DueDate(returnType, period)
	if err != nil {
		return nil, err
	}

	filing = &domain.GSTFiling{
		ProfileID:     profile.ID,
		ReturnType:    returnType,
		Period:        period,
		FinancialYear: fy,
		Status:        domain.FilingStatusDraft,
		DueDate:       due,
	}
	if err := s.filings.Create(ctx, filing); err != nil {
		return nil, err
	}
	return filing, nil
}

// populate aggregates the period's invoices into the filing totals and
// renders the return payload. Only verified and finalized invoices count;
// drafts and extraction output are not reportable. Cancelled sales still
// reach the GSTR-1 builder so doc_issue can count them.
func (s *filingService) populate(filing *domain.GSTFiling, profile *domain.GSTProfile, invoices []domain.GSTInvoice) error {
	var output, itc, zero, reverse domain.TaxBreakdown
	nilExempt := decimal.Zero

	var outward []domain.GSTInvoice
	for i := range invoices {
		inv := &invoices[i]
		reportable := inv.Status == domain.InvoiceStatusVerified || inv.Status == domain.InvoiceStatusFinalized
		if inv.InvoiceType != domain.InvoiceTypePurchase &&
			(reportable || inv.Status == domain.InvoiceStatusCancelled) {
			outward = append(outward, *inv)
		}
		if !reportable {
			continue
		}
		breakdown := domain.TaxBreakdown{
			TaxableValue: inv.TotalTaxableValue,
			CGST:         inv.TotalCGST,
			SGST:         inv.TotalSGST,
			IGST:         inv.TotalIGST,
			Cess:         inv.TotalCess,
		}
		switch {
		case inv.InvoiceType == domain.InvoiceTypePurchase && inv.ReverseCharge:
			reverse = reverse.Add(breakdown)
			itc = itc.Add(breakdown)
		case inv.InvoiceType == domain.InvoiceTypePurchase:
			itc = itc.Add(breakdown)
		case inv.IsExport:
			zero = zero.Add(breakdown)
		case breakdown.TotalTax().IsZero():
			nilExempt = nilExempt.Add(inv.TotalTaxableValue)
		default:
			output = output.Add(breakdown)
		}
	}

	filing.TaxableValue = output.TaxableValue.Add(zero.TaxableValue).Add(nilExempt)
	filing.CGST = output.CGST
	filing.SGST = output.SGST
	filing.IGST = output.IGST
	filing.Cess = output.Cess
	filing.ITCCGST = itc.CGST
	filing.ITCSGST = itc.SGST
	filing.ITCIGST = itc.IGST
	filing.ITCCess = itc.Cess
	filing.NetPayable = gstr.NetPayable(output, itc)

	var payload interface{}
	switch filing.ReturnType {
	case domain.ReturnGSTR1:
		payload = gstr.BuildGSTR1(profile, outward, filing.Period)
	case domain.ReturnGSTR3B:
		penalty := gst.ComputePenalty(filing.DueDate, time.Now().UTC(), output)
		payload = gstr.BuildGSTR3B(&gstr.GSTR3BInput{
			Profile:   profile,
			Period:    filing.Period,
			Outward:   output,
			Zero:      zero,
			NilExempt: nilExempt,
			Reverse:   reverse,
			ITC:       itc,
			Interest:  penalty.Interest,
			LateFee:   penalty.LateFee,
		})
	default:
		return domain.ErrUnsupportedReturn
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", filing.ReturnType, err)
	}
	filing.Payload = raw
	return nil
}

func (s *filingService) GetByID(ctx context.Context, profileID, filingID uuid.UUID) (*domain.GSTFiling, error) {
	return s.filings.GetByID(ctx, profileID, filingID)
}

func (s *filingService) ListByProfile(ctx context.Context, profileID uuid.UUID, offset, limit int) ([]domain.GSTFiling, int, error) {
	return s.filings.ListByProfile(ctx, profileID, offset, limit)
}

func (s *filingService) Submit(ctx context.Context, profileID, filingID uuid.UUID) (*domain.GSTFiling, error) {
	return s.transition(ctx, profileID, filingID, domain.FilingStatusPendingReview, nil)
}

func (s *filingService) Review(ctx context.Context, profileID, filingID uuid.UUID, input ReviewFilingInput) (*domain.GSTFiling, error) {
	target := domain.FilingStatusCAVerified
	if !input.Approve {
		target = domain.FilingStatusGenerated
	}
	return s.transition(ctx, profileID, filingID, target, func(filing *domain.GSTFiling) {
		filing.ReviewComments = input.Comments
		if input.Approve {
			now := time.Now().UTC()
			reviewer := input.ReviewerID
			filing.VerifiedBy = &reviewer
			filing.VerifiedAt = &now
		} else {
			filing.VerifiedBy = nil
			filing.VerifiedAt = nil
		}
	})
}

func (s *filingService) Export(ctx context.Context, profileID, filingID uuid.UUID) (*domain.GSTFiling, error) {
	return s.transition(ctx, profileID, filingID, domain.FilingStatusExported, func(filing *domain.GSTFiling) {
		now := time.Now().UTC()
		filing.ExportedAt = &now
	})
}

func (s *filingService) ExportXLSX(ctx context.Context, w io.Writer, profileID, filingID uuid.UUID) error {
	filing, err := s.filings.GetByID(ctx, profileID, filingID)
	if err != nil {
		return err
	}
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return err
	}
	invoices, err := s.invoices.ListByPeriod(ctx, profileID, filing.Period)
	if err != nil {
		return err
	}
	return xlsxexport.WriteFiling(w, profile, filing.Period, invoices)
}

func (s *filingService) File(ctx context.Context, profileID, filingID uuid.UUID, input FileFilingInput) (*domain.GSTFiling, error) {
	return s.transition(ctx, profileID, filingID, domain.FilingStatusFiled, func(filing *domain.GSTFiling) {
		now := time.Now().UTC()
		filing.FiledAt = &now
		filing.AckNumber = input.AckNumber
	})
}

// Penalty computes what filing the return on asOf would cost in late fee
// and interest. It never mutates the filing.
func (s *filingService) Penalty(ctx context.Context, profileID, filingID uuid.UUID, asOf time.Time) (*gst.Penalty, error) {
	filing, err := s.filings.GetByID(ctx, profileID, filingID)
	if err != nil {
		return nil, err
	}
	liability := domain.TaxBreakdown{
		TaxableValue: filing.TaxableValue,
		CGST:         filing.CGST,
		SGST:         filing.SGST,
		IGST:         filing.IGST,
		Cess:         filing.Cess,
	}
	penalty := gst.ComputePenalty(filing.DueDate, asOf, liability)
	return &penalty, nil
}

func (s *filingService) transition(ctx context.Context, profileID, filingID uuid.UUID, target domain.FilingStatus, mutate func(*domain.GSTFiling)) (*domain.GSTFiling, error) {
	filing, err := s.filings.GetByID(ctx, profileID, filingID)
	if err != nil {
		return nil, err
	}
	if !filing.Status.CanTransition(target) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, filing.Status, target)
	}
	filing.Status = target
	if mutate != nil {
		mutate(filing)
	}
	if err := s.filings.Update(ctx, filing); err != nil {
		return nil, err
	}
	return filing, nil
}

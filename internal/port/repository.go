package port

import (
	"context"

	"github.com/google/uuid"

	"gstpilot/internal/domain"
)

// ProfileRepository defines the contract for GST profile persistence.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.GSTProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GSTProfile, error)
	GetByGSTIN(ctx context.Context, gstin string) (*domain.GSTProfile, error)
	List(ctx context.Context, offset, limit int) ([]domain.GSTProfile, int, error)
	Update(ctx context.Context, profile *domain.GSTProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvoiceRepository defines the contract for GST invoice persistence.
// All query methods include profileID so one taxpayer's books never leak
// into another's.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.GSTInvoice) error
	GetByID(ctx context.Context, profileID, invoiceID uuid.UUID) (*domain.GSTInvoice, error)
	ListByPeriod(ctx context.Context, profileID uuid.UUID, period string) ([]domain.GSTInvoice, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID, offset, limit int) ([]domain.GSTInvoice, int, error)
	ListAll(ctx context.Context, profileID uuid.UUID) ([]domain.GSTInvoice, error)
	Update(ctx context.Context, invoice *domain.GSTInvoice) error
	UpdateStatus(ctx context.Context, profileID, invoiceID uuid.UUID, status domain.InvoiceStatus) error
	Delete(ctx context.Context, profileID, invoiceID uuid.UUID) error
}

// FilingRepository defines the contract for filing persistence. A filing
// is unique per (profile, return type, period).
type FilingRepository interface {
	Create(ctx context.Context, filing *domain.GSTFiling) error
	GetByID(ctx context.Context, profileID, filingID uuid.UUID) (*domain.GSTFiling, error)
	GetByPeriod(ctx context.Context, profileID uuid.UUID, returnType domain.ReturnType, period string) (*domain.GSTFiling, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID, offset, limit int) ([]domain.GSTFiling, int, error)
	Update(ctx context.Context, filing *domain.GSTFiling) error
}

// ITCRepository defines the contract for reconciliation record
// persistence. Records are grouped by run so a re-run supersedes rather
// than duplicates.
type ITCRepository interface {
	CreateBatch(ctx context.Context, records []domain.ITCRecord) error
	ListByRun(ctx context.Context, profileID, runID uuid.UUID) ([]domain.ITCRecord, error)
	ListByPeriod(ctx context.Context, profileID uuid.UUID, period string) ([]domain.ITCRecord, error)
	DeleteByPeriod(ctx context.Context, profileID uuid.UUID, period string) error
}

// HSNRepository defines the contract for HSN rate reference data.
type HSNRepository interface {
	LoadAll(ctx context.Context) ([]domain.HSNCode, error)
	GetByCode(ctx context.Context, code string) (*domain.HSNCode, error)
}

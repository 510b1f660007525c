package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstpilot/internal/domain"
	"gstpilot/internal/port"
)

type filingRepo struct {
	db *sqlx.DB
}

// NewFilingRepo creates a new PostgreSQL-backed FilingRepository.
func NewFilingRepo(db *sqlx.DB) port.FilingRepository {
	return &filingRepo{db: db}
}

func (r *filingRepo) Create(ctx context.Context, filing *domain.GSTFiling) error {
	filing.ID = uuid.New()
	now := time.Now().UTC()
	filing.CreatedAt = now
	filing.UpdatedAt = now

	query := `INSERT INTO gst_filings
		(id, profile_id, return_type, period, financial_year, status, due_date,
		 taxable_value, cgst, sgst, igst, cess,
		 itc_cgst, itc_sgst, itc_igst, itc_cess, net_payable,
		 payload, generated_at, exported_at, filed_at,
		 verified_by, verified_at, review_comments, ack_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`

	_, err := r.db.ExecContext(ctx, query,
		filing.ID, filing.ProfileID, filing.ReturnType, filing.Period,
		filing.FinancialYear, filing.Status, filing.DueDate,
		filing.TaxableValue, filing.CGST, filing.SGST, filing.IGST, filing.Cess,
		filing.ITCCGST, filing.ITCSGST, filing.ITCIGST, filing.ITCCess, filing.NetPayable,
		filing.Payload, filing.GeneratedAt, filing.ExportedAt, filing.FiledAt,
		filing.VerifiedBy, filing.VerifiedAt, filing.ReviewComments, filing.AckNumber,
		filing.CreatedAt, filing.UpdatedAt)
	if err != nil {
		return fmt.Errorf("filingRepo.Create: %w", err)
	}
	return nil
}

func (r *filingRepo) GetByID(ctx context.Context, profileID, filingID uuid.UUID) (*domain.GSTFiling, error) {
	var filing domain.GSTFiling
	err := r.db.GetContext(ctx, &filing,
		"SELECT * FROM gst_filings WHERE profile_id = $1 AND id = $2", profileID, filingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("filingRepo.GetByID: %w", err)
	}
	return &filing, nil
}

func (r *filingRepo) GetByPeriod(ctx context.Context, profileID uuid.UUID, returnType domain.ReturnType, period string) (*domain.GSTFiling, error) {
	var filing domain.GSTFiling
	err := r.db.GetContext(ctx, &filing,
		`SELECT * FROM gst_filings
		 WHERE profile_id = $1 AND return_type = $2 AND period = $3`,
		profileID, returnType, period)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("filingRepo.GetByPeriod: %w", err)
	}
	return &filing, nil
}

func (r *filingRepo) ListByProfile(ctx context.Context, profileID uuid.UUID, offset, limit int) ([]domain.GSTFiling, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM gst_filings WHERE profile_id = $1", profileID)
	if err != nil {
		return nil, 0, fmt.Errorf("filingRepo.ListByProfile count: %w", err)
	}

	var filings []domain.GSTFiling
	err = r.db.SelectContext(ctx, &filings,
		`SELECT * FROM gst_filings WHERE profile_id = $1
		 ORDER BY period DESC, return_type LIMIT $2 OFFSET $3`,
		profileID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("filingRepo.ListByProfile: %w", err)
	}
	return filings, total, nil
}

func (r *filingRepo) Update(ctx context.Context, filing *domain.GSTFiling) error {
	filing.UpdatedAt = time.Now().UTC()
	query := `UPDATE gst_filings SET
		status = $1, due_date = $2,
		taxable_value = $3, cgst = $4, sgst = $5, igst = $6, cess = $7,
		itc_cgst = $8, itc_sgst = $9, itc_igst = $10, itc_cess = $11, net_payable = $12,
		payload = $13, generated_at = $14, exported_at = $15, filed_at = $16,
		verified_by = $17, verified_at = $18, review_comments = $19, ack_number = $20,
		updated_at = $21
		WHERE profile_id = $22 AND id = $23`
	result, err := r.db.ExecContext(ctx, query,
		filing.Status, filing.DueDate,
		filing.TaxableValue, filing.CGST, filing.SGST, filing.IGST, filing.Cess,
		filing.ITCCGST, filing.ITCSGST, filing.ITCIGST, filing.ITCCess, filing.NetPayable,
		filing.Payload, filing.GeneratedAt, filing.ExportedAt, filing.FiledAt,
		filing.VerifiedBy, filing.VerifiedAt, filing.ReviewComments, filing.AckNumber,
		filing.UpdatedAt, filing.ProfileID, filing.ID)
	if err != nil {
		return fmt.Errorf("filingRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

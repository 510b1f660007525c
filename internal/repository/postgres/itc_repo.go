package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstpilot/internal/domain"
	"gstpilot/internal/port"
)

type itcRepo struct {
	db *sqlx.DB
}

// NewITCRepo creates a new PostgreSQL-backed ITCRepository.
func NewITCRepo(db *sqlx.DB) port.ITCRepository {
	return &itcRepo{db: db}
}

func (r *itcRepo) CreateBatch(ctx context.Context, records []domain.ITCRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := range records {
		records[i].ID = uuid.New()
		records[i].CreatedAt = now
	}

	query := `INSERT INTO itc_records
		(id, profile_id, run_id, period, supplier_gstin, supplier_name,
		 invoice_number, invoice_date, invoice_value, taxable_value,
		 igst, cgst, sgst, cess, match_status, matched_invoice_id,
		 eligible, risk_score, created_at)
		VALUES (:id, :profile_id, :run_id, :period, :supplier_gstin, :supplier_name,
		 :invoice_number, :invoice_date, :invoice_value, :taxable_value,
		 :igst, :cgst, :sgst, :cess, :match_status, :matched_invoice_id,
		 :eligible, :risk_score, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, records); err != nil {
		return fmt.Errorf("itcRepo.CreateBatch: %w", err)
	}
	return nil
}

func (r *itcRepo) ListByRun(ctx context.Context, profileID, runID uuid.UUID) ([]domain.ITCRecord, error) {
	var records []domain.ITCRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM itc_records
		 WHERE profile_id = $1 AND run_id = $2
		 ORDER BY supplier_gstin, invoice_number`, profileID, runID)
	if err != nil {
		return nil, fmt.Errorf("itcRepo.ListByRun: %w", err)
	}
	return records, nil
}

func (r *itcRepo) ListByPeriod(ctx context.Context, profileID uuid.UUID, period string) ([]domain.ITCRecord, error) {
	var records []domain.ITCRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM itc_records
		 WHERE profile_id = $1 AND period = $2
		 ORDER BY supplier_gstin, invoice_number`, profileID, period)
	if err != nil {
		return nil, fmt.Errorf("itcRepo.ListByPeriod: %w", err)
	}
	return records, nil
}

func (r *itcRepo) DeleteByPeriod(ctx context.Context, profileID uuid.UUID, period string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM itc_records WHERE profile_id = $1 AND period = $2", profileID, period)
	if err != nil {
		return fmt.Errorf("itcRepo.DeleteByPeriod: %w", err)
	}
	return nil
}

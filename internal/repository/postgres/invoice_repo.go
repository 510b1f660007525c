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

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.GSTInvoice) error {
	invoice.ID = uuid.New()
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	query := `INSERT INTO gst_invoices
		(id, profile_id, invoice_number, invoice_date, invoice_type, document_type,
		 counterparty_gstin, counterparty_name, place_of_supply, is_export, reverse_charge,
		 line_items, total_taxable_value, total_cgst, total_sgst, total_igst, total_cess,
		 total_amount, category, status, filing_period, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`

	_, err := r.db.ExecContext(ctx, query,
		invoice.ID, invoice.ProfileID, invoice.InvoiceNumber, invoice.InvoiceDate,
		invoice.InvoiceType, invoice.DocumentType,
		invoice.CounterpartyGSTIN, invoice.CounterpartyName, invoice.PlaceOfSupply,
		invoice.IsExport, invoice.ReverseCharge, invoice.LineItems,
		invoice.TotalTaxableValue, invoice.TotalCGST, invoice.TotalSGST,
		invoice.TotalIGST, invoice.TotalCess, invoice.TotalAmount,
		invoice.Category, invoice.Status, invoice.FilingPeriod,
		invoice.CreatedAt, invoice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, profileID, invoiceID uuid.UUID) (*domain.GSTInvoice, error) {
	var invoice domain.GSTInvoice
	err := r.db.GetContext(ctx, &invoice,
		"SELECT * FROM gst_invoices WHERE profile_id = $1 AND id = $2", profileID, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepo) ListByPeriod(ctx context.Context, profileID uuid.UUID, period string) ([]domain.GSTInvoice, error) {
	var invoices []domain.GSTInvoice
	err := r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM gst_invoices
		 WHERE profile_id = $1 AND filing_period = $2
		 ORDER BY invoice_date, invoice_number`, profileID, period)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByPeriod: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) ListByProfile(ctx context.Context, profileID uuid.UUID, offset, limit int) ([]domain.GSTInvoice, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM gst_invoices WHERE profile_id = $1", profileID)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByProfile count: %w", err)
	}

	var invoices []domain.GSTInvoice
	err = r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM gst_invoices WHERE profile_id = $1
		 ORDER BY invoice_date DESC, invoice_number LIMIT $2 OFFSET $3`,
		profileID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByProfile: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ListAll(ctx context.Context, profileID uuid.UUID) ([]domain.GSTInvoice, error) {
	var invoices []domain.GSTInvoice
	err := r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM gst_invoices WHERE profile_id = $1
		 ORDER BY invoice_date, invoice_number`, profileID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListAll: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) Update(ctx context.Context, invoice *domain.GSTInvoice) error {
	invoice.UpdatedAt = time.Now().UTC()
	query := `UPDATE gst_invoices SET
		invoice_number = $1, invoice_date = $2, invoice_type = $3, document_type = $4,
		counterparty_gstin = $5, counterparty_name = $6, place_of_supply = $7,
		is_export = $8, reverse_charge = $9, line_items = $10,
		total_taxable_value = $11, total_cgst = $12, total_sgst = $13,
		total_igst = $14, total_cess = $15, total_amount = $16,
		category = $17, status = $18, filing_period = $19, updated_at = $20
		WHERE profile_id = $21 AND id = $22`
	result, err := r.db.ExecContext(ctx, query,
		invoice.InvoiceNumber, invoice.InvoiceDate, invoice.InvoiceType, invoice.DocumentType,
		invoice.CounterpartyGSTIN, invoice.CounterpartyName, invoice.PlaceOfSupply,
		invoice.IsExport, invoice.ReverseCharge, invoice.LineItems,
		invoice.TotalTaxableValue, invoice.TotalCGST, invoice.TotalSGST,
		invoice.TotalIGST, invoice.TotalCess, invoice.TotalAmount,
		invoice.Category, invoice.Status, invoice.FilingPeriod, invoice.UpdatedAt,
		invoice.ProfileID, invoice.ID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, profileID, invoiceID uuid.UUID, status domain.InvoiceStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE gst_invoices SET status = $1, updated_at = $2
		 WHERE profile_id = $3 AND id = $4`,
		status, time.Now().UTC(), profileID, invoiceID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, profileID, invoiceID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM gst_invoices WHERE profile_id = $1 AND id = $2", profileID, invoiceID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

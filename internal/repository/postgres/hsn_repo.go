package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gstpilot/internal/domain"
	"gstpilot/internal/port"
)

type hsnRepo struct {
	db *sqlx.DB
}

// NewHSNRepo creates a new PostgreSQL-backed HSNRepository.
func NewHSNRepo(db *sqlx.DB) port.HSNRepository {
	return &hsnRepo{db: db}
}

func (r *hsnRepo) LoadAll(ctx context.Context) ([]domain.HSNCode, error) {
	var codes []domain.HSNCode
	err := r.db.SelectContext(ctx, &codes,
		`SELECT code, description, gst_rate, cess_rate
		 FROM hsn_codes ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("hsnRepo.LoadAll: %w", err)
	}
	return codes, nil
}

func (r *hsnRepo) GetByCode(ctx context.Context, code string) (*domain.HSNCode, error) {
	var hsn domain.HSNCode
	err := r.db.GetContext(ctx, &hsn,
		`SELECT code, description, gst_rate, cess_rate
		 FROM hsn_codes WHERE code = $1`, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("hsnRepo.GetByCode: %w", err)
	}
	return &hsn, nil
}

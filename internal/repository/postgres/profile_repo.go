package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstpilot/internal/domain"
	"gstpilot/internal/port"
)

type profileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo creates a new PostgreSQL-backed ProfileRepository.
func NewProfileRepo(db *sqlx.DB) port.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.GSTProfile) error {
	profile.ID = uuid.New()
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query := `INSERT INTO gst_profiles
		(id, gstin, legal_name, business_name, state, state_code, filing_frequency,
		 turnover_category, composition_dealer, address, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.GSTIN, profile.LegalName, profile.BusinessName,
		profile.State, profile.StateCode, profile.FilingFrequency,
		profile.TurnoverCategory, profile.CompositionDealer,
		profile.Address, profile.Email, profile.Phone,
		profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "gstin") {
			return domain.ErrDuplicateGSTIN
		}
		return fmt.Errorf("profileRepo.Create: %w", err)
	}
	return nil
}

func (r *profileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.GSTProfile, error) {
	var profile domain.GSTProfile
	err := r.db.GetContext(ctx, &profile, "SELECT * FROM gst_profiles WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("profileRepo.GetByID: %w", err)
	}
	return &profile, nil
}

func (r *profileRepo) GetByGSTIN(ctx context.Context, gstin string) (*domain.GSTProfile, error) {
	var profile domain.GSTProfile
	err := r.db.GetContext(ctx, &profile, "SELECT * FROM gst_profiles WHERE gstin = $1", gstin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("profileRepo.GetByGSTIN: %w", err)
	}
	return &profile, nil
}

func (r *profileRepo) List(ctx context.Context, offset, limit int) ([]domain.GSTProfile, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM gst_profiles")
	if err != nil {
		return nil, 0, fmt.Errorf("profileRepo.List count: %w", err)
	}

	var profiles []domain.GSTProfile
	err = r.db.SelectContext(ctx, &profiles,
		"SELECT * FROM gst_profiles ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("profileRepo.List: %w", err)
	}
	return profiles, total, nil
}

func (r *profileRepo) Update(ctx context.Context, profile *domain.GSTProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	query := `UPDATE gst_profiles SET
		legal_name = $1, business_name = $2, state = $3, state_code = $4,
		filing_frequency = $5, turnover_category = $6, composition_dealer = $7,
		address = $8, email = $9, phone = $10, updated_at = $11
		WHERE id = $12`
	result, err := r.db.ExecContext(ctx, query,
		profile.LegalName, profile.BusinessName, profile.State, profile.StateCode,
		profile.FilingFrequency, profile.TurnoverCategory, profile.CompositionDealer,
		profile.Address, profile.Email, profile.Phone, profile.UpdatedAt, profile.ID)
	if err != nil {
		return fmt.Errorf("profileRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM gst_profiles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("profileRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

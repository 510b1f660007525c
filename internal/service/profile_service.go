package service

import (
	"context"

	"github.com/google/uuid"

	"gstpilot/internal/domain"
	"gstpilot/internal/gst"
	"gstpilot/internal/port"
)

// CreateProfileInput is the DTO for registering a taxpayer profile.
type CreateProfileInput struct {
	GSTIN             string `json:"gstin" binding:"required"`
	LegalName         string `json:"legal_name" binding:"required"`
	BusinessName      string `json:"business_name"`
	FilingFrequency   string `json:"filing_frequency"`
	TurnoverCategory  string `json:"turnover_category"`
	CompositionDealer bool   `json:"composition_dealer"`
	Address           string `json:"address"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
}

// UpdateProfileInput is the DTO for updating a taxpayer profile.
type UpdateProfileInput struct {
	LegalName         *string `json:"legal_name"`
	BusinessName      *string `json:"business_name"`
	FilingFrequency   *string `json:"filing_frequency"`
	TurnoverCategory  *string `json:"turnover_category"`
	CompositionDealer *bool   `json:"composition_dealer"`
	Address           *string `json:"address"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
}

// ProfileService defines the taxpayer profile management contract.
type ProfileService interface {
	Create(ctx context.Context, input CreateProfileInput) (*domain.GSTProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GSTProfile, error)
	List(ctx context.Context, offset, limit int) ([]domain.GSTProfile, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*domain.GSTProfile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type profileService struct {
	repo    port.ProfileRepository
	filings port.FilingRepository
}

// NewProfileService creates a new ProfileService implementation.
func NewProfileService(repo port.ProfileRepository, filings port.FilingRepository) ProfileService {
	return &profileService{repo: repo, filings: filings}
}

func (s *profileService) Create(ctx context.Context, input CreateProfileInput) (*domain.GSTProfile, error) {
	details, err := gst.ValidateGSTIN(input.GSTIN)
	if err != nil {
		return nil, err
	}

	frequency := domain.FilingFrequency(input.FilingFrequency)
	if frequency == "" {
		frequency = domain.FilingMonthly
	}

	profile := &domain.GSTProfile{
		GSTIN:            details.GSTIN,
		LegalName:        input.LegalName,
		BusinessName:     input.BusinessName,
		State:            details.StateName,
		StateCode:        details.StateCode,
		FilingFrequency:  frequency,
		TurnoverCategory: input.TurnoverCategory,
		CompositionDealer: input.CompositionDealer,
		Address:          input.Address,
		Email:            input.Email,
		Phone:            input.Phone,
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) GetByID(ctx context.Context, id uuid.UUID) (*domain.GSTProfile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *profileService) List(ctx context.Context, offset, limit int) ([]domain.GSTProfile, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *profileService) Update(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*domain.GSTProfile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.LegalName != nil {
		profile.LegalName = *input.LegalName
	}
	if input.BusinessName != nil {
		profile.BusinessName = *input.BusinessName
	}
	if input.FilingFrequency != nil {
		profile.FilingFrequency = domain.FilingFrequency(*input.FilingFrequency)
	}
	if input.TurnoverCategory != nil {
		profile.TurnoverCategory = *input.TurnoverCategory
	}
	if input.CompositionDealer != nil {
		profile.CompositionDealer = *input.CompositionDealer
	}
	if input.Address != nil {
		profile.Address = *input.Address
	}
	if input.Email != nil {
		profile.Email = *input.Email
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete removes a profile. A profile with any filing on record is part
// of the statutory trail and cannot be deleted.
func (s *profileService) Delete(ctx context.Context, id uuid.UUID) error {
	_, total, err := s.filings.ListByProfile(ctx, id, 0, 1)
	if err != nil {
		return err
	}
	if total > 0 {
		return domain.ErrProfileHasFilings
	}
	return s.repo.Delete(ctx, id)
}

package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstpilot/internal/domain"
)

// MockFilingRepo is a mock implementation of port.FilingRepository.
type MockFilingRepo struct {
	mock.Mock
}

func (m *MockFilingRepo) Create(ctx context.Context, filing *domain.GSTFiling) error {
	args := m.Called(ctx, filing)
	return args.Error(0)
}

func (m *MockFilingRepo) GetByID(ctx context.Context, profileID, filingID uuid.UUID) (*domain.GSTFiling, error) {
	args := m.Called(ctx, profileID, filingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTFiling), args.Error(1)
}

func (m *MockFilingRepo) GetByPeriod(ctx context.Context, profileID uuid.UUID, returnType domain.ReturnType, period string) (*domain.GSTFiling, error) {
	args := m.Called(ctx, profileID, returnType, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTFiling), args.Error(1)
}

func (m *MockFilingRepo) ListByProfile(ctx context.Context, profileID uuid.UUID, offset, limit int) ([]domain.GSTFiling, int, error) {
	args := m.Called(ctx, profileID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.GSTFiling), args.Int(1), args.Error(2)
}

func (m *MockFilingRepo) Update(ctx context.Context, filing *domain.GSTFiling) error {
	args := m.Called(ctx, filing)
	return args.Error(0)
}

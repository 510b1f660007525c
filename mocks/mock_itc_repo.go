package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstpilot/internal/domain"
)

// MockITCRepo is a mock implementation of port.ITCRepository.
type MockITCRepo struct {
	mock.Mock
}

func (m *MockITCRepo) CreateBatch(ctx context.Context, records []domain.ITCRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockITCRepo) ListByRun(ctx context.Context, profileID, runID uuid.UUID) ([]domain.ITCRecord, error) {
	args := m.Called(ctx, profileID, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ITCRecord), args.Error(1)
}

func (m *MockITCRepo) ListByPeriod(ctx context.Context, profileID uuid.UUID, period string) ([]domain.ITCRecord, error) {
	args := m.Called(ctx, profileID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ITCRecord), args.Error(1)
}

func (m *MockITCRepo) DeleteByPeriod(ctx context.Context, profileID uuid.UUID, period string) error {
	args := m.Called(ctx, profileID, period)
	return args.Error(0)
}

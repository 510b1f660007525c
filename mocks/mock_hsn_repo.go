package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstpilot/internal/domain"
)

// MockHSNRepo is a mock implementation of port.HSNRepository.
type MockHSNRepo struct {
	mock.Mock
}

func (m *MockHSNRepo) LoadAll(ctx context.Context) ([]domain.HSNCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HSNCode), args.Error(1)
}

func (m *MockHSNRepo) GetByCode(ctx context.Context, code string) (*domain.HSNCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HSNCode), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstpilot/internal/domain"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, invoice *domain.GSTInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, profileID, invoiceID uuid.UUID) (*domain.GSTInvoice, error) {
	args := m.Called(ctx, profileID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTInvoice), args.Error(1)
}

func (m *MockInvoiceRepo) ListByPeriod(ctx context.Context, profileID uuid.UUID, period string) ([]domain.GSTInvoice, error) {
	args := m.Called(ctx, profileID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GSTInvoice), args.Error(1)
}

func (m *MockInvoiceRepo) ListByProfile(ctx context.Context, profileID uuid.UUID, offset, limit int) ([]domain.GSTInvoice, int, error) {
	args := m.Called(ctx, profileID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.GSTInvoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepo) ListAll(ctx context.Context, profileID uuid.UUID) ([]domain.GSTInvoice, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GSTInvoice), args.Error(1)
}

func (m *MockInvoiceRepo) Update(ctx context.Context, invoice *domain.GSTInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepo) UpdateStatus(ctx context.Context, profileID, invoiceID uuid.UUID, status domain.InvoiceStatus) error {
	args := m.Called(ctx, profileID, invoiceID, status)
	return args.Error(0)
}

func (m *MockInvoiceRepo) Delete(ctx context.Context, profileID, invoiceID uuid.UUID) error {
	args := m.Called(ctx, profileID, invoiceID)
	return args.Error(0)
}

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstpilot/internal/domain"
	"gstpilot/internal/gst"
	"gstpilot/internal/service"
	"gstpilot/mocks"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func maharashtraProfile(id uuid.UUID) *domain.GSTProfile {
	return &domain.GSTProfile{
		ID:        id,
		GSTIN:     "27AAAPL1234C1ZE",
		LegalName: "Lakshmi Traders Pvt Ltd",
		State:     "Maharashtra",
		StateCode: "27",
	}
}

func newInvoiceService(invoices *mocks.MockInvoiceRepo, profiles *mocks.MockProfileRepo) service.InvoiceService {
	return newInvoiceServiceWithFilings(invoices, profiles, new(mocks.MockFilingRepo))
}

func newInvoiceServiceWithFilings(invoices *mocks.MockInvoiceRepo, profiles *mocks.MockProfileRepo, filings *mocks.MockFilingRepo) service.InvoiceService {
	calc := gst.NewCalculator(gst.NewHSNLookup(nil))
	return service.NewInvoiceService(invoices, profiles, filings, calc)
}

func TestInvoiceService_Create_ComputesAndClassifies(t *testing.T) {
	invoices := new(mocks.MockInvoiceRepo)
	profiles := new(mocks.MockProfileRepo)
	svc := newInvoiceService(invoices, profiles)

	profileID := uuid.New()
	profiles.On("GetByID", mock.Anything, profileID).Return(maharashtraProfile(profileID), nil)
	invoices.On("Create", mock.Anything, mock.AnythingOfType("*domain.GSTInvoice")).Return(nil)

	invoice, err := svc.Create(context.Background(), profileID, service.CreateInvoiceInput{
		InvoiceNumber:     "INV-1",
		InvoiceDate:       time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		CounterpartyGSTIN: "27AAAPL1234C1ZE",
		CounterpartyName:  "Acme Industries",
		PlaceOfSupply:     "27",
		LineItems: []service.LineItemInput{
			{Description: "Widgets", HSNCode: "8471", Quantity: dec("2"), Rate: dec("500"), GSTRate: decPtr("18")},
		},
	})

	require.NoError(t, err)
	assert.True(t, invoice.TotalTaxableValue.Equal(dec("1000")))
	assert.True(t, invoice.TotalCGST.Equal(dec("90")))
	assert.True(t, invoice.TotalSGST.Equal(dec("90")))
	assert.True(t, invoice.TotalIGST.IsZero())
	assert.True(t, invoice.TotalAmount.Equal(dec("1180")))
	assert.Equal(t, domain.CategoryB2B, invoice.Category)
	assert.Equal(t, "072025", invoice.FilingPeriod)
	invoices.AssertExpectations(t)
}

func TestInvoiceService_Create_InterStateUnregistered(t *testing.T) {
	invoices := new(mocks.MockInvoiceRepo)
	profiles := new(mocks.MockProfileRepo)
	svc := newInvoiceService(invoices, profiles)

	profileID := uuid.New()
	profiles.On("GetByID", mock.Anything, profileID).Return(maharashtraProfile(profileID), nil)
	invoices.On("Create", mock.Anything, mock.AnythingOfType("*domain.GSTInvoice")).Return(nil)

	invoice, err := svc.Create(context.Background(), profileID, service.CreateInvoiceInput{
		InvoiceNumber: "INV-2",
		InvoiceDate:   time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		PlaceOfSupply: "29",
		LineItems: []service.LineItemInput{
			{Description: "Machinery", Quantity: dec("1"), Rate: dec("300000"), GSTRate: decPtr("18")},
		},
	})

	require.NoError(t, err)
	assert.True(t, invoice.TotalIGST.Equal(dec("54000")))
	assert.True(t, invoice.TotalCGST.IsZero())
	// inter-state, unregistered buyer, above the large-invoice threshold
	assert.Equal(t, domain.CategoryB2CL, invoice.Category)
}

func TestInvoiceService_Create_BadCounterpartyGSTIN(t *testing.T) {
	invoices := new(mocks.MockInvoiceRepo)
	profiles := new(mocks.MockProfileRepo)
	svc := newInvoiceService(invoices, profiles)

	profileID := uuid.New()
	profiles.On("GetByID", mock.Anything, profileID).Return(maharashtraProfile(profileID), nil)

	invoice, err := svc.Create(context.Background(), profileID, service.CreateInvoiceInput{
		InvoiceNumber:     "INV-3",
		InvoiceDate:       time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		CounterpartyGSTIN: "INVALID",
		PlaceOfSupply:     "27",
		LineItems: []service.LineItemInput{
			{Quantity: dec("1"), Rate: dec("100")},
		},
	})

	assert.Nil(t, invoice)
	assert.ErrorIs(t, err, domain.ErrInvalidGSTINLength)
	invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_EmptyLines(t *testing.T) {
	invoices := new(mocks.MockInvoiceRepo)
	profiles := new(mocks.MockProfileRepo)
	svc := newInvoiceService(invoices, profiles)

	profileID := uuid.New()
	profiles.On("GetByID", mock.Anything, profileID).Return(maharashtraProfile(profileID), nil)

	invoice, err := svc.Create(context.Background(), profileID, service.CreateInvoiceInput{
		InvoiceNumber: "INV-4",
		InvoiceDate:   time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		PlaceOfSupply: "27",
	})

	assert.Nil(t, invoice)
	assert.ErrorIs(t, err, domain.ErrEmptyLineItems)
}

func TestInvoiceService_Cancel_FrozenAfterFiling(t *testing.T) {
	invoices := new(mocks.MockInvoiceRepo)
	profiles := new(mocks.MockProfileRepo)
	filings := new(mocks.MockFilingRepo)
	svc := newInvoiceServiceWithFilings(invoices, profiles, filings)

	profileID := uuid.New()
	inv := salesInvoice(profileID, "S-1")
	invoices.On("GetByID", mock.Anything, profileID, inv.ID).Return(&inv, nil)
	filings.On("GetByPeriod", mock.Anything, profileID, domain.ReturnGSTR1, "072025").
		Return(filingWith(profileID, domain.FilingStatusFiled), nil)

	err := svc.Cancel(context.Background(), profileID, inv.ID)

	assert.ErrorIs(t, err, domain.ErrInvoiceFrozen)
	invoices.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_Cancel_AllowedBeforeFiling(t *testing.T) {
	invoices := new(mocks.MockInvoiceRepo)
	profiles := new(mocks.MockProfileRepo)
	filings := new(mocks.MockFilingRepo)
	svc := newInvoiceServiceWithFilings(invoices, profiles, filings)

	profileID := uuid.New()
	inv := salesInvoice(profileID, "S-1")
	invoices.On("GetByID", mock.Anything, profileID, inv.ID).Return(&inv, nil)
	filings.On("GetByPeriod", mock.Anything, profileID, domain.ReturnGSTR1, "072025").
		Return(filingWith(profileID, domain.FilingStatusCAVerified), nil)
	filings.On("GetByPeriod", mock.Anything, profileID, domain.ReturnGSTR3B, "072025").
		Return(nil, domain.ErrNotFound)
	invoices.On("UpdateStatus", mock.Anything, profileID, inv.ID, domain.InvoiceStatusCancelled).Return(nil)

	err := svc.Cancel(context.Background(), profileID, inv.ID)

	require.NoError(t, err)
	invoices.AssertExpectations(t)
}

func TestInvoiceService_DetectAnomalies_CrossPeriodDuplicate(t *testing.T) {
	invoices := new(mocks.MockInvoiceRepo)
	profiles := new(mocks.MockProfileRepo)
	svc := newInvoiceService(invoices, profiles)

	profileID := uuid.New()
	first := domain.GSTInvoice{
		ID:                uuid.New(),
		ProfileID:         profileID,
		InvoiceNumber:     "DUP-1",
		InvoiceDate:       time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC),
		CounterpartyGSTIN: "27AAAPL1234C1ZE",
		FilingPeriod:      "072025",
		TotalAmount:       dec("1180"),
	}
	second := first
	second.ID = uuid.New()
	second.InvoiceDate = time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	second.FilingPeriod = "082025"

	invoices.On("ListAll", mock.Anything, profileID).
		Return([]domain.GSTInvoice{first, second}, nil)

	anomalies, err := svc.DetectAnomalies(context.Background(), profileID)

	require.NoError(t, err)
	require.Len(t, anomalies, 1)
	assert.Equal(t, domain.AnomalyDuplicateInvoice, anomalies[0].Type)
	assert.Equal(t, domain.SeverityHigh, anomalies[0].Severity)
	assert.Equal(t, second.ID, anomalies[0].InvoiceID)
	invoices.AssertNotCalled(t, "ListByPeriod", mock.Anything, mock.Anything, mock.Anything)
}

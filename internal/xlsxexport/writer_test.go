package xlsxexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gstpilot/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func sampleProfile() *domain.GSTProfile {
	return &domain.GSTProfile{
		GSTIN:     "27AAAPL1234C1ZE",
		LegalName: "Lakshmi Traders Pvt Ltd",
		StateCode: "27",
	}
}

func sampleInvoice(num string, taxable, cgst, sgst, total string) domain.GSTInvoice {
	return domain.GSTInvoice{
		InvoiceNumber:     num,
		InvoiceDate:       time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		InvoiceType:       domain.InvoiceTypeSales,
		DocumentType:      domain.DocumentTypeInvoice,
		CounterpartyName:  "Acme Industries",
		CounterpartyGSTIN: "27AAAPL1234C1ZE",
		PlaceOfSupply:     "27",
		Category:          domain.CategoryB2B,
		TotalTaxableValue: dec(taxable),
		TotalCGST:         dec(cgst),
		TotalSGST:         dec(sgst),
		TotalIGST:         decimal.Zero,
		TotalCess:         decimal.Zero,
		TotalAmount:       dec(total),
		Status:            domain.InvoiceStatusFinalized,
	}
}

func TestWriteFiling(t *testing.T) {
	invoices := []domain.GSTInvoice{
		sampleInvoice("INV-1", "1000", "90", "90", "1180"),
		sampleInvoice("INV-2", "2000", "180", "180", "2360"),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFiling(&buf, sampleProfile(), "072025", invoices))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	// header + 2 invoices + totals
	require.Len(t, rows, 4)

	assert.Equal(t, columns, rows[0][:len(columns)])
	assert.Equal(t, "INV-1", rows[1][0])
	assert.Equal(t, "15-07-2025", rows[1][1])
	assert.Equal(t, "27AAAPL1234C1ZE", rows[1][2])
	assert.Equal(t, "Acme Industries", rows[1][3])
	assert.Equal(t, "27-Maharashtra", rows[1][4])
	assert.Equal(t, "B2B", rows[1][11])
	assert.Equal(t, "finalized", rows[1][12])
	assert.Equal(t, "Total", rows[3][0])

	formula, err := f.GetCellFormula(sheetName, "F4")
	require.NoError(t, err)
	assert.Equal(t, "SUM(F2:F3)", formula)
}

func TestWriteFilingEmptyPeriod(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFiling(&buf, sampleProfile(), "072025", nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Total", rows[1][0])
}

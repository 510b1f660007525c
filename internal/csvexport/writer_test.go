package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstpilot/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 13)
	assert.Equal(t, "Supplier GSTIN", row[0])
	assert.Equal(t, "Match Status", row[10])
	assert.Equal(t, "Risk Score", row[12])
}

func TestWriteRecords(t *testing.T) {
	rec := domain.ITCRecord{
		ID:            uuid.New(),
		SupplierGSTIN: "29AAACR5055K1Z5",
		SupplierName:  "Reliable Components",
		InvoiceNumber: "P-1",
		InvoiceDate:   time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		InvoiceValue:  decimal.NewFromFloat(1180),
		TaxableValue:  decimal.NewFromFloat(1000),
		IGST:          decimal.NewFromFloat(180),
		MatchStatus:   domain.MatchStatusMatched,
		Eligible:      true,
		RiskScore:     0.2,
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRecords([]domain.ITCRecord{rec}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "29AAACR5055K1Z5", row[0])
	assert.Equal(t, "10-07-2025", row[3])
	assert.Equal(t, "1180.00", row[4])
	assert.Equal(t, "180.00", row[6])
	assert.Equal(t, "0.00", row[7])
	assert.Equal(t, "matched", row[10])
	assert.Equal(t, "Yes", row[11])
	assert.Equal(t, "0.20", row[12])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Lakshmi_Traders_Pvt_Ltd", SanitizeFilename("Lakshmi Traders Pvt. Ltd"))
	assert.Equal(t, "a-b_c", SanitizeFilename("a-b  / c"))
	assert.Equal(t, "x", SanitizeFilename("__x__"))
}

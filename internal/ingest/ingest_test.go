package ingest

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const samplePortalJSON = `{
  "gstin": "27AAAPL1234C1ZE",
  "fp": "072025",
  "b2b": [
    {
      "ctin": "29AAAPL1234C1ZA",
      "trdnm": "Acme Supplies",
      "inv": [
        {
          "inum": "INV-100",
          "idt": "15-07-2025",
          "val": 11800,
          "itms": [
            {"itm_det": {"txval": 10000, "iamt": 1800, "camt": 0, "samt": 0, "csamt": 0}}
          ]
        },
        {
          "inum": "INV-101",
          "idt": "not-a-date",
          "val": 500,
          "itms": []
        }
      ]
    },
    {
      "ctin": "",
      "inv": [{"inum": "INV-200", "idt": "01-07-2025", "val": 100}]
    }
  ]
}`

func TestParseJSON(t *testing.T) {
	res, err := ParseJSON(strings.NewReader(samplePortalJSON))
	require.NoError(t, err)

	require.Len(t, res.Invoices, 1)
	assert.Equal(t, 2, res.Skipped)

	inv := res.Invoices[0]
	assert.Equal(t, "29AAAPL1234C1ZA", inv.SupplierGSTIN)
	assert.Equal(t, "Acme Supplies", inv.SupplierName)
	assert.Equal(t, "INV-100", inv.InvoiceNumber)
	assert.Equal(t, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), inv.InvoiceDate)
	assert.Equal(t, "10000", inv.TaxableValue.String())
	assert.Equal(t, "1800", inv.IGST.String())
	assert.True(t, inv.CGST.IsZero())
}

func TestParseJSONSumsMultipleItems(t *testing.T) {
	const doc = `{
	  "b2b": [{
	    "ctin": "27AAAPL1234C1ZE",
	    "inv": [{
	      "inum": "INV-7", "idt": "01-07-2025", "val": 2360,
	      "itms": [
	        {"itm_det": {"txval": 1000, "camt": 90, "samt": 90}},
	        {"itm_det": {"txval": 1000, "camt": 90, "samt": 90}}
	      ]
	    }]
	  }]
	}`
	res, err := ParseJSON(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, res.Invoices, 1)
	assert.Equal(t, "2000", res.Invoices[0].TaxableValue.String())
	assert.Equal(t, "180", res.Invoices[0].CGST.String())
	assert.Equal(t, "180", res.Invoices[0].SGST.String())
}

func TestParseJSONRejectsGarbage(t *testing.T) {
	_, err := ParseJSON(strings.NewReader("not json"))
	assert.Error(t, err)
}

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(b2bSheetName)
	require.NoError(t, err)
	f.SetActiveSheet(idx)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(b2bSheetName, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestParseXLSX(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"GSTIN of supplier", "Trade name", "Invoice number", "Invoice date",
			"Invoice value", "Taxable value", "IGST", "CGST", "SGST", "Cess"},
		{"29AAAPL1234C1ZA", "Acme Supplies", "INV-100", "15-07-2025",
			"11800", "10000", "1800", "0", "0", "0"},
		{"", "", "", "", "", "", "", "", "", ""},
		{"33AAAPL1234C1ZB", "Beta Traders", "INV-200", "garbage",
			"100", "100", "0", "0", "0", "0"},
		{"27AAAPL1234C1ZE", "Gamma Works", "INV-300", "2025-07-20",
			"1,180", "1,000", "0", "90", "90", "0"},
	})

	res, err := ParseXLSX(buf)
	require.NoError(t, err)

	require.Len(t, res.Invoices, 2)
	assert.Equal(t, 1, res.Skipped)

	assert.Equal(t, "INV-100", res.Invoices[0].InvoiceNumber)
	assert.Equal(t, "10000", res.Invoices[0].TaxableValue.String())

	assert.Equal(t, "INV-300", res.Invoices[1].InvoiceNumber)
	assert.Equal(t, time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC), res.Invoices[1].InvoiceDate)
	assert.Equal(t, "1000", res.Invoices[1].TaxableValue.String())
	assert.Equal(t, "90", res.Invoices[1].CGST.String())
}

func TestParseXLSXMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := ParseXLSX(&buf)
	assert.Error(t, err)
}

package ingest

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"gstpilot/internal/domain"
)

const b2bSheetName = "B2B"

// Excel B2B sheet columns, matching the portal's workbook export:
// A=GSTIN of supplier, B=Trade name, C=Invoice number, D=Invoice date,
// E=Invoice value, F=Taxable value, G=IGST, H=CGST, I=SGST, J=Cess.
// Row 0 is the header.
const (
	colGSTIN = iota
	colTradeName
	colInvoiceNumber
	colInvoiceDate
	colInvoiceValue
	colTaxableValue
	colIGST
	colCGST
	colSGST
	colCess
	columnCount
)

// ParseXLSX reads the B2B sheet of a portal Excel export. Rows missing a
// GSTIN, an invoice number, or a parseable date are skipped and counted.
func ParseXLSX(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(b2bSheetName)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", b2bSheetName, err)
	}

	res := &Result{Invoices: []domain.ExternalInvoice{}}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		ext, ok := convertRow(row)
		if !ok {
			res.Skipped++
			continue
		}
		res.Invoices = append(res.Invoices, ext)
	}
	return res, nil
}

func convertRow(row []string) (domain.ExternalInvoice, bool) {
	gstin := strings.ToUpper(strings.TrimSpace(cellVal(row, colGSTIN)))
	inum := strings.TrimSpace(cellVal(row, colInvoiceNumber))
	if gstin == "" || inum == "" {
		return domain.ExternalInvoice{}, false
	}

	idt, ok := parseCellDate(cellVal(row, colInvoiceDate))
	if !ok {
		return domain.ExternalInvoice{}, false
	}

	return domain.ExternalInvoice{
		SupplierGSTIN: gstin,
		SupplierName:  strings.TrimSpace(cellVal(row, colTradeName)),
		InvoiceNumber: inum,
		InvoiceDate:   idt,
		InvoiceValue:  cellDecimal(row, colInvoiceValue),
		TaxableValue:  cellDecimal(row, colTaxableValue),
		IGST:          cellDecimal(row, colIGST),
		CGST:          cellDecimal(row, colCGST),
		SGST:          cellDecimal(row, colSGST),
		Cess:          cellDecimal(row, colCess),
	}, true
}

// parseCellDate accepts the portal's DD-MM-YYYY plus the formats Excel
// tends to rewrite dates into.
func parseCellDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{portalDateLayout, "02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// cellDecimal parses a numeric cell, treating blanks and junk as zero.
func cellDecimal(row []string, idx int) decimal.Decimal {
	s := strings.ReplaceAll(strings.TrimSpace(cellVal(row, idx)), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

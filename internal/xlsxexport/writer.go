// Package xlsxexport renders a filing period's invoices into an Excel
// workbook for CA review, with a styled header and a totals row.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"gstpilot/internal/domain"
	"gstpilot/internal/gst"
)

const sheetName = "Invoices"

const dateLayout = "02-01-2006"

// columns defines the 13-column header row.
var columns = []string{
	"Invoice Number",
	"Invoice Date",
	"Counterparty GSTIN",
	"Counterparty Name",
	"Place of Supply",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Cess",
	"Total",
	"Category",
	"Status",
}

// WriteFiling writes the invoices of one filing period to w as an xlsx
// workbook: header row, one row per invoice, and a totals row with SUM
// formulas over the money columns.
func WriteFiling(w io.Writer, profile *domain.GSTProfile, period string, invoices []domain.GSTInvoice) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return fmt.Errorf("resolve last column: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i := range invoices {
		inv := &invoices[i]
		row := []interface{}{
			inv.InvoiceNumber,
			inv.InvoiceDate.Format(dateLayout),
			inv.CounterpartyGSTIN,
			inv.CounterpartyName,
			posLabel(inv.PlaceOfSupply),
			money(inv.TotalTaxableValue),
			money(inv.TotalCGST),
			money(inv.TotalSGST),
			money(inv.TotalIGST),
			money(inv.TotalCess),
			money(inv.TotalAmount),
			string(inv.Category),
			string(inv.Status),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("resolve row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := writeTotals(f, len(invoices)); err != nil {
		return err
	}

	// Profile and period go into workbook properties, not a sheet row.
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   fmt.Sprintf("%s %s", profile.GSTIN, period),
		Creator: profile.LegalName,
	}); err != nil {
		return fmt.Errorf("set workbook properties: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// writeTotals appends a bold totals row with SUM formulas over columns
// F through K (the money columns).
func writeTotals(f *excelize.File, invoiceCount int) error {
	totalRow := invoiceCount + 2

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create totals style: %w", err)
	}

	cell, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return fmt.Errorf("resolve totals row: %w", err)
	}
	if err := f.SetCellValue(sheetName, cell, "Total"); err != nil {
		return fmt.Errorf("write totals label: %w", err)
	}

	for col := 6; col <= 11; col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return fmt.Errorf("resolve column %d: %w", col, err)
		}
		target := fmt.Sprintf("%s%d", name, totalRow)
		if invoiceCount > 0 {
			formula := fmt.Sprintf("SUM(%s2:%s%d)", name, name, totalRow-1)
			if err := f.SetCellFormula(sheetName, target, formula); err != nil {
				return fmt.Errorf("write totals formula: %w", err)
			}
		} else {
			if err := f.SetCellValue(sheetName, target, 0); err != nil {
				return fmt.Errorf("write empty total: %w", err)
			}
		}
	}

	lastCol, err := excelize.ColumnNumberToName(13)
	if err != nil {
		return err
	}
	first, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, first, fmt.Sprintf("%s%d", lastCol, totalRow), boldStyle)
}

func money(d decimal.Decimal) float64 {
	v, _ := d.Round(2).Float64()
	return v
}

func posLabel(code string) string {
	if name, ok := gst.StateName(code); ok {
		return code + "-" + name
	}
	return code
}

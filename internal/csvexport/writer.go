// Package csvexport renders reconciliation records as CSV for download.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gstpilot/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (13 columns).
var columns = []string{
	"Supplier GSTIN",
	"Supplier Name",
	"Invoice Number",
	"Invoice Date",
	"Invoice Value",
	"Taxable Value",
	"IGST",
	"CGST",
	"SGST",
	"Cess",
	"Match Status",
	"ITC Eligible",
	"Risk Score",
}

// Writer wraps csv.Writer for exporting ITC records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 13-column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of ITC records to CSV rows and writes them.
func (w *Writer) WriteRecords(records []domain.ITCRecord) error {
	for i := range records {
		row := recordToRow(&records[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// recordToRow converts a single ITC record to a 13-element string slice.
func recordToRow(rec *domain.ITCRecord) []string {
	row := make([]string, len(columns))

	row[0] = rec.SupplierGSTIN
	row[1] = rec.SupplierName
	row[2] = rec.InvoiceNumber
	row[3] = rec.InvoiceDate.Format("02-01-2006")
	row[4] = rec.InvoiceValue.StringFixed(2)
	row[5] = rec.TaxableValue.StringFixed(2)
	row[6] = rec.IGST.StringFixed(2)
	row[7] = rec.CGST.StringFixed(2)
	row[8] = rec.SGST.StringFixed(2)
	row[9] = rec.Cess.StringFixed(2)
	row[10] = string(rec.MatchStatus)
	row[11] = formatBool(rec.Eligible)
	row[12] = strconv.FormatFloat(rec.RiskScore, 'f', 2, 64)

	return row
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a legal name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_itc_{YYYY-MM-DD}.csv
func BuildFilename(legalName string) string {
	sanitized := SanitizeFilename(legalName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_itc_%s.csv", sanitized, date)
}

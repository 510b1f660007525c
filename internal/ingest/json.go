// Package ingest parses supplier-reported GSTR-2A/2B data from the two
// formats the portal hands out: the official JSON download and the Excel
// workbook. Parsing is best effort: malformed records are skipped and
// counted, never fatal, so one bad row cannot sink a whole import.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gstpilot/internal/domain"
)

const portalDateLayout = "02-01-2006"

// Result is the outcome of one ingestion pass.
type Result struct {
	Invoices []domain.ExternalInvoice `json:"invoices"`
	Skipped  int                      `json:"skipped"`
}

// Portal JSON shapes. Field names follow the GSTN download format.
type portalFile struct {
	GSTIN string           `json:"gstin"`
	FP    string           `json:"fp"`
	B2B   []portalSupplier `json:"b2b"`
}

type portalSupplier struct {
	CTIN      string          `json:"ctin"`
	TradeName string          `json:"trdnm"`
	Inv       []portalInvoice `json:"inv"`
}

type portalInvoice struct {
	Inum string       `json:"inum"`
	Idt  string       `json:"idt"`
	Val  float64      `json:"val"`
	Itms []portalItem `json:"itms"`
}

type portalItem struct {
	ItmDet portalItemDetail `json:"itm_det"`
}

type portalItemDetail struct {
	Txval float64 `json:"txval"`
	Iamt  float64 `json:"iamt"`
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Csamt float64 `json:"csamt"`
}

// ParseJSON reads a GSTR-2A/2B portal JSON export. Suppliers without a
// CTIN and invoices without a number or a parseable date are skipped.
func ParseJSON(r io.Reader) (*Result, error) {
	var file portalFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode portal JSON: %w", err)
	}

	res := &Result{Invoices: []domain.ExternalInvoice{}}
	for _, sup := range file.B2B {
		ctin := strings.ToUpper(strings.TrimSpace(sup.CTIN))
		if ctin == "" {
			res.Skipped += len(sup.Inv)
			continue
		}
		for _, inv := range sup.Inv {
			ext, ok := convertPortalInvoice(ctin, sup.TradeName, inv)
			if !ok {
				res.Skipped++
				continue
			}
			res.Invoices = append(res.Invoices, ext)
		}
	}
	return res, nil
}

func convertPortalInvoice(ctin, name string, inv portalInvoice) (domain.ExternalInvoice, bool) {
	if strings.TrimSpace(inv.Inum) == "" {
		return domain.ExternalInvoice{}, false
	}
	idt, err := time.Parse(portalDateLayout, inv.Idt)
	if err != nil {
		return domain.ExternalInvoice{}, false
	}

	ext := domain.ExternalInvoice{
		SupplierGSTIN: ctin,
		SupplierName:  strings.TrimSpace(name),
		InvoiceNumber: strings.TrimSpace(inv.Inum),
		InvoiceDate:   idt,
		InvoiceValue:  decimal.NewFromFloat(inv.Val),
		TaxableValue:  decimal.Zero,
		IGST:          decimal.Zero,
		CGST:          decimal.Zero,
		SGST:          decimal.Zero,
		Cess:          decimal.Zero,
	}
	for _, itm := range inv.Itms {
		d := itm.ItmDet
		ext.TaxableValue = ext.TaxableValue.Add(decimal.NewFromFloat(d.Txval))
		ext.IGST = ext.IGST.Add(decimal.NewFromFloat(d.Iamt))
		ext.CGST = ext.CGST.Add(decimal.NewFromFloat(d.Camt))
		ext.SGST = ext.SGST.Add(decimal.NewFromFloat(d.Samt))
		ext.Cess = ext.Cess.Add(decimal.NewFromFloat(d.Csamt))
	}
	return ext, true
}

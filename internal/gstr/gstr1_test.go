package gstr

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstpilot/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProfile() *domain.GSTProfile {
	return &domain.GSTProfile{
		ID:        uuid.New(),
		GSTIN:     "27AAAPL1234C1ZE",
		StateCode: "27",
		State:     "Maharashtra",
	}
}

func b2bInvoice(num string, pos string) domain.GSTInvoice {
	return domain.GSTInvoice{
		ID:                uuid.New(),
		InvoiceNumber:     num,
		InvoiceDate:       time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		InvoiceType:       domain.InvoiceTypeSales,
		DocumentType:      domain.DocumentTypeInvoice,
		CounterpartyGSTIN: "29AAAPL1234C1ZA",
		PlaceOfSupply:     pos,
		Category:          domain.CategoryB2B,
		Status:            domain.InvoiceStatusVerified,
		FilingPeriod:      "042024",
		LineItems: domain.LineItems{
			{
				Description:  "Widget",
				HSNCode:      "8517",
				Quantity:     dec("2"),
				GSTRate:      dec("18"),
				TaxableValue: dec("1000"),
				CGST:         dec("90"),
				SGST:         dec("90"),
			},
		},
		TotalTaxableValue: dec("1000"),
		TotalCGST:         dec("90"),
		TotalSGST:         dec("90"),
		TotalAmount:       dec("1180"),
	}
}

func TestBuildGSTR1_TopLevelFields(t *testing.T) {
	ret := BuildGSTR1(testProfile(), []domain.GSTInvoice{b2bInvoice("INV-001", "27")}, "042024")

	raw, err := json.Marshal(ret)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))

	assert.Contains(t, m, "gstin")
	assert.Contains(t, m, "fp")
	assert.Contains(t, m, "version")
	assert.Contains(t, m, "hash")
	assert.Contains(t, m, "b2b")
	assert.Contains(t, m, "hsn")
	assert.Contains(t, m, "doc_issue")

	// Empty sections are omitted, not emitted as empty arrays.
	assert.NotContains(t, m, "b2cs")
	assert.NotContains(t, m, "b2cl")
	assert.NotContains(t, m, "cdnr")
	assert.NotContains(t, m, "exp")
	assert.NotContains(t, m, "nil")
}

func TestBuildGSTR1_B2BWireShape(t *testing.T) {
	ret := BuildGSTR1(testProfile(), []domain.GSTInvoice{b2bInvoice("INV-001", "27")}, "042024")

	raw, err := json.Marshal(ret)
	require.NoError(t, err)

	var m struct {
		B2B []map[string]json.RawMessage `json:"b2b"`
	}
	require.NoError(t, json.Unmarshal(raw, &m))
	require.Len(t, m.B2B, 1)
	assert.Contains(t, m.B2B[0], "ctin")
	assert.Contains(t, m.B2B[0], "inv")

	var invs []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(m.B2B[0]["inv"], &invs))
	require.Len(t, invs, 1)
	for _, key := range []string{"inum", "idt", "val", "pos", "rchrg", "itms"} {
		assert.Contains(t, invs[0], key)
	}

	var idt string
	require.NoError(t, json.Unmarshal(invs[0]["idt"], &idt))
	assert.Equal(t, "15-04-2024", idt)

	var itms []struct {
		Num    int `json:"num"`
		ItmDet map[string]float64 `json:"itm_det"`
	}
	require.NoError(t, json.Unmarshal(invs[0]["itms"], &itms))
	require.Len(t, itms, 1)
	assert.Equal(t, 1, itms[0].Num)
	assert.Equal(t, 18.0, itms[0].ItmDet["rt"])
	assert.Equal(t, 1000.0, itms[0].ItmDet["txval"])
	assert.Equal(t, 90.0, itms[0].ItmDet["camt"])
	assert.Equal(t, 90.0, itms[0].ItmDet["samt"])
	assert.Equal(t, 0.0, itms[0].ItmDet["iamt"])
}

func TestBuildGSTR1_B2BGroupsByCounterparty(t *testing.T) {
	a := b2bInvoice("INV-001", "27")
	b := b2bInvoice("INV-002", "27")
	c := b2bInvoice("INV-003", "27")
	c.CounterpartyGSTIN = "07AABCU9603R1ZM"

	ret := BuildGSTR1(testProfile(), []domain.GSTInvoice{a, b, c}, "042024")
	require.Len(t, ret.B2B, 2)
	// Sorted by CTIN.
	assert.Equal(t, "07AABCU9603R1ZM", ret.B2B[0].CTIN)
	assert.Len(t, ret.B2B[0].Inv, 1)
	assert.Equal(t, "29AAAPL1234C1ZA", ret.B2B[1].CTIN)
	assert.Len(t, ret.B2B[1].Inv, 2)
}

func TestBuildGSTR1_B2CSGroupsByRateAndPos(t *testing.T) {
	mk := func(num, pos, rate string) domain.GSTInvoice {
		inv := b2bInvoice(num, pos)
		inv.CounterpartyGSTIN = ""
		inv.Category = domain.CategoryB2CS
		inv.LineItems[0].GSTRate = dec(rate)
		return inv
	}
	ret := BuildGSTR1(testProfile(), []domain.GSTInvoice{
		mk("A", "27", "18"),
		mk("B", "27", "18"),
		mk("C", "29", "18"),
		mk("D", "27", "5"),
	}, "042024")

	require.Len(t, ret.B2CS, 3)
	assert.Equal(t, "INTRA", ret.B2CS[0].SplyTy)
	assert.Equal(t, 2000.0, ret.B2CS[0].Txval) // two 18% rows for pos 27 merged
	assert.Equal(t, "INTER", ret.B2CS[2].SplyTy)
	assert.Equal(t, "OE", ret.B2CS[0].Typ)
}

func TestBuildGSTR1_CDNRNoteTypes(t *testing.T) {
	cn := b2bInvoice("CN-1", "27")
	cn.DocumentType = domain.DocumentTypeCreditNote
	cn.Category = domain.CategoryCDNR
	dn := b2bInvoice("DN-1", "27")
	dn.DocumentType = domain.DocumentTypeDebitNote
	dn.Category = domain.CategoryCDNR

	ret := BuildGSTR1(testProfile(), []domain.GSTInvoice{cn, dn}, "042024")
	require.Len(t, ret.CDNR, 1)
	require.Len(t, ret.CDNR[0].Nt, 2)
	types := []string{ret.CDNR[0].Nt[0].NtTy, ret.CDNR[0].Nt[1].NtTy}
	assert.Contains(t, types, "C")
	assert.Contains(t, types, "D")
}

func TestBuildGSTR1_NilSection(t *testing.T) {
	nilInv := b2bInvoice("NIL-1", "27")
	nilInv.LineItems[0].GSTRate = decimal.Zero
	nilInv.LineItems[0].CGST = decimal.Zero
	nilInv.LineItems[0].SGST = decimal.Zero
	nilInv.TotalCGST = decimal.Zero
	nilInv.TotalSGST = decimal.Zero
	nilInv.TotalAmount = dec("1000")

	ret := BuildGSTR1(testProfile(), []domain.GSTInvoice{nilInv}, "042024")
	require.NotNil(t, ret.Nil)
	require.Len(t, ret.Nil.Inv, 1)
	assert.Equal(t, "INTRAB2B", ret.Nil.Inv[0].SplyTy)
	assert.Equal(t, 1000.0, ret.Nil.Inv[0].NilAmt)
	// Nil-rated invoices do not also appear under b2b.
	assert.Empty(t, ret.B2B)
}

func TestBuildGSTR1_HSNSummary(t *testing.T) {
	a := b2bInvoice("INV-001", "27")
	b := b2bInvoice("INV-002", "27")

	ret := BuildGSTR1(testProfile(), []domain.GSTInvoice{a, b}, "042024")
	require.NotNil(t, ret.HSN)
	require.Len(t, ret.HSN.Data, 1)
	row := ret.HSN.Data[0]
	assert.Equal(t, "8517", row.HsnSc)
	assert.Equal(t, 4.0, row.Qty)
	assert.Equal(t, 2000.0, row.Txval)
	assert.Equal(t, 180.0, row.Camt)
}

func TestBuildGSTR1_DocIssue(t *testing.T) {
	a := b2bInvoice("INV-001", "27")
	b := b2bInvoice("INV-003", "27")
	cancelledInv := b2bInvoice("INV-002", "27")
	cancelledInv.Status = domain.InvoiceStatusCancelled

	ret := BuildGSTR1(testProfile(), []domain.GSTInvoice{a, b, cancelledInv}, "042024")
	require.NotNil(t, ret.DocIssue)
	require.Len(t, ret.DocIssue.DocDet, 1)
	require.Len(t, ret.DocIssue.DocDet[0].Docs, 1)
	r := ret.DocIssue.DocDet[0].Docs[0]
	assert.Equal(t, "INV-001", r.From)
	assert.Equal(t, "INV-003", r.To)
	assert.Equal(t, 3, r.TotNum)
	assert.Equal(t, 1, r.Cancel)
	assert.Equal(t, 2, r.NetIssue)
}

func TestBuildGSTR1_Empty(t *testing.T) {
	ret := BuildGSTR1(testProfile(), nil, "042024")
	raw, err := json.Marshal(ret)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Len(t, m, 4) // gstin, fp, version, hash only
}

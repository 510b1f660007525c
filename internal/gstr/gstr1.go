// Package gstr renders filing payloads in the government portal schema.
// Field names and nesting are a wire contract; they must match the portal
// byte for byte and are never renamed.
package gstr

import (
	"sort"

	"github.com/shopspring/decimal"

	"gstpilot/internal/domain"
)

const (
	schemaVersion = "GST3.0.4"

	supplyInterB2B = "INTRB2B"
	supplyInterB2C = "INTRB2C"
	supplyIntraB2B = "INTRAB2B"
	supplyIntraB2C = "INTRAB2C"
)

// wireDate is the portal date layout.
const wireDate = "02-01-2006"

// GSTR1Return is the top-level GSTR-1 document. Empty sections are
// omitted from the payload, not emitted as empty arrays.
type GSTR1Return struct {
	GSTIN    string      `json:"gstin"`
	FP       string      `json:"fp"`
	Version  string      `json:"version"`
	Hash     string      `json:"hash"`
	B2B      []B2BEntry  `json:"b2b,omitempty"`
	B2CS     []B2CSEntry `json:"b2cs,omitempty"`
	B2CL     []B2CLEntry `json:"b2cl,omitempty"`
	CDNR     []CDNREntry `json:"cdnr,omitempty"`
	EXP      []ExpEntry  `json:"exp,omitempty"`
	Nil      *NilSection `json:"nil,omitempty"`
	HSN      *HSNSection `json:"hsn,omitempty"`
	DocIssue *DocIssue   `json:"doc_issue,omitempty"`
}

// B2BEntry groups invoices under a registered counterparty.
type B2BEntry struct {
	CTIN string       `json:"ctin"`
	Inv  []B2BInvoice `json:"inv"`
}

// B2BInvoice is one invoice within a b2b entry.
type B2BInvoice struct {
	Inum   string  `json:"inum"`
	Idt    string  `json:"idt"`
	Val    float64 `json:"val"`
	Pos    string  `json:"pos"`
	Rchrg  string  `json:"rchrg"`
	InvTyp string  `json:"inv_typ"`
	Itms   []Item  `json:"itms"`
}

// Item is a rate-bucketed line group.
type Item struct {
	Num    int        `json:"num"`
	ItmDet ItemDetail `json:"itm_det"`
}

// ItemDetail carries the per-rate amounts.
type ItemDetail struct {
	Rt    float64 `json:"rt"`
	Txval float64 `json:"txval"`
	Iamt  float64 `json:"iamt"`
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Csamt float64 `json:"csamt"`
}

// B2CSEntry is a rate and place-of-supply grouped consumer summary row.
type B2CSEntry struct {
	SplyTy string  `json:"sply_ty"`
	Rt     float64 `json:"rt"`
	Typ    string  `json:"typ"`
	Pos    string  `json:"pos"`
	Txval  float64 `json:"txval"`
	Iamt   float64 `json:"iamt"`
	Camt   float64 `json:"camt"`
	Samt   float64 `json:"samt"`
	Csamt  float64 `json:"csamt"`
}

// B2CLEntry groups large consumer invoices by place of supply.
type B2CLEntry struct {
	Pos string        `json:"pos"`
	Inv []B2CLInvoice `json:"inv"`
}

// B2CLInvoice is one invoice within a b2cl entry.
type B2CLInvoice struct {
	Inum string  `json:"inum"`
	Idt  string  `json:"idt"`
	Val  float64 `json:"val"`
	Itms []Item  `json:"itms"`
}

// CDNREntry groups credit/debit notes under a registered counterparty.
type CDNREntry struct {
	CTIN string      `json:"ctin"`
	Nt   []CDNRNote  `json:"nt"`
}

// CDNRNote is one note within a cdnr entry. NtTy is C or D.
type CDNRNote struct {
	NtNum string  `json:"nt_num"`
	NtDt  string  `json:"nt_dt"`
	NtTy  string  `json:"ntty"`
	Pos   string  `json:"pos"`
	Rchrg string  `json:"rchrg"`
	Val   float64 `json:"val"`
	Itms  []Item  `json:"itms"`
}

// ExpEntry groups export invoices by export type.
type ExpEntry struct {
	ExpTyp string       `json:"exp_typ"`
	Inv    []ExpInvoice `json:"inv"`
}

// ExpInvoice is one invoice within an exp entry.
type ExpInvoice struct {
	Inum string  `json:"inum"`
	Idt  string  `json:"idt"`
	Val  float64 `json:"val"`
	Itms []Item  `json:"itms"`
}

// NilSection summarizes nil-rated supplies by supply type.
type NilSection struct {
	Inv []NilDetail `json:"inv"`
}

// NilDetail is one supply-type row of the nil section.
type NilDetail struct {
	SplyTy   string  `json:"sply_ty"`
	NilAmt   float64 `json:"nil_amt"`
	ExptAmt  float64 `json:"expt_amt"`
	NgsupAmt float64 `json:"ngsup_amt"`
}

// HSNSection is the per-HSN aggregated summary.
type HSNSection struct {
	Data []HSNData `json:"data"`
}

// HSNData is one aggregated HSN row.
type HSNData struct {
	Num   int     `json:"num"`
	HsnSc string  `json:"hsn_sc"`
	Desc  string  `json:"desc"`
	Uqc   string  `json:"uqc"`
	Qty   float64 `json:"qty"`
	Txval float64 `json:"txval"`
	Iamt  float64 `json:"iamt"`
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Csamt float64 `json:"csamt"`
}

// DocIssue summarizes the invoice-number ranges issued in the period.
type DocIssue struct {
	DocDet []DocDetail `json:"doc_det"`
}

// DocDetail is one document-nature block of the doc_issue section.
type DocDetail struct {
	DocNum int        `json:"doc_num"`
	Docs   []DocRange `json:"docs"`
}

// DocRange is one issued number range.
type DocRange struct {
	Num      int    `json:"num"`
	From     string `json:"from"`
	To       string `json:"to"`
	TotNum   int    `json:"totnum"`
	Cancel   int    `json:"cancel"`
	NetIssue int    `json:"net_issue"`
}

// f converts a decimal amount to the rounded wire float.
func f(d decimal.Decimal) float64 {
	v, _ := d.Round(2).Float64()
	return v
}

func yn(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

// BuildGSTR1 renders the GSTR-1 payload for a profile's sales invoices in
// one period. Invoices must already be filtered to the period and to
// verified/finalized status; cancelled invoices may be included and only
// affect the doc_issue cancellation count.
func BuildGSTR1(profile *domain.GSTProfile, invoices []domain.GSTInvoice, period string) *GSTR1Return {
	ret := &GSTR1Return{
		GSTIN:   profile.GSTIN,
		FP:      period,
		Version: schemaVersion,
		Hash:    "hash",
	}

	var active []domain.GSTInvoice
	cancelled := 0
	for i := range invoices {
		if invoices[i].Status == domain.InvoiceStatusCancelled {
			cancelled++
			continue
		}
		active = append(active, invoices[i])
	}

	var nilRated []domain.GSTInvoice
	byCategory := map[domain.GSTRCategory][]domain.GSTInvoice{}
	for i := range active {
		inv := active[i]
		// Zero-tax supplies report under the nil section, not their
		// rate buckets.
		if inv.TotalTaxableValue.IsPositive() && totalTax(&inv).IsZero() && !inv.IsExport {
			nilRated = append(nilRated, inv)
			continue
		}
		byCategory[inv.Category] = append(byCategory[inv.Category], inv)
	}

	ret.B2B = buildB2B(byCategory[domain.CategoryB2B])
	ret.B2CS = buildB2CS(byCategory[domain.CategoryB2CS], profile.StateCode)
	ret.B2CL = buildB2CL(byCategory[domain.CategoryB2CL])
	ret.CDNR = buildCDNR(byCategory[domain.CategoryCDNR])
	ret.EXP = buildEXP(byCategory[domain.CategoryEXP])
	ret.Nil = buildNil(nilRated, profile.StateCode)
	ret.HSN = buildHSN(active)
	ret.DocIssue = buildDocIssue(active, cancelled)
	return ret
}

func totalTax(inv *domain.GSTInvoice) decimal.Decimal {
	return inv.TotalCGST.Add(inv.TotalSGST).Add(inv.TotalIGST).Add(inv.TotalCess)
}

// rateBuckets groups an invoice's lines by GST rate into numbered items.
func rateBuckets(items domain.LineItems) []Item {
	type bucket struct {
		txval, iamt, camt, samt, csamt decimal.Decimal
	}
	byRate := map[string]*bucket{}
	var order []string
	for i := range items {
		key := items[i].GSTRate.String()
		b, ok := byRate[key]
		if !ok {
			b = &bucket{}
			byRate[key] = b
			order = append(order, key)
		}
		b.txval = b.txval.Add(items[i].TaxableValue)
		b.iamt = b.iamt.Add(items[i].IGST)
		b.camt = b.camt.Add(items[i].CGST)
		b.samt = b.samt.Add(items[i].SGST)
		b.csamt = b.csamt.Add(items[i].Cess)
	}
	sort.Strings(order)

	out := make([]Item, 0, len(order))
	for n, key := range order {
		b := byRate[key]
		rt, _ := decimal.RequireFromString(key).Float64()
		out = append(out, Item{
			Num: n + 1,
			ItmDet: ItemDetail{
				Rt:    rt,
				Txval: f(b.txval),
				Iamt:  f(b.iamt),
				Camt:  f(b.camt),
				Samt:  f(b.samt),
				Csamt: f(b.csamt),
			},
		})
	}
	return out
}

func buildB2B(invoices []domain.GSTInvoice) []B2BEntry {
	byCtin := map[string][]B2BInvoice{}
	for i := range invoices {
		inv := &invoices[i]
		byCtin[inv.CounterpartyGSTIN] = append(byCtin[inv.CounterpartyGSTIN], B2BInvoice{
			Inum:   inv.InvoiceNumber,
			Idt:    inv.InvoiceDate.Format(wireDate),
			Val:    f(inv.TotalAmount),
			Pos:    inv.PlaceOfSupply,
			Rchrg:  yn(inv.ReverseCharge),
			InvTyp: "R",
			Itms:   rateBuckets(inv.LineItems),
		})
	}
	ctins := make([]string, 0, len(byCtin))
	for ctin := range byCtin {
		ctins = append(ctins, ctin)
	}
	sort.Strings(ctins)

	entries := make([]B2BEntry, 0, len(ctins))
	for _, ctin := range ctins {
		entries = append(entries, B2BEntry{CTIN: ctin, Inv: byCtin[ctin]})
	}
	return entries
}

func buildB2CS(invoices []domain.GSTInvoice, sellerState string) []B2CSEntry {
	type key struct {
		pos  string
		rate string
	}
	type agg struct {
		txval, iamt, camt, samt, csamt decimal.Decimal
	}
	rows := map[key]*agg{}
	var order []key
	for i := range invoices {
		inv := &invoices[i]
		for j := range inv.LineItems {
			li := &inv.LineItems[j]
			k := key{pos: inv.PlaceOfSupply, rate: li.GSTRate.String()}
			a, ok := rows[k]
			if !ok {
				a = &agg{}
				rows[k] = a
				order = append(order, k)
			}
			a.txval = a.txval.Add(li.TaxableValue)
			a.iamt = a.iamt.Add(li.IGST)
			a.camt = a.camt.Add(li.CGST)
			a.samt = a.samt.Add(li.SGST)
			a.csamt = a.csamt.Add(li.Cess)
		}
	}
	sort.Slice(order, func(a, b int) bool {
		if order[a].pos != order[b].pos {
			return order[a].pos < order[b].pos
		}
		return order[a].rate < order[b].rate
	})

	entries := make([]B2CSEntry, 0, len(order))
	for _, k := range order {
		a := rows[k]
		splyTy := "INTER"
		if k.pos == sellerState {
			splyTy = "INTRA"
		}
		rt, _ := decimal.RequireFromString(k.rate).Float64()
		entries = append(entries, B2CSEntry{
			SplyTy: splyTy,
			Rt:     rt,
			Typ:    "OE",
			Pos:    k.pos,
			Txval:  f(a.txval),
			Iamt:   f(a.iamt),
			Camt:   f(a.camt),
			Samt:   f(a.samt),
			Csamt:  f(a.csamt),
		})
	}
	return entries
}

func buildB2CL(invoices []domain.GSTInvoice) []B2CLEntry {
	byPos := map[string][]B2CLInvoice{}
	for i := range invoices {
		inv := &invoices[i]
		byPos[inv.PlaceOfSupply] = append(byPos[inv.PlaceOfSupply], B2CLInvoice{
			Inum: inv.InvoiceNumber,
			Idt:  inv.InvoiceDate.Format(wireDate),
			Val:  f(inv.TotalAmount),
			Itms: rateBuckets(inv.LineItems),
		})
	}
	positions := make([]string, 0, len(byPos))
	for pos := range byPos {
		positions = append(positions, pos)
	}
	sort.Strings(positions)

	entries := make([]B2CLEntry, 0, len(positions))
	for _, pos := range positions {
		entries = append(entries, B2CLEntry{Pos: pos, Inv: byPos[pos]})
	}
	return entries
}

func buildCDNR(invoices []domain.GSTInvoice) []CDNREntry {
	byCtin := map[string][]CDNRNote{}
	for i := range invoices {
		inv := &invoices[i]
		ntTy := "C"
		if inv.DocumentType == domain.DocumentTypeDebitNote {
			ntTy = "D"
		}
		byCtin[inv.CounterpartyGSTIN] = append(byCtin[inv.CounterpartyGSTIN], CDNRNote{
			NtNum: inv.InvoiceNumber,
			NtDt:  inv.InvoiceDate.Format(wireDate),
			NtTy:  ntTy,
			Pos:   inv.PlaceOfSupply,
			Rchrg: yn(inv.ReverseCharge),
			Val:   f(inv.TotalAmount),
			Itms:  rateBuckets(inv.LineItems),
		})
	}
	ctins := make([]string, 0, len(byCtin))
	for ctin := range byCtin {
		ctins = append(ctins, ctin)
	}
	sort.Strings(ctins)

	entries := make([]CDNREntry, 0, len(ctins))
	for _, ctin := range ctins {
		entries = append(entries, CDNREntry{CTIN: ctin, Nt: byCtin[ctin]})
	}
	return entries
}

func buildEXP(invoices []domain.GSTInvoice) []ExpEntry {
	if len(invoices) == 0 {
		return nil
	}
	inv := make([]ExpInvoice, 0, len(invoices))
	for i := range invoices {
		e := &invoices[i]
		inv = append(inv, ExpInvoice{
			Inum: e.InvoiceNumber,
			Idt:  e.InvoiceDate.Format(wireDate),
			Val:  f(e.TotalAmount),
			Itms: rateBuckets(e.LineItems),
		})
	}
	return []ExpEntry{{ExpTyp: "WOPAY", Inv: inv}}
}

func buildNil(invoices []domain.GSTInvoice, sellerState string) *NilSection {
	if len(invoices) == 0 {
		return nil
	}
	byType := map[string]decimal.Decimal{}
	for i := range invoices {
		inv := &invoices[i]
		intra := inv.PlaceOfSupply == sellerState
		registered := inv.CounterpartyGSTIN != ""
		var splyTy string
		switch {
		case intra && registered:
			splyTy = supplyIntraB2B
		case intra:
			splyTy = supplyIntraB2C
		case registered:
			splyTy = supplyInterB2B
		default:
			splyTy = supplyInterB2C
		}
		byType[splyTy] = byType[splyTy].Add(inv.TotalTaxableValue)
	}
	types := make([]string, 0, len(byType))
	for ty := range byType {
		types = append(types, ty)
	}
	sort.Strings(types)

	section := &NilSection{}
	for _, ty := range types {
		section.Inv = append(section.Inv, NilDetail{SplyTy: ty, NilAmt: f(byType[ty])})
	}
	return section
}

func buildHSN(invoices []domain.GSTInvoice) *HSNSection {
	type agg struct {
		desc                           string
		qty                            decimal.Decimal
		txval, iamt, camt, samt, csamt decimal.Decimal
	}
	byCode := map[string]*agg{}
	var order []string
	for i := range invoices {
		for j := range invoices[i].LineItems {
			li := &invoices[i].LineItems[j]
			if li.HSNCode == "" {
				continue
			}
			a, ok := byCode[li.HSNCode]
			if !ok {
				a = &agg{desc: li.Description}
				byCode[li.HSNCode] = a
				order = append(order, li.HSNCode)
			}
			a.qty = a.qty.Add(li.Quantity)
			a.txval = a.txval.Add(li.TaxableValue)
			a.iamt = a.iamt.Add(li.IGST)
			a.camt = a.camt.Add(li.CGST)
			a.samt = a.samt.Add(li.SGST)
			a.csamt = a.csamt.Add(li.Cess)
		}
	}
	if len(order) == 0 {
		return nil
	}
	sort.Strings(order)

	section := &HSNSection{}
	for n, code := range order {
		a := byCode[code]
		qty, _ := a.qty.Float64()
		section.Data = append(section.Data, HSNData{
			Num:   n + 1,
			HsnSc: code,
			Desc:  a.desc,
			Uqc:   "NOS",
			Qty:   qty,
			Txval: f(a.txval),
			Iamt:  f(a.iamt),
			Camt:  f(a.camt),
			Samt:  f(a.samt),
			Csamt: f(a.csamt),
		})
	}
	return section
}

func buildDocIssue(invoices []domain.GSTInvoice, cancelled int) *DocIssue {
	if len(invoices) == 0 && cancelled == 0 {
		return nil
	}
	numbers := make([]string, 0, len(invoices))
	for i := range invoices {
		numbers = append(numbers, invoices[i].InvoiceNumber)
	}
	sort.Strings(numbers)

	total := len(numbers) + cancelled
	from, to := "", ""
	if len(numbers) > 0 {
		from = numbers[0]
		to = numbers[len(numbers)-1]
	}
	return &DocIssue{
		DocDet: []DocDetail{
			{
				DocNum: 1,
				Docs: []DocRange{
					{
						Num:      1,
						From:     from,
						To:       to,
						TotNum:   total,
						Cancel:   cancelled,
						NetIssue: total - cancelled,
					},
				},
			},
		},
	}
}

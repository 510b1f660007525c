package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gstpilot/internal/domain"
)

func salesInvoice() domain.GSTInvoice {
	return domain.GSTInvoice{
		InvoiceType:   domain.InvoiceTypeSales,
		DocumentType:  domain.DocumentTypeInvoice,
		PlaceOfSupply: "27",
		TotalAmount:   dec("1180"),
	}
}

func TestClassify_Order(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.GSTInvoice)
		want   domain.GSTRCategory
	}{
		{
			"purchase wins over everything",
			func(i *domain.GSTInvoice) {
				i.InvoiceType = domain.InvoiceTypePurchase
				i.IsExport = true
			},
			domain.CategoryPurchase,
		},
		{
			"export",
			func(i *domain.GSTInvoice) { i.IsExport = true },
			domain.CategoryEXP,
		},
		{
			"credit note",
			func(i *domain.GSTInvoice) {
				i.DocumentType = domain.DocumentTypeCreditNote
				i.CounterpartyGSTIN = "29AAAPL1234C1ZA"
			},
			domain.CategoryCDNR,
		},
		{
			"debit note",
			func(i *domain.GSTInvoice) { i.DocumentType = domain.DocumentTypeDebitNote },
			domain.CategoryCDNR,
		},
		{
			"registered counterparty",
			func(i *domain.GSTInvoice) { i.CounterpartyGSTIN = "29AAAPL1234C1ZA" },
			domain.CategoryB2B,
		},
		{
			"large inter-state consumer sale",
			func(i *domain.GSTInvoice) {
				i.TotalAmount = dec("300000")
				i.PlaceOfSupply = "29"
			},
			domain.CategoryB2CL,
		},
		{
			"large intra-state consumer sale stays B2CS",
			func(i *domain.GSTInvoice) { i.TotalAmount = dec("300000") },
			domain.CategoryB2CS,
		},
		{
			"threshold is strict",
			func(i *domain.GSTInvoice) {
				i.TotalAmount = dec("250000")
				i.PlaceOfSupply = "29"
			},
			domain.CategoryB2CS,
		},
		{
			"default",
			func(i *domain.GSTInvoice) {},
			domain.CategoryB2CS,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := salesInvoice()
			tt.mutate(&inv)
			assert.Equal(t, tt.want, Classify(&inv, "27"))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	inv := salesInvoice()
	inv.CounterpartyGSTIN = "29AAAPL1234C1ZA"
	first := Classify(&inv, "27")
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Classify(&inv, "27"))
	}
}

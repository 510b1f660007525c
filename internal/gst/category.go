package gst

import (
	"github.com/shopspring/decimal"

	"gstpilot/internal/domain"
)

// b2clThreshold is the invoice value above which an unregistered
// inter-state sale is reported as B2CL instead of B2CS.
var b2clThreshold = decimal.NewFromInt(250000)

// Classify assigns an invoice its GSTR-1 category. It is a pure function
// of the invoice attributes; the decision order is fixed and the first
// matching rule wins.
func Classify(inv *domain.GSTInvoice, sellerStateCode string) domain.GSTRCategory {
	if inv.InvoiceType == domain.InvoiceTypePurchase {
		return domain.CategoryPurchase
	}
	if inv.IsExport {
		return domain.CategoryEXP
	}
	if inv.DocumentType == domain.DocumentTypeCreditNote || inv.DocumentType == domain.DocumentTypeDebitNote {
		return domain.CategoryCDNR
	}
	if IsWellFormedGSTIN(inv.CounterpartyGSTIN) {
		return domain.CategoryB2B
	}
	if inv.TotalAmount.GreaterThan(b2clThreshold) && inv.IsInterState(sellerStateCode) {
		return domain.CategoryB2CL
	}
	return domain.CategoryB2CS
}

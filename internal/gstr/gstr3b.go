package gstr

import (
	"github.com/shopspring/decimal"

	"gstpilot/internal/domain"
)

// GSTR3BReturn is the top-level GSTR-3B summary document.
type GSTR3BReturn struct {
	GSTIN      string     `json:"gstin"`
	RetPeriod  string     `json:"ret_period"`
	SupDetails SupDetails `json:"sup_details"`
	ITCElg     ITCElg     `json:"itc_elg"`
	InwardSup  InwardSup  `json:"inward_sup"`
	IntrLtfee  IntrLtfee  `json:"intr_ltfee"`
}

// SupDetails is the outward-supply summary, section 3.1 of the form.
type SupDetails struct {
	OsupDet     SupRow `json:"osup_det"`
	OsupZero    SupRow `json:"osup_zero"`
	OsupNilExmp SupRow `json:"osup_nil_exmp"`
	IsupRev     SupRow `json:"isup_rev"`
	OsupNongst  SupRow `json:"osup_nongst"`
}

// SupRow is one outward-supply row.
type SupRow struct {
	Txval float64 `json:"txval"`
	Iamt  float64 `json:"iamt"`
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Csamt float64 `json:"csamt"`
}

// ITCElg is the input-tax-credit eligibility block, section 4.
type ITCElg struct {
	ITCAvl []ITCRow `json:"itc_avl"`
	ITCRev []ITCRow `json:"itc_rev"`
	ITCNet ITCNet   `json:"itc_net"`
}

// ITCRow is one ITC source row. Ty is one of IMPG, IMPS, ISRC, ISD, OTH
// for availed credit and RUL or OTH for reversals.
type ITCRow struct {
	Ty    string  `json:"ty"`
	Iamt  float64 `json:"iamt"`
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Csamt float64 `json:"csamt"`
}

// ITCNet is the net available credit.
type ITCNet struct {
	Iamt  float64 `json:"iamt"`
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Csamt float64 `json:"csamt"`
}

// InwardSup is the exempt/nil inward-supply block, section 5.
type InwardSup struct {
	IsupDetails []InwardRow `json:"isup_details"`
}

// InwardRow is one inward-supply row split by inter/intra state.
type InwardRow struct {
	Ty    string  `json:"ty"`
	Inter float64 `json:"inter"`
	Intra float64 `json:"intra"`
}

// IntrLtfee is the interest and late fee block, section 5.1.
type IntrLtfee struct {
	IntrDetails  TaxRow `json:"intr_details"`
	LtfeeDetails TaxRow `json:"ltfee_details"`
}

// TaxRow carries per-head amounts without a taxable value.
type TaxRow struct {
	Iamt  float64 `json:"iamt"`
	Camt  float64 `json:"camt"`
	Samt  float64 `json:"samt"`
	Csamt float64 `json:"csamt"`
}

// GSTR3BInput carries the aggregates the builder needs.
type GSTR3BInput struct {
	Profile   *domain.GSTProfile
	Period    string
	Outward   domain.TaxBreakdown // taxable outward supplies
	Zero      domain.TaxBreakdown // exports / zero-rated
	NilExempt decimal.Decimal     // nil-rated outward taxable value
	Reverse   domain.TaxBreakdown // inward supplies liable to reverse charge
	ITC       domain.TaxBreakdown // credit available from purchases
	Interest  decimal.Decimal
	LateFee   decimal.Decimal
}

// BuildGSTR3B renders the GSTR-3B payload from pre-aggregated figures.
func BuildGSTR3B(in *GSTR3BInput) *GSTR3BReturn {
	return &GSTR3BReturn{
		GSTIN:     in.Profile.GSTIN,
		RetPeriod: in.Period,
		SupDetails: SupDetails{
			OsupDet:     supRow(in.Outward),
			OsupZero:    supRow(in.Zero),
			OsupNilExmp: SupRow{Txval: f(in.NilExempt)},
			IsupRev:     supRow(in.Reverse),
			OsupNongst:  SupRow{},
		},
		ITCElg: ITCElg{
			ITCAvl: []ITCRow{
				{Ty: "IMPG"},
				{Ty: "IMPS"},
				{Ty: "ISRC"},
				{Ty: "ISD"},
				{Ty: "OTH", Iamt: f(in.ITC.IGST), Camt: f(in.ITC.CGST), Samt: f(in.ITC.SGST), Csamt: f(in.ITC.Cess)},
			},
			ITCRev: []ITCRow{
				{Ty: "RUL"},
				{Ty: "OTH"},
			},
			ITCNet: ITCNet{
				Iamt:  f(in.ITC.IGST),
				Camt:  f(in.ITC.CGST),
				Samt:  f(in.ITC.SGST),
				Csamt: f(in.ITC.Cess),
			},
		},
		InwardSup: InwardSup{
			IsupDetails: []InwardRow{
				{Ty: "GST"},
				{Ty: "NONGST"},
			},
		},
		IntrLtfee: IntrLtfee{
			IntrDetails:  splitHeads(in.Interest),
			LtfeeDetails: splitHeads(in.LateFee),
		},
	}
}

func supRow(b domain.TaxBreakdown) SupRow {
	return SupRow{
		Txval: f(b.TaxableValue),
		Iamt:  f(b.IGST),
		Camt:  f(b.CGST),
		Samt:  f(b.SGST),
		Csamt: f(b.Cess),
	}
}

// splitHeads divides an amount equally between the central and state
// heads, as the form reports interest and late fee per head.
func splitHeads(total decimal.Decimal) TaxRow {
	half := total.Div(decimal.NewFromInt(2)).Round(2)
	return TaxRow{Camt: f(half), Samt: f(half)}
}

// NetPayable applies same-head netting: each head's credit offsets only
// that head's output liability, clipped at zero, summed across heads.
// Cross-head utilization is intentionally not modeled here.
func NetPayable(output, itc domain.TaxBreakdown) decimal.Decimal {
	net := decimal.Zero
	for _, pair := range [][2]decimal.Decimal{
		{output.IGST, itc.IGST},
		{output.CGST, itc.CGST},
		{output.SGST, itc.SGST},
		{output.Cess, itc.Cess},
	} {
		if d := pair[0].Sub(pair[1]); d.IsPositive() {
			net = net.Add(d)
		}
	}
	return net.Round(2)
}

package billing

import (
	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"github.com/sangkips/jewelbill-api/pkg/money"
	"github.com/shopspring/decimal"
)

// Totals are the bill level rollups
type Totals struct {
	SubTotal float64 `json:"sub_total"`
	CGST     float64 `json:"cgst_amount"`
	SGST     float64 `json:"sgst_amount"`
	Total    float64 `json:"total_amount"`
}

// AggregateBill sums the already rounded item amounts and taxes. Purchase
// bills carry no tax and delivery vouchers carry no money at all.
func AggregateBill(items []entity.BillItem, billType enum.BillType) Totals {
	mode := billType.PricingMode()
	if mode == enum.PricingModeNone {
		return Totals{}
	}

	subTotal, cgst, sgst := decimal.Zero, decimal.Zero, decimal.Zero
	for _, item := range items {
		subTotal = subTotal.Add(money.Dec(item.Amount))
		if mode == enum.PricingModeSales {
			cgst = cgst.Add(money.Dec(item.ItemCGSTAmount))
			sgst = sgst.Add(money.Dec(item.ItemSGSTAmount))
		}
	}

	return Totals{
		SubTotal: money.Float(subTotal),
		CGST:     money.Float(cgst),
		SGST:     money.Float(sgst),
		Total:    money.Float(subTotal.Add(cgst).Add(sgst)),
	}
}

// EstimateTotals totals sales priced items with tax forced to zero
func EstimateTotals(items []entity.BillItem) Totals {
	subTotal := decimal.Zero
	for _, item := range items {
		subTotal = subTotal.Add(money.Dec(item.Amount))
	}
	st := money.Float(subTotal)
	return Totals{SubTotal: st, Total: st}
}

// ApplyTo writes the totals onto a bill
func (t Totals) ApplyTo(b *entity.Bill) {
	b.SubTotal = t.SubTotal
	b.CGSTAmount = t.CGST
	b.SGSTAmount = t.SGST
	b.TotalAmount = t.Total
}

// PriceBill recomputes every item of the bill against the given materials
// and rates, then rolls the results up into the bill totals.
func PriceBill(b *entity.Bill, lookup MaterialLookup, rates TaxRates) Totals {
	mode := b.Type.PricingMode()
	for i := range b.Items {
		ApplyToItem(&b.Items[i], mode, lookup, rates)
	}
	totals := AggregateBill(b.Items, b.Type)
	totals.ApplyTo(b)
	return totals
}

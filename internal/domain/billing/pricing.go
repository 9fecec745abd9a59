package billing

import (
	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"github.com/sangkips/jewelbill-api/pkg/money"
	"github.com/shopspring/decimal"
)

// TaxRates are the CGST and SGST percentages applied to sales items
type TaxRates struct {
	CGST float64 `json:"cgst_rate"`
	SGST float64 `json:"sgst_rate"`
}

// ItemAmounts are the computed outputs of one bill item
type ItemAmounts struct {
	Amount float64 `json:"amount"`
	CGST   float64 `json:"item_cgst_amount"`
	SGST   float64 `json:"item_sgst_amount"`
}

// ComputeItemAmount prices a single item. Incomplete rows (no material,
// no positive quantity) and delivery items price to zero. Malformed
// numbers are treated as zero and the result is never negative.
func ComputeItemAmount(item entity.BillItem, mode enum.PricingMode, lookup MaterialLookup, rates TaxRates) ItemAmounts {
	qty := money.NonNegative(item.WeightOrQuantity)
	if qty == 0 || item.ValuableID == "" {
		return ItemAmounts{}
	}

	var total decimal.Decimal
	switch mode {
	case enum.PricingModeSales:
		total = salesAmount(item, qty)
	case enum.PricingModePurchase:
		total = money.Dec(qty).Mul(purchaseRate(item, lookup))
	default:
		return ItemAmounts{}
	}

	amount := money.NonNegative(money.Float(total))
	out := ItemAmounts{Amount: amount}
	if mode == enum.PricingModeSales {
		base := money.Dec(amount)
		out.CGST = money.Float(money.Percent(base, money.NonNegative(rates.CGST)))
		out.SGST = money.Float(money.Percent(base, money.NonNegative(rates.SGST)))
	}
	return out
}

// ApplyToItem recomputes a draft item in place and returns the new amounts
func ApplyToItem(item *entity.BillItem, mode enum.PricingMode, lookup MaterialLookup, rates TaxRates) ItemAmounts {
	out := ComputeItemAmount(*item, mode, lookup, rates)
	item.Amount = out.Amount
	item.ItemCGSTAmount = out.CGST
	item.ItemSGSTAmount = out.SGST
	return out
}

// salesAmount is qty x rate plus the making charge. A percentage making
// charge is taken on qty x the declared rate.
func salesAmount(item entity.BillItem, qty float64) decimal.Decimal {
	rate := money.Dec(money.NonNegative(item.Rate))
	base := money.Dec(qty).Mul(rate)

	charge := money.NonNegative(item.MakingCharge)
	switch item.MakingChargeType {
	case enum.MakingChargePercentage:
		return base.Add(money.Percent(base, charge))
	case enum.MakingChargeFixed:
		return base.Add(money.Dec(charge))
	}
	return base
}

// purchaseRate derives the effective purchase rate from the material's
// current market price. When the material is gone the item's stored
// rate stands in for the market price.
func purchaseRate(item entity.BillItem, lookup MaterialLookup) decimal.Decimal {
	var rate decimal.Decimal
	switch item.PurchaseNetType {
	case enum.PurchaseNetPercentage:
		market := money.Sanitize(item.Rate)
		if info, ok := lookupMaterial(lookup, item.ValuableID); ok {
			market = money.Sanitize(info.Price)
		}
		pct := money.Sanitize(item.PurchaseNetPercentValue)
		rate = money.Dec(market).Sub(money.Percent(money.Dec(market), pct))
	case enum.PurchaseNetFixedPrice:
		rate = money.Dec(item.PurchaseNetFixedValue)
	default:
		rate = money.Dec(item.Rate)
	}
	if rate.IsNegative() {
		return decimal.Zero
	}
	return rate
}

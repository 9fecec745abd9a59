package billing

import (
	"testing"

	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
)

func salesItems(t *testing.T, rates TaxRates, prices ...float64) []entity.BillItem {
	t.Helper()
	items := make([]entity.BillItem, 0, len(prices))
	for _, r := range prices {
		item := entity.BillItem{ValuableID: "gold-22k", WeightOrQuantity: 1, Rate: r}
		ApplyToItem(&item, enum.PricingModeSales, testRegistry, rates)
		items = append(items, item)
	}
	return items
}

func TestAggregateBill_TaxRollup(t *testing.T) {
	items := salesItems(t, TaxRates{CGST: 9, SGST: 9}, 1000, 2000)

	if items[0].ItemCGSTAmount != 90 || items[0].ItemSGSTAmount != 90 {
		t.Fatalf("unexpected first item taxes: %+v", items[0])
	}
	if items[1].ItemCGSTAmount != 180 || items[1].ItemSGSTAmount != 180 {
		t.Fatalf("unexpected second item taxes: %+v", items[1])
	}

	got := AggregateBill(items, enum.BillTypeSales)
	expect := Totals{SubTotal: 3000, CGST: 270, SGST: 270, Total: 3540}
	if got != expect {
		t.Errorf("expected %+v, got %+v", expect, got)
	}
}

func TestAggregateBill_Idempotent(t *testing.T) {
	items := salesItems(t, TaxRates{CGST: 1.5, SGST: 1.5}, 1234.56, 0.1, 0.2, 999.99)

	first := AggregateBill(items, enum.BillTypeSales)
	second := AggregateBill(items, enum.BillTypeSales)
	if first != second {
		t.Errorf("expected identical totals, got %+v and %+v", first, second)
	}
	if first.SubTotal != 2234.85 {
		t.Errorf("expected subtotal 2234.85, got %v", first.SubTotal)
	}
}

func TestAggregateBill_PurchaseIgnoresTax(t *testing.T) {
	items := []entity.BillItem{
		{Amount: 27000, ItemCGSTAmount: 10, ItemSGSTAmount: 10},
		{Amount: 9000},
	}
	got := AggregateBill(items, enum.BillTypePurchase)
	expect := Totals{SubTotal: 36000, Total: 36000}
	if got != expect {
		t.Errorf("expected %+v, got %+v", expect, got)
	}
}

func TestAggregateBill_DeliveryVoucherIsZero(t *testing.T) {
	cases := [][]entity.BillItem{
		nil,
		{{Amount: 500, ItemCGSTAmount: 45, ItemSGSTAmount: 45}},
		salesItems(t, TaxRates{CGST: 9, SGST: 9}, 100, 200, 300),
	}
	for i, items := range cases {
		if got := AggregateBill(items, enum.BillTypeDeliveryVoucher); got != (Totals{}) {
			t.Errorf("case %d: expected zero totals, got %+v", i, got)
		}
	}
}

func TestEstimateTotals(t *testing.T) {
	items := salesItems(t, TaxRates{CGST: 9, SGST: 9}, 1000, 2000)
	got := EstimateTotals(items)
	expect := Totals{SubTotal: 3000, Total: 3000}
	if got != expect {
		t.Errorf("expected %+v, got %+v", expect, got)
	}
}

func TestPriceBill(t *testing.T) {
	bill := entity.Bill{
		Type: enum.BillTypePurchase,
		Items: []entity.BillItem{
			{ValuableID: "gold-22k", WeightOrQuantity: 5, PurchaseNetType: enum.PurchaseNetPercentage, PurchaseNetPercentValue: 10},
			{ValuableID: "silver", WeightOrQuantity: 2, PurchaseNetType: enum.PurchaseNetFixedPrice, PurchaseNetFixedValue: 4500},
		},
	}
	totals := PriceBill(&bill, testRegistry, TaxRates{CGST: 9, SGST: 9})

	if bill.Items[0].Amount != 27000 || bill.Items[1].Amount != 9000 {
		t.Fatalf("unexpected item amounts: %v, %v", bill.Items[0].Amount, bill.Items[1].Amount)
	}
	if totals.Total != 36000 || bill.TotalAmount != 36000 || bill.SubTotal != 36000 {
		t.Errorf("unexpected totals: %+v, bill total %v", totals, bill.TotalAmount)
	}
}

package report

import (
	"testing"
	"time"

	"github.com/sangkips/jewelbill-api/internal/domain/billing"
	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
)

func gstBills() []entity.Bill {
	day := time.Date(2026, time.April, 2, 11, 0, 0, 0, time.UTC)
	return []entity.Bill{
		{
			Type: enum.BillTypeSales, BillNumber: "020426-002", Date: day.Add(time.Hour),
			CustomerName: "Meera", CustomerGSTIN: "29ABCDE1234F1Z5",
			Items: []entity.BillItem{
				{Position: 1, ValuableID: "silver", Name: "Anklet", HSNCode: "7113", WeightOrQuantity: 20, Unit: "g",
					Amount: 2000, ItemCGSTAmount: 180, ItemSGSTAmount: 180},
				{Position: 0, ValuableID: "gold-22k", Name: "Chain", HSNCode: "7113", WeightOrQuantity: 1.5, Unit: "g",
					Amount: 1000, ItemCGSTAmount: 90, ItemSGSTAmount: 90},
			},
		},
		{
			Type: enum.BillTypeSales, BillNumber: "020426-001", Date: day,
			CustomerName: "Arjun",
			Items: []entity.BillItem{
				{ValuableID: "deleted-alloy", Name: "Old Alloy", HSNCode: "7114", WeightOrQuantity: 2, Unit: "pc",
					Amount: 500, ItemCGSTAmount: 7.5, ItemSGSTAmount: 7.5},
			},
		},
		{
			Type: enum.BillTypePurchase, BillNumber: "020426-001", Date: day,
			Items: []entity.BillItem{{ValuableID: "silver", WeightOrQuantity: 100, Amount: 7000}},
		},
	}
}

var gstRegistry = billing.Registry{
	"silver":   {ID: "silver", Name: "Silver"},
	"gold-22k": {ID: "gold-22k", Name: "22K Gold"},
}

func TestGSTRows(t *testing.T) {
	report := GSTRows(gstBills(), Period{Kind: enum.PeriodAll}.Predicate(time.Now()), gstRegistry)

	if len(report.Rows) != 3 {
		t.Fatalf("expected 3 rows from sales bills only, got %d", len(report.Rows))
	}

	first := report.Rows[0]
	if first.BillNumber != "020426-001" || first.Material != "Old Alloy" {
		t.Errorf("expected oldest bill with snapshot name first, got %+v", first)
	}
	if first.Total != 515 {
		t.Errorf("expected row total 515, got %v", first.Total)
	}

	second := report.Rows[1]
	if second.Material != "22K Gold" || second.CustomerGSTIN != "29ABCDE1234F1Z5" {
		t.Errorf("expected items in position order with registry names, got %+v", second)
	}

	if report.TotalTaxable != 3500 || report.TotalCGST != 277.5 || report.TotalSGST != 277.5 || report.GrandTotal != 4055 {
		t.Errorf("unexpected totals: %+v", report)
	}
}

func TestGSTRows_NoMatches(t *testing.T) {
	start := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	report := GSTRows(gstBills(), Between(start, start.AddDate(0, 1, 0)), gstRegistry)
	if report.Rows == nil || len(report.Rows) != 0 {
		t.Fatalf("expected an empty, non-nil row list, got %v", report.Rows)
	}
	if report.GrandTotal != 0 {
		t.Errorf("expected zero total, got %v", report.GrandTotal)
	}
}

func TestHSNSummary(t *testing.T) {
	report := GSTRows(gstBills(), Period{Kind: enum.PeriodAll}.Predicate(time.Now()), gstRegistry)
	lines := HSNSummary(report)

	if len(lines) != 2 {
		t.Fatalf("expected 2 hsn groups, got %d", len(lines))
	}
	jewellery := lines[0]
	if jewellery.HSNCode != "7113" || jewellery.ItemCount != 2 || jewellery.Quantity != 21.5 {
		t.Errorf("unexpected 7113 group: %+v", jewellery)
	}
	if jewellery.TaxableValue != 3000 || jewellery.CGST != 270 || jewellery.Total != 3540 {
		t.Errorf("unexpected 7113 money: %+v", jewellery)
	}
	if lines[1].HSNCode != "7114" || lines[1].Unit != "pc" {
		t.Errorf("unexpected second group: %+v", lines[1])
	}
}

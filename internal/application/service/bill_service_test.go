package service

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/jewelbill-api/internal/domain/billing"
	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"github.com/sangkips/jewelbill-api/internal/infrastructure/lock"
	"github.com/sangkips/jewelbill-api/pkg/phone"
)

var ist = time.FixedZone("IST", 5*3600+30*60)

type billFixture struct {
	svc       *BillService
	bills     *fakeBillRepo
	materials *fakeMaterialRepo
	settings  *SettingsService
	now       time.Time
}

func newBillFixture(t *testing.T, existing ...entity.Bill) *billFixture {
	t.Helper()
	materials := entity.DefaultMaterials()
	for i := range materials {
		switch materials[i].ID {
		case "gold-22k":
			materials[i].Price = 6000
		case "silver":
			materials[i].Price = 80
		}
	}

	f := &billFixture{
		bills:     newFakeBillRepo(existing...),
		materials: newFakeMaterialRepo(materials...),
		now:       time.Date(2024, time.March, 15, 10, 30, 0, 0, ist),
	}
	materialSvc := NewMaterialService(f.materials, testLogger())
	f.settings = NewSettingsService(&fakeSettingsRepo{}, materialSvc, testLogger())
	f.svc = NewBillService(f.bills, materialSvc, f.settings, lock.NewLocalLocker(), ist, phone.DefaultRegion, testLogger())
	f.svc.now = func() time.Time { return f.now }
	return f
}

func goldSale(qty float64) *BillInput {
	return &BillInput{
		Type:         enum.BillTypeSales,
		CustomerName: "Asha",
		Items: []ItemInput{{
			ValuableID:       "gold-22k",
			WeightOrQuantity: qty,
			Rate:             6000,
			MakingChargeType: enum.MakingChargePercentage,
			MakingCharge:     10,
		}},
	}
}

func TestCreateBillPricesAndSnapshots(t *testing.T) {
	f := newBillFixture(t)

	bill, err := f.svc.CreateBill(context.Background(), goldSale(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bill.SubTotal != 66000 || bill.CGSTAmount != 990 || bill.SGSTAmount != 990 || bill.TotalAmount != 67980 {
		t.Fatalf("unexpected totals: sub %v cgst %v sgst %v total %v", bill.SubTotal, bill.CGSTAmount, bill.SGSTAmount, bill.TotalAmount)
	}
	item := bill.Items[0]
	if item.Name != "22K Gold" || item.HSNCode != "7113" || item.Unit != "g" {
		t.Fatalf("expected snapshot fields from the material, got %+v", item)
	}
	if bill.CGSTRate != 1.5 || bill.SGSTRate != 1.5 {
		t.Fatalf("expected rates to be recorded on the bill, got %v/%v", bill.CGSTRate, bill.SGSTRate)
	}
	if !bill.Date.Equal(f.now) {
		t.Fatalf("expected date %v, got %v", f.now, bill.Date)
	}
}

func TestCreateBillNumbering(t *testing.T) {
	yesterday := time.Date(2024, time.March, 14, 23, 0, 0, 0, ist)
	f := newBillFixture(t,
		entity.Bill{Type: enum.BillTypeSales, BillNumber: "140324-007", Date: yesterday},
		// same prefix but dated another day, so it is ignored
		entity.Bill{Type: enum.BillTypeSales, BillNumber: "150324-050", Date: yesterday},
	)
	ctx := context.Background()

	steps := []struct {
		billType enum.BillType
		want     string
	}{
		{enum.BillTypeSales, "150324-001"},
		{enum.BillTypeSales, "150324-002"},
		{enum.BillTypePurchase, "150324-001"},
		{enum.BillTypeDeliveryVoucher, ""},
		{enum.BillTypeSales, "150324-003"},
	}

	for i, step := range steps {
		input := goldSale(1)
		input.Type = step.billType
		bill, err := f.svc.CreateBill(ctx, input)
		if err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		if bill.BillNumber != step.want {
			t.Fatalf("step %d: expected %q, got %q", i, step.want, bill.BillNumber)
		}
	}

	next, err := f.svc.PeekNextNumber(ctx, enum.BillTypeSales)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != "150324-004" {
		t.Fatalf("expected peek 150324-004, got %q", next)
	}
}

func TestCreateBillConcurrentSavesGetDistinctNumbers(t *testing.T) {
	f := newBillFixture(t)
	f.bills.numberingDelay = 2 * time.Millisecond

	const n = 10
	numbers := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bill, err := f.svc.CreateBill(context.Background(), goldSale(1))
			errs[i] = err
			if bill != nil {
				numbers[i] = bill.BillNumber
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	sort.Strings(numbers)
	for i, got := range numbers {
		want := fmt.Sprintf("150324-%03d", i+1)
		if got != want {
			t.Fatalf("expected %s at %d, got %s (all: %v)", want, i, got, numbers)
		}
	}
}

func TestCreatePurchaseUsesCurrentMarketPrice(t *testing.T) {
	f := newBillFixture(t)

	bill, err := f.svc.CreateBill(context.Background(), &BillInput{
		Type: enum.BillTypePurchase,
		Items: []ItemInput{{
			ValuableID:              "gold-22k",
			WeightOrQuantity:        10,
			Rate:                    5000,
			PurchaseNetType:         enum.PurchaseNetPercentage,
			PurchaseNetPercentValue: 5,
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.SubTotal != 57000 || bill.TotalAmount != 57000 {
		t.Fatalf("expected 57000, got sub %v total %v", bill.SubTotal, bill.TotalAmount)
	}
	if bill.CGSTAmount != 0 || bill.CGSTRate != 0 {
		t.Fatalf("expected no tax on a purchase, got amount %v rate %v", bill.CGSTAmount, bill.CGSTRate)
	}
}

func TestSavedBillIgnoresLaterPriceChanges(t *testing.T) {
	f := newBillFixture(t)
	ctx := context.Background()

	bill, err := f.svc.CreateBill(ctx, &BillInput{
		Type: enum.BillTypePurchase,
		Items: []ItemInput{{
			ValuableID:              "gold-22k",
			WeightOrQuantity:        2,
			PurchaseNetType:         enum.PurchaseNetPercentage,
			PurchaseNetPercentValue: 10,
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	price := 9000.0
	if _, err := f.svc.materialService.UpdatePrice(ctx, "gold-22k", price); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved, err := f.svc.GetBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.TotalAmount != 10800 || saved.Items[0].Amount != 10800 {
		t.Fatalf("expected frozen total 10800, got %v", saved.TotalAmount)
	}
}

func TestUpdateBillKeepsNumberDateAndRates(t *testing.T) {
	f := newBillFixture(t)
	ctx := context.Background()

	bill, err := f.svc.CreateBill(ctx, goldSale(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	created := bill.Date

	if _, err := f.settings.UpdateSettings(ctx, &UpdateSettingsInput{CompanyName: "Shop", CGSTRate: 3, SGSTRate: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.now = f.now.Add(26 * time.Hour)

	updated, err := f.svc.UpdateBill(ctx, bill.ID, goldSale(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.BillNumber != bill.BillNumber || !updated.Date.Equal(created) {
		t.Fatalf("expected number and date to be kept, got %q %v", updated.BillNumber, updated.Date)
	}
	if updated.CGSTRate != 1.5 || updated.CGSTAmount != 198 {
		t.Fatalf("expected original 1.5%% rate, got rate %v amount %v", updated.CGSTRate, updated.CGSTAmount)
	}
	if updated.SubTotal != 13200 {
		t.Fatalf("expected recomputed subtotal 13200, got %v", updated.SubTotal)
	}

	changeType := goldSale(1)
	changeType.Type = enum.BillTypePurchase
	if _, err := f.svc.UpdateBill(ctx, bill.ID, changeType); appErrorCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 when changing type, got %v", err)
	}
}

func TestFeatureToggles(t *testing.T) {
	f := newBillFixture(t)
	ctx := context.Background()

	_, err := f.settings.UpdateSettings(ctx, &UpdateSettingsInput{
		CompanyName: "Shop", CGSTRate: 1.5, SGSTRate: 1.5,
		Features: map[string]bool{
			entity.FeaturePurchaseBills:    false,
			entity.FeatureDeliveryVouchers: false,
			entity.FeatureEstimates:        false,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, billType := range []enum.BillType{enum.BillTypePurchase, enum.BillTypeDeliveryVoucher} {
		input := goldSale(1)
		input.Type = billType
		if _, err := f.svc.CreateBill(ctx, input); appErrorCode(err) != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %v", billType, err)
		}
	}
	if _, err := f.svc.Estimate(ctx, goldSale(1)); appErrorCode(err) != http.StatusForbidden {
		t.Fatalf("expected 403 for estimate, got %v", err)
	}
	if _, err := f.svc.CreateBill(ctx, goldSale(1)); err != nil {
		t.Fatalf("sales bills must stay available, got %v", err)
	}
}

func TestEstimateIsTaxFreeAndNotSaved(t *testing.T) {
	f := newBillFixture(t)

	out, err := f.svc.Estimate(context.Background(), goldSale(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Totals.SubTotal != 66000 || out.Totals.Total != 66000 || out.Totals.CGST != 0 {
		t.Fatalf("unexpected estimate totals: %+v", out.Totals)
	}
	if out.NextNumber != "" {
		t.Fatalf("estimate must not be numbered, got %q", out.NextNumber)
	}
	if len(f.bills.bills) != 0 {
		t.Fatal("estimate must not be saved")
	}
}

func TestPreviewAppliesDefaults(t *testing.T) {
	f := newBillFixture(t)
	ctx := context.Background()

	_, err := f.settings.UpdateSettings(ctx, &UpdateSettingsInput{
		CompanyName: "Shop", CGSTRate: 1.5, SGSTRate: 1.5,
		DefaultMakingChargeType: enum.MakingChargeFixed,
		DefaultMakingCharge:     500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input := &BillInput{
		Type:          enum.BillTypeSales,
		ApplyDefaults: true,
		Items:         []ItemInput{{ValuableID: "silver", WeightOrQuantity: 100}},
	}
	out, err := f.svc.Preview(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 100 g at the silver market price of 80 plus a fixed 500 making charge
	if out.Items[0].Amount != 8500 {
		t.Fatalf("expected 8500, got %v", out.Items[0].Amount)
	}
	if out.Totals.Total != 8755 {
		t.Fatalf("expected 8755, got %v", out.Totals.Total)
	}
}

func TestCreateBillNormalizesPhone(t *testing.T) {
	f := newBillFixture(t)
	ctx := context.Background()

	input := goldSale(1)
	input.CustomerPhone = "98765 43210"
	bill, err := f.svc.CreateBill(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.CustomerPhone != "+919876543210" {
		t.Fatalf("expected E.164 phone, got %q", bill.CustomerPhone)
	}

	input.CustomerPhone = "12"
	if _, err := f.svc.CreateBill(ctx, input); appErrorCode(err) != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for invalid phone, got %v", err)
	}
}

func TestDeleteBill(t *testing.T) {
	f := newBillFixture(t)
	ctx := context.Background()

	bill, err := f.svc.CreateBill(ctx, goldSale(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.svc.DeleteBill(ctx, bill.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.GetBill(ctx, bill.ID); appErrorCode(err) != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %v", err)
	}
}

func TestCreateBillRoundsInputsToStoredScale(t *testing.T) {
	f := newBillFixture(t)

	bill, err := f.svc.CreateBill(context.Background(), &BillInput{
		Type: enum.BillTypeSales,
		Items: []ItemInput{{
			ValuableID:       "silver",
			WeightOrQuantity: 1.23456,
			Rate:             100.005,
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item := bill.Items[0]
	if item.WeightOrQuantity != 1.235 || item.Rate != 100.01 {
		t.Fatalf("expected inputs rounded to 1.235 and 100.01, got %v and %v", item.WeightOrQuantity, item.Rate)
	}
	if item.Amount != 123.51 {
		t.Fatalf("expected amount 123.51, got %v", item.Amount)
	}

	// Pricing the stored fields again must give the stored amount.
	again := billing.ComputeItemAmount(item, enum.BillTypeSales.PricingMode(), billing.NewRegistry(entity.DefaultMaterials()),
		billing.TaxRates{CGST: bill.CGSTRate, SGST: bill.SGSTRate})
	if again.Amount != item.Amount || again.CGST != item.ItemCGSTAmount || again.SGST != item.ItemSGSTAmount {
		t.Fatalf("stored item reprices to %+v, stored %v/%v/%v", again, item.Amount, item.ItemCGSTAmount, item.ItemSGSTAmount)
	}
}

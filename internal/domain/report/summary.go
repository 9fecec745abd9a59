package report

import (
	"sort"
	"time"

	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"github.com/sangkips/jewelbill-api/pkg/money"
	"github.com/shopspring/decimal"
)

// Summary holds the money totals of the bills in one period.
// TotalSales is the taxable value of sales bills, GrossSales includes tax.
type Summary struct {
	TotalSales     float64 `json:"total_sales"`
	GrossSales     float64 `json:"gross_sales"`
	TotalPurchases float64 `json:"total_purchases"`
	Profit         float64 `json:"profit"`
	TotalCGST      float64 `json:"total_cgst"`
	TotalSGST      float64 `json:"total_sgst"`
	TotalTax       float64 `json:"total_tax"`
	SalesCount     int     `json:"sales_count"`
	PurchaseCount  int     `json:"purchase_count"`
	DeliveryCount  int     `json:"delivery_count"`
}

// Summarize totals the bills whose date matches. Saved bill totals are
// summed as stored, never re-derived from items.
func Summarize(bills []entity.Bill, match Predicate) Summary {
	var s Summary
	sales, gross, purchases := decimal.Zero, decimal.Zero, decimal.Zero
	cgst, sgst := decimal.Zero, decimal.Zero

	for _, b := range bills {
		if match == nil || !match(b.Date) {
			continue
		}
		switch b.Type {
		case enum.BillTypeSales:
			s.SalesCount++
			sales = sales.Add(money.Dec(b.SubTotal))
			gross = gross.Add(money.Dec(b.TotalAmount))
			cgst = cgst.Add(money.Dec(b.CGSTAmount))
			sgst = sgst.Add(money.Dec(b.SGSTAmount))
		case enum.BillTypePurchase:
			s.PurchaseCount++
			purchases = purchases.Add(money.Dec(b.TotalAmount))
		case enum.BillTypeDeliveryVoucher:
			s.DeliveryCount++
		}
	}

	s.TotalSales = money.Float(sales)
	s.GrossSales = money.Float(gross)
	s.TotalPurchases = money.Float(purchases)
	s.Profit = money.Float(sales.Sub(purchases))
	s.TotalCGST = money.Float(cgst)
	s.TotalSGST = money.Float(sgst)
	s.TotalTax = money.Float(cgst.Add(sgst))
	return s
}

// MonthSummary is one bar of the monthly chart
type MonthSummary struct {
	Month time.Month `json:"month"`
	Name  string     `json:"name"`
	Summary
}

// MonthlyBreakdown summarizes each month of year in loc
func MonthlyBreakdown(bills []entity.Bill, year int, loc *time.Location) []MonthSummary {
	out := make([]MonthSummary, 0, 12)
	for m := time.January; m <= time.December; m++ {
		match := monthOf(year, m, loc)
		out = append(out, MonthSummary{
			Month:   m,
			Name:    m.String()[:3],
			Summary: Summarize(bills, match),
		})
	}
	return out
}

// AvailableYears returns the distinct bill years plus the current year,
// newest first.
func AvailableYears(bills []entity.Bill, now time.Time) []int {
	seen := map[int]bool{now.Year(): true}
	for _, b := range bills {
		seen[b.Date.In(now.Location()).Year()] = true
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

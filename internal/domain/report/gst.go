package report

import (
	"sort"
	"time"

	"github.com/sangkips/jewelbill-api/internal/domain/billing"
	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/internal/domain/enum"
	"github.com/sangkips/jewelbill-api/pkg/money"
	"github.com/shopspring/decimal"
)

// GSTRow is one sales item in the GST report
type GSTRow struct {
	BillNumber    string    `json:"bill_number"`
	Date          time.Time `json:"date"`
	CustomerName  string    `json:"customer_name"`
	CustomerGSTIN string    `json:"customer_gstin"`
	Material      string    `json:"material"`
	HSNCode       string    `json:"hsn_code"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `json:"unit"`
	TaxableValue  float64   `json:"taxable_value"`
	CGST          float64   `json:"cgst"`
	SGST          float64   `json:"sgst"`
	Total         float64   `json:"total"`
}

// GSTReport is the item level GST report with its totals
type GSTReport struct {
	Rows         []GSTRow `json:"rows"`
	TotalTaxable float64  `json:"total_taxable"`
	TotalCGST    float64  `json:"total_cgst"`
	TotalSGST    float64  `json:"total_sgst"`
	GrandTotal   float64  `json:"grand_total"`
}

// GSTRows flattens the matching sales bills into one row per item, oldest
// bill first. Material names come from the registry when the material
// still exists and from the item snapshot otherwise.
func GSTRows(bills []entity.Bill, match Predicate, lookup billing.MaterialLookup) GSTReport {
	selected := make([]entity.Bill, 0, len(bills))
	for _, b := range bills {
		if b.Type == enum.BillTypeSales && match != nil && match(b.Date) {
			selected = append(selected, b)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Date.Equal(selected[j].Date) {
			return selected[i].BillNumber < selected[j].BillNumber
		}
		return selected[i].Date.Before(selected[j].Date)
	})

	report := GSTReport{Rows: []GSTRow{}}
	taxable, cgst, sgst := decimal.Zero, decimal.Zero, decimal.Zero
	for _, b := range selected {
		items := append([]entity.BillItem(nil), b.Items...)
		sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })

		for _, item := range items {
			name := item.Name
			if lookup != nil {
				if info, ok := lookup.Lookup(item.ValuableID); ok {
					name = info.Name
				}
			}
			report.Rows = append(report.Rows, GSTRow{
				BillNumber:    b.BillNumber,
				Date:          b.Date,
				CustomerName:  b.CustomerName,
				CustomerGSTIN: b.CustomerGSTIN,
				Material:      name,
				HSNCode:       item.HSNCode,
				Quantity:      item.WeightOrQuantity,
				Unit:          item.Unit,
				TaxableValue:  item.Amount,
				CGST:          item.ItemCGSTAmount,
				SGST:          item.ItemSGSTAmount,
				Total:         money.Sum(item.Amount, item.ItemCGSTAmount, item.ItemSGSTAmount),
			})
			taxable = taxable.Add(money.Dec(item.Amount))
			cgst = cgst.Add(money.Dec(item.ItemCGSTAmount))
			sgst = sgst.Add(money.Dec(item.ItemSGSTAmount))
		}
	}

	report.TotalTaxable = money.Float(taxable)
	report.TotalCGST = money.Float(cgst)
	report.TotalSGST = money.Float(sgst)
	report.GrandTotal = money.Float(taxable.Add(cgst).Add(sgst))
	return report
}

// HSNLine is one HSN code and unit group of the GST report
type HSNLine struct {
	HSNCode      string  `json:"hsn_code"`
	Unit         string  `json:"unit"`
	ItemCount    int     `json:"item_count"`
	Quantity     float64 `json:"quantity"`
	TaxableValue float64 `json:"taxable_value"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	Total        float64 `json:"total"`
}

// HSNSummary groups GST rows by HSN code and unit, ordered by code
func HSNSummary(report GSTReport) []HSNLine {
	type key struct{ hsn, unit string }
	type acc struct {
		count                    int
		qty, taxable, cgst, sgst decimal.Decimal
	}

	groups := make(map[key]*acc)
	for _, row := range report.Rows {
		k := key{row.HSNCode, row.Unit}
		a, ok := groups[k]
		if !ok {
			a = &acc{}
			groups[k] = a
		}
		a.count++
		a.qty = a.qty.Add(money.Dec(row.Quantity))
		a.taxable = a.taxable.Add(money.Dec(row.TaxableValue))
		a.cgst = a.cgst.Add(money.Dec(row.CGST))
		a.sgst = a.sgst.Add(money.Dec(row.SGST))
	}

	lines := make([]HSNLine, 0, len(groups))
	for k, a := range groups {
		qty, _ := a.qty.Round(3).Float64()
		lines = append(lines, HSNLine{
			HSNCode:      k.hsn,
			Unit:         k.unit,
			ItemCount:    a.count,
			Quantity:     qty,
			TaxableValue: money.Float(a.taxable),
			CGST:         money.Float(a.cgst),
			SGST:         money.Float(a.sgst),
			Total:        money.Float(a.taxable.Add(a.cgst).Add(a.sgst)),
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].HSNCode == lines[j].HSNCode {
			return lines[i].Unit < lines[j].Unit
		}
		return lines[i].HSNCode < lines[j].HSNCode
	})
	return lines
}

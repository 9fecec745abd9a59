// Package export writes tabular reports as xlsx workbooks
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the MIME type of the generated workbooks
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is one worksheet: a heading row followed by data rows
type Sheet struct {
	Name     string
	Headings []string
	Rows     [][]any
	// Footer is written one row below the data, if set
	Footer []any
}

// WriteWorkbook renders the sheets into a single workbook and writes it to w
func WriteWorkbook(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("export: no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return err
		}

		if err := writeRow(f, sheet.Name, 1, toAny(sheet.Headings)); err != nil {
			return err
		}
		if len(sheet.Headings) > 0 {
			last, _ := excelize.CoordinatesToCellName(len(sheet.Headings), 1)
			if err := f.SetCellStyle(sheet.Name, "A1", last, bold); err != nil {
				return err
			}
		}

		rowNo := 2
		for _, row := range sheet.Rows {
			if err := writeRow(f, sheet.Name, rowNo, row); err != nil {
				return err
			}
			rowNo++
		}

		if len(sheet.Footer) > 0 {
			footerRow := rowNo + 1
			if err := writeRow(f, sheet.Name, footerRow, sheet.Footer); err != nil {
				return err
			}
			first, _ := excelize.CoordinatesToCellName(1, footerRow)
			last, _ := excelize.CoordinatesToCellName(len(sheet.Footer), footerRow)
			if err := f.SetCellStyle(sheet.Name, first, last, bold); err != nil {
				return err
			}
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeRow(f *excelize.File, sheet string, rowNo int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

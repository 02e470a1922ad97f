package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"pomail/internal"
)

func ExportRowsToXLSX(rows []internal.OrderExportRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"line_no", "detected_format", "order_date", "branch", "part_reference",
		"vendor_part_no", "quantity", "unit_price", "total_amount", "material_value", "confidence",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.LineNo)
		set(2, row.DetectedFormat)
		set(3, derefString(row.OrderDate))
		set(4, derefString(row.Branch))
		set(5, derefString(row.PartReference))
		set(6, row.VendorPartNo)
		set(7, row.Quantity)
		set(8, row.UnitPrice)
		set(9, row.TotalAmount)
		set(10, derefInt(row.MaterialValue))
		set(11, row.Confidence)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

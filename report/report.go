// Package report renders per-band aggregates as downloadable XLSX and
// PDF documents.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/icodeforyou/fasce-go/aggregate"
	"github.com/icodeforyou/fasce-go/types/maybe"
)

func periodTitle(year int, month time.Month) string {
	if month == 0 {
		return fmt.Sprintf("%d", year)
	}
	return fmt.Sprintf("%d-%02d", year, int(month))
}

func fmtMaybe(m maybe.Maybe[float64], format string) string {
	if !m.IsValid() {
		return "-"
	}
	return fmt.Sprintf(format, m.Value())
}

// BuildBandsXLSX renders the band aggregates for a period as an XLSX
// workbook with a single sheet.
func BuildBandsXLSX(year int, month time.Month, res aggregate.Result) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "bands"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", "Time-of-use bands")
	_ = f.SetCellValue(sheet, "A2", "Period")
	_ = f.SetCellValue(sheet, "B2", periodTitle(year, month))

	_ = f.SetCellValue(sheet, "A4", "Band")
	_ = f.SetCellValue(sheet, "B4", "Hours")
	_ = f.SetCellValue(sheet, "C4", "Mean price (EUR/MWh)")
	_ = f.SetCellValue(sheet, "D4", "Mean price (EUR/kWh)")
	_ = f.SetCellValue(sheet, "E4", "Energy (kWh)")
	_ = f.SetCellValue(sheet, "F4", "Cost (EUR)")

	for i, row := range res.Rows {
		r := i + 5
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), string(row.Band))
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.PricePoints)
		if row.MeanPrice.IsValid() {
			_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.MeanPrice.Value())
			_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.MeanPriceKWh().Value())
		}
		if row.TotalEnergy.IsValid() {
			_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.TotalEnergy.Value())
		}
		if row.Cost.IsValid() {
			_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", r), row.Cost.Value())
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildBandsPDF renders the band aggregates for a period as a one page
// PDF table.
func BuildBandsPDF(year int, month time.Month, res aggregate.Result) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Time-of-use bands")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s", periodTitle(year, month)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format(time.RFC3339)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(20, 6, "Band", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Hours", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Mean (EUR/MWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Energy (kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Cost (EUR)", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range res.Rows {
		pdf.CellFormat(20, 6, string(row.Band), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", row.PricePoints), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmtMaybe(row.MeanPrice, "%.2f"), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmtMaybe(row.TotalEnergy, "%.3f"), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmtMaybe(row.Cost, "%.2f"), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

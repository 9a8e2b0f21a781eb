package quotefile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"quoteterm/internal/quote"
)

var xlsxColumns = []string{"A", "B", "C", "D", "E", "F"}

// EncodeXLSX writes the priced rows, accessories and total to a workbook
// with a single sheet.
func EncodeXLSX(doc quote.Document, meta Meta) ([]byte, error) {
	p := doc.Product()
	if p == nil {
		return nil, fmt.Errorf("%w: no current product", ErrInvalidFormat)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Quote"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	widths := []float64{6, 10, 10, 10, 24, 14}
	for i, c := range xlsxColumns {
		if err := f.SetColWidth(sheet, c, c, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{Border: thinBorders()})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}
	priceFmt := "#,##0.00"
	priceStyle, err := f.NewStyle(&excelize.Style{Border: thinBorders(), CustomNumFmt: &priceFmt})
	if err != nil {
		return nil, fmt.Errorf("create price style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"#E8E8E8"}, Pattern: 1},
		Border:       thinBorders(),
		CustomNumFmt: &priceFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	if err := f.MergeCell(sheet, "A1", "F1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(meta.title()))
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	subtitle := doc.QuoteID
	if !meta.Date.IsZero() {
		subtitle = strings.TrimSpace(subtitle + " " + meta.Date.Format("2006-01-02"))
	}
	if doc.Customer.Name != "" {
		subtitle = strings.TrimSpace(subtitle + " " + doc.Customer.Name)
	}
	f.SetCellValue(sheet, "A2", sanitizeExcelCell(subtitle))

	row := 4
	headers := []string{"#", "Width", "Height", "Type", "Location", "Price"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", xlsxColumns[i], row), h)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), headerStyle)
	row++

	for i, item := range p.Items {
		if !item.HasData() {
			continue
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		if item.Width != nil {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), *item.Width)
		}
		if item.Height != nil {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), *item.Height)
		}
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), sanitizeExcelCell(item.FabricType))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), sanitizeExcelCell(item.Location))
		if item.LinePrice != nil {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), *item.LinePrice)
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), cellStyle)
		f.SetCellStyle(sheet, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), priceStyle)
		row++
	}

	row++
	acc := p.Summary.Accessories
	for _, kind := range quote.AccessoryKinds() {
		a := acc.Get(kind)
		if a == nil || a.Count == 0 {
			continue
		}
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), string(kind))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), a.Count)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), a.Price)
		f.SetCellStyle(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("E%d", row), cellStyle)
		f.SetCellStyle(sheet, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), priceStyle)
		row++
	}

	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "Total")
	if p.Summary.TotalSum != nil {
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), *p.Summary.TotalSum)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("F%d", row), totalStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell stops spreadsheet apps from evaluating user text as a
// formula.
func sanitizeExcelCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#000000", Style: 1},
		{Type: "top", Color: "#000000", Style: 1},
		{Type: "bottom", Color: "#000000", Style: 1},
		{Type: "right", Color: "#000000", Style: 1},
	}
}

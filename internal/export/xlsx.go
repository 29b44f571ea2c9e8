package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Препродакшн"

// writeXLSX renders the breakdown with a styled header row, bordered cells,
// fitted column widths, and a frozen header pane.
func writeXLSX(path string, columns []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	border := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return fmt.Errorf("cell style: %w", err)
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for r, row := range rows {
		for c, val := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheetName, cell, val); err != nil {
				return fmt.Errorf("write cell: %w", err)
			}
		}
	}

	if len(columns) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, 1)
		last, _ := excelize.CoordinatesToCellName(len(columns), 1)
		if err := f.SetCellStyle(sheetName, first, last, headerStyle); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
		if len(rows) > 0 {
			firstData, _ := excelize.CoordinatesToCellName(1, 2)
			lastData, _ := excelize.CoordinatesToCellName(len(columns), len(rows)+1)
			if err := f.SetCellStyle(sheetName, firstData, lastData, cellStyle); err != nil {
				return fmt.Errorf("style cells: %w", err)
			}
		}
	}

	setColumnWidths(f, columns, rows)

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	return f.SaveAs(path)
}

// setColumnWidths fits each column to its longest line, capped so long
// descriptions wrap instead of stretching the sheet.
func setColumnWidths(f *excelize.File, columns []string, rows [][]string) {
	for i, col := range columns {
		width := len([]rune(col))
		for _, row := range rows {
			if i >= len(row) {
				continue
			}
			for _, line := range splitLines(row[i]) {
				if n := len([]rune(line)); n > width && n <= 50 {
					width = n
				} else if n > 50 {
					width = 50
				}
			}
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, name, name, float64(minInt(width+2, 60)))
	}
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

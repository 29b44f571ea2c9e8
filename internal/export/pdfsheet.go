package export

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/kinoworks/prepro/internal/scene"
)

// writeBreakdownPDF renders one block per scene: a header line with number,
// location, and time, then each requested column that has content. Cyrillic
// goes through the cp1251 translator since the core fonts are not Unicode.
func writeBreakdownPDF(path string, scenes []*scene.Scene, columns []string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")
	pdf.SetFont("Helvetica", "", 10)
	pdf.AddPage()

	for _, s := range scenes {
		title := fmt.Sprintf("Сцена %d", s.Number)
		if s.Location != "" {
			title += " — " + s.Location
		}
		if s.TimeOfDay != "" {
			title += " — " + s.TimeOfDay
		}
		if s.IntExt != scene.IntExtUnknown {
			title += " (" + s.IntExt.String() + ")"
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, tr(title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)

		for _, col := range columns {
			switch columnFields[col] {
			case FieldNumber, FieldLocation, FieldTimeOfDay, FieldIntExt:
				continue
			}
			val := CellValue(s, col)
			if val == "" {
				continue
			}
			pdf.MultiCell(0, 5, tr(col+": "+val), "", "L", false)
		}
		pdf.Ln(4)
	}

	return pdf.OutputFileAndClose(path)
}

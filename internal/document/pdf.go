package document

import (
	"fmt"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
)

// parsePDF extracts page text in order. Pages whose content cannot be
// decoded are skipped rather than failing the whole document; screenplay
// PDFs routinely mix scanned and text pages.
func (p *Parser) parsePDF(path string) (string, Metadata, error) {
	f, r, err := lpdf.Open(path)
	if err != nil {
		return "", Metadata{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	meta := Metadata{
		Pages:    r.NumPage(),
		Format:   FormatPDF,
		Encoding: "utf-8",
	}
	if err := p.checkPages(meta.Pages); err != nil {
		return "", meta, err
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), meta, nil
}

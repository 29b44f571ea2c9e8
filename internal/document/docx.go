package document

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// parseDOCX extracts paragraph text from word/document.xml in document
// order, which interleaves table cells where they appear. Page count is
// estimated from word count since DOCX carries no fixed pagination.
func (p *Parser) parseDOCX(path string) (string, Metadata, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", Metadata{}, fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", Metadata{}, errors.New("docx: word/document.xml not found")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", Metadata{}, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	text, err := docxText(rc)
	if err != nil {
		return "", Metadata{}, fmt.Errorf("parse document.xml: %w", err)
	}

	meta := Metadata{
		Pages:    estimatePages(text),
		Format:   FormatDOCX,
		Encoding: "utf-8",
	}
	if err := p.checkPages(meta.Pages); err != nil {
		return "", meta, err
	}
	return text, meta, nil
}

// docxText walks the WordprocessingML token stream collecting the contents
// of w:t runs, with a line break at each paragraph end and a tab between
// adjacent table cells.
func docxText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "br":
				sb.WriteString("\n")
			case "tab":
				sb.WriteString("\t")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			case "tc":
				sb.WriteString("\t")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

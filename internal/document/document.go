// Package document turns uploaded screenplay files into a single decoded
// text blob plus minimal metadata. The segmentation and analysis core only
// ever sees the output of this package, never container bytes.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kinoworks/prepro/internal/scene"
)

// Format identifies the source container.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

// Metadata describes the decoded document.
type Metadata struct {
	Pages    int
	Format   Format
	Encoding string
}

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrTooManyPages      = errors.New("document exceeds the page limit")
	ErrFileTooLarge      = errors.New("file exceeds the size limit")
)

// wordsPerPage approximates page count for formats without page geometry.
const wordsPerPage = 400

// Parser decodes PDF, DOCX, and plain-text screenplay files.
type Parser struct {
	// MaxPages rejects documents over the page limit. Zero disables.
	MaxPages int
	// MaxFileBytes rejects files over the size limit. Zero disables.
	MaxFileBytes int64
}

// Validate checks the file before any decoding work: it must exist, carry a
// supported extension, and fit the size limit.
func (p *Parser) Validate(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	switch ext(path) {
	case ".pdf", ".docx", ".txt":
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext(path))
	}
	if p.MaxFileBytes > 0 && fi.Size() > p.MaxFileBytes {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, fi.Size())
	}
	return nil
}

// Parse decodes the file into text and metadata, dispatching on extension.
func (p *Parser) Parse(path string) (string, Metadata, error) {
	switch ext(path) {
	case ".pdf":
		return p.parsePDF(path)
	case ".docx":
		return p.parseDOCX(path)
	case ".txt":
		return p.parseText(path)
	default:
		return "", Metadata{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext(path))
	}
}

func (p *Parser) parseText(path string) (string, Metadata, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", Metadata{}, fmt.Errorf("read input: %w", err)
	}
	text, encoding := DecodeText(b)
	meta := Metadata{
		Pages:    estimatePages(text),
		Format:   FormatText,
		Encoding: encoding,
	}
	if err := p.checkPages(meta.Pages); err != nil {
		return "", meta, err
	}
	return text, meta, nil
}

func (p *Parser) checkPages(pages int) error {
	if p.MaxPages > 0 && pages > p.MaxPages {
		return fmt.Errorf("%w: %d pages, limit %d", ErrTooManyPages, pages, p.MaxPages)
	}
	return nil
}

// estimatePages approximates page count from word count for formats that do
// not carry page geometry.
func estimatePages(text string) int {
	pages := scene.CountWords(text) / wordsPerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

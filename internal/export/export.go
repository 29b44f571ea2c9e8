package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kinoworks/prepro/internal/scene"
)

// Exporter writes production sheets into an output directory.
type Exporter struct {
	OutputDir string
}

// Export writes the scenes as a sheet in the requested format ("csv",
// "xlsx", or "pdf") and returns the output path. An empty name gets a
// timestamped default.
func (e *Exporter) Export(scenes []*scene.Scene, columns []string, format, name string) (string, error) {
	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if name == "" {
		name = "preproduction_" + time.Now().Format("20060102_150405")
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))

	rows := Rows(scenes, columns)
	switch strings.ToLower(format) {
	case "csv":
		path := filepath.Join(e.OutputDir, name+".csv")
		return path, writeCSV(path, columns, rows)
	case "", "xlsx":
		path := filepath.Join(e.OutputDir, name+".xlsx")
		return path, writeXLSX(path, columns, rows)
	case "pdf":
		path := filepath.Join(e.OutputDir, name+".pdf")
		return path, writeBreakdownPDF(path, scenes, columns)
	default:
		return "", fmt.Errorf("unsupported export format: %q", format)
	}
}

// ExportSummary writes the summary workbook next to the main sheet and
// returns its path.
func (e *Exporter) ExportSummary(scenes []*scene.Scene, name string) (string, error) {
	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if name == "" {
		name = "summary_" + time.Now().Format("20060102_150405")
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	path := filepath.Join(e.OutputDir, name+".xlsx")
	return path, writeSummaryXLSX(path, Summarize(scenes))
}

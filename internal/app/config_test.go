package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyFileConfigFlagsWin(t *testing.T) {
	cfg := Config{
		OutputDir: "from-flag",
		Preset:    "full",
	}
	var fc FileConfig
	fc.Output.Dir = "from-file"
	fc.Output.Preset = "basic"
	fc.Output.Format = "pdf"
	fc.Limits.Workers = 4

	ApplyFileConfig(&cfg, fc)

	if cfg.OutputDir != "from-flag" {
		t.Fatalf("outputDir = %q, flag value must win", cfg.OutputDir)
	}
	if cfg.Preset != "full" {
		t.Fatalf("preset = %q, flag value must win", cfg.Preset)
	}
	// Unset fields take file values.
	if cfg.Format != "pdf" {
		t.Fatalf("format = %q, want file value pdf", cfg.Format)
	}
	if cfg.Workers != 4 {
		t.Fatalf("workers = %d, want file value 4", cfg.Workers)
	}
}

func TestLoadConfigFile(t *testing.T) {
	body := `
output:
  dir: sheets
  format: xlsx
  preset: extended
limits:
  maxPages: 500
  maxProcessingMinutes: 5
keywords:
  stopwords: ["КАДР", "ТИТРЫ"]
`
	path := filepath.Join(t.TempDir(), "prepro.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fc.Output.Dir != "sheets" || fc.Output.Format != "xlsx" {
		t.Fatalf("output = %+v", fc.Output)
	}
	if fc.Limits.MaxPages != 500 {
		t.Fatalf("maxPages = %d", fc.Limits.MaxPages)
	}
	if fc.Keywords == nil || len(fc.Keywords.Stopwords) != 2 {
		t.Fatalf("keywords = %+v", fc.Keywords)
	}

	var cfg Config
	ApplyFileConfig(&cfg, fc)
	if cfg.MaxProcessingTime != 5*time.Minute {
		t.Fatalf("maxProcessingTime = %v", cfg.MaxProcessingTime)
	}
}

func TestValidateConfig(t *testing.T) {
	ok := Config{OutputDir: "out", Format: "csv", Preset: "basic"}
	if err := ValidateConfig(ok); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	bad := []Config{
		{OutputDir: ""},
		{OutputDir: "out", Format: "odt"},
		{OutputDir: "out", Preset: "nonsense"},
		{OutputDir: "out", Columns: []string{"Бюджет"}},
		{OutputDir: "out", Workers: -1},
	}
	for i, cfg := range bad {
		if err := ValidateConfig(cfg); err == nil {
			t.Fatalf("case %d: invalid config accepted: %+v", i, cfg)
		}
	}
}

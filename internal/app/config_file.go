package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/kinoworks/prepro/internal/analyze"
	"github.com/kinoworks/prepro/internal/export"
)

// FileConfig is the single-file YAML configuration schema. Flags win over
// file values; the file supplies defaults, including the keyword lists.
type FileConfig struct {
	Output struct {
		Dir    string `yaml:"dir"`
		Format string `yaml:"format"`
		Preset string `yaml:"preset"`
	} `yaml:"output"`

	LLM struct {
		BaseURL string `yaml:"base"`
		Model   string `yaml:"model"`
		APIKey  string `yaml:"key"`
	} `yaml:"llm"`

	Limits struct {
		MaxPages             int   `yaml:"maxPages"`
		MaxFileMB            int64 `yaml:"maxFileMB"`
		MaxProcessingMinutes int   `yaml:"maxProcessingMinutes"`
		ChunkWords           int   `yaml:"chunkWords"`
		Workers              int   `yaml:"workers"`
	} `yaml:"limits"`

	History string `yaml:"history"`

	// Keywords replaces the built-in keyword configuration when present.
	Keywords *analyze.Keywords `yaml:"keywords"`
}

// LoadConfigFile reads the YAML config.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse config: %w", err)
	}
	return fc, nil
}

// ApplyFileConfig overlays file values into cfg for fields still at their
// zero value, so explicit flags keep precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.OutputDir == "" && fc.Output.Dir != "" {
		cfg.OutputDir = fc.Output.Dir
	}
	if cfg.Format == "" && fc.Output.Format != "" {
		cfg.Format = fc.Output.Format
	}
	if cfg.Preset == "" && fc.Output.Preset != "" {
		cfg.Preset = fc.Output.Preset
	}
	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.MaxPages == 0 && fc.Limits.MaxPages > 0 {
		cfg.MaxPages = fc.Limits.MaxPages
	}
	if cfg.MaxFileMB == 0 && fc.Limits.MaxFileMB > 0 {
		cfg.MaxFileMB = fc.Limits.MaxFileMB
	}
	if cfg.MaxProcessingTime == 0 && fc.Limits.MaxProcessingMinutes > 0 {
		cfg.MaxProcessingTime = time.Duration(fc.Limits.MaxProcessingMinutes) * time.Minute
	}
	if cfg.ChunkWords == 0 && fc.Limits.ChunkWords > 0 {
		cfg.ChunkWords = fc.Limits.ChunkWords
	}
	if cfg.Workers == 0 && fc.Limits.Workers > 0 {
		cfg.Workers = fc.Limits.Workers
	}
	if cfg.HistoryPath == "" && fc.History != "" {
		cfg.HistoryPath = fc.History
	}
}

// ValidateConfig performs minimal schema validation.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return errors.New("config: output dir is required")
	}
	switch strings.ToLower(cfg.Format) {
	case "", "csv", "xlsx", "pdf":
	default:
		return fmt.Errorf("config: unsupported format %q", cfg.Format)
	}
	if cfg.Preset != "" {
		if _, ok := export.Presets[cfg.Preset]; !ok {
			return fmt.Errorf("config: unknown preset %q", cfg.Preset)
		}
	}
	if len(cfg.Columns) > 0 {
		if err := export.ValidateColumns(cfg.Columns); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if cfg.MaxPages < 0 || cfg.MaxFileMB < 0 || cfg.ChunkWords < 0 || cfg.Workers < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	return nil
}

package app

import "time"

// Config holds runtime configuration for the processor.
type Config struct {
	// Output
	OutputDir string
	Format    string
	Preset    string
	// Columns overrides the preset when non-empty.
	Columns []string

	// LLM person tagger; empty model disables tagging and the pipeline
	// falls back to dialogue cues alone.
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Limits
	MaxPages          int
	MaxFileMB         int64
	MaxProcessingTime time.Duration
	ChunkWords        int
	Workers           int

	// HistoryPath enables the run-history database when set.
	HistoryPath string

	Verbose bool
}

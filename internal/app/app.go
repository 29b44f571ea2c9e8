// Package app wires the document parser, segmenter, analysis pipeline, and
// exporters into one processor behind a small configuration surface. The CLI
// and the HTTP server are both thin shells over this package.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/kinoworks/prepro/internal/analyze"
	"github.com/kinoworks/prepro/internal/document"
	"github.com/kinoworks/prepro/internal/export"
	"github.com/kinoworks/prepro/internal/history"
	"github.com/kinoworks/prepro/internal/llm"
	"github.com/kinoworks/prepro/internal/scene"
	"github.com/kinoworks/prepro/internal/segment"
)

// minTextLen guards against uploads that decoded to nearly nothing, which
// usually means a scanned PDF or a wrong file.
const minTextLen = 100

// ErrTextTooShort reports a document whose decoded text is too small to be a
// screenplay.
var ErrTextTooShort = errors.New("document text is too short")

// Result describes one processed document.
type Result struct {
	Scenes      []*scene.Scene
	SceneCount  int
	Pages       int
	Encoding    string
	OutputPath  string
	SummaryPath string
	Elapsed     time.Duration
}

// Processor runs the full breakdown: parse, segment, analyze, export.
type Processor struct {
	cfg      Config
	parser   *document.Parser
	segmentr *segment.Segmenter
	pipeline *analyze.Pipeline
	exporter *export.Exporter
	store    *history.Store
}

// New builds a processor from cfg and an optional keyword override. When an
// LLM model is configured it verifies connectivity by listing models, so a
// dead endpoint fails at startup rather than mid-document.
func New(ctx context.Context, cfg Config, kw *analyze.Keywords) (*Processor, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	var tagger analyze.PersonTagger
	if cfg.LLMModel != "" {
		clientCfg := openai.DefaultConfig(cfg.LLMAPIKey)
		if cfg.LLMBaseURL != "" {
			clientCfg.BaseURL = cfg.LLMBaseURL
		}
		provider := &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(clientCfg)}
		if _, err := provider.ListModels(ctx); err != nil {
			return nil, fmt.Errorf("llm endpoint check: %w", err)
		}
		log.Info().Str("model", cfg.LLMModel).Msg("person tagger enabled")
		tagger = &analyze.LLMTagger{Client: provider, Model: cfg.LLMModel}
	} else {
		log.Debug().Msg("no llm model configured, dialogue cues only")
	}

	pipeline := analyze.NewPipeline(kw, tagger, nil)
	pipeline.Workers = cfg.Workers

	var store *history.Store
	if cfg.HistoryPath != "" {
		var err error
		store, err = history.Open(cfg.HistoryPath)
		if err != nil {
			return nil, err
		}
	}

	return &Processor{
		cfg: cfg,
		parser: &document.Parser{
			MaxPages:     cfg.MaxPages,
			MaxFileBytes: cfg.MaxFileMB * 1024 * 1024,
		},
		segmentr: &segment.Segmenter{
			Detector:   segment.NewDetector(),
			ChunkWords: cfg.ChunkWords,
		},
		pipeline: pipeline,
		exporter: &export.Exporter{OutputDir: cfg.OutputDir},
		store:    store,
	}, nil
}

// Close releases resources held by the processor.
func (p *Processor) Close() error {
	if p.store != nil {
		return p.store.Close()
	}
	return nil
}

// History returns the run-history store, nil when history is disabled.
func (p *Processor) History() *history.Store {
	return p.store
}

// Options override export settings for a single run. Zero values fall back
// to the processor configuration.
type Options struct {
	Preset  string
	Columns []string
	Format  string
}

// columns resolves the effective column set for this run.
func (p *Processor) columns(opts Options) ([]string, error) {
	if len(opts.Columns) > 0 {
		if err := export.ValidateColumns(opts.Columns); err != nil {
			return nil, err
		}
		return opts.Columns, nil
	}
	if opts.Preset != "" {
		if _, ok := export.Presets[opts.Preset]; !ok {
			return nil, fmt.Errorf("unknown preset %q", opts.Preset)
		}
		return export.PresetColumns(opts.Preset), nil
	}
	if len(p.cfg.Columns) > 0 {
		return p.cfg.Columns, nil
	}
	return export.PresetColumns(p.cfg.Preset), nil
}

// Process runs the full breakdown for one file and writes the production
// sheet plus the summary workbook.
func (p *Processor) Process(ctx context.Context, path string) (*Result, error) {
	return p.ProcessWith(ctx, path, Options{})
}

// ProcessWith is Process with per-run export overrides.
func (p *Processor) ProcessWith(ctx context.Context, path string, opts Options) (*Result, error) {
	start := time.Now()

	if err := p.parser.Validate(path); err != nil {
		return nil, err
	}
	text, meta, err := p.parser.Parse(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(text)) < minTextLen {
		return nil, fmt.Errorf("%w: %d characters", ErrTextTooShort, len(strings.TrimSpace(text)))
	}
	log.Info().
		Str("file", filepath.Base(path)).
		Str("format", string(meta.Format)).
		Int("pages", meta.Pages).
		Msg("document decoded")

	columns, err := p.columns(opts)
	if err != nil {
		return nil, err
	}
	format := opts.Format
	if format == "" {
		format = p.cfg.Format
	}

	scenes, err := p.breakdown(ctx, text)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stamp := time.Now().Format("20060102_150405")
	outPath, err := p.exporter.Export(scenes, columns, format, base+"_"+stamp)
	if err != nil {
		return nil, err
	}
	sumPath, err := p.exporter.ExportSummary(scenes, base+"_summary_"+stamp)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	if p.cfg.MaxProcessingTime > 0 && elapsed > p.cfg.MaxProcessingTime {
		log.Warn().
			Dur("elapsed", elapsed).
			Dur("limit", p.cfg.MaxProcessingTime).
			Msg("processing exceeded the time limit")
	}

	if p.store != nil {
		err := p.store.Record(ctx, history.Run{
			Filename: filepath.Base(path),
			Scenes:   len(scenes),
			Pages:    meta.Pages,
			Elapsed:  elapsed,
			Output:   outPath,
		})
		if err != nil {
			log.Warn().Err(err).Msg("recording run history failed")
		}
	}

	log.Info().
		Int("scenes", len(scenes)).
		Dur("elapsed", elapsed).
		Str("output", outPath).
		Msg("breakdown complete")

	return &Result{
		Scenes:      scenes,
		SceneCount:  len(scenes),
		Pages:       meta.Pages,
		Encoding:    meta.Encoding,
		OutputPath:  outPath,
		SummaryPath: sumPath,
		Elapsed:     elapsed,
	}, nil
}

// Preview parses and analyzes the file without exporting and returns at most
// n scenes. n <= 0 means all.
func (p *Processor) Preview(ctx context.Context, path string, n int) ([]*scene.Scene, error) {
	if err := p.parser.Validate(path); err != nil {
		return nil, err
	}
	text, _, err := p.parser.Parse(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(text)) < minTextLen {
		return nil, fmt.Errorf("%w: %d characters", ErrTextTooShort, len(strings.TrimSpace(text)))
	}
	scenes, err := p.breakdown(ctx, text)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(scenes) > n {
		scenes = scenes[:n]
	}
	return scenes, nil
}

func (p *Processor) breakdown(ctx context.Context, text string) ([]*scene.Scene, error) {
	scenes := p.segmentr.Segment(text)
	if len(scenes) == 0 {
		return nil, errors.New("no scenes found in document")
	}
	p.pipeline.Analyze(ctx, scenes)
	return scenes, nil
}

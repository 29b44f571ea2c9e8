package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kinoworks/prepro/internal/analyze"
	"github.com/kinoworks/prepro/internal/app"
	"github.com/kinoworks/prepro/internal/scene"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		inputPath   string
		configPath  string
		outputDir   string
		format      string
		preset      string
		columns     string
		previewN    int
		historyN    int
		historyPath string
		llmBaseURL  string
		llmModel    string
		llmKey      string
		maxPages    int
		maxFileMB   int64
		maxMinutes  int
		chunkWords  int
		workers     int
		verbose     bool
	)

	flag.StringVar(&inputPath, "input", "", "Path to the screenplay file (.pdf, .docx, .txt)")
	flag.StringVar(&configPath, "config", os.Getenv("PREPRO_CONFIG"), "Path to YAML config file (optional)")
	flag.StringVar(&outputDir, "out", "", "Output directory for generated sheets")
	flag.StringVar(&format, "format", "", "Export format: csv, xlsx, or pdf")
	flag.StringVar(&preset, "preset", "", "Column preset: basic, extended, or full")
	flag.StringVar(&columns, "columns", "", "Comma-separated column labels overriding the preset")
	flag.IntVar(&previewN, "preview", 0, "Print the first N scenes as a table instead of exporting")
	flag.IntVar(&historyN, "history", 0, "Print the last N processing runs and exit")
	flag.StringVar(&historyPath, "history.db", os.Getenv("PREPRO_HISTORY"), "Path to the run-history database (empty disables)")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL for the person tagger")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name for the person tagger (empty disables)")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for the person tagger endpoint")
	flag.IntVar(&maxPages, "max.pages", 0, "Reject documents over this page count (0 disables)")
	flag.Int64Var(&maxFileMB, "max.fileMB", 0, "Reject files over this size in MB (0 disables)")
	flag.IntVar(&maxMinutes, "max.minutes", 0, "Warn when processing exceeds this many minutes (0 disables)")
	flag.IntVar(&chunkWords, "chunk.words", 0, "Fallback chunk size in words when no headers are found")
	flag.IntVar(&workers, "workers", 0, "Concurrent scene analysis workers (<2 means serial)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		OutputDir:   outputDir,
		Format:      format,
		Preset:      preset,
		LLMBaseURL:  llmBaseURL,
		LLMModel:    llmModel,
		LLMAPIKey:   llmKey,
		MaxPages:    maxPages,
		MaxFileMB:   maxFileMB,
		ChunkWords:  chunkWords,
		Workers:     workers,
		HistoryPath: historyPath,
		Verbose:     verbose,
	}
	if maxMinutes > 0 {
		cfg.MaxProcessingTime = time.Duration(maxMinutes) * time.Minute
	}
	if s := strings.TrimSpace(columns); s != "" {
		parts := strings.Split(s, ",")
		list := make([]string, 0, len(parts))
		for _, p := range parts {
			if v := strings.TrimSpace(p); v != "" {
				list = append(list, v)
			}
		}
		cfg.Columns = list
	}

	var kw *analyze.Keywords
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("loading config file failed")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
		kw = fc.Keywords
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}

	if err := run(cfg, kw, inputPath, previewN, historyN); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(cfg app.Config, kw *analyze.Keywords, inputPath string, previewN, historyN int) error {
	ctx := context.Background()

	proc, err := app.New(ctx, cfg, kw)
	if err != nil {
		return fmt.Errorf("init processor: %w", err)
	}
	defer proc.Close()

	if historyN > 0 {
		return printHistory(ctx, proc, historyN)
	}

	if strings.TrimSpace(inputPath) == "" {
		return fmt.Errorf("-input is required")
	}

	if previewN > 0 {
		scenes, err := proc.Preview(ctx, inputPath, previewN)
		if err != nil {
			return err
		}
		renderPreview(os.Stdout, scenes)
		return nil
	}

	res, err := proc.Process(ctx, inputPath)
	if err != nil {
		return err
	}
	fmt.Printf("Scenes: %d\nSheet: %s\nSummary: %s\n", res.SceneCount, res.OutputPath, res.SummaryPath)
	return nil
}

// renderPreview prints a compact per-scene table for a quick sanity check
// before committing to a full export.
func renderPreview(out *os.File, scenes []*scene.Scene) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"#", "Локация", "Время", "Инт/Экс", "Персонажи", "Слов"})
	for _, s := range scenes {
		t.AppendRow(table.Row{
			s.Number,
			s.Location,
			s.TimeOfDay,
			s.IntExt.String(),
			strings.Join(s.Characters, ", "),
			s.WordCount,
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func printHistory(ctx context.Context, proc *app.Processor, n int) error {
	store := proc.History()
	if store == nil {
		return fmt.Errorf("history is disabled, set -history.db")
	}
	runs, err := store.Recent(ctx, n)
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Файл", "Сцен", "Страниц", "Время", "Выход", "Дата"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.ID, r.Filename, r.Scenes, r.Pages,
			r.Elapsed.Round(time.Millisecond).String(),
			r.Output,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}

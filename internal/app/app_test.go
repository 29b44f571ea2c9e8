package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const screenplay = `СЦЕНА 1
ИНТЕРЬЕР. КУХНЯ - ДЕНЬ
ИВАН: Доброе утро, сегодня я готовлю завтрак для всей семьи.
Иван ставит чашку на стол и открывает окно.

СЦЕНА 2
ЭКСТЕРЬЕР. УЛИЦА - НОЧЬ
МАРИЯ: Уже поздно, пора домой.
Мария идет по пустой улице мимо припаркованной машины.
`

func writeScreenplay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write screenplay: %v", err)
	}
	return path
}

func newTestProcessor(t *testing.T, cfg Config) *Processor {
	t.Helper()
	if cfg.OutputDir == "" {
		cfg.OutputDir = t.TempDir()
	}
	proc, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("init processor: %v", err)
	}
	t.Cleanup(func() { proc.Close() })
	return proc
}

func TestProcessWritesSheetAndSummary(t *testing.T) {
	proc := newTestProcessor(t, Config{Format: "csv", Preset: "basic"})
	path := writeScreenplay(t, screenplay)

	res, err := proc.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.SceneCount != 2 {
		t.Fatalf("sceneCount = %d, want 2", res.SceneCount)
	}
	for _, p := range []string{res.OutputPath, res.SummaryPath} {
		if fi, err := os.Stat(p); err != nil || fi.Size() == 0 {
			t.Fatalf("output %q missing or empty: %v", p, err)
		}
	}
	if res.Elapsed <= 0 {
		t.Fatalf("elapsed = %v", res.Elapsed)
	}
}

func TestProcessRejectsShortText(t *testing.T) {
	proc := newTestProcessor(t, Config{Format: "csv"})
	path := writeScreenplay(t, "коротко")

	if _, err := proc.Process(context.Background(), path); !errors.Is(err, ErrTextTooShort) {
		t.Fatalf("got %v, want ErrTextTooShort", err)
	}
}

func TestProcessWithOptionOverrides(t *testing.T) {
	proc := newTestProcessor(t, Config{Format: "xlsx", Preset: "full"})
	path := writeScreenplay(t, screenplay)

	res, err := proc.ProcessWith(context.Background(), path, Options{Format: "csv", Preset: "basic"})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if filepath.Ext(res.OutputPath) != ".csv" {
		t.Fatalf("output = %q, per-run format must win", res.OutputPath)
	}
}

func TestProcessWithRejectsUnknownPreset(t *testing.T) {
	proc := newTestProcessor(t, Config{Format: "csv"})
	path := writeScreenplay(t, screenplay)

	if _, err := proc.ProcessWith(context.Background(), path, Options{Preset: "nonsense"}); err == nil {
		t.Fatalf("unknown per-run preset must be rejected")
	}
}

func TestPreviewLimitsScenes(t *testing.T) {
	proc := newTestProcessor(t, Config{Format: "csv"})
	path := writeScreenplay(t, screenplay)

	scenes, err := proc.Preview(context.Background(), path, 1)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(scenes) != 1 {
		t.Fatalf("got %d scenes, want 1", len(scenes))
	}
	if scenes[0].Location != "КУХНЯ" {
		t.Fatalf("location = %q", scenes[0].Location)
	}
}

func TestProcessRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	proc := newTestProcessor(t, Config{
		Format:      "csv",
		HistoryPath: filepath.Join(dir, "runs.db"),
	})
	path := writeScreenplay(t, screenplay)

	if _, err := proc.Process(context.Background(), path); err != nil {
		t.Fatalf("process: %v", err)
	}
	runs, err := proc.History().Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 1 || runs[0].Filename != "scenario.txt" || runs[0].Scenes != 2 {
		t.Fatalf("history = %+v", runs)
	}
}

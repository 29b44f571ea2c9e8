package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kinoworks/prepro/internal/scene"
)

func sampleScenes() []*scene.Scene {
	return []*scene.Scene{
		{
			Number:     1,
			Location:   "КУХНЯ",
			TimeOfDay:  "ДЕНЬ",
			IntExt:     scene.Interior,
			Characters: []string{"Иван", "Мария"},
			WordCount:  42,
			Elements: map[scene.Category][]string{
				scene.CategoryProps: {"Стол", "Чашка"},
			},
			Description: "Иван готовит завтрак",
		},
		{
			Number:      2,
			Location:    "УЛИЦА",
			TimeOfDay:   "НОЧЬ",
			IntExt:      scene.Exterior,
			Characters:  []string{"Мария"},
			WordCount:   17,
			Description: "Мария идет домой",
		},
	}
}

func TestValidateColumns(t *testing.T) {
	if err := ValidateColumns([]string{"Номер сцены", "Локация"}); err != nil {
		t.Fatalf("known columns rejected: %v", err)
	}
	err := ValidateColumns([]string{"Номер сцены", "Бюджет"})
	if err == nil || !strings.Contains(err.Error(), "Бюджет") {
		t.Fatalf("got %v, want unknown-column error naming Бюджет", err)
	}
	if err := ValidateColumns(nil); err == nil {
		t.Fatalf("empty column list must be rejected")
	}
}

func TestPresetColumnsFallsBackToDefault(t *testing.T) {
	if got := PresetColumns("nonsense"); len(got) != len(Presets[DefaultPreset].Columns) {
		t.Fatalf("unknown preset must resolve to the default, got %v", got)
	}
	if got := PresetColumns("basic"); got[0] != "Номер сцены" {
		t.Fatalf("basic preset = %v", got)
	}
}

func TestCellValueJoinsLists(t *testing.T) {
	s := sampleScenes()[0]
	if got := CellValue(s, "Персонажи"); got != "Иван, Мария" {
		t.Fatalf("characters cell = %q", got)
	}
	if got := CellValue(s, "Внутри/Снаружи"); got != "Интерьер" {
		t.Fatalf("int/ext cell = %q", got)
	}
	if got := CellValue(s, "Количество слов"); got != "42" {
		t.Fatalf("word count cell = %q", got)
	}
	if got := CellValue(s, "Несуществующая"); got != "" {
		t.Fatalf("unknown column cell = %q, want empty", got)
	}
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{OutputDir: dir}
	columns := Presets["basic"].Columns

	path, err := e.Export(sampleScenes(), columns, "csv", "sheet")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Ext(path) != ".csv" {
		t.Fatalf("path = %q, want .csv", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(raw, utf8BOM) {
		t.Fatalf("csv must start with a UTF-8 BOM")
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, utf8BOM)))
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 scenes", len(rows))
	}
	if rows[0][0] != "Номер сцены" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][0] != "1" || rows[1][1] != "КУХНЯ" {
		t.Fatalf("row 1 = %v", rows[1])
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	e := &Exporter{OutputDir: t.TempDir()}
	if _, err := e.Export(sampleScenes(), Presets["basic"].Columns, "odt", "x"); err == nil {
		t.Fatalf("expected an error for an unsupported format")
	}
}

func TestExportDefaultNameIsTimestamped(t *testing.T) {
	e := &Exporter{OutputDir: t.TempDir()}
	path, err := e.Export(sampleScenes(), Presets["basic"].Columns, "csv", "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "preproduction_") {
		t.Fatalf("default name = %q", filepath.Base(path))
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize(sampleScenes())
	if sum.TotalScenes != 2 {
		t.Fatalf("totalScenes = %d", sum.TotalScenes)
	}
	if sum.TotalCharacters != 2 {
		t.Fatalf("totalCharacters = %d, want 2 distinct", sum.TotalCharacters)
	}
	if sum.CharacterScenes["Мария"] != 2 || sum.CharacterScenes["Иван"] != 1 {
		t.Fatalf("characterScenes = %v", sum.CharacterScenes)
	}
	if sum.LocationScenes["КУХНЯ"] != 1 {
		t.Fatalf("locationScenes = %v", sum.LocationScenes)
	}
	if want := (42.0 + 17.0) / 2.0; sum.AvgSceneWords != want {
		t.Fatalf("avgSceneWords = %v, want %v", sum.AvgSceneWords, want)
	}
}

func TestSortedByCount(t *testing.T) {
	got := sortedByCount(map[string]int{"Б": 2, "А": 2, "В": 5})
	if got[0].key != "В" {
		t.Fatalf("got %v, want В first", got)
	}
	// Equal counts order alphabetically.
	if got[1].key != "А" || got[2].key != "Б" {
		t.Fatalf("tie order = %v, want А then Б", got)
	}
}

func TestExportXLSXAndSummary(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{OutputDir: dir}

	path, err := e.Export(sampleScenes(), Presets["full"].Columns, "xlsx", "sheet")
	if err != nil {
		t.Fatalf("export xlsx: %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("xlsx missing or empty: %v", err)
	}

	sumPath, err := e.ExportSummary(sampleScenes(), "sum")
	if err != nil {
		t.Fatalf("export summary: %v", err)
	}
	if fi, err := os.Stat(sumPath); err != nil || fi.Size() == 0 {
		t.Fatalf("summary missing or empty: %v", err)
	}
}

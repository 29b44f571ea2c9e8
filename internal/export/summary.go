package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/kinoworks/prepro/internal/scene"
)

// Summary aggregates breakdown statistics across all scenes.
type Summary struct {
	TotalScenes     int
	TotalCharacters int
	TotalLocations  int
	AvgSceneWords   float64

	// Scene counts per character, location, and time-of-day label.
	CharacterScenes map[string]int
	LocationScenes  map[string]int
	TimeOfDayScenes map[string]int
}

// Summarize collects per-character, per-location, and time-of-day scene
// counts plus the average scene length.
func Summarize(scenes []*scene.Scene) Summary {
	s := Summary{
		TotalScenes:     len(scenes),
		CharacterScenes: map[string]int{},
		LocationScenes:  map[string]int{},
		TimeOfDayScenes: map[string]int{},
	}
	words := 0
	for _, sc := range scenes {
		words += sc.WordCount
		for _, ch := range sc.Characters {
			s.CharacterScenes[ch]++
		}
		if sc.Location != "" {
			s.LocationScenes[sc.Location]++
		}
		if sc.TimeOfDay != "" {
			s.TimeOfDayScenes[sc.TimeOfDay]++
		}
	}
	s.TotalCharacters = len(s.CharacterScenes)
	s.TotalLocations = len(s.LocationScenes)
	if len(scenes) > 0 {
		s.AvgSceneWords = float64(words) / float64(len(scenes))
	}
	return s
}

// writeSummaryXLSX writes the overview sheet plus one count sheet each for
// characters, locations, and time of day.
func writeSummaryXLSX(path string, sum Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	const overview = "Общая статистика"
	if err := f.SetSheetName("Sheet1", overview); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	general := [][]interface{}{
		{"Показатель", "Значение"},
		{"Всего сцен", sum.TotalScenes},
		{"Всего персонажей", sum.TotalCharacters},
		{"Всего локаций", sum.TotalLocations},
		{"Средняя длина сцены (слов)", fmt.Sprintf("%.1f", sum.AvgSceneWords)},
	}
	for r, row := range general {
		for c, val := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(overview, cell, val); err != nil {
				return fmt.Errorf("write overview: %w", err)
			}
		}
	}

	sheets := []struct {
		name   string
		label  string
		counts map[string]int
	}{
		{"Персонажи", "Персонаж", sum.CharacterScenes},
		{"Локации", "Локация", sum.LocationScenes},
		{"Время суток", "Время суток", sum.TimeOfDayScenes},
	}
	for _, sh := range sheets {
		if len(sh.counts) == 0 {
			continue
		}
		if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("new sheet %s: %w", sh.name, err)
		}
		if err := f.SetCellValue(sh.name, "A1", sh.label); err != nil {
			return err
		}
		if err := f.SetCellValue(sh.name, "B1", "Количество сцен"); err != nil {
			return err
		}
		for i, kc := range sortedByCount(sh.counts) {
			a, _ := excelize.CoordinatesToCellName(1, i+2)
			b, _ := excelize.CoordinatesToCellName(2, i+2)
			if err := f.SetCellValue(sh.name, a, kc.key); err != nil {
				return err
			}
			if err := f.SetCellValue(sh.name, b, kc.count); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

type keyCount struct {
	key   string
	count int
}

// sortedByCount orders descending by count, ties alphabetical.
func sortedByCount(m map[string]int) []keyCount {
	out := make([]keyCount, 0, len(m))
	for k, c := range m {
		out = append(out, keyCount{k, c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}

package segment

import (
	"strings"
	"testing"

	"github.com/kinoworks/prepro/internal/scene"
)

func TestDetectLiteralNumeralsWin(t *testing.T) {
	text := strings.Join([]string{
		"СЦЕНА 1",
		"Иван входит в комнату.",
		"СЦЕНА 5",
		"Мария смотрит в окно.",
		"СЦЕНА 2",
		"Они молчат.",
	}, "\n")

	scenes := NewDetector().Detect(text)
	if len(scenes) != 3 {
		t.Fatalf("got %d scenes, want 3", len(scenes))
	}
	want := []int{1, 5, 2}
	for i, s := range scenes {
		if s.Number != want[i] {
			t.Fatalf("scene %d: number = %d, want literal %d", i, s.Number, want[i])
		}
	}
}

func TestDetectDiscardsPreamble(t *testing.T) {
	text := strings.Join([]string{
		"МОЙ СЦЕНАРИЙ",
		"автор: кто-то",
		"",
		"СЦЕНА 1",
		"Иван входит.",
	}, "\n")

	scenes := NewDetector().Detect(text)
	if len(scenes) != 1 {
		t.Fatalf("got %d scenes, want 1", len(scenes))
	}
	s := scenes[0]
	if s.LineStart != 4 {
		t.Fatalf("lineStart = %d, want 4", s.LineStart)
	}
	if strings.Contains(s.Text, "автор") {
		t.Fatalf("front matter leaked into scene body: %q", s.Text)
	}
}

func TestDetectHeaderContinuation(t *testing.T) {
	text := strings.Join([]string{
		"СЦЕНА 1",
		"ИНТЕРЬЕР. КУХНЯ - ДЕНЬ",
		"Иван готовит завтрак.",
		"СЦЕНА 2",
		"ЭКСТЕРЬЕР. УЛИЦА - НОЧЬ",
		"Мария идет домой.",
	}, "\n")

	scenes := NewDetector().Detect(text)
	if len(scenes) != 2 {
		t.Fatalf("got %d scenes, want 2", len(scenes))
	}

	first := scenes[0]
	if first.Number != 1 {
		t.Fatalf("scene 1 number = %d, want 1", first.Number)
	}
	if first.Location != "КУХНЯ" {
		t.Fatalf("scene 1 location = %q, want КУХНЯ", first.Location)
	}
	if first.TimeOfDay != "ДЕНЬ" {
		t.Fatalf("scene 1 timeOfDay = %q, want ДЕНЬ", first.TimeOfDay)
	}
	if first.IntExt != scene.Interior {
		t.Fatalf("scene 1 intExt = %v, want Interior", first.IntExt)
	}

	second := scenes[1]
	if second.Number != 2 || second.Location != "УЛИЦА" || second.IntExt != scene.Exterior {
		t.Fatalf("scene 2 = number %d, location %q, intExt %v; want 2, УЛИЦА, Exterior",
			second.Number, second.Location, second.IntExt)
	}
}

func TestDetectCoverageNoOverlap(t *testing.T) {
	lines := []string{
		"титульная страница",
		"СЦЕНА 1",
		"Первая строка.",
		"Вторая строка.",
		"СЦЕНА 2",
		"Третья строка.",
		"СЦЕНА 3",
		"Четвертая строка.",
	}
	text := strings.Join(lines, "\n")

	scenes := NewDetector().Detect(text)
	if len(scenes) != 3 {
		t.Fatalf("got %d scenes, want 3", len(scenes))
	}

	// Every line from the first header to the end must land in exactly one
	// scene body.
	var all []string
	for _, s := range scenes {
		all = append(all, strings.Split(s.Text, "\n")...)
	}
	want := lines[1:]
	if len(all) != len(want) {
		t.Fatalf("got %d body lines, want %d", len(all), len(want))
	}
	for i, line := range want {
		if all[i] != line {
			t.Fatalf("body line %d = %q, want %q", i, all[i], line)
		}
	}
}

func TestDetectBlankLinesStayInOpenScene(t *testing.T) {
	text := "СЦЕНА 1\nПервая строка.\n\nВторая строка."
	scenes := NewDetector().Detect(text)
	if len(scenes) != 1 {
		t.Fatalf("got %d scenes, want 1", len(scenes))
	}
	if !strings.Contains(scenes[0].Text, "Первая строка.\n\nВторая строка.") {
		t.Fatalf("blank line lost from body: %q", scenes[0].Text)
	}
}

func TestDetectWordCount(t *testing.T) {
	scenes := NewDetector().Detect("СЦЕНА 1\nодно два три")
	if len(scenes) != 1 {
		t.Fatalf("got %d scenes, want 1", len(scenes))
	}
	// Header line is part of the body.
	if got := scenes[0].WordCount; got != 5 {
		t.Fatalf("wordCount = %d, want 5", got)
	}
}

func TestSegmentFallsBackWithoutHeaders(t *testing.T) {
	text := "Просто длинный рассказ без всяких заголовков.\n\nЕще один абзац текста."
	s := NewSegmenter()
	scenes := s.Segment(text)
	if len(scenes) != 1 {
		t.Fatalf("got %d scenes, want 1 fallback chunk", len(scenes))
	}
	if scenes[0].Header != "" {
		t.Fatalf("fallback scene must carry no header, got %q", scenes[0].Header)
	}
}

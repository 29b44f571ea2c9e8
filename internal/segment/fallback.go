package segment

import (
	"strings"

	"github.com/kinoworks/prepro/internal/scene"
)

// DefaultChunkWords is the fallback chunk threshold, roughly one screenplay
// page worth of prose.
const DefaultChunkWords = 500

// Chunk splits headerless text into pseudo-scenes by accumulating paragraphs
// until the word threshold is reached. Chunk scenes carry no header and no
// location/time fields; those may still be backfilled from body keywords by
// the analysis pipeline.
func Chunk(text string, chunkWords int) []*scene.Scene {
	if chunkWords <= 0 {
		chunkWords = DefaultChunkWords
	}

	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var scenes []*scene.Scene
	var buf []string
	words := 0
	emit := func() {
		if len(buf) == 0 {
			return
		}
		scenes = append(scenes, &scene.Scene{
			Number:    len(scenes) + 1,
			Text:      strings.Join(buf, "\n\n"),
			WordCount: words,
		})
		buf = nil
		words = 0
	}

	for _, p := range paragraphs {
		buf = append(buf, p)
		words += scene.CountWords(p)
		if words >= chunkWords {
			emit()
		}
	}
	emit()

	return scenes
}

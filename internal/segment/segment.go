// Package segment turns raw screenplay text into an ordered sequence of
// scenes. Boundaries come from a prioritized chain of header matchers; when
// no header at all is recognized, the text is chunked by word count instead.
package segment

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/kinoworks/prepro/internal/scene"
)

// Detector scans the line sequence and emits a scene for every recognized
// header. It is a two-state machine: either no scene is open, or one is
// accumulating body lines.
type Detector struct {
	matchers []Matcher
}

// NewDetector builds a detector with the default header rule chain.
func NewDetector() *Detector {
	return &Detector{matchers: DefaultMatchers()}
}

// Detect splits text into scenes. Lines before the first recognized header
// are discarded: title pages and other front matter are not scenes. A header
// line that arrives while the open scene still has no body content is a
// continuation of the same header, "СЦЕНА 1" followed by a slugline on the
// next line, so it merges into the open scene instead of starting a new one.
// Returns an empty slice when no header matched anywhere.
func (d *Detector) Detect(text string) []*scene.Scene {
	lines := strings.Split(text, "\n")

	var scenes []*scene.Scene
	var cur *scene.Scene
	var body []string
	hasContent := false
	curNumbered := false
	seq := 0

	finalize := func() {
		if cur == nil || len(body) == 0 {
			return
		}
		cur.Text = strings.TrimSpace(strings.Join(body, "\n"))
		cur.WordCount = scene.CountWords(cur.Text)
		scenes = append(scenes, cur)
		cur = nil
		body = nil
		hasContent = false
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			// Blank lines belong to the open scene; outside a scene they
			// carry no information.
			if len(body) > 0 {
				body = append(body, raw)
			}
			continue
		}

		info, ok := d.match(line)
		if !ok {
			if cur != nil {
				body = append(body, raw)
				hasContent = true
			}
			continue
		}

		if cur != nil && !hasContent {
			// Header continuation: fill in whatever the earlier header line
			// did not carry.
			body = append(body, raw)
			if !curNumbered && info.HasNumber {
				cur.Number = info.Number
				curNumbered = true
			}
			if cur.Location == "" {
				cur.Location = info.Location
			}
			if cur.TimeOfDay == "" {
				cur.TimeOfDay = info.TimeOfDay
			}
			if cur.IntExt == scene.IntExtUnknown {
				cur.IntExt = info.IntExt
			}
			continue
		}

		finalize()
		seq++
		num := seq
		if info.HasNumber {
			// The literal numeral from the header is displayed as-is even
			// when it disagrees with the detection counter.
			num = info.Number
		}
		cur = &scene.Scene{
			Number:    num,
			Header:    line,
			LineStart: i + 1,
			Location:  info.Location,
			TimeOfDay: info.TimeOfDay,
			IntExt:    info.IntExt,
		}
		body = []string{raw}
		curNumbered = info.HasNumber
	}
	finalize()

	return scenes
}

func (d *Detector) match(line string) (HeaderInfo, bool) {
	for _, m := range d.matchers {
		if info, ok := m.Match(line); ok {
			return info, true
		}
	}
	return HeaderInfo{}, false
}

// Segmenter combines header detection with word-count fallback chunking.
type Segmenter struct {
	Detector *Detector
	// ChunkWords is the fallback chunk threshold. Zero means the default.
	ChunkWords int
}

// NewSegmenter returns a segmenter with default detector and chunk size.
func NewSegmenter() *Segmenter {
	return &Segmenter{Detector: NewDetector()}
}

// Segment returns the detected scenes, falling back to word-count chunks
// when the detector finds no headers at all.
func (s *Segmenter) Segment(text string) []*scene.Scene {
	det := s.Detector
	if det == nil {
		det = NewDetector()
	}
	scenes := det.Detect(text)
	if len(scenes) == 0 {
		log.Debug().Msg("no scene headers recognized, chunking by word count")
		return Chunk(text, s.ChunkWords)
	}
	return scenes
}

// Package analyze enriches segmented scenes with production elements:
// characters from an injectable person tagger plus a dialogue-cue heuristic,
// and keyword-driven categories for everything from props to food. The
// pipeline never fails on content: a scene without matches simply comes back
// with empty collections.
package analyze

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kinoworks/prepro/internal/scene"
)

// mainCharacterCount splits the alphabetical character list into "main" and
// "secondary". Positional, not an importance ranking.
const mainCharacterCount = 5

// Dialogue cue: 1-3 all-uppercase tokens at line start immediately followed
// by ':' or '('. The token-count guard is applied after matching.
var dialogueCueRe = regexp.MustCompile(`^([A-ZА-ЯЁ][A-ZА-ЯЁ\s]+)(?:\s*\(|:)`)

// Pipeline runs per-scene entity extraction. Zero value is not usable; build
// with NewPipeline.
type Pipeline struct {
	// Tagger is the optional person-recognition capability. Nil degrades to
	// the dialogue-cue heuristic alone.
	Tagger PersonTagger
	// Workers bounds concurrent scene analysis; values below 2 mean serial.
	Workers int

	keywords   *Keywords
	normalizer *NameNormalizer
	cache      *CharacterCache
}

// NewPipeline builds a pipeline over the given keyword configuration and
// caller-owned character cache. Nil arguments select the defaults (a fresh
// cache, the built-in keywords).
func NewPipeline(kw *Keywords, tagger PersonTagger, cache *CharacterCache) *Pipeline {
	if kw == nil {
		kw = DefaultKeywords()
	}
	if cache == nil {
		cache = NewCharacterCache()
	}
	return &Pipeline{
		Tagger:     tagger,
		keywords:   kw,
		normalizer: NewNameNormalizer(kw.Stopwords),
		cache:      cache,
	}
}

// Cache returns the character cache the pipeline writes into.
func (p *Pipeline) Cache() *CharacterCache {
	return p.cache
}

// Analyze enriches every scene. Scenes are independent apart from the
// mutex-guarded character cache, so they may be processed concurrently;
// each worker writes only its own scene, which keeps output order identical
// to input order regardless of completion order.
func (p *Pipeline) Analyze(ctx context.Context, scenes []*scene.Scene) {
	if p.Workers < 2 || len(scenes) < 2 {
		for _, s := range scenes {
			p.AnalyzeScene(ctx, s)
		}
		return
	}

	jobs := make(chan *scene.Scene)
	var wg sync.WaitGroup
	for w := 0; w < p.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				p.AnalyzeScene(ctx, s)
			}
		}()
	}
	for _, s := range scenes {
		jobs <- s
	}
	close(jobs)
	wg.Wait()
}

// AnalyzeScene populates the enrichment fields of one scene in place.
func (p *Pipeline) AnalyzeScene(ctx context.Context, s *scene.Scene) {
	s.Characters = p.extractCharacters(ctx, s.Text)
	if len(s.Characters) > mainCharacterCount {
		s.MainCharacters = s.Characters[:mainCharacterCount]
		s.SecondaryCharacters = s.Characters[mainCharacterCount:]
	} else {
		s.MainCharacters = s.Characters
		s.SecondaryCharacters = nil
	}

	lower := strings.ToLower(s.Text)
	s.Elements = make(map[scene.Category][]string, len(scene.Categories))
	for _, cat := range scene.Categories {
		if vals := p.keywords.extractCategory(lower, cat); len(vals) > 0 {
			s.Elements[cat] = vals
		}
	}

	// Header fields left unset by segmentation are backfilled from the body.
	if s.Location == "" {
		s.Location = p.keywords.locationFromBody(s.Text)
	}
	if s.TimeOfDay == "" {
		s.TimeOfDay = p.keywords.timeFromBody(lower)
	}
	if s.IntExt == scene.IntExtUnknown {
		s.IntExt = p.keywords.intExtFromBody(lower)
	}

	s.Description = Summarize(s.Text)
}

// extractCharacters unions tagger spans with dialogue cues, normalizes,
// deduplicates, and sorts.
func (p *Pipeline) extractCharacters(ctx context.Context, text string) []string {
	set := map[string]struct{}{}
	add := func(raw string) {
		name := p.normalizer.Normalize(raw)
		if name == "" {
			return
		}
		set[name] = struct{}{}
		p.cache.Add(name)
	}

	if p.Tagger != nil {
		spans, err := p.Tagger.TagPersons(ctx, text)
		if err != nil {
			log.Warn().Err(err).Msg("person tagger failed, using dialogue cues only")
		}
		for _, sp := range spans {
			if sp.Label == "" || sp.Label == LabelPerson {
				add(sp.Text)
			}
		}
	}

	for _, line := range strings.Split(text, "\n") {
		m := dialogueCueRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len(strings.Fields(name)) > 3 {
			continue
		}
		add(name)
	}

	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

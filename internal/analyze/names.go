package analyze

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NameNormalizer canonicalizes raw character-name strings. Rejections return
// the empty string: too many tokens to be a name, or a screenplay-structural
// stopword like "СЦЕНА" or "КОНЕЦ".
type NameNormalizer struct {
	stopwords map[string]struct{}
}

// NewNameNormalizer builds a normalizer with the given stopword set,
// compared upper-case.
func NewNameNormalizer(stopwords []string) *NameNormalizer {
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[strings.ToUpper(strings.TrimSpace(w))] = struct{}{}
	}
	return &NameNormalizer{stopwords: set}
}

// Normalize collapses internal whitespace, applies the token-count guard and
// the stopword filter, and returns the name in title case.
func (n *NameNormalizer) Normalize(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 || len(fields) > 3 {
		return ""
	}
	name := strings.Join(fields, " ")
	if _, ok := n.stopwords[strings.ToUpper(name)]; ok {
		return ""
	}
	// cases.Caser carries internal state, so build one per call rather than
	// sharing across pipeline workers.
	return cases.Title(language.Und).String(name)
}

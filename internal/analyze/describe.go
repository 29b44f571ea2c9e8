package analyze

import (
	"regexp"
	"strings"
)

// descriptionLimit bounds the synopsis length in runes.
const descriptionLimit = 200

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// Summarize builds a bounded synopsis: sentences are taken in order until
// three are kept or the running character budget is spent, then joined with
// ". ". A join that still exceeds the budget is hard-truncated with an
// ellipsis.
func Summarize(text string) string {
	sentences := sentenceSplitRe.Split(text, -1)
	if len(sentences) > 3 {
		sentences = sentences[:3]
	}

	var parts []string
	count := 0
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" || count >= descriptionLimit {
			continue
		}
		parts = append(parts, s)
		count += len([]rune(s))
	}

	desc := strings.Join(parts, ". ")
	if r := []rune(desc); len(r) > descriptionLimit {
		desc = string(r[:descriptionLimit-3]) + "..."
	}
	return desc
}

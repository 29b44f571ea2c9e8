package segment

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kinoworks/prepro/internal/scene"
)

// HeaderInfo carries the fields recognized in a scene header line.
type HeaderInfo struct {
	// Number is the numeral captured by the matching rule, when it captured
	// one. HasNumber distinguishes a literal 0 from "no numeral".
	Number    int
	HasNumber bool
	Location  string
	TimeOfDay string
	IntExt    scene.IntExt
}

// Matcher recognizes one header form. Matchers are tried in priority order;
// the first match wins.
type Matcher interface {
	Match(line string) (HeaderInfo, bool)
}

var (
	// Rule 1: "СЦЕНА 1", "Сц. 12": explicit scene marker plus number,
	// anywhere in the line.
	sceneMarkerRe = regexp.MustCompile(`(?i)(?:СЦЕНА|СЦ\.)\s*(\d+)`)

	// Rule 2: numbered slugline, "1. ИНТЕРЬЕР. КУХНЯ - ДЕНЬ".
	numberedSluglineRe = regexp.MustCompile(`(?i)^(\d+)\.\s*(?:ИНТЕРЬЕР|ЭКСТЕРЬЕР|ИНТ\.|ЭКС\.)`)

	// Rule 3: bare numeral marker, "№1" or "# 12".
	bareNumeralRe = regexp.MustCompile(`(?:№|#)\s*(\d+)`)

	// Rule 4: English-style slugline, "INT. KITCHEN - DAY".
	englishSluglineRe = regexp.MustCompile(`(?i)^(?:INT\.|EXT\.)\s+[A-ZА-ЯЁ\s]+-\s*(?:DAY|NIGHT|MORNING|EVENING|ДЕНЬ|НОЧЬ|УТРО|ВЕЧЕР)`)

	// Location and time-of-day inside a slugline: everything between the
	// int/ext marker and the dash, then everything after the dash.
	sluglineFieldsRe = regexp.MustCompile(`(?i)(?:ИНТЕРЬЕР|ЭКСТЕРЬЕР|ИНТ\.|ЭКС\.|INT\.|EXT\.)\s+([^-\n]+)\s*-\s*([^\n]+)`)

	// Prefix stripped before keyword lookup in loose headers.
	intExtPrefixRe = regexp.MustCompile(`(?i)(?:ИНТЕРЬЕР|ЭКСТЕРЬЕР|ИНТ\.|ЭКС\.|INT\.|EXT\.)\s*[.:]?\s*`)
)

var interiorMarkers = []string{"ИНТЕРЬЕР", "ИНТ.", "INT."}
var exteriorMarkers = []string{"ЭКСТЕРЬЕР", "ЭКС.", "EXT."}

// timeLabelRule maps header keywords to a canonical time-of-day label.
// Order matters: the first keyword found wins.
type timeLabelRule struct {
	keyword string
	label   string
}

var headerTimeRules = []timeLabelRule{
	{"ДЕНЬ", "ДЕНЬ"},
	{"НОЧЬ", "НОЧЬ"},
	{"УТРО", "УТРО"},
	{"ВЕЧЕР", "ВЕЧЕР"},
	{"РАССВЕТ", "РАССВЕТ"},
	{"ЗАКАТ", "ЗАКАТ"},
	{"DAY", "ДЕНЬ"},
	{"NIGHT", "НОЧЬ"},
	{"MORNING", "УТРО"},
	{"EVENING", "ВЕЧЕР"},
}

// looseHeaderKeywords are the markers that make a short all-caps line count
// as a header even without slugline structure.
var looseHeaderKeywords = []string{
	"ИНТЕРЬЕР", "ЭКСТЕРЬЕР", "ИНТ.", "ЭКС.", "INT.", "EXT.",
	"ДЕНЬ", "НОЧЬ", "УТРО", "ВЕЧЕР", "DAY", "NIGHT",
}

// DefaultMatchers returns the prioritized header rule chain.
func DefaultMatchers() []Matcher {
	return []Matcher{
		&patternMatcher{re: sceneMarkerRe, captures: true},
		&patternMatcher{re: numberedSluglineRe, captures: true},
		&patternMatcher{re: bareNumeralRe, captures: true},
		&patternMatcher{re: englishSluglineRe},
		&looseMatcher{},
	}
}

// patternMatcher recognizes a header by regular expression and, when the
// pattern captures a group, reads the scene numeral from it.
type patternMatcher struct {
	re       *regexp.Regexp
	captures bool
}

func (m *patternMatcher) Match(line string) (HeaderInfo, bool) {
	sub := m.re.FindStringSubmatch(line)
	if sub == nil {
		return HeaderInfo{}, false
	}
	var info HeaderInfo
	if m.captures && len(sub) > 1 {
		if n, err := strconv.Atoi(sub[1]); err == nil {
			info.Number = n
			info.HasNumber = true
		}
	}
	extractSluglineFields(line, &info)
	return info, true
}

// extractSluglineFields fills location/time/int-ext from the dash-delimited
// slugline structure. Fields stay empty when the structure is absent; the
// analysis pipeline backfills them from body keywords later.
func extractSluglineFields(line string, info *HeaderInfo) {
	sub := sluglineFieldsRe.FindStringSubmatch(line)
	if sub == nil {
		return
	}
	info.Location = strings.TrimSpace(sub[1])
	info.TimeOfDay = strings.TrimSpace(sub[2])
	info.IntExt = markerFamily(line)
}

// looseMatcher treats a short fully upper-cased line containing an int/ext
// or time-of-day keyword as a header. Without dash structure the fields are
// found by independent keyword lookup over the line.
type looseMatcher struct{}

func (m *looseMatcher) Match(line string) (HeaderInfo, bool) {
	if len(strings.Fields(line)) > 10 || !isUpper(line) {
		return HeaderInfo{}, false
	}
	upper := strings.ToUpper(line)
	found := false
	for _, kw := range looseHeaderKeywords {
		if strings.Contains(upper, kw) {
			found = true
			break
		}
	}
	if !found {
		return HeaderInfo{}, false
	}
	return HeaderInfo{
		Location:  looseLocation(line),
		TimeOfDay: looseTimeOfDay(line),
		IntExt:    markerFamily(line),
	}, true
}

func looseLocation(line string) string {
	rest := intExtPrefixRe.ReplaceAllString(line, "")
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(rest)
}

func looseTimeOfDay(line string) string {
	upper := strings.ToUpper(line)
	for _, rule := range headerTimeRules {
		if strings.Contains(upper, rule.keyword) {
			return rule.label
		}
	}
	return ""
}

// markerFamily decides interior vs exterior by which marker family appears
// in the line, case-insensitively, in either language.
func markerFamily(line string) scene.IntExt {
	upper := strings.ToUpper(line)
	for _, m := range interiorMarkers {
		if strings.Contains(upper, m) {
			return scene.Interior
		}
	}
	for _, m := range exteriorMarkers {
		if strings.Contains(upper, m) {
			return scene.Exterior
		}
	}
	return scene.IntExtUnknown
}

// isUpper reports whether the line has at least one cased rune and no
// lower-case runes, mirroring a "fully upper-cased" check.
func isUpper(s string) bool {
	return s == strings.ToUpper(s) && s != strings.ToLower(s)
}

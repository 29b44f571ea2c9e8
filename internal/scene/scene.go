// Package scene defines the breakdown record produced by segmentation and
// enriched by analysis. A Scene is created by the segmenter, mutated exactly
// once by the analysis pipeline, and read-only afterwards.
package scene

import "strings"

// IntExt classifies whether a scene plays indoors or outdoors.
type IntExt int

const (
	IntExtUnknown IntExt = iota
	Interior
	Exterior
)

// String returns the production-sheet label ("Интерьер"/"Экстерьер").
func (ie IntExt) String() string {
	switch ie {
	case Interior:
		return "Интерьер"
	case Exterior:
		return "Экстерьер"
	default:
		return ""
	}
}

// Category names a keyword-driven production element group.
type Category string

const (
	CategoryCrowd     Category = "crowd"
	CategoryProps     Category = "props"
	CategoryTransport Category = "transport"
	CategoryAnimals   Category = "animals"
	CategorySFX       Category = "sfx"
	CategoryMakeup    Category = "makeup"
	CategoryStunts    Category = "stunts"
	CategoryMusic     Category = "music"
	CategoryWeapons   Category = "weapons"
	CategoryFood      Category = "food"
)

// Categories lists all production-element categories in export order.
var Categories = []Category{
	CategoryCrowd,
	CategoryProps,
	CategoryTransport,
	CategoryAnimals,
	CategorySFX,
	CategoryMakeup,
	CategoryStunts,
	CategoryMusic,
	CategoryWeapons,
	CategoryFood,
}

// Scene is one contiguous unit of screenplay text with its extracted
// production elements.
type Scene struct {
	// Number is the displayed scene number: the numeral captured from the
	// header when the matching rule captured one, otherwise the sequential
	// detection counter. Literal numerals are trusted as-is, so out-of-order
	// or duplicate numbers in the source reappear in the output.
	Number    int
	Header    string
	LineStart int

	Location  string
	TimeOfDay string
	IntExt    IntExt

	Text      string
	WordCount int

	// Characters is the alphabetically sorted union of tagger and
	// dialogue-cue names. Main is the first five entries, Secondary the
	// rest; the split is positional, not an importance ranking.
	Characters          []string
	MainCharacters      []string
	SecondaryCharacters []string

	// Elements holds the keyword-category results. All categories are
	// deduplicated; every category except music and food is sorted, those
	// two keep first-seen order.
	Elements map[Category][]string

	Description string
}

// CountWords computes the whitespace-token count of the scene body.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Element returns the extracted values for one category, or nil when the
// category was never populated.
func (s *Scene) Element(cat Category) []string {
	if s.Elements == nil {
		return nil
	}
	return s.Elements[cat]
}

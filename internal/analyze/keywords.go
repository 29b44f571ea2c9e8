package analyze

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kinoworks/prepro/internal/scene"
)

// TimeRule maps a keyword list to a canonical time-of-day label. Rules are
// checked in order; the first keyword hit wins.
type TimeRule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Keywords holds every configured keyword list used by the extraction
// pipeline. All keywords are lowercase; matching is case-insensitive
// substring search over the scene body.
type Keywords struct {
	// Categories keys off the production-element categories. Keys that do
	// not correspond to a known category are ignored.
	Categories map[scene.Category][]string `yaml:"categories"`
	Location   []string                    `yaml:"location"`
	Time       []TimeRule                  `yaml:"time"`
	Interior   []string                    `yaml:"interior"`
	Exterior   []string                    `yaml:"exterior"`
	// Stopwords are screenplay-structural words that can never be character
	// names, compared upper-case.
	Stopwords []string `yaml:"stopwords"`
}

// unsortedCategories keep first-seen keyword order instead of sorting.
// Music and food behave this way in the production sheets people already
// use, so the difference is kept on purpose.
var unsortedCategories = map[scene.Category]bool{
	scene.CategoryMusic: true,
	scene.CategoryFood:  true,
}

// DefaultKeywords returns the built-in Russian keyword configuration.
// A YAML config file may replace any of the lists.
func DefaultKeywords() *Keywords {
	return &Keywords{
		Categories: map[scene.Category][]string{
			scene.CategoryCrowd: {
				"толпа", "массовка", "прохожие", "зеваки", "гости",
				"посетители", "публика", "очередь", "народ",
			},
			scene.CategoryProps: {
				"стол", "стул", "кресло", "диван", "шкаф", "зеркало",
				"телефон", "компьютер", "ноутбук", "телевизор",
				"книга", "газета", "журнал", "документ", "письмо",
				"сумка", "чемодан", "рюкзак", "портфель",
				"ключи", "кошелек", "часы", "очки",
				"фотография", "картина", "портрет",
				"бутылка", "стакан", "чашка", "тарелка",
				"цветы", "букет", "растение",
				"лампа", "свеча", "фонарь",
				"мяч", "игрушка",
			},
			scene.CategoryTransport: {
				"машина", "автомобиль", "такси", "автобус", "троллейбус",
				"трамвай", "поезд", "электричка", "мотоцикл", "велосипед",
				"грузовик", "самолет", "вертолет", "лодка", "катер",
			},
			scene.CategoryAnimals: {
				"собака", "кошка", "пес", "щенок", "котенок",
				"лошадь", "конь", "птица", "голубь", "ворона",
				"корова", "коза", "овца", "попугай",
			},
			scene.CategorySFX: {
				"взрыв", "дым", "огонь", "пожар", "молния",
				"искры", "кровь", "выстрел", "ливень", "туман",
			},
			scene.CategoryMakeup: {
				"грим", "шрам", "рана", "синяк", "усы", "борода",
				"парик", "татуировка", "морщины", "костюм", "платье", "форма",
			},
			scene.CategoryStunts: {
				"драка", "падение", "прыжок", "погоня", "авария",
				"столкновение", "трюк", "удар", "каскадер",
			},
			scene.CategoryMusic: {
				"музыка", "песня", "мелодия", "звучит", "играет",
				"гитара", "пианино", "скрипка", "барабан", "инструмент",
			},
			scene.CategoryWeapons: {
				"нож", "пистолет", "ружье", "автомат", "винтовка",
				"оружие", "граната", "меч", "топор",
			},
			scene.CategoryFood: {
				"кофе", "чай", "вино", "пиво", "вода", "сок",
				"хлеб", "суп", "салат", "мясо", "рыба",
				"торт", "пирог", "конфета", "шоколад",
				"завтрак", "обед", "ужин", "еда", "блюдо",
			},
		},
		Location: []string{
			"кухня", "гостиная", "спальня", "кабинет", "офис",
			"улица", "парк", "площадь", "кафе", "ресторан",
			"магазин", "больница", "школа", "квартира", "дом",
		},
		Time: []TimeRule{
			{Label: "ДЕНЬ", Keywords: []string{"днем", "днём", "полдень"}},
			{Label: "НОЧЬ", Keywords: []string{"ночь", "ночью", "полночь"}},
			{Label: "УТРО", Keywords: []string{"утро", "утром", "рассвет"}},
			{Label: "ВЕЧЕР", Keywords: []string{"вечер", "вечером", "закат"}},
		},
		Interior: []string{
			"комната", "кухня", "квартира", "офис", "кабинет",
			"спальня", "коридор", "зал", "помещение", "внутри",
		},
		Exterior: []string{
			"улица", "двор", "парк", "лес", "поле",
			"дорога", "площадь", "набережная", "крыша", "снаружи",
		},
		Stopwords: []string{"КАДР", "СЦЕНА", "КОНЕЦ", "ТИТРЫ", "ФОН", "ГОЛОС"},
	}
}

// extractCategory returns the matched keywords for one category. textLower
// must already be lower-cased. Results are deduplicated; sorted except for
// the unsorted categories.
func (k *Keywords) extractCategory(textLower string, cat scene.Category) []string {
	keywords := k.Categories[cat]
	if len(keywords) == 0 {
		return nil
	}
	if cat == scene.CategoryCrowd {
		return k.extractCrowd(textLower, keywords)
	}

	var out []string
	seen := map[string]struct{}{}
	for _, kw := range keywords {
		if !strings.Contains(textLower, kw) {
			continue
		}
		v := capitalize(kw)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if !unsortedCategories[cat] {
		sort.Strings(out)
	}
	return out
}

// extractCrowd keeps the whole enclosing sentence for every crowd keyword
// hit, so the sheet shows what the extras are actually doing.
func (k *Keywords) extractCrowd(textLower string, keywords []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, kw := range keywords {
		if !strings.Contains(textLower, kw) {
			continue
		}
		for _, sent := range sentencesContaining(textLower, kw) {
			if _, ok := seen[sent]; ok {
				continue
			}
			seen[sent] = struct{}{}
			out = append(out, sent)
		}
	}
	sort.Strings(out)
	return out
}

// sentencesContaining returns each sentence of text that contains the
// keyword, including its terminator. Trailing text without a terminator is
// not a sentence.
func sentencesContaining(text, keyword string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if sent := text[start : i+1]; strings.Contains(sent, keyword) {
				out = append(out, strings.TrimSpace(sent))
			}
			start = i + 1
		}
	}
	return out
}

// locationFromBody looks for a known location keyword in the first lines of
// the scene body. Used only when the header carried no location.
func (k *Keywords) locationFromBody(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, kw := range k.Location {
			if strings.Contains(lower, kw) {
				return capitalize(kw)
			}
		}
	}
	return ""
}

// timeFromBody returns the label of the first time rule whose keyword
// appears in the body, or empty.
func (k *Keywords) timeFromBody(textLower string) string {
	for _, rule := range k.Time {
		for _, kw := range rule.Keywords {
			if strings.Contains(textLower, kw) {
				return rule.Label
			}
		}
	}
	return ""
}

// intExtFromBody counts interior vs exterior keyword hits; the larger family
// wins and a tie leaves the field unset.
func (k *Keywords) intExtFromBody(textLower string) scene.IntExt {
	interior, exterior := 0, 0
	for _, kw := range k.Interior {
		if strings.Contains(textLower, kw) {
			interior++
		}
	}
	for _, kw := range k.Exterior {
		if strings.Contains(textLower, kw) {
			exterior++
		}
	}
	switch {
	case interior > exterior:
		return scene.Interior
	case exterior > interior:
		return scene.Exterior
	default:
		return scene.IntExtUnknown
	}
}

// capitalize upper-cases the first rune and leaves the rest as-is; keyword
// lists are lowercase by contract.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Package export serializes enriched scenes into the production-sheet
// formats used by planning departments: CSV, styled XLSX, a printable PDF
// breakdown, and a summary workbook.
package export

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kinoworks/prepro/internal/scene"
)

// Field identifies a scene attribute exposed as an export column.
type Field string

const (
	FieldNumber      Field = "scene_number"
	FieldLocation    Field = "location"
	FieldIntExt      Field = "interior_exterior"
	FieldTimeOfDay   Field = "time_of_day"
	FieldCharacters  Field = "characters"
	FieldMain        Field = "main_characters"
	FieldSecondary   Field = "secondary_characters"
	FieldExtras      Field = "extras"
	FieldProps       Field = "props"
	FieldTransport   Field = "transport"
	FieldAnimals     Field = "animals"
	FieldSFX         Field = "sfx"
	FieldMakeup      Field = "makeup"
	FieldStunts      Field = "stunts"
	FieldMusic       Field = "music"
	FieldWeapons     Field = "weapons"
	FieldFood        Field = "food"
	FieldDescription Field = "description"
	FieldWordCount   Field = "word_count"
)

// columnFields maps the Russian production-sheet column labels onto scene
// fields. Labels are the external contract: presets and custom column lists
// both refer to them.
var columnFields = map[string]Field{
	"Номер сцены":                FieldNumber,
	"Локация":                    FieldLocation,
	"Внутри/Снаружи":             FieldIntExt,
	"Время суток":                FieldTimeOfDay,
	"Персонажи":                  FieldCharacters,
	"Персонажи (основные)":       FieldMain,
	"Персонажи (второстепенные)": FieldSecondary,
	"Массовка":                   FieldExtras,
	"Реквизит":                   FieldProps,
	"Транспорт":                  FieldTransport,
	"Животные":                   FieldAnimals,
	"Спецэффекты":                FieldSFX,
	"Грим/Костюмы":               FieldMakeup,
	"Каскадеры":                  FieldStunts,
	"Музыка/Звук":                FieldMusic,
	"Оружие":                     FieldWeapons,
	"Еда/Напитки":                FieldFood,
	"Краткое описание":           FieldDescription,
	"Количество слов":            FieldWordCount,
}

// Preset is a named column selection.
type Preset struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// Presets are the built-in column selections, from a minimal call-sheet
// view to the full breakdown.
var Presets = map[string]Preset{
	"basic": {
		Name: "Базовый",
		Columns: []string{
			"Номер сцены", "Локация", "Время суток", "Персонажи",
			"Краткое описание",
		},
	},
	"extended": {
		Name: "Расширенный",
		Columns: []string{
			"Номер сцены", "Локация", "Внутри/Снаружи", "Время суток",
			"Персонажи", "Массовка", "Реквизит", "Транспорт",
			"Краткое описание", "Количество слов",
		},
	},
	"full": {
		Name: "Полный",
		Columns: []string{
			"Номер сцены", "Локация", "Внутри/Снаружи", "Время суток",
			"Персонажи", "Персонажи (основные)", "Персонажи (второстепенные)",
			"Массовка", "Реквизит", "Транспорт", "Животные", "Спецэффекты",
			"Грим/Костюмы", "Каскадеры", "Музыка/Звук", "Оружие",
			"Еда/Напитки", "Краткое описание", "Количество слов",
		},
	},
}

// DefaultPreset is used when the caller names no preset.
const DefaultPreset = "extended"

// PresetColumns resolves a preset name, falling back to the default for
// unknown names.
func PresetColumns(preset string) []string {
	if p, ok := Presets[preset]; ok {
		return p.Columns
	}
	return Presets[DefaultPreset].Columns
}

// AvailableColumns returns the sorted union of all preset columns.
func AvailableColumns() []string {
	set := map[string]struct{}{}
	for _, p := range Presets {
		for _, c := range p.Columns {
			set[c] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ValidateColumns rejects column labels that no preset knows about.
func ValidateColumns(columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("column list is empty")
	}
	var unknown []string
	for _, c := range columns {
		if _, ok := columnFields[c]; !ok {
			unknown = append(unknown, c)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown columns: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// CellValue renders one scene attribute for one column label. List values
// are joined with ", "; unknown labels render empty.
func CellValue(s *scene.Scene, column string) string {
	switch columnFields[column] {
	case FieldNumber:
		return strconv.Itoa(s.Number)
	case FieldLocation:
		return s.Location
	case FieldIntExt:
		return s.IntExt.String()
	case FieldTimeOfDay:
		return s.TimeOfDay
	case FieldCharacters:
		return strings.Join(s.Characters, ", ")
	case FieldMain:
		return strings.Join(s.MainCharacters, ", ")
	case FieldSecondary:
		return strings.Join(s.SecondaryCharacters, ", ")
	case FieldExtras:
		return strings.Join(s.Element(scene.CategoryCrowd), ", ")
	case FieldProps:
		return strings.Join(s.Element(scene.CategoryProps), ", ")
	case FieldTransport:
		return strings.Join(s.Element(scene.CategoryTransport), ", ")
	case FieldAnimals:
		return strings.Join(s.Element(scene.CategoryAnimals), ", ")
	case FieldSFX:
		return strings.Join(s.Element(scene.CategorySFX), ", ")
	case FieldMakeup:
		return strings.Join(s.Element(scene.CategoryMakeup), ", ")
	case FieldStunts:
		return strings.Join(s.Element(scene.CategoryStunts), ", ")
	case FieldMusic:
		return strings.Join(s.Element(scene.CategoryMusic), ", ")
	case FieldWeapons:
		return strings.Join(s.Element(scene.CategoryWeapons), ", ")
	case FieldFood:
		return strings.Join(s.Element(scene.CategoryFood), ", ")
	case FieldDescription:
		return s.Description
	case FieldWordCount:
		return strconv.Itoa(s.WordCount)
	default:
		return ""
	}
}

// Rows renders scenes into string cells for the given columns.
func Rows(scenes []*scene.Scene, columns []string) [][]string {
	rows := make([][]string, 0, len(scenes))
	for _, s := range scenes {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = CellValue(s, c)
		}
		rows = append(rows, row)
	}
	return rows
}

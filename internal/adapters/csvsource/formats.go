package csvsource

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/saigon-food-map/backend/internal/domain/entities"
	"github.com/saigon-food-map/backend/pkg/normalize"
)

// placeholderName stands in for rows whose name cell is blank
const placeholderName = "Không tên"

// everyfoodIndexOffset keeps Saigon Everyfood IDs disjoint from Food Tour
// IDs when both datasets are merged into one collection.
const everyfoodIndexOffset = 1000

// sourceFormat describes one raw spreadsheet export: where it lives, how its
// header is laid out, and how a raw row becomes a canonical record.
type sourceFormat struct {
	file        string
	source      entities.DataSource
	skipTitle   bool // decorative first line before the header row
	indexOffset int
	keepRow     func(row rawRow) bool
	mapRow      func(row rawRow, index int) *entities.Restaurant
}

// rawRow is one parsed CSV row addressed by header name. Missing columns
// read as the empty string.
type rawRow map[string]string

func (r rawRow) get(column string) string {
	return strings.TrimSpace(r[column])
}

// defaultFormats returns the two known dataset layouts.
func defaultFormats() []sourceFormat {
	return []sourceFormat{
		{
			file:   "Food tour SG - HCM.csv",
			source: entities.SourceFoodTour,
			mapRow: mapFoodTourRow,
		},
		{
			file:        "SAIGON EVERYFOOD.xlsx - Ăn ún no nê.csv",
			source:      entities.SourceSaigonEveryfood,
			skipTitle:   true,
			indexOffset: everyfoodIndexOffset,
			keepRow:     keepEveryfoodRow,
			mapRow:      mapEveryfoodRow,
		},
	}
}

// mapFoodTourRow maps one Food Tour row. Columns: STT, Tên quán, Tên món,
// Phân loại món, Tên đường, Quận, Giờ mở cửa, Khoảng giá, Note.
func mapFoodTourRow(row rawRow, index int) *entities.Restaurant {
	return &entities.Restaurant{
		ID:           generateID(row["Tên quán"], row["Tên đường"], index),
		Name:         orPlaceholder(row.get("Tên quán")),
		Dish:         row.get("Tên món"),
		Category:     normalize.Category(row["Phân loại món"]),
		Address:      row.get("Tên đường"),
		District:     normalize.District(row["Quận"]),
		OpeningHours: optional(row.get("Giờ mở cửa")),
		PriceRange:   normalize.ParsePrice(row["Khoảng giá"]),
		Note:         optional(row.get("Note")),
		Source:       entities.SourceFoodTour,
	}
}

// keepEveryfoodRow drops the blank and header-artifact rows the Everyfood
// sheet is littered with: a usable row has both the combined name cell and
// a district.
func keepEveryfoodRow(row rawRow) bool {
	return row["Món - Quán"] != "" && row["Quận"] != ""
}

// mapEveryfoodRow maps one Saigon Everyfood row. Columns: Loại quán,
// Món - Quán, ĐỊA CHỈ - CN, Quận, Giá tiền, Review, FEEDBACK MN. The
// combined cell feeds both name and dish; the sheet has no opening hours
// or note columns.
func mapEveryfoodRow(row rawRow, index int) *entities.Restaurant {
	return &entities.Restaurant{
		ID:         generateID(row["Món - Quán"], row["ĐỊA CHỈ - CN"], index),
		Name:       orPlaceholder(row.get("Món - Quán")),
		Dish:       row.get("Món - Quán"),
		Category:   normalize.Category(row["Loại quán"]),
		Address:    row.get("ĐỊA CHỈ - CN"),
		District:   normalize.District(row["Quận"]),
		PriceRange: normalize.ParsePrice(row["Giá tiền"]),
		Review:     optional(row.get("Review")),
		Feedback:   optional(row.get("FEEDBACK MN")),
		Source:     entities.SourceSaigonEveryfood,
	}
}

// The slug keeps ASCII alphanumerics plus the Latin Supplement/Extended
// block Vietnamese letters live in; everything else becomes a hyphen.
var (
	slugInvalidRe = regexp.MustCompile(`[^a-z0-9\x{00C0}-\x{024F}]`)
	hyphenRunRe   = regexp.MustCompile(`-+`)
)

const slugMaxRunes = 50

// generateID derives a deterministic ID from name, address and the row's
// positional index. Re-ingesting identical input yields identical IDs; the
// index, not content hashing, is what prevents collisions.
func generateID(name, address string, index int) string {
	slug := strings.ToLower(name + "-" + address)
	slug = slugInvalidRe.ReplaceAllString(slug, "-")
	slug = hyphenRunRe.ReplaceAllString(slug, "-")
	if runes := []rune(slug); len(runes) > slugMaxRunes {
		slug = string(runes[:slugMaxRunes])
	}
	return fmt.Sprintf("%s-%d", slug, index)
}

func orPlaceholder(value string) string {
	if value == "" {
		return placeholderName
	}
	return value
}

// optional maps an empty cell to nil so the JSON carries an explicit null
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

package normalize

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/saigon-food-map/backend/internal/domain/entities"
)

// ContactDisplay is shown when a row carries no price text at all
const ContactDisplay = "Liên hệ"

// variesPhrase is the curators' way of saying the price depends on the order
const variesPhrase = "nhiều giá"

// Notations seen in the spreadsheets: "20k-25k", "<50k", "> 100k", "45k",
// "280k-350k-450k" (middle value is a typical price), "Nhiều giá".
var (
	amountRe     = regexp.MustCompile(`^(\d+)(k)?$`)
	upperBoundRe = regexp.MustCompile(`(?i)^[<~]\s*(\d+k?)`)
	lowerBoundRe = regexp.MustCompile(`(?i)^>\s*(\d+k?)`)
	spanRe       = regexp.MustCompile(`(?i)(\d+k?)\s*[-–]\s*(\d+k?)(?:\s*[-–]\s*(\d+k?))?`)
	exactRe      = regexp.MustCompile(`(?i)^(\d+k?)$`)
	separatorRe  = regexp.MustCompile(`[,.\s]+`)
)

// toVND converts one matched amount token to VND. Thousands separators and
// whitespace are stripped first. A trailing "k" multiplies by 1000; a bare
// number is treated as thousands too, which is the datasets' convention for
// raw digits.
func toVND(token string) *int {
	if token == "" {
		return nil
	}
	cleaned := separatorRe.ReplaceAllString(strings.ToLower(token), "")
	m := amountRe.FindStringSubmatch(cleaned)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	n *= 1000
	return &n
}

// ParsePrice turns a free-text price notation into a structured range.
// Display always preserves the trimmed original text verbatim; it is never
// reconstructed from the parsed bounds. Unparseable input yields nil bounds,
// never an error.
func ParsePrice(raw string) entities.PriceRange {
	display := strings.TrimSpace(raw)

	if display == "" || strings.ToLower(display) == variesPhrase {
		if display == "" {
			display = ContactDisplay
		}
		return entities.PriceRange{Display: display}
	}

	if m := upperBoundRe.FindStringSubmatch(display); m != nil {
		return entities.PriceRange{Max: toVND(m[1]), Display: display}
	}

	if m := lowerBoundRe.FindStringSubmatch(display); m != nil {
		return entities.PriceRange{Min: toVND(m[1]), Display: display}
	}

	if m := spanRe.FindStringSubmatch(display); m != nil {
		values := make([]int, 0, 3)
		for _, token := range m[1:] {
			if v := toVND(token); v != nil {
				values = append(values, *v)
			}
		}
		sort.Ints(values)
		if len(values) >= 2 {
			min, max := values[0], values[len(values)-1]
			return entities.PriceRange{Min: &min, Max: &max, Display: display}
		}
	}

	if m := exactRe.FindStringSubmatch(display); m != nil {
		if v := toVND(m[1]); v != nil {
			min, max := *v, *v
			return entities.PriceRange{Min: &min, Max: &max, Display: display}
		}
		return entities.PriceRange{Display: display}
	}

	return entities.PriceRange{Display: display}
}

// IsPriceInRange reports whether a record's price interval overlaps the
// requested bounds. No bounds means everything passes, and a fully unknown
// price is never excluded. This is an overlap test, not containment: a
// record fails only when its max sits below minPrice or its min above
// maxPrice.
func IsPriceInRange(price entities.PriceRange, minPrice, maxPrice *int) bool {
	if minPrice == nil && maxPrice == nil {
		return true
	}
	if price.Min == nil && price.Max == nil {
		return true
	}

	if minPrice != nil && price.Max != nil && *price.Max < *minPrice {
		return false
	}
	if maxPrice != nil && price.Min != nil && *price.Min > *maxPrice {
		return false
	}

	return true
}

package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// UnknownDistrict is the sentinel for rows with no usable district text
const UnknownDistrict = "Không xác định"

// districtTable maps cleaned district spellings to their canonical label.
// Numbered districts 1-12 plus the named inner and suburban districts of
// HCMC; Thủ Đức carries its post-upgrade "TP." designation.
var districtTable = map[string]string{
	"1":  "Quận 1",
	"2":  "Quận 2",
	"3":  "Quận 3",
	"4":  "Quận 4",
	"5":  "Quận 5",
	"6":  "Quận 6",
	"7":  "Quận 7",
	"8":  "Quận 8",
	"9":  "Quận 9",
	"10": "Quận 10",
	"11": "Quận 11",
	"12": "Quận 12",

	"bình thạnh": "Quận Bình Thạnh",
	"phú nhuận":  "Quận Phú Nhuận",
	"tân bình":   "Quận Tân Bình",
	"tân phú":    "Quận Tân Phú",
	"gò vấp":     "Quận Gò Vấp",
	"bình tân":   "Quận Bình Tân",

	"thủ đức": "TP. Thủ Đức",
	"thu duc": "TP. Thủ Đức",

	"bình chánh": "Huyện Bình Chánh",
	"hóc môn":    "Huyện Hóc Môn",
	"củ chi":     "Huyện Củ Chi",
	"nhà bè":     "Huyện Nhà Bè",
	"cần giờ":    "Huyện Cần Giờ",
}

// Prefix spellings for "district"/"ward"/"city" that curators mix freely:
// "Quận 1", "Q.1", "Q1", "Huyện Củ Chi", "H. Hóc Môn", "TP. Thủ Đức".
// Applied in order against the lowercased input.
var districtPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`^quận\s*`),
	regexp.MustCompile(`^q\.\s*`),
	regexp.MustCompile(`^q\s*`),
	regexp.MustCompile(`^huyện\s*`),
	regexp.MustCompile(`^h\.\s*`),
	regexp.MustCompile(`^tp\.\s*`),
}

var numericRe = regexp.MustCompile(`^\d+$`)

// District canonicalizes a free-text district name: "1", "q1", "quận 1" all
// become "Quận 1". This is a best-effort heuristic, not a validator —
// unrecognized names still come back as a plausibly formatted label.
func District(raw string) string {
	original := strings.TrimSpace(raw)
	if original == "" {
		return UnknownDistrict
	}

	cleaned := strings.ToLower(original)
	for _, prefix := range districtPrefixes {
		cleaned = prefix.ReplaceAllString(cleaned, "")
	}
	cleaned = strings.TrimSpace(cleaned)

	if numericRe.MatchString(cleaned) {
		if canonical, ok := districtTable[cleaned]; ok {
			return canonical
		}
		return fmt.Sprintf("Quận %s", cleaned)
	}

	if canonical, ok := districtTable[cleaned]; ok {
		return canonical
	}

	// Input already carried a recognized prefix: keep it, fix the casing.
	lower := strings.ToLower(original)
	if strings.HasPrefix(lower, "quận ") ||
		strings.HasPrefix(lower, "huyện ") ||
		strings.HasPrefix(lower, "tp. ") {
		words := strings.Split(original, " ")
		for i, word := range words {
			words[i] = capitalize(word)
		}
		return strings.Join(words, " ")
	}

	// Assume a bare district name.
	return fmt.Sprintf("Quận %s", capitalize(original))
}

// AllDistricts returns the full fixed enumeration of HCMC districts.
func AllDistricts() []string {
	return []string{
		"Quận 1", "Quận 2", "Quận 3", "Quận 4", "Quận 5",
		"Quận 6", "Quận 7", "Quận 8", "Quận 9", "Quận 10",
		"Quận 11", "Quận 12",
		"Quận Bình Thạnh", "Quận Phú Nhuận", "Quận Tân Bình",
		"Quận Tân Phú", "Quận Gò Vấp", "Quận Bình Tân",
		"TP. Thủ Đức",
		"Huyện Bình Chánh", "Huyện Hóc Môn", "Huyện Củ Chi",
		"Huyện Nhà Bè", "Huyện Cần Giờ",
	}
}

// capitalize upper-cases the first rune and lower-cases the rest
func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

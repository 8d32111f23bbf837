package normalize

import "strings"

// OtherCategory is the fallback label for rows with no category text
const OtherCategory = "Khác"

// categoryTable collapses the two spreadsheets' near-duplicate category
// spellings onto one canonical label set.
var categoryTable = map[string]string{
	"bánh mì":                       "Bánh mì",
	"cơm":                           "Cơm",
	"cơm tấm":                       "Cơm",
	"món nước":                      "Món nước",
	"lẩu":                           "Lẩu",
	"ăn vặt":                        "Ăn vặt",
	"cafe":                          "Cafe",
	"quán nước":                     "Cafe",
	"món việt":                      "Món Việt",
	"món nhật":                      "Món Nhật",
	"món hàn":                       "Món Hàn",
	"món thái":                      "Món Thái",
	"sang choảnh - không gian xinh": "Sang trọng",
	"món khô":                       "Món khô",
}

// Category maps a free-text dish-category label onto the canonical set.
// Unmatched labels pass through trimmed with their original casing; only
// missing input forces the "Khác" fallback.
func Category(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return OtherCategory
	}

	if canonical, ok := categoryTable[strings.ToLower(cleaned)]; ok {
		return canonical
	}
	return cleaned
}

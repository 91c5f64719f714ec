package catalog

// majorCategories is the ordered list of collateral major categories.
var majorCategories = []string{"주택", "토지", "상가", "기타"}

// minorCategories maps major category → ordered minor categories. The first
// entry of each list is the default after a major-category change.
var minorCategories = map[string][]string{
	"주택": {"아파트", "연립주택", "다세대주택", "단독주택", "다가구주택"},
	"토지": {"대지", "전", "답", "임야", "과수원"},
	"상가": {"근린상가", "단지내상가", "오피스텔", "지식산업센터"},
	"기타": {"공장", "창고", "숙박시설"},
}

// MajorCategories returns the ordered list of major categories.
func MajorCategories() []string {
	out := make([]string, len(majorCategories))
	copy(out, majorCategories)
	return out
}

// MinorCategoriesOf returns the ordered minor categories of a major category.
// Unknown majors yield an empty slice.
func MinorCategoriesOf(major string) []string {
	minors, ok := minorCategories[major]
	if !ok {
		return []string{}
	}
	out := make([]string, len(minors))
	copy(out, minors)
	return out
}

// DefaultMinorFor returns the first minor category of a major, or the empty
// string when the major is unknown.
func DefaultMinorFor(major string) string {
	minors := minorCategories[major]
	if len(minors) == 0 {
		return ""
	}
	return minors[0]
}

// IsValidPair reports whether minor belongs to major's minor-category list.
func IsValidPair(major, minor string) bool {
	for _, m := range minorCategories[major] {
		if m == minor {
			return true
		}
	}
	return false
}

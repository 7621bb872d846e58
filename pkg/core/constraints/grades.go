package constraints

import (
	"regexp"
	"strconv"
)

// Grade-range parsing for free-text bunk and session labels. Camp staff name
// bunks by hand, so several competing conventions show up in the data:
//
//	"AG 7/8"        numeric pair
//	"AG 7th-8th"    ordinal range (suffix optional, separators - / – / &)
//	"AG-8"          single grade
//
// Matchers run in priority order, first match wins. A name that matches no
// pattern parses to (0, 0): the "unparseable" sentinel. Callers must treat
// the sentinel as "grade compatibility unknown" and skip the check, never as
// a real kindergarten-to-kindergarten range.
var (
	numericPairPattern  = regexp.MustCompile(`(\d{1,2})\s*/\s*(\d{1,2})`)
	ordinalRangePattern = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)?\s*[-–&]\s*(\d{1,2})(?:st|nd|rd|th)?`)
	singleGradePattern  = regexp.MustCompile(`(?i)\bAG[- ]?(\d{1,2})\b`)
)

// ExtractGradeRange parses a free-text label into an inclusive grade
// interval. Returns (0, 0) when the label encodes no recognisable range.
func ExtractGradeRange(name string) (int, int) {
	if m := numericPairPattern.FindStringSubmatch(name); m != nil {
		return orderPair(m[1], m[2])
	}
	if m := ordinalRangePattern.FindStringSubmatch(name); m != nil {
		return orderPair(m[1], m[2])
	}
	if m := singleGradePattern.FindStringSubmatch(name); m != nil {
		g, _ := strconv.Atoi(m[1])
		return g, g
	}
	return 0, 0
}

func orderPair(a, b string) (int, int) {
	x, _ := strconv.Atoi(a)
	y, _ := strconv.Atoi(b)
	if x > y {
		return y, x
	}
	return x, y
}

// IsUnparseableRange reports whether a parsed range is the (0, 0) sentinel.
func IsUnparseableRange(min, max int) bool {
	return min == 0 && max == 0
}

// GradeInRange reports whether grade lies within [min, max], inclusive.
func GradeInRange(grade, min, max int) bool {
	return grade >= min && grade <= max
}

// GradesOverlap reports whether two inclusive grade intervals intersect.
// Touching endpoints count as overlapping.
func GradesOverlap(min1, max1, min2, max2 int) bool {
	return !(max1 < min2 || min1 > max2)
}

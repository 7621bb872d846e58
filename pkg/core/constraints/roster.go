package constraints

import "math"

// Bunk-level soft-warning checks. Each is an independent boolean over the
// bunk's current roster; none of them blocks a placement on its own.

// MaxAgeSpreadMonths is the widest acceptable gap between the oldest and
// youngest camper in a bunk. Exactly 24 months does not warn.
const MaxAgeSpreadMonths = 24.0

// MaxGradeSharePercent is the largest share (rounded to the nearest integer
// percent) any single grade may hold in a bunk before the grade-ratio
// warning fires.
const MaxGradeSharePercent = 67

// MaxDistinctGrades is the most distinct grades a bunk may hold before the
// grade-diversity warning fires.
const MaxDistinctGrades = 2

// IsOverCapacity reports whether occupancy strictly exceeds the soft
// capacity.
func IsOverCapacity(occupancy, capacity int) bool {
	return occupancy > capacity
}

// ExceedsAgeSpread reports whether the gap between the oldest and youngest
// age (fractional years) strictly exceeds 24 months.
func ExceedsAgeSpread(ages []float64) bool {
	if len(ages) < 2 {
		return false
	}
	youngest, oldest := ages[0], ages[0]
	for _, age := range ages[1:] {
		if age < youngest {
			youngest = age
		}
		if age > oldest {
			oldest = age
		}
	}
	return (oldest-youngest)*12 > MaxAgeSpreadMonths
}

// ExceedsGradeRatio reports whether any single grade's share of the roster,
// rounded to the nearest integer percent, exceeds 67%.
func ExceedsGradeRatio(grades []int) bool {
	if len(grades) == 0 {
		return false
	}
	counts := make(map[int]int)
	for _, g := range grades {
		counts[g]++
	}
	// A single-grade bunk is uniform, not imbalanced; the ratio rule only
	// flags a dominant grade within a mix.
	if len(counts) < 2 {
		return false
	}
	for _, n := range counts {
		pct := int(math.Round(float64(n) / float64(len(grades)) * 100))
		if pct > MaxGradeSharePercent {
			return true
		}
	}
	return false
}

// ExceedsGradeDiversity reports whether more than two distinct grades are
// present in the roster.
func ExceedsGradeDiversity(grades []int) bool {
	distinct := make(map[int]struct{})
	for _, g := range grades {
		distinct[g] = struct{}{}
	}
	return len(distinct) > MaxDistinctGrades
}

package constraints

import "github.com/silverbirch/bunking/pkg/core/model"

// Age-preference scoring shared by the solver and the post-validation report
// so the two never disagree about whether a request counts as satisfied.
//
// An age_preference request has no requestee; it asks that the bunk's other
// occupants skew older or younger than the requester. A bunkmate satisfies
// the preference when their grade sits at the requester's own grade or
// beyond it in the requested direction (the requester's own band counts as
// the boundary).

// AgePreferenceScore returns the share of bunkmates (the requester excluded
// by the caller) whose grade satisfies the requested direction. Returns 0
// for an empty roster.
func AgePreferenceScore(requesterGrade int, direction model.AgeDirection, mateGrades []int) float64 {
	if len(mateGrades) == 0 {
		return 0
	}
	satisfying := 0
	for _, g := range mateGrades {
		switch direction {
		case model.DirectionOlder:
			if g >= requesterGrade {
				satisfying++
			}
		case model.DirectionYounger:
			if g <= requesterGrade {
				satisfying++
			}
		}
	}
	return float64(satisfying) / float64(len(mateGrades))
}

// AgePreferenceSatisfied reports whether the bunkmate grade breakdown leans
// at least half toward the requested direction.
func AgePreferenceSatisfied(requesterGrade int, direction model.AgeDirection, mateGrades []int) bool {
	return AgePreferenceScore(requesterGrade, direction, mateGrades) >= 0.5
}

package constraints

import (
	"strings"

	"github.com/silverbirch/bunking/pkg/core/model"
)

// IsValidDropTarget is the hard gender/area compatibility check for placing a
// camper into a bunk. It is the single gate used by the solver, the
// pre-validator, and manual board moves.
//
// AG-session campers may only go into Mixed-designated bunks, and when both
// the session name and the bunk name encode parseable grade ranges the two
// must be compatible: a single-grade bunk must lie within the session's
// range, a multi-grade bunk must intersect it. If either side is unparseable
// the grade check passes permissively.
//
// Non-AG campers match on bunk gender designation or name prefix: male
// campers need gender M or a B- prefix, female campers gender F or a G-
// prefix. Non-binary campers pass unconditionally.
func IsValidDropTarget(camper model.Camper, bunk model.Bunk) bool {
	if camper.SessionType == model.SessionAG {
		return isValidAGTarget(camper, bunk)
	}

	switch camper.Gender {
	case model.GenderMale:
		return bunk.Gender == model.GenderMale || hasPrefixFold(bunk.Name, "B-")
	case model.GenderFemale:
		return bunk.Gender == model.GenderFemale || hasPrefixFold(bunk.Name, "G-")
	}
	return true
}

func isValidAGTarget(camper model.Camper, bunk model.Bunk) bool {
	if bunk.Gender != model.GenderMixed && bunk.Area() != model.AreaAllGender {
		return false
	}

	sessMin, sessMax := ExtractGradeRange(camper.SessionName)
	bunkMin, bunkMax := ExtractGradeRange(bunk.Name)

	// Grade compatibility unknown on either side: allow.
	if IsUnparseableRange(sessMin, sessMax) || IsUnparseableRange(bunkMin, bunkMax) {
		return true
	}

	if bunkMin == bunkMax {
		return GradeInRange(bunkMin, sessMin, sessMax)
	}
	return GradesOverlap(bunkMin, bunkMax, sessMin, sessMax)
}

func hasPrefixFold(name, prefix string) bool {
	return strings.HasPrefix(strings.ToUpper(name), prefix)
}

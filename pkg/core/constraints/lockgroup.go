package constraints

import "github.com/silverbirch/bunking/pkg/core/model"

// LockGroupValidation flags structural problems with a lock group's
// membership. Violations are reported, never auto-corrected.
type LockGroupValidation struct {
	CrossSession bool
	CrossGender  bool
}

// Valid reports whether the group raised no flags.
func (v LockGroupValidation) Valid() bool {
	return !v.CrossSession && !v.CrossGender
}

// ValidateLockGroup checks a lock group's members for cross-session and
// cross-gender membership. Cross-gender is only a violation when no member
// is in an AG session and the genders are not all non-binary; AG bunks are
// mixed by definition.
func ValidateLockGroup(group model.LockGroup, campersByID map[int]model.Camper) LockGroupValidation {
	var v LockGroupValidation

	var sessionID string
	anyAG := false
	genders := make(map[model.Gender]struct{})

	for _, id := range group.MemberIDs {
		camper, ok := campersByID[id]
		if !ok {
			continue
		}
		if sessionID == "" {
			sessionID = camper.SessionID
		} else if camper.SessionID != sessionID {
			v.CrossSession = true
		}
		if camper.SessionType == model.SessionAG {
			anyAG = true
		}
		genders[camper.Gender] = struct{}{}
	}

	if !anyAG && mixesBinaryGenders(genders) {
		v.CrossGender = true
	}
	return v
}

// mixesBinaryGenders reports whether the set holds both M and F. NB members
// constrain nothing: they can drop into any bunk, so a {M, NB} group is not
// cross-gender.
func mixesBinaryGenders(genders map[model.Gender]struct{}) bool {
	_, hasMale := genders[model.GenderMale]
	_, hasFemale := genders[model.GenderFemale]
	return hasMale && hasFemale
}

package solver

import (
	"fmt"

	"github.com/silverbirch/bunking/pkg/core/constraints"
	"github.com/silverbirch/bunking/pkg/core/model"
)

// GenderAreaCriterion is the hard gender/area/session gate. A unit may only
// enter a bunk every member could be dropped into by hand, and only within
// its own session, except AG campers who share the AG bunk pool.
type GenderAreaCriterion struct{}

func NewGenderAreaCriterion() *GenderAreaCriterion {
	return &GenderAreaCriterion{}
}

func (c *GenderAreaCriterion) Name() string {
	return "GenderArea"
}

func (c *GenderAreaCriterion) PromoteUnit(state *State, unit *Unit) float64 {
	return 0
}

func (c *GenderAreaCriterion) IsBunkValid(state *State, unit *Unit, bunk *BunkState) bool {
	for _, member := range unit.Members {
		if !sessionCompatible(member, bunk.Bunk) {
			return false
		}
		if !constraints.IsValidDropTarget(member, bunk.Bunk) {
			return false
		}
	}
	return true
}

func (c *GenderAreaCriterion) PlacementAffinity(state *State, unit *Unit, bunk *BunkState) float64 {
	return 0
}

func (c *GenderAreaCriterion) UnitWeight() float64     { return 0 }
func (c *GenderAreaCriterion) AffinityWeight() float64 { return 0 }

func (c *GenderAreaCriterion) ValidateState(state *State) []Violation {
	var violations []Violation
	for _, bunk := range state.Bunks {
		for _, unit := range bunk.Units {
			for _, member := range unit.Members {
				if !constraints.IsValidDropTarget(member, bunk.Bunk) {
					violations = append(violations, Violation{
						BunkID:        bunk.Bunk.ID,
						BunkName:      bunk.Bunk.Name,
						CriterionName: c.Name(),
						Severity:      SeverityError,
						Description:   fmt.Sprintf("%s (%s) is not gender/area compatible with this bunk", member.FullName(), member.Gender),
					})
				}
			}
		}
	}
	return violations
}

// sessionCompatible enforces the session isolation boundary.
func sessionCompatible(camper model.Camper, bunk model.Bunk) bool {
	if bunk.SessionID == "" || bunk.SessionID == camper.SessionID {
		return true
	}
	return camper.SessionType == model.SessionAG && bunk.Area() == model.AreaAllGender
}

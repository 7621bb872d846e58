package solver

import (
	"fmt"

	"github.com/silverbirch/bunking/pkg/core/constraints"
)

// AgeSpreadCriterion keeps each bunk's oldest-to-youngest gap at or under 24
// months. Soft: a wide spread is a warning, never a veto.
type AgeSpreadCriterion struct {
	affinityWeight float64
}

func NewAgeSpreadCriterion(affinityWeight float64) *AgeSpreadCriterion {
	return &AgeSpreadCriterion{affinityWeight: affinityWeight}
}

func (c *AgeSpreadCriterion) Name() string {
	return "AgeSpread"
}

func (c *AgeSpreadCriterion) PromoteUnit(state *State, unit *Unit) float64 {
	return 0
}

func (c *AgeSpreadCriterion) IsBunkValid(state *State, unit *Unit, bunk *BunkState) bool {
	return true
}

func (c *AgeSpreadCriterion) PlacementAffinity(state *State, unit *Unit, bunk *BunkState) float64 {
	combined := append(bunk.Ages(), unit.Ages...)
	if constraints.ExceedsAgeSpread(combined) {
		return -1
	}
	return 0
}

func (c *AgeSpreadCriterion) UnitWeight() float64     { return 0 }
func (c *AgeSpreadCriterion) AffinityWeight() float64 { return c.affinityWeight }

func (c *AgeSpreadCriterion) ValidateState(state *State) []Violation {
	var violations []Violation
	for _, bunk := range state.Bunks {
		if constraints.ExceedsAgeSpread(bunk.Ages()) {
			violations = append(violations, Violation{
				BunkID:        bunk.Bunk.ID,
				BunkName:      bunk.Bunk.Name,
				CriterionName: c.Name(),
				Severity:      SeverityWarning,
				Description:   fmt.Sprintf("age spread exceeds %.0f months", constraints.MaxAgeSpreadMonths),
			})
		}
	}
	return violations
}

package solver

import (
	"fmt"

	"github.com/silverbirch/bunking/pkg/core/constraints"
	"github.com/silverbirch/bunking/pkg/core/model"
)

// CapacityCriterion enforces the hard capacity ceiling and steers units
// toward emptier bunks.
//
// Validity: placing the unit must not push occupancy past the hard ceiling
// of 14. The soft capacity (12 by default) is exceedable; going over it is a
// warning, not a veto.
//
// Affinity: proportional to remaining soft capacity, so the greedy phase
// spreads campers instead of piling the first bunks full.
type CapacityCriterion struct {
	affinityWeight float64
}

func NewCapacityCriterion(affinityWeight float64) *CapacityCriterion {
	return &CapacityCriterion{affinityWeight: affinityWeight}
}

func (c *CapacityCriterion) Name() string {
	return "Capacity"
}

func (c *CapacityCriterion) PromoteUnit(state *State, unit *Unit) float64 {
	return 0
}

func (c *CapacityCriterion) IsBunkValid(state *State, unit *Unit, bunk *BunkState) bool {
	return bunk.Occupancy()+unit.Size() <= model.HardCapacityCeiling
}

func (c *CapacityCriterion) PlacementAffinity(state *State, unit *Unit, bunk *BunkState) float64 {
	capacity := bunk.Bunk.EffectiveCapacity()
	remaining := capacity - bunk.Occupancy() - unit.Size()
	if remaining < 0 {
		// Soft-capacity overflow: sharply negative but not vetoed.
		return float64(remaining)
	}
	return float64(remaining) / float64(capacity)
}

func (c *CapacityCriterion) UnitWeight() float64     { return 0 }
func (c *CapacityCriterion) AffinityWeight() float64 { return c.affinityWeight }

func (c *CapacityCriterion) ValidateState(state *State) []Violation {
	var violations []Violation
	for _, bunk := range state.Bunks {
		occupancy := bunk.Occupancy()
		if occupancy > model.HardCapacityCeiling {
			violations = append(violations, Violation{
				BunkID:        bunk.Bunk.ID,
				BunkName:      bunk.Bunk.Name,
				CriterionName: c.Name(),
				Severity:      SeverityError,
				Description:   fmt.Sprintf("occupancy %d exceeds the hard ceiling of %d", occupancy, model.HardCapacityCeiling),
			})
		} else if constraints.IsOverCapacity(occupancy, bunk.Bunk.EffectiveCapacity()) {
			violations = append(violations, Violation{
				BunkID:        bunk.Bunk.ID,
				BunkName:      bunk.Bunk.Name,
				CriterionName: c.Name(),
				Severity:      SeverityWarning,
				Description:   fmt.Sprintf("occupancy %d exceeds capacity %d", occupancy, bunk.Bunk.EffectiveCapacity()),
			})
		}
	}
	return violations
}

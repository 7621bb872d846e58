package solver

import (
	"fmt"

	"github.com/silverbirch/bunking/pkg/core/constraints"
)

// GradeShapeCriterion covers the two grade-composition warnings: no single
// grade over 67% of a bunk, and no more than two distinct grades per bunk.
type GradeShapeCriterion struct {
	affinityWeight float64
}

func NewGradeShapeCriterion(affinityWeight float64) *GradeShapeCriterion {
	return &GradeShapeCriterion{affinityWeight: affinityWeight}
}

func (c *GradeShapeCriterion) Name() string {
	return "GradeShape"
}

func (c *GradeShapeCriterion) PromoteUnit(state *State, unit *Unit) float64 {
	return 0
}

func (c *GradeShapeCriterion) IsBunkValid(state *State, unit *Unit, bunk *BunkState) bool {
	return true
}

func (c *GradeShapeCriterion) PlacementAffinity(state *State, unit *Unit, bunk *BunkState) float64 {
	combined := append(bunk.Grades(), unit.Grades...)
	affinity := 0.0
	if constraints.ExceedsGradeRatio(combined) {
		affinity -= 0.5
	}
	if constraints.ExceedsGradeDiversity(combined) {
		affinity -= 1
	}
	return affinity
}

func (c *GradeShapeCriterion) UnitWeight() float64     { return 0 }
func (c *GradeShapeCriterion) AffinityWeight() float64 { return c.affinityWeight }

func (c *GradeShapeCriterion) ValidateState(state *State) []Violation {
	var violations []Violation
	for _, bunk := range state.Bunks {
		grades := bunk.Grades()
		if constraints.ExceedsGradeRatio(grades) {
			violations = append(violations, Violation{
				BunkID:        bunk.Bunk.ID,
				BunkName:      bunk.Bunk.Name,
				CriterionName: c.Name(),
				Severity:      SeverityWarning,
				Description:   fmt.Sprintf("a single grade holds more than %d%% of the bunk", constraints.MaxGradeSharePercent),
			})
		}
		if constraints.ExceedsGradeDiversity(grades) {
			violations = append(violations, Violation{
				BunkID:        bunk.Bunk.ID,
				BunkName:      bunk.Bunk.Name,
				CriterionName: c.Name(),
				Severity:      SeverityWarning,
				Description:   fmt.Sprintf("more than %d distinct grades present", constraints.MaxDistinctGrades),
			})
		}
	}
	return violations
}

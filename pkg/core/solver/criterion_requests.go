package solver

import (
	"github.com/silverbirch/bunking/pkg/core/constraints"
	"github.com/silverbirch/bunking/pkg/core/model"
)

// RequestCriterion steers units toward bunks that satisfy their social
// requests.
//
// Promotion: units carrying many high-weight requests place early, while
// their requestees still have room to join them.
//
// Affinity: for each member request, a bunk scores positively when it
// already holds the requestee of a bunk_with, negatively when it holds the
// requestee of a not_bunk_with, and proportionally to the grade-breakdown
// score for age preferences. All terms scale with priority and confidence.
type RequestCriterion struct {
	unitWeight     float64
	affinityWeight float64
}

func NewRequestCriterion(unitWeight, affinityWeight float64) *RequestCriterion {
	return &RequestCriterion{unitWeight: unitWeight, affinityWeight: affinityWeight}
}

func (c *RequestCriterion) Name() string {
	return "Requests"
}

func (c *RequestCriterion) PromoteUnit(state *State, unit *Unit) float64 {
	total := 0.0
	for _, req := range unit.Requests {
		total += requestWeight(req.Priority, req.Confidence)
	}
	// Normalise against the heaviest plausible load: a handful of critical
	// requests saturates the promotion.
	promotion := total / (4 * priorityWeights[4])
	if promotion > 1 {
		promotion = 1
	}
	return promotion
}

func (c *RequestCriterion) IsBunkValid(state *State, unit *Unit, bunk *BunkState) bool {
	return true
}

func (c *RequestCriterion) PlacementAffinity(state *State, unit *Unit, bunk *BunkState) float64 {
	affinity := 0.0
	bunkGrades := bunk.Grades()

	for i, member := range unit.Members {
		for _, req := range state.requestsByRequester[member.ID] {
			weight := requestWeight(req.Priority, req.Confidence)
			switch req.Type {
			case model.RequestBunkWith:
				if c.holdsCamper(bunk, req.RequesteeID) {
					affinity += weight
				}
			case model.RequestNotBunkWith:
				if c.holdsCamper(bunk, req.RequesteeID) {
					affinity -= weight
				}
			case model.RequestAgePreference:
				score := constraints.AgePreferenceScore(unit.Grades[i], req.Direction, bunkGrades)
				affinity += weight * score
			}
		}
	}

	// Also credit requests pointing AT members of this unit from campers
	// already in the bunk, so mutual pairs attract symmetrically.
	for _, placed := range bunk.Units {
		for _, req := range placed.Requests {
			if req.Type != model.RequestBunkWith && req.Type != model.RequestNotBunkWith {
				continue
			}
			if !unitContains(unit, req.RequesteeID) {
				continue
			}
			weight := requestWeight(req.Priority, req.Confidence)
			if req.Type == model.RequestBunkWith {
				affinity += weight
			} else {
				affinity -= weight
			}
		}
	}

	return affinity
}

func (c *RequestCriterion) holdsCamper(bunk *BunkState, camperID int) bool {
	for _, unit := range bunk.Units {
		if unitContains(unit, camperID) {
			return true
		}
	}
	return false
}

func unitContains(unit *Unit, camperID int) bool {
	for _, m := range unit.Members {
		if m.ID == camperID {
			return true
		}
	}
	return false
}

func (c *RequestCriterion) UnitWeight() float64     { return c.unitWeight }
func (c *RequestCriterion) AffinityWeight() float64 { return c.affinityWeight }

func (c *RequestCriterion) ValidateState(state *State) []Violation {
	// Unsatisfied requests are reported through the post-validation
	// satisfaction report, not as placement violations.
	return nil
}

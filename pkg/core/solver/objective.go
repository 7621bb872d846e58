package solver

import (
	"github.com/silverbirch/bunking/pkg/core/constraints"
	"github.com/silverbirch/bunking/pkg/core/model"
)

// RewardPlacement is the objective credit per placed camper. It dominates
// every soft penalty so the search never prefers leaving a camper out to
// dodge a warning.
const RewardPlacement = 20.0

// objective computes the ground-truth score of the current state: placement
// reward plus weighted request satisfaction minus soft-constraint penalties.
// The improvement phase only ever accepts strictly higher values.
func objective(state *State) float64 {
	score := 0.0

	for _, unit := range state.Units {
		if unit.Placed() {
			score += RewardPlacement * float64(unit.Size())
		}
	}

	for _, req := range state.allRequests {
		score += requestScore(state, req)
	}

	for _, bunk := range state.Bunks {
		occupancy := bunk.Occupancy()
		capacity := bunk.Bunk.EffectiveCapacity()
		if occupancy > capacity {
			score -= PenaltyOverCapacity * float64(occupancy-capacity)
		}
		if constraints.ExceedsAgeSpread(bunk.Ages()) {
			score -= PenaltyAgeSpread
		}
		grades := bunk.Grades()
		if constraints.ExceedsGradeRatio(grades) {
			score -= PenaltyGradeRatio
		}
		if constraints.ExceedsGradeDiversity(grades) {
			score -= PenaltyGradeDiversity
		}
	}

	return score
}

// requestScore returns the weighted satisfaction contribution of a single
// request under the current state.
func requestScore(state *State, req model.Request) float64 {
	weight := requestWeight(req.Priority, req.Confidence)
	if weight == 0 {
		return 0
	}

	requesterBunk := state.BunkOf(req.RequesterID)

	switch req.Type {
	case model.RequestBunkWith:
		if requesterBunk == nil {
			return 0
		}
		requesteeBunk := state.BunkOf(req.RequesteeID)
		if requesteeBunk != nil && requesteeBunk.Index == requesterBunk.Index {
			return weight
		}
		return 0

	case model.RequestNotBunkWith:
		requesteeBunk := state.BunkOf(req.RequesteeID)
		if requesterBunk != nil && requesteeBunk != nil && requesteeBunk.Index == requesterBunk.Index {
			return 0
		}
		return weight

	case model.RequestAgePreference:
		if requesterBunk == nil {
			return 0
		}
		unit := state.UnitOf(req.RequesterID)
		grade := 0
		for i, m := range unit.Members {
			if m.ID == req.RequesterID {
				grade = unit.Grades[i]
				break
			}
		}
		mates := bunkmateGrades(state, requesterBunk, req.RequesterID)
		return weight * constraints.AgePreferenceScore(grade, req.Direction, mates)
	}
	return 0
}

// bunkmateGrades returns the grades of everyone in the bunk except the given
// camper.
func bunkmateGrades(state *State, bunk *BunkState, excludeCamperID int) []int {
	var grades []int
	for _, unit := range bunk.Units {
		for i, m := range unit.Members {
			if m.ID == excludeCamperID {
				continue
			}
			grades = append(grades, unit.Grades[i])
		}
	}
	return grades
}

package solver

// Objective weights. Absolute values are tuning choices; the orderings are
// load-bearing: higher-priority requests always outweigh lower-priority
// ones, and hard-adjacent penalties outweigh cosmetic ones.

// priorityWeights maps request priority (1-4) to its base objective weight.
// Doubling per step keeps a single critical request worth more than several
// low-priority ones.
var priorityWeights = map[int]float64{
	1: 1.0,
	2: 2.0,
	3: 4.0,
	4: 8.0,
}

// requestWeight is the scored weight of a request: its priority base scaled
// by parse confidence.
func requestWeight(priority int, confidence float64) float64 {
	base, ok := priorityWeights[priority]
	if !ok {
		base = priorityWeights[1]
	}
	if confidence <= 0 {
		return 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return base * confidence
}

// Soft-constraint penalties, subtracted from the objective.
const (
	// PenaltyOverCapacity applies per camper above the soft capacity.
	PenaltyOverCapacity = 6.0

	// PenaltyAgeSpread applies per bunk whose age spread exceeds 24 months.
	PenaltyAgeSpread = 3.0

	// PenaltyGradeRatio applies per bunk dominated by a single grade.
	PenaltyGradeRatio = 2.0

	// PenaltyGradeDiversity applies per bunk with more than two grades.
	PenaltyGradeDiversity = 1.0
)

// Criterion weights for the greedy construction phase.
const (
	WeightCapacityAffinity    = 2.0
	WeightRequestUnit         = 1.5 // units with many requests place early
	WeightRequestAffinity     = 3.0
	WeightAgeSpreadAffinity   = 1.0
	WeightGradeShapeAffinity  = 0.5
	WeightPromoteLockGroupTie = 1.0 // lock groups place before individuals
)

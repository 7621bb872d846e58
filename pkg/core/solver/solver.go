// Package solver assigns campers to bunks. It builds an initial assignment
// greedily, one unit at a time in ranked order, then spends the rest of its
// time budget on seeded local search: random single-unit moves and pairwise
// swaps, keeping only strict improvements. The search is an anytime
// algorithm; whenever the deadline lands, the current state is the best
// found so far.
package solver

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// deadlineCheckInterval is how many improvement iterations run between
// deadline checks.
const deadlineCheckInterval = 64

// Solve runs one assignment search over a frozen input snapshot. It returns
// the best assignment found within the time budget; units that cannot be
// placed without breaking a hard constraint are reported unassigned, never
// force-placed.
func Solve(ctx context.Context, cfg Config) (*Outcome, error) {
	started := time.Now()

	criteria := cfg.Criteria
	if len(criteria) == 0 {
		criteria = defaultCriteria()
	}

	state, err := initState(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise solver state: %w", err)
	}

	deadline := started.Add(cfg.TimeBudget)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	unassigned := greedyConstruct(state, criteria)

	seed := cfg.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	iterations := improve(ctx, state, criteria, seed, deadline)

	// Retry pending units one last time; improvement moves may have freed
	// the capacity they needed.
	var stillUnassigned []UnassignedUnit
	for _, u := range unassigned {
		unit := state.unitByCamper[u.CamperIDs[0]]
		if unit.Placed() {
			continue
		}
		if bunk := bestBunkFor(state, unit, criteria); bunk != nil {
			place(unit, bunk)
			continue
		}
		stillUnassigned = append(stillUnassigned, u)
	}

	violations := validateState(state, criteria)
	sortViolations(violations)

	return &Outcome{
		Assignment: state.Assignment(),
		Objective:  objective(state),
		Unassigned: stillUnassigned,
		Violations: violations,
		Iterations: iterations,
		Elapsed:    time.Since(started),
	}, nil
}

// greedyConstruct places units one at a time: the highest-ranked pending
// unit goes into its highest-affinity valid bunk. Units with no valid bunk
// at their turn are set aside and reported.
func greedyConstruct(state *State, criteria []Criterion) []UnassignedUnit {
	var unassigned []UnassignedUnit

	for len(state.Pending) > 0 {
		idx := popBestUnit(state, criteria)
		unit := state.Pending[idx]
		state.Pending = append(state.Pending[:idx], state.Pending[idx+1:]...)

		bunk := bestBunkFor(state, unit, criteria)
		if bunk == nil {
			unassigned = append(unassigned, UnassignedUnit{
				CamperIDs:   memberIDs(unit),
				LockGroupID: unit.LockGroupID,
				Reason:      "no bunk satisfies the hard constraints for this unit",
			})
			continue
		}
		place(unit, bunk)
	}

	return unassigned
}

// popBestUnit returns the index of the highest-ranked pending unit. Ties
// break on unit key for determinism.
func popBestUnit(state *State, criteria []Criterion) int {
	bestIdx := 0
	bestScore := rankingScore(state, state.Pending[0], criteria)
	for i := 1; i < len(state.Pending); i++ {
		score := rankingScore(state, state.Pending[i], criteria)
		if score > bestScore || (score == bestScore && state.Pending[i].Key < state.Pending[bestIdx].Key) {
			bestIdx = i
			bestScore = score
		}
	}
	return bestIdx
}

// rankingScore decides greedy placement order. Built-ins: lock groups place
// before individuals (they need contiguous space), and scarce units (few
// valid bunks left) place before flexible ones. Criterion promotions stack
// on top.
func rankingScore(state *State, unit *Unit, criteria []Criterion) float64 {
	score := 0.0

	if unit.LockGroupID != "" {
		score += 1 * WeightPromoteLockGroupTie
	}

	valid := 0
	for _, bunk := range state.Bunks {
		if isBunkValid(state, unit, bunk, criteria) {
			valid++
		}
	}
	if len(state.Bunks) > 0 {
		score += 1 - float64(valid)/float64(len(state.Bunks))
	}

	for _, criterion := range criteria {
		score += criterion.PromoteUnit(state, unit) * criterion.UnitWeight()
	}
	return score
}

// bestBunkFor returns the valid bunk with the highest weighted affinity for
// the unit, or nil when no bunk passes the hard criteria. Affinity ties
// break on bunk index for determinism.
func bestBunkFor(state *State, unit *Unit, criteria []Criterion) *BunkState {
	var best *BunkState
	var bestAffinity float64

	for _, bunk := range state.Bunks {
		if !isBunkValid(state, unit, bunk, criteria) {
			continue
		}
		affinity := placementAffinity(state, unit, bunk, criteria)
		if best == nil || affinity > bestAffinity {
			best = bunk
			bestAffinity = affinity
		}
	}
	return best
}

func isBunkValid(state *State, unit *Unit, bunk *BunkState, criteria []Criterion) bool {
	for _, criterion := range criteria {
		if !criterion.IsBunkValid(state, unit, bunk) {
			return false
		}
	}
	return true
}

func placementAffinity(state *State, unit *Unit, bunk *BunkState, criteria []Criterion) float64 {
	total := 0.0
	for _, criterion := range criteria {
		total += criterion.PlacementAffinity(state, unit, bunk) * criterion.AffinityWeight()
	}
	return total
}

// improve runs the seeded local search until the deadline or context cancel.
// Moves and swaps are proposed at random and kept only when the objective
// strictly increases, so the score trajectory is non-decreasing and a longer
// budget can never end below a shorter one on the same seed.
func improve(ctx context.Context, state *State, criteria []Criterion, seed int64, deadline time.Time) int {
	rng := rand.New(rand.NewSource(seed))
	current := objective(state)
	iterations := 0

	if len(state.Units) == 0 || len(state.Bunks) < 2 {
		return 0
	}

	for {
		if iterations%deadlineCheckInterval == 0 {
			if time.Now().After(deadline) {
				return iterations
			}
			select {
			case <-ctx.Done():
				return iterations
			default:
			}
		}
		iterations++

		if rng.Intn(2) == 0 {
			current = tryMove(state, criteria, rng, current)
		} else {
			current = trySwap(state, criteria, rng, current)
		}
	}
}

// tryMove relocates one random unit to one random other bunk, keeping the
// move only if it strictly improves the objective.
func tryMove(state *State, criteria []Criterion, rng *rand.Rand, current float64) float64 {
	unit := state.Units[rng.Intn(len(state.Units))]
	target := state.Bunks[rng.Intn(len(state.Bunks))]

	from := -1
	if unit.Placed() {
		from = unit.BunkKey
		if from == target.Index {
			return current
		}
		remove(state, unit)
	}

	if !isBunkValid(state, unit, target, criteria) {
		restore(state, unit, from)
		return current
	}

	place(unit, target)
	proposed := objective(state)
	if proposed > current {
		return proposed
	}

	remove(state, unit)
	restore(state, unit, from)
	return current
}

// trySwap exchanges the bunks of two random units, keeping the swap only if
// it strictly improves the objective.
func trySwap(state *State, criteria []Criterion, rng *rand.Rand, current float64) float64 {
	a := state.Units[rng.Intn(len(state.Units))]
	b := state.Units[rng.Intn(len(state.Units))]
	if a == b || !a.Placed() || !b.Placed() || a.BunkKey == b.BunkKey {
		return current
	}

	bunkA := state.Bunks[a.BunkKey]
	bunkB := state.Bunks[b.BunkKey]

	remove(state, a)
	remove(state, b)

	if !isBunkValid(state, a, bunkB, criteria) || !isBunkValid(state, b, bunkA, criteria) {
		restore(state, a, bunkA.Index)
		restore(state, b, bunkB.Index)
		return current
	}

	place(a, bunkB)
	place(b, bunkA)
	proposed := objective(state)
	if proposed > current {
		return proposed
	}

	remove(state, a)
	remove(state, b)
	restore(state, a, bunkA.Index)
	restore(state, b, bunkB.Index)
	return current
}

func place(unit *Unit, bunk *BunkState) {
	bunk.Units = append(bunk.Units, unit)
	unit.BunkKey = bunk.Index
}

func remove(state *State, unit *Unit) {
	if !unit.Placed() {
		return
	}
	bunk := state.Bunks[unit.BunkKey]
	for i, u := range bunk.Units {
		if u == unit {
			bunk.Units = append(bunk.Units[:i], bunk.Units[i+1:]...)
			break
		}
	}
	unit.BunkKey = -1
}

// restore puts a unit back into the bunk it was removed from, or leaves it
// unplaced if it had none.
func restore(state *State, unit *Unit, bunkIdx int) {
	if bunkIdx < 0 {
		unit.BunkKey = -1
		return
	}
	place(unit, state.Bunks[bunkIdx])
}

func validateState(state *State, criteria []Criterion) []Violation {
	var violations []Violation
	for _, criterion := range criteria {
		violations = append(violations, criterion.ValidateState(state)...)
	}
	return violations
}

func memberIDs(unit *Unit) []int {
	ids := make([]int, len(unit.Members))
	for i, m := range unit.Members {
		ids[i] = m.ID
	}
	return ids
}

package solver

import (
	"fmt"
	"sort"
	"time"

	"github.com/silverbirch/bunking/pkg/core/model"
)

// Unit is the solver's atomic move: either a lock group (all members land in
// the same bunk or none do) or a single unlocked camper.
type Unit struct {
	// Key identifies the unit ("lock:<group id>" or "camper:<id>").
	Key string

	// LockGroupID is empty for single-camper units.
	LockGroupID string

	Members []model.Camper

	// Grades and Ages are precomputed per member for the viewing year.
	Grades []int
	Ages   []float64

	// Requests made by members of this unit.
	Requests []model.Request

	// BunkKey is the index of the bunk this unit is placed in, or -1.
	BunkKey int
}

// Size returns the number of campers in the unit.
func (u *Unit) Size() int {
	return len(u.Members)
}

// Placed reports whether the unit currently has a bunk.
func (u *Unit) Placed() bool {
	return u.BunkKey >= 0
}

// BunkState is a bunk plus its in-progress roster.
type BunkState struct {
	Bunk  model.Bunk
	Index int
	Units []*Unit
}

// Occupancy returns the current number of campers in the bunk.
func (b *BunkState) Occupancy() int {
	n := 0
	for _, u := range b.Units {
		n += u.Size()
	}
	return n
}

// Grades returns the grades of every camper currently in the bunk.
func (b *BunkState) Grades() []int {
	var grades []int
	for _, u := range b.Units {
		grades = append(grades, u.Grades...)
	}
	return grades
}

// Ages returns the ages of every camper currently in the bunk.
func (b *BunkState) Ages() []float64 {
	var ages []float64
	for _, u := range b.Units {
		ages = append(ages, u.Ages...)
	}
	return ages
}

// State is the solver's working state for one run. Each run owns its state
// outright; nothing is shared across invocations.
type State struct {
	Year  int
	Bunks []*BunkState

	// Units holds every unit, placed or not.
	Units []*Unit

	// Pending is the ranked queue of units awaiting greedy placement.
	Pending []*Unit

	// unitByCamper resolves a camper id to their unit.
	unitByCamper map[int]*Unit

	// requestsByRequester indexes resolvable pairwise and age-preference
	// requests by requester for scoring.
	requestsByRequester map[int][]model.Request

	// allRequests is the scored request set (pending or resolved, with a
	// usable target or an age direction).
	allRequests []model.Request
}

// UnitOf returns the unit containing the given camper, or nil.
func (s *State) UnitOf(camperID int) *Unit {
	return s.unitByCamper[camperID]
}

// BunkOf returns the bunk state a camper is currently placed in, or nil.
func (s *State) BunkOf(camperID int) *BunkState {
	u := s.unitByCamper[camperID]
	if u == nil || !u.Placed() {
		return nil
	}
	return s.Bunks[u.BunkKey]
}

// Assignment flattens the state into a camper→bunk map. Unplaced campers are
// absent from the map.
func (s *State) Assignment() model.Assignment {
	out := make(model.Assignment)
	for _, u := range s.Units {
		if !u.Placed() {
			continue
		}
		bunkID := s.Bunks[u.BunkKey].Bunk.ID
		for _, m := range u.Members {
			out[m.ID] = bunkID
		}
	}
	return out
}

// Criterion is one rule the solver applies during placement. Hard criteria
// veto placements via IsBunkValid; soft criteria steer them via
// PlacementAffinity and report residual problems via ValidateState.
type Criterion interface {
	Name() string

	// PromoteUnit returns a ranking boost in [-1, 1] for scheduling the
	// unit earlier or later in the greedy phase.
	PromoteUnit(state *State, unit *Unit) float64

	// IsBunkValid reports whether placing the unit in the bunk is allowed.
	IsBunkValid(state *State, unit *Unit, bunk *BunkState) bool

	// PlacementAffinity scores how well the bunk suits the unit. Higher is
	// better. Only consulted for valid bunks.
	PlacementAffinity(state *State, unit *Unit, bunk *BunkState) float64

	UnitWeight() float64
	AffinityWeight() float64

	// ValidateState reports violations in the finished state.
	ValidateState(state *State) []Violation
}

// Severity of a reported violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Violation is one constraint problem found in an assignment.
type Violation struct {
	BunkID        string
	BunkName      string
	CriterionName string
	Severity      Severity
	Description   string
}

func (v Violation) String() string {
	return fmt.Sprintf("[%s] %s: %s", v.Severity, v.BunkName, v.Description)
}

// UnassignedUnit reports a unit the solver could not place without breaking
// a hard constraint.
type UnassignedUnit struct {
	CamperIDs   []int
	LockGroupID string
	Reason      string
}

// Outcome is the result of one solver run.
type Outcome struct {
	Assignment model.Assignment
	Objective  float64
	Unassigned []UnassignedUnit
	Violations []Violation
	Iterations int
	Elapsed    time.Duration
}

// Success reports whether every unit was placed and no error-severity
// violations remain.
func (o *Outcome) Success() bool {
	if len(o.Unassigned) > 0 {
		return false
	}
	for _, v := range o.Violations {
		if v.Severity == SeverityError {
			return false
		}
	}
	return true
}

// sortViolations orders violations for stable output: errors first, then by
// bunk name, then description.
func sortViolations(violations []Violation) {
	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.Severity != b.Severity {
			return a.Severity == SeverityError
		}
		if a.BunkName != b.BunkName {
			return a.BunkName < b.BunkName
		}
		return a.Description < b.Description
	})
}

package solver

import (
	"fmt"
	"sort"
	"time"

	"github.com/silverbirch/bunking/pkg/core/model"
)

// Config carries one solver run's frozen input snapshot.
type Config struct {
	SessionID  string
	Year       int
	Campers    []model.Camper
	Bunks      []model.Bunk
	Requests   []model.Request
	LockGroups []model.LockGroup

	// TimeBudget bounds the run. The solver returns the best assignment
	// found when the budget expires.
	TimeBudget time.Duration

	// Seed drives the improvement phase's random walk. Runs with the same
	// inputs and seed are reproducible; zero means a fixed default.
	Seed int64

	// Criteria overrides the default criterion set (tests only).
	Criteria []Criterion
}

// DefaultSeed keeps repeated runs over the same inputs identical.
const DefaultSeed = 1

// defaultCriteria builds the standard criterion set.
func defaultCriteria() []Criterion {
	return []Criterion{
		NewGenderAreaCriterion(),
		NewCapacityCriterion(WeightCapacityAffinity),
		NewRequestCriterion(WeightRequestUnit, WeightRequestAffinity),
		NewAgeSpreadCriterion(WeightAgeSpreadAffinity),
		NewGradeShapeCriterion(WeightGradeShapeAffinity),
	}
}

// initState builds the solver state: campers are folded into units (one per
// lock group, one per remaining camper), bunks are wrapped with empty
// rosters, and scorable requests are indexed by requester.
func initState(cfg Config) (*State, error) {
	if len(cfg.Bunks) == 0 {
		return nil, fmt.Errorf("no bunks to assign into")
	}

	state := &State{
		Year:                cfg.Year,
		unitByCamper:        make(map[int]*Unit),
		requestsByRequester: make(map[int][]model.Request),
	}

	for i, bunk := range cfg.Bunks {
		state.Bunks = append(state.Bunks, &BunkState{Bunk: bunk, Index: i})
	}

	// Index scorable requests. Declined requests and pairwise requests
	// without a resolved target contribute nothing to the objective.
	for _, req := range cfg.Requests {
		if !scorable(req) {
			continue
		}
		state.allRequests = append(state.allRequests, req)
		state.requestsByRequester[req.RequesterID] = append(state.requestsByRequester[req.RequesterID], req)
	}

	// Fold lock-group members into atomic units.
	memberToGroup := make(map[int]*model.LockGroup)
	for i := range cfg.LockGroups {
		group := &cfg.LockGroups[i]
		for _, id := range group.MemberIDs {
			if prev, taken := memberToGroup[id]; taken {
				return nil, fmt.Errorf("camper %d is in lock groups %q and %q", id, prev.Name, group.Name)
			}
			memberToGroup[id] = group
		}
	}

	groupUnits := make(map[string]*Unit)
	for _, camper := range cfg.Campers {
		group := memberToGroup[camper.ID]
		var unit *Unit
		if group != nil {
			unit = groupUnits[group.ID]
			if unit == nil {
				unit = &Unit{
					Key:         "lock:" + group.ID,
					LockGroupID: group.ID,
					BunkKey:     -1,
				}
				groupUnits[group.ID] = unit
				state.Units = append(state.Units, unit)
			}
		} else {
			unit = &Unit{
				Key:     fmt.Sprintf("camper:%d", camper.ID),
				BunkKey: -1,
			}
			state.Units = append(state.Units, unit)
		}

		unit.Members = append(unit.Members, camper)
		unit.Grades = append(unit.Grades, camper.GradeForYear(cfg.Year))
		unit.Ages = append(unit.Ages, camper.AgeForYear(cfg.Year))
		unit.Requests = append(unit.Requests, state.requestsByRequester[camper.ID]...)
		state.unitByCamper[camper.ID] = unit
	}

	// Stable unit order regardless of input map iteration upstream.
	sort.Slice(state.Units, func(i, j int) bool {
		return state.Units[i].Key < state.Units[j].Key
	})

	state.Pending = append(state.Pending, state.Units...)
	return state, nil
}

// scorable reports whether a request can contribute to the objective.
func scorable(req model.Request) bool {
	if req.Status == model.StatusDeclined {
		return false
	}
	switch req.Type {
	case model.RequestAgePreference:
		return req.Direction != ""
	case model.RequestBunkWith, model.RequestNotBunkWith:
		return req.RequesteeID > 0
	}
	return false
}

// Package validation builds the advisory reports around a solve: the
// pre-check that catches structurally infeasible input before solver time is
// spent, and the post-check that scores a finished or hand-edited board.
// Both are pure over their inputs and never mutate state.
package validation

import (
	"fmt"

	"github.com/silverbirch/bunking/pkg/core/model"
)

// Machine-readable reasons for unsatisfiable requests.
const (
	ReasonRequesteeNotEnrolled = "requestee_not_enrolled"
	ReasonRequesterNotEnrolled = "requester_not_enrolled"
	ReasonAreaMismatch         = "area_mismatch"
)

// AreaCapacity is the bed arithmetic for one gender area.
type AreaCapacity struct {
	Area    model.BunkArea `json:"area"`
	Campers int            `json:"campers"`
	Beds    int            `json:"beds"`
}

// Shortfall returns how many campers exceed the available beds.
func (a AreaCapacity) Shortfall() int {
	if a.Campers > a.Beds {
		return a.Campers - a.Beds
	}
	return 0
}

// UnsatisfiableRequest itemises a request no assignment could satisfy.
type UnsatisfiableRequest struct {
	RequestID   string `json:"request_id"`
	RequesterID int    `json:"requester_id"`
	RequesteeID int    `json:"requestee_id"`
	Reason      string `json:"reason"`
}

// PreValidationStats is the statistics block of the pre-check report.
type PreValidationStats struct {
	TotalCampers           int                    `json:"total_campers"`
	TotalBunks             int                    `json:"total_bunks"`
	TotalRequests          int                    `json:"total_requests"`
	CampersWithRequests    int                    `json:"campers_with_requests"`
	CampersWithoutRequests int                    `json:"campers_without_requests"`
	AreaCapacities         []AreaCapacity         `json:"area_capacities"`
	Unsatisfiable          []UnsatisfiableRequest `json:"unsatisfiable_requests"`
	ConflictingPairs       int                    `json:"conflicting_pairs"`
}

// PreValidationResult is the pre-check contract: valid=false should block
// the solver at the caller, though nothing here enforces that.
type PreValidationResult struct {
	Valid      bool               `json:"valid"`
	Errors     []string           `json:"errors"`
	Warnings   []string           `json:"warnings"`
	Statistics PreValidationStats `json:"statistics"`
}

// PreValidate screens a session's campers, bunks and requests for
// structural infeasibility without attempting an assignment.
func PreValidate(campers []model.Camper, bunks []model.Bunk, requests []model.Request) PreValidationResult {
	result := PreValidationResult{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	result.Statistics.TotalCampers = len(campers)
	result.Statistics.TotalBunks = len(bunks)

	campersByID := make(map[int]model.Camper, len(campers))
	for _, c := range campers {
		campersByID[c.ID] = c
	}

	checkAreaCapacities(&result, campers, bunks)
	checkRequests(&result, campersByID, requests)

	result.Valid = len(result.Errors) == 0
	return result
}

// checkAreaCapacities verifies each gender area has at least as many beds as
// campers. Non-binary campers can land anywhere and do not stress a single
// area, so they are excluded from the per-area pools.
func checkAreaCapacities(result *PreValidationResult, campers []model.Camper, bunks []model.Bunk) {
	pools := map[model.BunkArea]int{}
	for _, c := range campers {
		switch {
		case c.SessionType == model.SessionAG:
			pools[model.AreaAllGender]++
		case c.Gender == model.GenderMale:
			pools[model.AreaBoys]++
		case c.Gender == model.GenderFemale:
			pools[model.AreaGirls]++
		}
	}

	beds := map[model.BunkArea]int{}
	for _, b := range bunks {
		beds[b.Area()] += b.EffectiveCapacity()
	}

	for _, area := range []model.BunkArea{model.AreaBoys, model.AreaGirls, model.AreaAllGender} {
		if pools[area] == 0 && beds[area] == 0 {
			continue
		}
		capacity := AreaCapacity{Area: area, Campers: pools[area], Beds: beds[area]}
		result.Statistics.AreaCapacities = append(result.Statistics.AreaCapacities, capacity)
		if over := capacity.Shortfall(); over > 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: %d campers, %d beds (%d OVER)", area, capacity.Campers, capacity.Beds, over))
		}
	}
}

// checkRequests itemises unsatisfiable resolved requests, flags conflicting
// pairs and computes coverage statistics.
func checkRequests(result *PreValidationResult, campersByID map[int]model.Camper, requests []model.Request) {
	requesters := make(map[int]bool)
	// pairTypes tracks which request types a requester aimed at each target.
	type pair struct{ requester, requestee int }
	pairTypes := make(map[pair]map[model.RequestType]bool)

	for _, req := range requests {
		if req.Status == model.StatusDeclined {
			continue
		}
		result.Statistics.TotalRequests++
		requesters[req.RequesterID] = true

		if req.Type == model.RequestAgePreference {
			continue
		}
		if req.RequesteeID <= 0 {
			// Unresolved or placeholder target: nothing to check yet.
			continue
		}

		p := pair{req.RequesterID, req.RequesteeID}
		if pairTypes[p] == nil {
			pairTypes[p] = make(map[model.RequestType]bool)
		}
		pairTypes[p][req.Type] = true

		if reason := unsatisfiableReason(campersByID, req); reason != "" {
			result.Statistics.Unsatisfiable = append(result.Statistics.Unsatisfiable, UnsatisfiableRequest{
				RequestID:   req.ID,
				RequesterID: req.RequesterID,
				RequesteeID: req.RequesteeID,
				Reason:      reason,
			})
		}
	}

	for p, types := range pairTypes {
		if types[model.RequestBunkWith] && types[model.RequestNotBunkWith] {
			result.Statistics.ConflictingPairs++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("conflicting requests: camper %d has both bunk_with and not_bunk_with toward camper %d; the solver will pick one", p.requester, p.requestee))
		}
	}

	if n := len(result.Statistics.Unsatisfiable); n > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d requests cannot be satisfied by any assignment", n))
	}

	enrolled := countEnrolledRequesters(campersByID, requesters)
	result.Statistics.CampersWithRequests = enrolled
	result.Statistics.CampersWithoutRequests = len(campersByID) - enrolled
}

func countEnrolledRequesters(campersByID map[int]model.Camper, requesters map[int]bool) int {
	n := 0
	for id := range requesters {
		if _, ok := campersByID[id]; ok {
			n++
		}
	}
	return n
}

// unsatisfiableReason returns a machine-readable reason when no assignment
// could satisfy the request, or "" when it is feasible on enrollment alone.
func unsatisfiableReason(campersByID map[int]model.Camper, req model.Request) string {
	requester, requesterOK := campersByID[req.RequesterID]
	if !requesterOK {
		return ReasonRequesterNotEnrolled
	}
	requestee, requesteeOK := campersByID[req.RequesteeID]
	if !requesteeOK {
		return ReasonRequesteeNotEnrolled
	}

	// not_bunk_with is satisfiable regardless of the pair's areas.
	if req.Type == model.RequestNotBunkWith {
		return ""
	}

	if !sameAreaPool(requester, requestee) {
		return ReasonAreaMismatch
	}
	return ""
}

// sameAreaPool reports whether two campers can ever share a bunk's gender
// area.
func sameAreaPool(a, b model.Camper) bool {
	if a.SessionType == model.SessionAG || b.SessionType == model.SessionAG {
		return a.SessionType == b.SessionType
	}
	if a.Gender == model.GenderNonBinary || b.Gender == model.GenderNonBinary {
		return true
	}
	return a.Gender == b.Gender
}

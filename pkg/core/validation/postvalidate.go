package validation

import (
	"fmt"
	"time"

	"github.com/silverbirch/bunking/pkg/core/constraints"
	"github.com/silverbirch/bunking/pkg/core/model"
)

// Issue severity levels for the post-validation report.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Issue is one categorized finding in an assignment.
type Issue struct {
	Type     string         `json:"type"`
	Severity string         `json:"severity"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
}

// CapacityDistribution buckets bunks by fill level.
type CapacityDistribution struct {
	Under int `json:"under"`
	At    int `json:"at"`
	Over  int `json:"over"`
}

// SourceFieldStats is the satisfaction breakdown for one originating
// free-text field.
type SourceFieldStats struct {
	Total     int     `json:"total"`
	Satisfied int     `json:"satisfied"`
	Rate      float64 `json:"rate"`
}

// ReportStats is the aggregate statistics block of the post-check report.
type ReportStats struct {
	AssignedCampers         int                         `json:"assigned_campers"`
	UnassignedCampers       int                         `json:"unassigned_campers"`
	TotalRequests           int                         `json:"total_requests"`
	SatisfiedRequests       int                         `json:"satisfied_requests"`
	RequestSatisfactionRate float64                     `json:"request_satisfaction_rate"`
	Capacity                CapacityDistribution        `json:"capacity_distribution"`
	BySourceField           map[string]SourceFieldStats `json:"by_source_field"`
}

// Report is the "check bunking" output the board renders.
type Report struct {
	Statistics  ReportStats `json:"statistics"`
	Issues      []Issue     `json:"issues"`
	ValidatedAt time.Time   `json:"validated_at"`
}

// Validate evaluates an assignment (solved or hand-edited) against the rule
// set and the request list and produces the satisfaction report.
func Validate(year int, campers []model.Camper, bunks []model.Bunk, requests []model.Request, lockGroups []model.LockGroup, assignment model.Assignment) Report {
	report := Report{
		Issues:      []Issue{},
		ValidatedAt: time.Now().UTC(),
	}
	report.Statistics.BySourceField = make(map[string]SourceFieldStats)

	campersByID := make(map[int]model.Camper, len(campers))
	for _, c := range campers {
		campersByID[c.ID] = c
	}

	collectAssignmentStats(&report, campers, assignment)
	collectBunkIssues(&report, year, campersByID, bunks, assignment)
	collectRequestStats(&report, year, campersByID, requests, assignment)
	collectLockGroupIssues(&report, campersByID, lockGroups, assignment)

	return report
}

func collectAssignmentStats(report *Report, campers []model.Camper, assignment model.Assignment) {
	var unassigned []int
	for _, c := range campers {
		if _, ok := assignment[c.ID]; ok {
			report.Statistics.AssignedCampers++
		} else {
			report.Statistics.UnassignedCampers++
			unassigned = append(unassigned, c.ID)
		}
	}

	if len(unassigned) > 0 {
		report.Issues = append(report.Issues, Issue{
			Type:     "unassigned_campers",
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("%d campers are not assigned to a bunk", len(unassigned)),
			Details:  map[string]any{"camper_ids": unassigned},
		})
	}
}

func collectBunkIssues(report *Report, year int, campersByID map[int]model.Camper, bunks []model.Bunk, assignment model.Assignment) {
	for _, bunk := range bunks {
		roster := assignment.Roster(bunk.ID)
		occupancy := len(roster)
		capacity := bunk.EffectiveCapacity()

		switch {
		case occupancy > capacity:
			report.Statistics.Capacity.Over++
		case occupancy == capacity:
			report.Statistics.Capacity.At++
		default:
			report.Statistics.Capacity.Under++
		}

		if occupancy > model.HardCapacityCeiling {
			report.Issues = append(report.Issues, Issue{
				Type:     "hard_capacity",
				Severity: SeverityError,
				Message:  fmt.Sprintf("%s holds %d campers, above the hard ceiling of %d", bunk.Name, occupancy, model.HardCapacityCeiling),
				Details:  map[string]any{"bunk_id": bunk.ID, "occupancy": occupancy, "ceiling": model.HardCapacityCeiling},
			})
		} else if constraints.IsOverCapacity(occupancy, capacity) {
			report.Issues = append(report.Issues, Issue{
				Type:     "over_capacity",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s holds %d campers, above its capacity of %d", bunk.Name, occupancy, capacity),
				Details:  map[string]any{"bunk_id": bunk.ID, "occupancy": occupancy, "capacity": capacity},
			})
		}

		var ages []float64
		var grades []int
		for _, id := range roster {
			camper, ok := campersByID[id]
			if !ok {
				continue
			}
			ages = append(ages, camper.AgeForYear(year))
			grades = append(grades, camper.GradeForYear(year))

			if !constraints.IsValidDropTarget(camper, bunk) {
				report.Issues = append(report.Issues, Issue{
					Type:     "gender_mismatch",
					Severity: SeverityError,
					Message:  fmt.Sprintf("%s (%s) is not gender/area compatible with %s", camper.FullName(), camper.Gender, bunk.Name),
					Details:  map[string]any{"bunk_id": bunk.ID, "camper_id": camper.ID},
				})
			}
		}

		if constraints.ExceedsAgeSpread(ages) {
			report.Issues = append(report.Issues, Issue{
				Type:     "age_spread",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s has an age spread above %.0f months", bunk.Name, constraints.MaxAgeSpreadMonths),
				Details:  map[string]any{"bunk_id": bunk.ID},
			})
		}
		if constraints.ExceedsGradeRatio(grades) {
			report.Issues = append(report.Issues, Issue{
				Type:     "grade_ratio",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s is dominated by a single grade (above %d%%)", bunk.Name, constraints.MaxGradeSharePercent),
				Details:  map[string]any{"bunk_id": bunk.ID},
			})
		}
		if constraints.ExceedsGradeDiversity(grades) {
			report.Issues = append(report.Issues, Issue{
				Type:     "grade_diversity",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s mixes more than %d grades", bunk.Name, constraints.MaxDistinctGrades),
				Details:  map[string]any{"bunk_id": bunk.ID},
			})
		}
	}
}

func collectRequestStats(report *Report, year int, campersByID map[int]model.Camper, requests []model.Request, assignment model.Assignment) {
	for _, req := range requests {
		if req.Status == model.StatusDeclined {
			continue
		}
		satisfied, scorable := requestSatisfied(year, campersByID, req, assignment)
		if !scorable {
			continue
		}

		report.Statistics.TotalRequests++
		if satisfied {
			report.Statistics.SatisfiedRequests++
		}

		for _, source := range req.Sources {
			stats := report.Statistics.BySourceField[source.Field]
			stats.Total++
			if satisfied {
				stats.Satisfied++
			}
			stats.Rate = float64(stats.Satisfied) / float64(stats.Total)
			report.Statistics.BySourceField[source.Field] = stats
		}
	}

	if report.Statistics.TotalRequests > 0 {
		report.Statistics.RequestSatisfactionRate =
			float64(report.Statistics.SatisfiedRequests) / float64(report.Statistics.TotalRequests)
	}
}

// requestSatisfied mirrors the solver's satisfaction semantics so the pre
// and post reports never contradict each other.
func requestSatisfied(year int, campersByID map[int]model.Camper, req model.Request, assignment model.Assignment) (satisfied, scorable bool) {
	requesterBunk, requesterAssigned := assignment[req.RequesterID]

	switch req.Type {
	case model.RequestBunkWith:
		if req.RequesteeID <= 0 {
			return false, false
		}
		requesteeBunk, requesteeAssigned := assignment[req.RequesteeID]
		return requesterAssigned && requesteeAssigned && requesterBunk == requesteeBunk, true

	case model.RequestNotBunkWith:
		if req.RequesteeID <= 0 {
			return false, false
		}
		requesteeBunk, requesteeAssigned := assignment[req.RequesteeID]
		shared := requesterAssigned && requesteeAssigned && requesterBunk == requesteeBunk
		return !shared, true

	case model.RequestAgePreference:
		if req.Direction == "" || !requesterAssigned {
			return false, req.Direction != ""
		}
		requester, ok := campersByID[req.RequesterID]
		if !ok {
			return false, false
		}
		var mates []int
		for _, id := range assignment.Roster(requesterBunk) {
			if id == req.RequesterID {
				continue
			}
			if mate, ok := campersByID[id]; ok {
				mates = append(mates, mate.GradeForYear(year))
			}
		}
		return constraints.AgePreferenceSatisfied(requester.GradeForYear(year), req.Direction, mates), true
	}
	return false, false
}

func collectLockGroupIssues(report *Report, campersByID map[int]model.Camper, lockGroups []model.LockGroup, assignment model.Assignment) {
	for _, group := range lockGroups {
		v := constraints.ValidateLockGroup(group, campersByID)
		if v.CrossSession {
			report.Issues = append(report.Issues, Issue{
				Type:     "lock_group_cross_session",
				Severity: SeverityError,
				Message:  fmt.Sprintf("lock group %q spans multiple sessions", group.Name),
				Details:  map[string]any{"lock_group_id": group.ID},
			})
		}
		if v.CrossGender {
			report.Issues = append(report.Issues, Issue{
				Type:     "lock_group_cross_gender",
				Severity: SeverityError,
				Message:  fmt.Sprintf("lock group %q mixes genders outside an AG session", group.Name),
				Details:  map[string]any{"lock_group_id": group.ID},
			})
		}

		bunksSeen := make(map[string]bool)
		for _, id := range group.MemberIDs {
			if bunk, ok := assignment[id]; ok {
				bunksSeen[bunk] = true
			}
		}
		if len(bunksSeen) > 1 {
			report.Issues = append(report.Issues, Issue{
				Type:     "lock_group_split",
				Severity: SeverityError,
				Message:  fmt.Sprintf("lock group %q is split across %d bunks", group.Name, len(bunksSeen)),
				Details:  map[string]any{"lock_group_id": group.ID, "bunks": len(bunksSeen)},
			})
		}
	}
}

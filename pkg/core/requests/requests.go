// Package requests maintains the many-to-one provenance relationship between
// structured requests and the free-text fields they were parsed from. Merge
// and split are planned here as pure values; the services layer applies a
// plan to the store in a single transaction so a partial merge is never
// observable.
package requests

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/silverbirch/bunking/pkg/core/model"
)

// MergePlan is the computed outcome of merging N requests into one.
type MergePlan struct {
	Merged     model.Request
	DeletedIDs []string
}

// PlanMerge combines the given requests into a single request. The request
// named by keepTargetFrom donates the canonical target; finalType is the
// caller-chosen type of the merged request. Source fields are unioned, with
// the donor's primary source staying primary. Confidence combines as
// 1 - Π(1-cᵢ): independent corroborating sources never lower it.
func PlanMerge(reqs []model.Request, keepTargetFrom string, finalType model.RequestType) (*MergePlan, error) {
	if len(reqs) < 2 {
		return nil, fmt.Errorf("merge needs at least two requests, got %d", len(reqs))
	}

	var donor *model.Request
	requester := reqs[0].RequesterID
	for i := range reqs {
		if reqs[i].RequesterID != requester {
			return nil, fmt.Errorf("cannot merge requests from different requesters (%d and %d)", requester, reqs[i].RequesterID)
		}
		if reqs[i].ID == keepTargetFrom {
			donor = &reqs[i]
		}
	}
	if donor == nil {
		return nil, fmt.Errorf("keepTargetFrom %q is not among the merged requests", keepTargetFrom)
	}

	merged := model.Request{
		ID:          uuid.NewString(),
		RequesterID: requester,
		RequesteeID: donor.RequesteeID,
		Type:        finalType,
		Direction:   donor.Direction,
		Status:      donor.Status,
		Confidence:  combineConfidence(reqs),
		Priority:    maxPriority(reqs),
		Locked:      anyLocked(reqs),
	}
	if finalType == model.RequestAgePreference {
		merged.RequesteeID = 0
	}

	plan := &MergePlan{Merged: merged}
	for i := range reqs {
		plan.DeletedIDs = append(plan.DeletedIDs, reqs[i].ID)
		for _, src := range reqs[i].Sources {
			src.ID = uuid.NewString()
			src.RequestID = merged.ID
			src.Primary = reqs[i].ID == donor.ID && src.Primary
			plan.Merged.Sources = append(plan.Merged.Sources, src)
		}
	}

	if plan.Merged.PrimarySource() == nil && len(plan.Merged.Sources) > 0 {
		// Donor had no explicit primary; promote its first source.
		for i := range plan.Merged.Sources {
			plan.Merged.Sources[i].Primary = i == 0
		}
	}

	return plan, nil
}

// combineConfidence folds per-request confidences so that agreement between
// independent sources can only raise the result.
func combineConfidence(reqs []model.Request) float64 {
	disbelief := 1.0
	for _, r := range reqs {
		c := r.Confidence
		if r.Locked {
			// Manually created requests are full confidence by construction.
			c = 1.0
		}
		if c < 0 {
			c = 0
		}
		if c > 1 {
			c = 1
		}
		disbelief *= 1 - c
	}
	return 1 - disbelief
}

func maxPriority(reqs []model.Request) int {
	max := 1
	for _, r := range reqs {
		if r.Priority > max {
			max = r.Priority
		}
	}
	return max
}

func anyLocked(reqs []model.Request) bool {
	for _, r := range reqs {
		if r.Locked {
			return true
		}
	}
	return false
}

// SplitSpec selects one non-primary source to restore as its own request.
type SplitSpec struct {
	SourceID    string
	NewType     model.RequestType
	NewTargetID int
}

// SplitPlan is the computed outcome of splitting sources off a merged
// request.
type SplitPlan struct {
	// Updated is the merged request with the split sources removed.
	Updated model.Request

	// Restored are the re-created independent requests.
	Restored []model.Request
}

// SplittableSources returns the sources of a request that may be split off:
// every source except the primary. An empty result means the split action is
// unavailable.
func SplittableSources(req model.Request) []model.RequestSource {
	var out []model.RequestSource
	for _, src := range req.Sources {
		if !src.Primary {
			out = append(out, src)
		}
	}
	return out
}

// PlanSplit restores the selected non-primary sources of a merged request as
// independent requests. Selecting the primary source is rejected outright:
// the merged request's canonical identity depends on it.
func PlanSplit(req model.Request, specs []SplitSpec) (*SplitPlan, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no sources selected to split")
	}

	sourcesByID := make(map[string]model.RequestSource, len(req.Sources))
	for _, src := range req.Sources {
		sourcesByID[src.ID] = src
	}

	split := make(map[string]bool, len(specs))
	plan := &SplitPlan{Updated: req}
	plan.Updated.Sources = nil

	for _, spec := range specs {
		src, ok := sourcesByID[spec.SourceID]
		if !ok {
			return nil, fmt.Errorf("source %q is not attached to request %s", spec.SourceID, req.ID)
		}
		if src.Primary {
			return nil, fmt.Errorf("the primary source cannot be split off")
		}
		if split[spec.SourceID] {
			return nil, fmt.Errorf("source %q selected twice", spec.SourceID)
		}
		split[spec.SourceID] = true

		restored := model.Request{
			ID:          uuid.NewString(),
			RequesterID: req.RequesterID,
			RequesteeID: spec.NewTargetID,
			Type:        spec.NewType,
			Priority:    req.Priority,
			Confidence:  req.Confidence,
			Status:      model.StatusPending,
		}
		if spec.NewTargetID > 0 {
			restored.Status = model.StatusResolved
		}
		src.RequestID = restored.ID
		src.Primary = true
		restored.Sources = []model.RequestSource{src}
		plan.Restored = append(plan.Restored, restored)
	}

	for _, src := range req.Sources {
		if !split[src.ID] {
			plan.Updated.Sources = append(plan.Updated.Sources, src)
		}
	}

	return plan, nil
}

// ResolveManually assigns a person to a request whose target the automated
// resolver could not match. Manual resolution is full confidence by
// construction and bypasses scoring.
func ResolveManually(req model.Request, personID int) (model.Request, error) {
	if req.Type == model.RequestAgePreference {
		return req, fmt.Errorf("age_preference requests carry no requestee to resolve")
	}
	if personID <= 0 {
		return req, fmt.Errorf("person id must be positive, got %d", personID)
	}
	if req.Status == model.StatusDeclined {
		return req, fmt.Errorf("request %s was declined and cannot be resolved", req.ID)
	}

	req.RequesteeID = personID
	req.Status = model.StatusResolved
	req.Confidence = 1.0
	return req, nil
}

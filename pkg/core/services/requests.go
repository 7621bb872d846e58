package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/silverbirch/bunking/pkg/core/model"
	"github.com/silverbirch/bunking/pkg/core/requests"
	"github.com/silverbirch/bunking/pkg/db"
)

// RequestStore is the store surface the request maintenance services need.
type RequestStore interface {
	GetRequest(ctx context.Context, requestID string) (*db.Request, error)
	GetRequestSources(ctx context.Context, requestIDs []string) ([]db.RequestSource, error)
	UpdateRequest(ctx context.Context, request *db.Request) error
	ApplyMerge(ctx context.Context, change db.MergeChange) error
	ApplySplit(ctx context.Context, change db.SplitChange) error
}

// MergeRequests folds the named requests into one, carrying every source
// field along. keepTargetFrom names the request whose target the merged
// request keeps; finalType is the staff-chosen type of the result. The store
// change is applied in a single transaction.
func MergeRequests(ctx context.Context, database RequestStore, logger *zap.Logger, requestIDs []string, keepTargetFrom string, finalType model.RequestType) (*model.Request, error) {
	logger.Debug("Merging requests",
		zap.Strings("request_ids", requestIDs),
		zap.String("keep_target_from", keepTargetFrom),
		zap.String("final_type", string(finalType)))

	reqs, err := loadRequests(ctx, database, requestIDs)
	if err != nil {
		return nil, err
	}

	plan, err := requests.PlanMerge(reqs, keepTargetFrom, finalType)
	if err != nil {
		return nil, fmt.Errorf("merge rejected: %w", err)
	}

	change := db.MergeChange{
		DeleteRequestIDs: plan.DeletedIDs,
		Insert:           requestToDB(plan.Merged),
		InsertSources:    sourcesToDB(plan.Merged.Sources),
	}
	if err := database.ApplyMerge(ctx, change); err != nil {
		return nil, fmt.Errorf("failed to apply merge: %w", err)
	}

	logger.Info("Requests merged",
		zap.String("merged_id", plan.Merged.ID),
		zap.Int("merged_count", len(plan.DeletedIDs)),
		zap.Int("sources", len(plan.Merged.Sources)),
		zap.Float64("confidence", plan.Merged.Confidence))

	return &plan.Merged, nil
}

// SplitRequest restores the selected non-primary sources of a merged request
// as independent requests. The store change is applied in a single
// transaction.
func SplitRequest(ctx context.Context, database RequestStore, logger *zap.Logger, requestID string, specs []requests.SplitSpec) (*requests.SplitPlan, error) {
	logger.Debug("Splitting request",
		zap.String("request_id", requestID),
		zap.Int("sources", len(specs)))

	reqs, err := loadRequests(ctx, database, []string{requestID})
	if err != nil {
		return nil, err
	}

	plan, err := requests.PlanSplit(reqs[0], specs)
	if err != nil {
		return nil, fmt.Errorf("split rejected: %w", err)
	}

	change := db.SplitChange{
		UpdatedRequestID: plan.Updated.ID,
	}
	for _, src := range plan.Updated.Sources {
		change.KeepSourceIDs = append(change.KeepSourceIDs, src.ID)
	}
	for _, restored := range plan.Restored {
		change.Restored = append(change.Restored, requestToDB(restored))
		change.RestoredSources = append(change.RestoredSources, sourcesToDB(restored.Sources)...)
	}
	if err := database.ApplySplit(ctx, change); err != nil {
		return nil, fmt.Errorf("failed to apply split: %w", err)
	}

	logger.Info("Request split",
		zap.String("request_id", requestID),
		zap.Int("restored", len(plan.Restored)))

	return plan, nil
}

// ResolveRequestManually points an unresolved request at a camper when the
// automated matcher could not. Manual resolution forces full confidence.
func ResolveRequestManually(ctx context.Context, database RequestStore, logger *zap.Logger, requestID string, personID int) (*model.Request, error) {
	logger.Debug("Resolving request manually",
		zap.String("request_id", requestID),
		zap.Int("person_id", personID))

	reqs, err := loadRequests(ctx, database, []string{requestID})
	if err != nil {
		return nil, err
	}

	resolved, err := requests.ResolveManually(reqs[0], personID)
	if err != nil {
		return nil, fmt.Errorf("resolve rejected: %w", err)
	}

	rec := requestToDB(resolved)
	if err := database.UpdateRequest(ctx, &rec); err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}

	logger.Info("Request resolved",
		zap.String("request_id", requestID),
		zap.Int("requestee_id", resolved.RequesteeID))

	return &resolved, nil
}

// loadRequests fetches the named requests with their sources attached, in
// the order requested.
func loadRequests(ctx context.Context, database RequestStore, requestIDs []string) ([]model.Request, error) {
	recs := make([]db.Request, 0, len(requestIDs))
	for _, id := range requestIDs {
		rec, err := database.GetRequest(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch request %s: %w", id, err)
		}
		recs = append(recs, *rec)
	}

	sources, err := database.GetRequestSources(ctx, requestIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch request sources: %w", err)
	}
	return requestsFromDB(recs, sources), nil
}

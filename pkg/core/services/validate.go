package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/silverbirch/bunking/pkg/core/validation"
	"github.com/silverbirch/bunking/pkg/db"
)

// ValidateStore is the store surface the check-bunking service needs.
type ValidateStore interface {
	GetSession(ctx context.Context, sessionID string) (*db.Session, error)
	GetCampers(ctx context.Context, sessionID string) ([]db.Camper, error)
	GetBunks(ctx context.Context, sessionID string) ([]db.Bunk, error)
	GetRequests(ctx context.Context, sessionID string) ([]db.Request, error)
	GetRequestSources(ctx context.Context, requestIDs []string) ([]db.RequestSource, error)
	GetLockGroups(ctx context.Context, sessionID string) ([]db.LockGroup, error)
	GetLockGroupMembers(ctx context.Context, sessionID string) ([]db.LockGroupMember, error)
	GetAssignments(ctx context.Context, sessionID, scenarioID string) ([]db.Assignment, error)
}

// ValidateBunking evaluates a board (live, or a scenario when scenarioID is
// set) against the rule set and returns the satisfaction report. It works on
// whatever the board holds, including hand-edited placements.
func ValidateBunking(ctx context.Context, database ValidateStore, logger *zap.Logger, sessionID, scenarioID string) (*validation.Report, error) {
	logger.Debug("Validating bunking",
		zap.String("session_id", sessionID),
		zap.String("scenario_id", scenarioID))

	session, err := database.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	camperRecs, err := database.GetCampers(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch campers: %w", err)
	}

	bunkRecs, err := database.GetBunks(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bunks: %w", err)
	}

	requestRecs, err := database.GetRequests(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch requests: %w", err)
	}

	requestIDs := make([]string, 0, len(requestRecs))
	for _, rec := range requestRecs {
		requestIDs = append(requestIDs, rec.ID)
	}
	sourceRecs, err := database.GetRequestSources(ctx, requestIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch request sources: %w", err)
	}

	groupRecs, err := database.GetLockGroups(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lock groups: %w", err)
	}
	memberRecs, err := database.GetLockGroupMembers(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lock group members: %w", err)
	}

	assignmentRecs, err := database.GetAssignments(ctx, sessionID, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	report := validation.Validate(
		session.Year,
		campersFromDB(camperRecs, session),
		bunksFromDB(bunkRecs),
		requestsFromDB(requestRecs, sourceRecs),
		lockGroupsFromDB(groupRecs, memberRecs),
		assignmentFromDB(assignmentRecs),
	)

	logger.Info("Validation complete",
		zap.String("session_id", sessionID),
		zap.Int("issues", len(report.Issues)),
		zap.Float64("satisfaction_rate", report.Statistics.RequestSatisfactionRate))

	return &report, nil
}

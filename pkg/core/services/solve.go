package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/silverbirch/bunking/pkg/core/solver"
	"github.com/silverbirch/bunking/pkg/db"
)

// SolveStore is the store surface the solver service needs.
type SolveStore interface {
	GetSession(ctx context.Context, sessionID string) (*db.Session, error)
	GetCampers(ctx context.Context, sessionID string) ([]db.Camper, error)
	GetBunks(ctx context.Context, sessionID string) ([]db.Bunk, error)
	GetRequests(ctx context.Context, sessionID string) ([]db.Request, error)
	GetLockGroups(ctx context.Context, sessionID string) ([]db.LockGroup, error)
	GetLockGroupMembers(ctx context.Context, sessionID string) ([]db.LockGroupMember, error)
	ReplaceAssignments(ctx context.Context, sessionID, scenarioID string, assignments []db.Assignment) error
}

// SolveParams selects what to solve and where the result lands.
type SolveParams struct {
	SessionID string
	Tier      solver.Tier

	// ScenarioID targets a draft workspace; empty writes the live board.
	ScenarioID string

	// DryRun computes the plan without persisting it.
	DryRun bool

	// Seed overrides the solver's fixed default (tests only).
	Seed int64
}

// RunSolver snapshots a session's data, runs the assignment solver under the
// tier's time budget, and persists the resulting board. The snapshot is
// taken once up front: edits made while the solver runs do not leak into the
// result.
func RunSolver(ctx context.Context, database SolveStore, logger *zap.Logger, params SolveParams) (*solver.Outcome, error) {
	if params.Tier.Budget() == 0 {
		return nil, fmt.Errorf("unknown solver tier %q", params.Tier)
	}

	logger.Info("Starting solver run",
		zap.String("session_id", params.SessionID),
		zap.String("tier", string(params.Tier)),
		zap.String("scenario_id", params.ScenarioID),
		zap.Bool("dry_run", params.DryRun))

	session, err := database.GetSession(ctx, params.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	camperRecs, err := database.GetCampers(ctx, params.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch campers: %w", err)
	}
	if len(camperRecs) == 0 {
		return nil, fmt.Errorf("session %s has no campers to assign", params.SessionID)
	}

	bunkRecs, err := database.GetBunks(ctx, params.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bunks: %w", err)
	}

	requestRecs, err := database.GetRequests(ctx, params.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch requests: %w", err)
	}

	groupRecs, err := database.GetLockGroups(ctx, params.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lock groups: %w", err)
	}
	memberRecs, err := database.GetLockGroupMembers(ctx, params.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lock group members: %w", err)
	}

	logger.Debug("Snapshot taken",
		zap.Int("campers", len(camperRecs)),
		zap.Int("bunks", len(bunkRecs)),
		zap.Int("requests", len(requestRecs)),
		zap.Int("lock_groups", len(groupRecs)))

	outcome, err := solver.Solve(ctx, solver.Config{
		SessionID:  params.SessionID,
		Year:       session.Year,
		Campers:    campersFromDB(camperRecs, session),
		Bunks:      bunksFromDB(bunkRecs),
		Requests:   requestsFromDB(requestRecs, nil),
		LockGroups: lockGroupsFromDB(groupRecs, memberRecs),
		TimeBudget: params.Tier.Budget(),
		Seed:       params.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("solver failed: %w", err)
	}

	logger.Info("Solver finished",
		zap.Float64("objective", outcome.Objective),
		zap.Int("assigned", len(outcome.Assignment)),
		zap.Int("unassigned_units", len(outcome.Unassigned)),
		zap.Int("violations", len(outcome.Violations)),
		zap.Int("iterations", outcome.Iterations),
		zap.Duration("elapsed", outcome.Elapsed))

	if params.DryRun {
		return outcome, nil
	}

	records := assignmentToDB(params.SessionID, params.ScenarioID, outcome.Assignment)
	if err := database.ReplaceAssignments(ctx, params.SessionID, params.ScenarioID, records); err != nil {
		return nil, fmt.Errorf("failed to persist assignments: %w", err)
	}

	logger.Info("Assignments persisted",
		zap.String("session_id", params.SessionID),
		zap.String("scenario_id", params.ScenarioID),
		zap.Int("count", len(records)))

	return outcome, nil
}

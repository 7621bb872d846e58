package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/silverbirch/bunking/pkg/core/model"
	"github.com/silverbirch/bunking/pkg/db"
)

// ScenarioStore is the store surface the scenario services need.
type ScenarioStore interface {
	GetSession(ctx context.Context, sessionID string) (*db.Session, error)
	GetScenario(ctx context.Context, scenarioID string) (*db.Scenario, error)
	ListScenarios(ctx context.Context, sessionID string) ([]db.Scenario, error)
	InsertScenario(ctx context.Context, scenario *db.Scenario) error
	DeleteScenario(ctx context.Context, scenarioID string) error
	GetAssignments(ctx context.Context, sessionID, scenarioID string) ([]db.Assignment, error)
	ReplaceAssignments(ctx context.Context, sessionID, scenarioID string, assignments []db.Assignment) error
}

// CreateScenario opens a new draft workspace for a session, seeded with a
// copy of the live board so edits start from the current state.
func CreateScenario(ctx context.Context, database ScenarioStore, logger *zap.Logger, sessionID, name string) (*model.Scenario, error) {
	if name == "" {
		return nil, fmt.Errorf("scenario name must not be empty")
	}

	if _, err := database.GetSession(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	scenario := &db.Scenario{
		ID:        uuid.NewString(),
		Name:      name,
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}
	if err := database.InsertScenario(ctx, scenario); err != nil {
		return nil, fmt.Errorf("failed to insert scenario: %w", err)
	}

	live, err := database.GetAssignments(ctx, sessionID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch live board: %w", err)
	}
	if len(live) > 0 {
		seeded := make([]db.Assignment, 0, len(live))
		for _, a := range live {
			a.ScenarioID = scenario.ID
			seeded = append(seeded, a)
		}
		if err := database.ReplaceAssignments(ctx, sessionID, scenario.ID, seeded); err != nil {
			return nil, fmt.Errorf("failed to seed scenario from live board: %w", err)
		}
	}

	logger.Info("Scenario created",
		zap.String("scenario_id", scenario.ID),
		zap.String("session_id", sessionID),
		zap.String("name", name),
		zap.Int("seeded_assignments", len(live)))

	return &model.Scenario{
		ID:        scenario.ID,
		Name:      scenario.Name,
		SessionID: scenario.SessionID,
		CreatedAt: scenario.CreatedAt,
	}, nil
}

// ListScenarios returns a session's draft workspaces, newest first.
func ListScenarios(ctx context.Context, database ScenarioStore, logger *zap.Logger, sessionID string) ([]model.Scenario, error) {
	recs, err := database.ListScenarios(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	scenarios := make([]model.Scenario, 0, len(recs))
	for _, rec := range recs {
		scenarios = append(scenarios, model.Scenario{
			ID:        rec.ID,
			Name:      rec.Name,
			SessionID: rec.SessionID,
			CreatedAt: rec.CreatedAt,
		})
	}

	logger.Debug("Listed scenarios",
		zap.String("session_id", sessionID),
		zap.Int("count", len(scenarios)))

	return scenarios, nil
}

// DeleteScenario discards a draft workspace and its assignments. The live
// board is untouched.
func DeleteScenario(ctx context.Context, database ScenarioStore, logger *zap.Logger, scenarioID string) error {
	if scenarioID == "" {
		return fmt.Errorf("scenario id must not be empty")
	}

	if err := database.DeleteScenario(ctx, scenarioID); err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}

	logger.Info("Scenario deleted", zap.String("scenario_id", scenarioID))
	return nil
}

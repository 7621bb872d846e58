package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/silverbirch/bunking/pkg/core/validation"
	"github.com/silverbirch/bunking/pkg/db"
)

// PreValidateStore is the store surface the pre-validation service needs.
type PreValidateStore interface {
	GetSession(ctx context.Context, sessionID string) (*db.Session, error)
	GetCampers(ctx context.Context, sessionID string) ([]db.Camper, error)
	GetBunks(ctx context.Context, sessionID string) ([]db.Bunk, error)
	GetRequests(ctx context.Context, sessionID string) ([]db.Request, error)
}

// PreValidateSession checks whether a session's data can support a feasible
// assignment before any solver time is spent: per-area bed capacity and
// request satisfiability.
func PreValidateSession(ctx context.Context, database PreValidateStore, logger *zap.Logger, sessionID string) (*validation.PreValidationResult, error) {
	logger.Debug("Pre-validating session", zap.String("session_id", sessionID))

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

	logger.Debug("Fetched session data",
		zap.Int("campers", len(camperRecs)),
		zap.Int("bunks", len(bunkRecs)),
		zap.Int("requests", len(requestRecs)))

	campers := campersFromDB(camperRecs, session)
	bunks := bunksFromDB(bunkRecs)
	requests := requestsFromDB(requestRecs, nil)

	result := validation.PreValidate(campers, bunks, requests)

	logger.Info("Pre-validation complete",
		zap.String("session_id", sessionID),
		zap.Int("errors", len(result.Errors)),
		zap.Int("warnings", len(result.Warnings)))

	return &result, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/silverbirch/bunking/pkg/db"
)

// GetScenario retrieves a single scenario record.
func (d *DB) GetScenario(ctx context.Context, scenarioID string) (*db.Scenario, error) {
	var s db.Scenario
	err := d.pool.QueryRow(ctx, `
		SELECT id, name, session_id, created_at
		FROM scenario
		WHERE id = $1
	`, scenarioID).Scan(&s.ID, &s.Name, &s.SessionID, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("scenario %s not found", scenarioID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query scenario: %w", err)
	}
	return &s, nil
}

// ListScenarios retrieves all scenarios for a session, newest first.
func (d *DB) ListScenarios(ctx context.Context, sessionID string) ([]db.Scenario, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, session_id, created_at
		FROM scenario
		WHERE session_id = $1
		ORDER BY created_at DESC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []db.Scenario
	for rows.Next() {
		var s db.Scenario
		if err := rows.Scan(&s.ID, &s.Name, &s.SessionID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		scenarios = append(scenarios, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenarios: %w", err)
	}
	return scenarios, nil
}

// InsertScenario creates a scenario record.
func (d *DB) InsertScenario(ctx context.Context, scenario *db.Scenario) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO scenario (id, name, session_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, scenario.ID, scenario.Name, scenario.SessionID, scenario.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert scenario: %w", err)
	}
	return nil
}

// DeleteScenario removes a scenario and its assignments in one transaction.
func (d *DB) DeleteScenario(ctx context.Context, scenarioID string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM assignment WHERE scenario_id = $1
	`, scenarioID); err != nil {
		return fmt.Errorf("failed to delete scenario assignments: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM scenario WHERE id = $1
	`, scenarioID)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scenario %s not found", scenarioID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit scenario deletion: %w", err)
	}
	return nil
}

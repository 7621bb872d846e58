package postgres

import (
	"context"
	"fmt"

	"github.com/silverbirch/bunking/pkg/db"
)

// GetAssignments retrieves the assignment set for a session. An empty
// scenarioID selects the live board.
func (d *DB) GetAssignments(ctx context.Context, sessionID, scenarioID string) ([]db.Assignment, error) {
	query := `
		SELECT session_id, scenario_id, camper_id, bunk_id
		FROM assignment
		WHERE session_id = $1 AND scenario_id IS NULL
	`
	args := []any{sessionID}
	if scenarioID != "" {
		query = `
			SELECT session_id, scenario_id, camper_id, bunk_id
			FROM assignment
			WHERE session_id = $1 AND scenario_id = $2
		`
		args = append(args, scenarioID)
	}

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var scenario *string
		if err := rows.Scan(&a.SessionID, &scenario, &a.CamperID, &a.BunkID); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if scenario != nil {
			a.ScenarioID = *scenario
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}
	return assignments, nil
}

// ReplaceAssignments swaps the full assignment set for a board in one
// transaction. Readers never observe a half-written board.
func (d *DB) ReplaceAssignments(ctx context.Context, sessionID, scenarioID string, assignments []db.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if scenarioID == "" {
		_, err = tx.Exec(ctx, `
			DELETE FROM assignment
			WHERE session_id = $1 AND scenario_id IS NULL
		`, sessionID)
	} else {
		_, err = tx.Exec(ctx, `
			DELETE FROM assignment
			WHERE session_id = $1 AND scenario_id = $2
		`, sessionID, scenarioID)
	}
	if err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (session_id, scenario_id, camper_id, bunk_id)
			VALUES ($1, $2, $3, $4)
		`, sessionID, nullableString(scenarioID), a.CamperID, a.BunkID)
		if err != nil {
			return fmt.Errorf("failed to insert assignment for camper %d: %w", a.CamperID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit assignments: %w", err)
	}
	return nil
}

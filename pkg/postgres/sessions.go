package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/silverbirch/bunking/pkg/db"
)

// GetSession retrieves a single session record.
func (d *DB) GetSession(ctx context.Context, sessionID string) (*db.Session, error) {
	var s db.Session
	err := d.pool.QueryRow(ctx, `
		SELECT id, name, type, year
		FROM session
		WHERE id = $1
	`, sessionID).Scan(&s.ID, &s.Name, &s.Type, &s.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to query session %s: %w", sessionID, err)
	}
	return &s, nil
}

// GetCampers retrieves all camper records for a session.
func (d *DB) GetCampers(ctx context.Context, sessionID string) ([]db.Camper, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, first_name, last_name, gender, birthdate, session_id, lock_group_id
		FROM camper
		WHERE session_id = $1
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query campers: %w", err)
	}
	defer rows.Close()

	var campers []db.Camper
	for rows.Next() {
		var c db.Camper
		var birthdate *time.Time
		var lockGroupID *string
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Gender, &birthdate, &c.SessionID, &lockGroupID); err != nil {
			return nil, fmt.Errorf("failed to scan camper: %w", err)
		}
		if birthdate != nil {
			c.Birthdate = *birthdate
		}
		if lockGroupID != nil {
			c.LockGroupID = *lockGroupID
		}
		campers = append(campers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campers: %w", err)
	}
	return campers, nil
}

// GetBunks retrieves all bunk records for a session.
func (d *DB) GetBunks(ctx context.Context, sessionID string) ([]db.Bunk, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, session_id, gender, capacity
		FROM bunk
		WHERE session_id = $1
		ORDER BY name
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bunks: %w", err)
	}
	defer rows.Close()

	var bunks []db.Bunk
	for rows.Next() {
		var b db.Bunk
		var gender *string
		if err := rows.Scan(&b.ID, &b.Name, &b.SessionID, &gender, &b.Capacity); err != nil {
			return nil, fmt.Errorf("failed to scan bunk: %w", err)
		}
		if gender != nil {
			b.Gender = *gender
		}
		bunks = append(bunks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bunks: %w", err)
	}
	return bunks, nil
}

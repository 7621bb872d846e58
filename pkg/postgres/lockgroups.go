package postgres

import (
	"context"
	"fmt"

	"github.com/silverbirch/bunking/pkg/db"
)

// GetLockGroups retrieves all lock group records for a session.
func (d *DB) GetLockGroups(ctx context.Context, sessionID string) ([]db.LockGroup, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, color, session_id
		FROM lock_group
		WHERE session_id = $1
		ORDER BY name
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lock groups: %w", err)
	}
	defer rows.Close()

	var groups []db.LockGroup
	for rows.Next() {
		var g db.LockGroup
		var color *string
		if err := rows.Scan(&g.ID, &g.Name, &color, &g.SessionID); err != nil {
			return nil, fmt.Errorf("failed to scan lock group: %w", err)
		}
		if color != nil {
			g.Color = *color
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lock groups: %w", err)
	}
	return groups, nil
}

// GetLockGroupMembers retrieves every group membership for a session.
func (d *DB) GetLockGroupMembers(ctx context.Context, sessionID string) ([]db.LockGroupMember, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT m.lock_group_id, m.camper_id
		FROM lock_group_member m
		JOIN lock_group g ON g.id = m.lock_group_id
		WHERE g.session_id = $1
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lock group members: %w", err)
	}
	defer rows.Close()

	var members []db.LockGroupMember
	for rows.Next() {
		var m db.LockGroupMember
		if err := rows.Scan(&m.LockGroupID, &m.CamperID); err != nil {
			return nil, fmt.Errorf("failed to scan lock group member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lock group members: %w", err)
	}
	return members, nil
}

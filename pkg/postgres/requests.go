package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/silverbirch/bunking/pkg/db"
)

// GetRequest retrieves a single request record.
func (d *DB) GetRequest(ctx context.Context, requestID string) (*db.Request, error) {
	var r db.Request
	var requesteeID *int
	var direction *string
	err := d.pool.QueryRow(ctx, `
		SELECT id, requester_id, requestee_id, type, direction, priority, confidence, status, locked
		FROM request
		WHERE id = $1
	`, requestID).Scan(&r.ID, &r.RequesterID, &requesteeID, &r.Type, &direction, &r.Priority, &r.Confidence, &r.Status, &r.Locked)
	if err != nil {
		return nil, fmt.Errorf("failed to query request %s: %w", requestID, err)
	}
	if requesteeID != nil {
		r.RequesteeID = *requesteeID
	}
	if direction != nil {
		r.Direction = *direction
	}
	return &r, nil
}

// GetRequests retrieves all request records whose requester is enrolled in
// the session.
func (d *DB) GetRequests(ctx context.Context, sessionID string) ([]db.Request, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT r.id, r.requester_id, r.requestee_id, r.type, r.direction, r.priority, r.confidence, r.status, r.locked
		FROM request r
		JOIN camper c ON c.id = r.requester_id
		WHERE c.session_id = $1
		ORDER BY r.id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []db.Request
	for rows.Next() {
		var r db.Request
		var requesteeID *int
		var direction *string
		if err := rows.Scan(&r.ID, &r.RequesterID, &requesteeID, &r.Type, &direction, &r.Priority, &r.Confidence, &r.Status, &r.Locked); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		if requesteeID != nil {
			r.RequesteeID = *requesteeID
		}
		if direction != nil {
			r.Direction = *direction
		}
		requests = append(requests, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requests: %w", err)
	}
	return requests, nil
}

// GetRequestSources retrieves the provenance links for the given requests.
func (d *DB) GetRequestSources(ctx context.Context, requestIDs []string) ([]db.RequestSource, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT id, request_id, field, raw_text, is_primary
		FROM request_source
		WHERE request_id = ANY($1)
		ORDER BY request_id, id
	`, requestIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query request sources: %w", err)
	}
	defer rows.Close()

	var sources []db.RequestSource
	for rows.Next() {
		var s db.RequestSource
		var rawText *string
		if err := rows.Scan(&s.ID, &s.RequestID, &s.Field, &rawText, &s.Primary); err != nil {
			return nil, fmt.Errorf("failed to scan request source: %w", err)
		}
		if rawText != nil {
			s.RawText = *rawText
		}
		sources = append(sources, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request sources: %w", err)
	}
	return sources, nil
}

// UpdateRequest persists a request's mutable fields.
func (d *DB) UpdateRequest(ctx context.Context, request *db.Request) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE request
		SET requestee_id = $2, type = $3, direction = $4, priority = $5,
		    confidence = $6, status = $7, locked = $8
		WHERE id = $1
	`, request.ID, nullableInt(request.RequesteeID), request.Type, nullableString(request.Direction),
		request.Priority, request.Confidence, request.Status, request.Locked)
	if err != nil {
		return fmt.Errorf("failed to update request %s: %w", request.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("request %s not found", request.ID)
	}
	return nil
}

// ApplyMerge deletes the contributing requests and inserts the merged one
// with its unioned sources, in a single transaction.
func (d *DB) ApplyMerge(ctx context.Context, change db.MergeChange) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM request WHERE id = ANY($1)`, change.DeleteRequestIDs)
	if err != nil {
		return fmt.Errorf("failed to delete merged requests: %w", err)
	}

	if err := insertRequest(ctx, tx, change.Insert); err != nil {
		return err
	}
	for _, src := range change.InsertSources {
		if err := insertSource(ctx, tx, src); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit merge: %w", err)
	}
	return nil
}

// ApplySplit restores the split-off requests, re-parents their sources and
// trims the original's source set, in a single transaction.
func (d *DB) ApplySplit(ctx context.Context, change db.SplitChange) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range change.Restored {
		if err := insertRequest(ctx, tx, r); err != nil {
			return err
		}
	}
	for _, src := range change.RestoredSources {
		_, err := tx.Exec(ctx, `
			UPDATE request_source
			SET request_id = $2, is_primary = $3
			WHERE id = $1
		`, src.ID, src.RequestID, src.Primary)
		if err != nil {
			return fmt.Errorf("failed to re-parent source %s: %w", src.ID, err)
		}
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM request_source
		WHERE request_id = $1 AND NOT (id = ANY($2))
	`, change.UpdatedRequestID, change.KeepSourceIDs)
	if err != nil {
		return fmt.Errorf("failed to trim sources of request %s: %w", change.UpdatedRequestID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit split: %w", err)
	}
	return nil
}

func insertRequest(ctx context.Context, tx pgx.Tx, r db.Request) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO request (id, requester_id, requestee_id, type, direction, priority, confidence, status, locked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.ID, r.RequesterID, nullableInt(r.RequesteeID), r.Type, nullableString(r.Direction),
		r.Priority, r.Confidence, r.Status, r.Locked)
	if err != nil {
		return fmt.Errorf("failed to insert request %s: %w", r.ID, err)
	}
	return nil
}

func insertSource(ctx context.Context, tx pgx.Tx, s db.RequestSource) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO request_source (id, request_id, field, raw_text, is_primary)
		VALUES ($1, $2, $3, $4, $5)
	`, s.ID, s.RequestID, s.Field, nullableString(s.RawText), s.Primary)
	if err != nil {
		return fmt.Errorf("failed to insert request source %s: %w", s.ID, err)
	}
	return nil
}

func nullableInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func nullableString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

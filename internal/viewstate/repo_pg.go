package viewstate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres. State is kept as JSON text.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new view record.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO view_states (id, view, state, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, rec.ID, rec.View, string(rec.State), rec.CreatedAt, rec.UpdatedAt)
	return err
}

// Get loads a view record by ID.
func (r *PGRepo) Get(ctx context.Context, id string) (Record, error) {
	const query = `
SELECT id, view, state, created_at, updated_at
FROM view_states
WHERE id = $1`
	var rec Record
	var state []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&rec.ID, &rec.View, &state, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	rec.State = json.RawMessage(state)
	return rec, nil
}

// Update overwrites the state and bumps updated_at.
func (r *PGRepo) Update(ctx context.Context, id string, state json.RawMessage, updatedAt time.Time) error {
	const query = `
UPDATE view_states
SET state = $2, updated_at = $3
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, string(state), updatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteIdleSince removes records not touched since cutoff.
func (r *PGRepo) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM view_states WHERE updated_at < $1`
	res, err := r.DB.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

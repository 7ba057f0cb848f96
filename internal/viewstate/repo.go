// Package viewstate keeps the local state of mounted view instances.
//
// A mount creates a record holding the view's JSON state; every action
// loads, mutates and saves it under a per-instance lock. Nothing is shared
// between instances, and records expire once they go idle past a TTL.
package viewstate

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned for unknown, expired or foreign-view instances.
var ErrNotFound = errors.New("view instance not found")

// Record is one persisted view instance.
type Record struct {
	ID        string
	View      string
	State     json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repo persists view records.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	Update(ctx context.Context, id string, state json.RawMessage, updatedAt time.Time) error
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error)
}

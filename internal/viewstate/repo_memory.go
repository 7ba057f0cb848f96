package viewstate

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Record)}
}

// Create stores a new record, overwriting any record with the same ID.
func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.State = cloneRaw(rec.State)
	r.data[rec.ID] = rec
	return nil
}

// Get returns a copy of the record.
func (r *MemoryRepo) Get(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.data[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	rec.State = cloneRaw(rec.State)
	return rec, nil
}

// Update replaces the state of an existing record.
func (r *MemoryRepo) Update(ctx context.Context, id string, state json.RawMessage, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	rec.State = cloneRaw(state)
	rec.UpdatedAt = updatedAt
	r.data[id] = rec
	return nil
}

// DeleteIdleSince removes records not updated since cutoff.
func (r *MemoryRepo) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, rec := range r.data {
		if rec.UpdatedAt.Before(cutoff) {
			delete(r.data, id)
			n++
		}
	}
	return n, nil
}

// Len reports how many instances are held.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

func cloneRaw(in json.RawMessage) json.RawMessage {
	if in == nil {
		return nil
	}
	out := make(json.RawMessage, len(in))
	copy(out, in)
	return out
}

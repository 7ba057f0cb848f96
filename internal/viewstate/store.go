package viewstate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store is the typed view-state accessor for one view.
type Store[T any] struct {
	view  string
	repo  Repo
	locks *keyedMutex
	now   func() time.Time
	newID func() string
}

// NewStore binds a Store to a view name and repository.
func NewStore[T any](view string, repo Repo) *Store[T] {
	return &Store[T]{
		view:  view,
		repo:  repo,
		locks: newKeyedMutex(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// View returns the view name the store is bound to.
func (s *Store[T]) View() string {
	return s.view
}

// Mount creates a fresh instance holding initial and returns its ID.
func (s *Store[T]) Mount(ctx context.Context, initial T) (string, error) {
	raw, err := json.Marshal(initial)
	if err != nil {
		return "", fmt.Errorf("encode %s state: %w", s.view, err)
	}
	now := s.now()
	rec := Record{
		ID:        s.newID(),
		View:      s.view,
		State:     raw,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return "", fmt.Errorf("create %s instance: %w", s.view, err)
	}
	return rec.ID, nil
}

// Load returns the current state of an instance.
func (s *Store[T]) Load(ctx context.Context, id string) (T, error) {
	return s.load(ctx, id)
}

// Mutate applies fn to the instance state under the instance lock and
// saves the result. When fn fails nothing is saved.
func (s *Store[T]) Mutate(ctx context.Context, id string, fn func(*T) error) (T, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		return state, err
	}
	if err := fn(&state); err != nil {
		return state, err
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return state, fmt.Errorf("encode %s state: %w", s.view, err)
	}
	if err := s.repo.Update(ctx, id, raw, s.now()); err != nil {
		return state, fmt.Errorf("save %s instance: %w", s.view, err)
	}
	return state, nil
}

func (s *Store[T]) load(ctx context.Context, id string) (T, error) {
	var state T
	if id == "" {
		return state, ErrNotFound
	}
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return state, err
	}
	if rec.View != s.view {
		return state, ErrNotFound
	}
	if err := json.Unmarshal(rec.State, &state); err != nil {
		return state, fmt.Errorf("decode %s state: %w", s.view, err)
	}
	return state, nil
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/surgiflow/surgiflow/internal/shared"
)

// Collection wraps one named collection with typed access and a
// per-collection mutex. Two mutations of the same collection never
// interleave their read/modify/write phases, closing the lost-update
// hazard of the shared external store.
type Collection[T any] struct {
	name    string
	backend Backend
	mu      sync.Mutex
}

// NewCollection binds a typed collection to a backend.
func NewCollection[T any](backend Backend, name string) *Collection[T] {
	return &Collection[T]{name: name, backend: backend}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Load reads and decodes the full collection.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Update runs fn as a critical section over the collection: read the
// current items, apply the change in memory, write the whole collection
// back. When fn returns an error nothing is written and the error is
// returned unchanged.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := fn(items)
	if err != nil {
		return nil, err
	}
	if err := c.write(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Replace overwrites the collection with the supplied items.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(ctx, items)
}

// SeedIfEmpty writes the seed when the collection has never been written
// or holds no items.
func (c *Collection[T]) SeedIfEmpty(ctx context.Context, seed []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return nil
	}
	return c.write(ctx, seed)
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	blob, err := c.backend.Read(ctx, c.name)
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", shared.ErrStore, c.name, err)
	}
	return items, nil
}

func (c *Collection[T]) write(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", shared.ErrStore, c.name, err)
	}
	return c.backend.Write(ctx, c.name, blob)
}

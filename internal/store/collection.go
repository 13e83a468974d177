// Package store is the in-memory entity store. It is the single owner of
// mutable state; callers only ever see copies.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/MrJamesThe3rd/betawi/internal/audit"
	"github.com/MrJamesThe3rd/betawi/internal/errs"
)

// Collection holds one entity type in insertion order.
type Collection[T any] struct {
	mu       sync.RWMutex
	name     string
	id       func(*T) *int
	items    []T
	recorder audit.Recorder
}

// NewCollection builds a collection. id returns a pointer to the entity's ID field.
func NewCollection[T any](name string, id func(*T) *int, recorder audit.Recorder) *Collection[T] {
	return &Collection[T]{
		name:     name,
		id:       id,
		recorder: recorder,
	}
}

func (c *Collection[T]) Name() string {
	return c.name
}

// Create stores a copy of item. A zero ID is replaced with max(existing ids, 0) + 1
// and written back to item.
func (c *Collection[T]) Create(ctx context.Context, item *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := *item
	id := *c.id(&stored)

	switch {
	case id == 0:
		id = c.nextID()
		*c.id(&stored) = id
	case id < 0:
		return errs.Invalid("id", "must be positive")
	case c.indexOf(id) >= 0:
		return fmt.Errorf("%s %d: %w", c.name, id, errs.ErrConflict)
	}

	if err := c.record(ctx, audit.OpCreate, id, nil, &stored); err != nil {
		return err
	}

	c.items = append(c.items, stored)
	*c.id(item) = id

	return nil
}

func (c *Collection[T]) Get(_ context.Context, id int) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		return nil, errs.NotFound(c.name, id)
	}

	item := c.items[i]

	return &item, nil
}

func (c *Collection[T]) List(_ context.Context) ([]*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*T, len(c.items))
	for i := range c.items {
		item := c.items[i]
		out[i] = &item
	}

	return out, nil
}

// Update applies patch to a copy of the entity and commits it only when patch
// returns nil. The ID cannot be changed by a patch.
func (c *Collection[T]) Update(ctx context.Context, id int, patch func(*T) error) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return nil, errs.NotFound(c.name, id)
	}

	before := c.items[i]
	after := before

	if err := patch(&after); err != nil {
		return nil, err
	}

	*c.id(&after) = id

	if err := c.record(ctx, audit.OpUpdate, id, &before, &after); err != nil {
		return nil, err
	}

	c.items[i] = after

	return &after, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return errs.NotFound(c.name, id)
	}

	before := c.items[i]
	if err := c.record(ctx, audit.OpDelete, id, &before, nil); err != nil {
		return err
	}

	c.items = append(c.items[:i], c.items[i+1:]...)

	return nil
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

func (c *Collection[T]) nextID() int {
	highest := 0

	for i := range c.items {
		highest = max(highest, *c.id(&c.items[i]))
	}

	return highest + 1
}

func (c *Collection[T]) indexOf(id int) int {
	for i := range c.items {
		if *c.id(&c.items[i]) == id {
			return i
		}
	}

	return -1
}

func (c *Collection[T]) record(ctx context.Context, op audit.Op, id int, before, after *T) error {
	if c.recorder == nil {
		return nil
	}

	// Typed nil pointers must not reach NewChange as non-nil interfaces.
	var b, a any
	if before != nil {
		b = before
	}

	if after != nil {
		a = after
	}

	change, err := audit.NewChange(c.name, id, op, b, a)
	if err != nil {
		return fmt.Errorf("%s %d: %w", c.name, id, err)
	}

	if err := c.recorder.Record(ctx, change); err != nil {
		return fmt.Errorf("auditing %s %d: %w", c.name, id, err)
	}

	return nil
}

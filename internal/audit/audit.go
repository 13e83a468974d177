// Package audit records every mutation applied to the entity store so the
// field history of any entity can be reconstructed.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change is one applied mutation. Before is empty for creates, After is empty for deletes.
type Change struct {
	ID         uuid.UUID
	Collection string
	EntityID   int
	Op         Op
	Before     json.RawMessage
	After      json.RawMessage
	At         time.Time
}

// Recorder receives changes before the store commits them. A non-nil error aborts the mutation.
type Recorder interface {
	Record(ctx context.Context, c Change) error
}

// Reader returns the recorded changes of one entity, oldest first.
type Reader interface {
	History(ctx context.Context, collection string, entityID int) ([]Change, error)
}

// Feed returns the latest changes across every collection, newest first.
type Feed interface {
	Recent(ctx context.Context, limit int) ([]Change, error)
}

// NewChange snapshots before and after as JSON. Pass nil for a missing side.
func NewChange(collection string, entityID int, op Op, before, after any) (Change, error) {
	c := Change{
		ID:         uuid.New(),
		Collection: collection,
		EntityID:   entityID,
		Op:         op,
		At:         time.Now().UTC(),
	}

	var err error

	if before != nil {
		if c.Before, err = json.Marshal(before); err != nil {
			return Change{}, fmt.Errorf("encoding before snapshot: %w", err)
		}
	}

	if after != nil {
		if c.After, err = json.Marshal(after); err != nil {
			return Change{}, fmt.Errorf("encoding after snapshot: %w", err)
		}
	}

	return c, nil
}

package audit

import (
	"context"
	"log/slog"
	"sync"
)

// Log is the in-memory recorder used when no audit database is configured.
type Log struct {
	mu      sync.RWMutex
	changes []Change
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Record(_ context.Context, c Change) error {
	l.mu.Lock()
	l.changes = append(l.changes, c)
	l.mu.Unlock()

	slog.Debug("audit", "collection", c.Collection, "entity_id", c.EntityID, "op", c.Op)

	return nil
}

func (l *Log) History(_ context.Context, collection string, entityID int) ([]Change, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Change

	for _, c := range l.changes {
		if c.Collection == collection && c.EntityID == entityID {
			out = append(out, c)
		}
	}

	return out, nil
}

func (l *Log) Recent(_ context.Context, limit int) ([]Change, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := min(max(limit, 0), len(l.changes))
	out := make([]Change, 0, n)

	for i := len(l.changes) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.changes[i])
	}

	return out, nil
}

// Len returns the number of recorded changes.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.changes)
}

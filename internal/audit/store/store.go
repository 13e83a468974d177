package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/betawi/internal/audit"
)

const schema = `
	CREATE TABLE IF NOT EXISTS audit_log (
		id          UUID PRIMARY KEY,
		collection  TEXT NOT NULL,
		entity_id   INTEGER NOT NULL,
		op          TEXT NOT NULL,
		before      JSONB,
		after       JSONB,
		recorded_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS audit_log_entity_idx ON audit_log (collection, entity_id, recorded_at);
	CREATE INDEX IF NOT EXISTS audit_log_recorded_idx ON audit_log (recorded_at DESC);
`

// Store persists audit changes to Postgres.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating audit schema: %w", err)
	}

	return nil
}

func (s *Store) Record(ctx context.Context, c audit.Change) error {
	query := `
		INSERT INTO audit_log (id, collection, entity_id, op, before, after, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(ctx, query,
		c.ID,
		c.Collection,
		c.EntityID,
		string(c.Op),
		nullJSON(c.Before),
		nullJSON(c.After),
		c.At,
	)
	if err != nil {
		return fmt.Errorf("recording change: %w", err)
	}

	return nil
}

func (s *Store) History(ctx context.Context, collection string, entityID int) ([]audit.Change, error) {
	query := `
		SELECT id, collection, entity_id, op, before, after, recorded_at
		FROM audit_log
		WHERE collection = $1 AND entity_id = $2
		ORDER BY recorded_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, collection, entityID)
	if err != nil {
		return nil, fmt.Errorf("listing changes: %w", err)
	}
	defer rows.Close()

	return scanChanges(rows)
}

func (s *Store) Recent(ctx context.Context, limit int) ([]audit.Change, error) {
	query := `
		SELECT id, collection, entity_id, op, before, after, recorded_at
		FROM audit_log
		ORDER BY recorded_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent changes: %w", err)
	}
	defer rows.Close()

	return scanChanges(rows)
}

func scanChanges(rows *sql.Rows) ([]audit.Change, error) {
	var changes []audit.Change

	for rows.Next() {
		var (
			c             audit.Change
			op            string
			before, after []byte
		)

		if err := rows.Scan(&c.ID, &c.Collection, &c.EntityID, &op, &before, &after, &c.At); err != nil {
			return nil, fmt.Errorf("scanning change: %w", err)
		}

		c.Op = audit.Op(op)
		c.Before = before
		c.After = after
		changes = append(changes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating changes: %w", err)
	}

	return changes, nil
}

// nullJSON keeps absent snapshots as SQL NULL rather than an empty jsonb.
func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}

	return string(b)
}

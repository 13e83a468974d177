package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/betawi/internal/audit"
	"github.com/MrJamesThe3rd/betawi/internal/audit/store"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *store.Store) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return db, mock, store.New(db)
}

func TestStore_Record(t *testing.T) {
	db, mock, s := setupMockDB(t)
	defer db.Close()

	change, err := audit.NewChange("bookings", 4, audit.OpCreate, nil, map[string]string{"status": "Pending"})
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(change.ID, "bookings", 4, "create", nil, `{"status":"Pending"}`, change.At).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Record(context.Background(), change))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Record_Error(t *testing.T) {
	db, mock, s := setupMockDB(t)
	defer db.Close()

	change, err := audit.NewChange("bookings", 4, audit.OpDelete, map[string]int{"id": 4}, nil)
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO audit_log`).WillReturnError(errors.New("connection reset"))

	err = s.Record(context.Background(), change)
	assert.ErrorContains(t, err, "recording change")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_History(t *testing.T) {
	db, mock, s := setupMockDB(t)
	defer db.Close()

	first := uuid.New()
	second := uuid.New()
	at := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "collection", "entity_id", "op", "before", "after", "recorded_at"}).
		AddRow(first.String(), "reviews", 2, "create", nil, []byte(`{"status":"pending"}`), at).
		AddRow(second.String(), "reviews", 2, "update", []byte(`{"status":"pending"}`), []byte(`{"status":"flagged"}`), at.Add(time.Hour))

	mock.ExpectQuery(`SELECT id, collection, entity_id, op, before, after, recorded_at`).
		WithArgs("reviews", 2).
		WillReturnRows(rows)

	changes, err := s.History(context.Background(), "reviews", 2)
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, first, changes[0].ID)
	assert.Equal(t, audit.OpCreate, changes[0].Op)
	assert.Empty(t, changes[0].Before)
	assert.JSONEq(t, `{"status":"flagged"}`, string(changes[1].After))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Migrate(t *testing.T) {
	db, mock, s := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS audit_log`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Recent(t *testing.T) {
	db, mock, s := setupMockDB(t)
	defer db.Close()

	id := uuid.New()
	at := time.Date(2025, 1, 16, 8, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "collection", "entity_id", "op", "before", "after", "recorded_at"}).
		AddRow(id.String(), "bookings", 3, "update", []byte(`{"Status":"Pending"}`), []byte(`{"Status":"Approved"}`), at)

	mock.ExpectQuery(`ORDER BY recorded_at DESC`).
		WithArgs(5).
		WillReturnRows(rows)

	changes, err := s.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, id, changes[0].ID)
	assert.Equal(t, "bookings", changes[0].Collection)
	assert.Equal(t, audit.OpUpdate, changes[0].Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Recent_Error(t *testing.T) {
	db, mock, s := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`ORDER BY recorded_at DESC`).WillReturnError(errors.New("connection reset"))

	_, err := s.Recent(context.Background(), 5)
	assert.ErrorContains(t, err, "listing recent changes")
	assert.NoError(t, mock.ExpectationsWereMet())
}

package audit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/betawi/internal/audit"
)

type item struct {
	Name string `json:"name"`
}

func TestNewChange(t *testing.T) {
	c, err := audit.NewChange("helpers", 3, audit.OpUpdate, item{Name: "a"}, item{Name: "b"})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.JSONEq(t, `{"name":"a"}`, string(c.Before))
	assert.JSONEq(t, `{"name":"b"}`, string(c.After))
	assert.False(t, c.At.IsZero())

	created, err := audit.NewChange("helpers", 3, audit.OpCreate, nil, item{Name: "a"})
	require.NoError(t, err)
	assert.Nil(t, created.Before)
}

func TestLog_History(t *testing.T) {
	ctx := context.Background()
	log := audit.NewLog()

	for _, c := range []struct {
		collection string
		id         int
		op         audit.Op
	}{
		{"helpers", 1, audit.OpCreate},
		{"helpers", 2, audit.OpCreate},
		{"helpers", 1, audit.OpUpdate},
		{"bookings", 1, audit.OpCreate},
	} {
		change, err := audit.NewChange(c.collection, c.id, c.op, nil, item{})
		require.NoError(t, err)
		require.NoError(t, log.Record(ctx, change))
	}

	history, err := log.History(ctx, "helpers", 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, audit.OpCreate, history[0].Op)
	assert.Equal(t, audit.OpUpdate, history[1].Op)
	assert.Equal(t, 4, log.Len())
}

func TestLog_Recent(t *testing.T) {
	ctx := context.Background()
	log := audit.NewLog()

	for _, name := range []string{"a", "b", "c"} {
		change, err := audit.NewChange("helpers", 1, audit.OpUpdate, nil, item{Name: name})
		require.NoError(t, err)
		require.NoError(t, log.Record(ctx, change))
	}

	recent, err := log.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.JSONEq(t, `{"name":"c"}`, string(recent[0].After))
	assert.JSONEq(t, `{"name":"b"}`, string(recent[1].After))

	all, err := log.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := log.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/betawi/internal/app"
	"github.com/MrJamesThe3rd/betawi/internal/config"
	"github.com/MrJamesThe3rd/betawi/internal/helper"
)

func memoryConfig(seedDemo bool) *config.Config {
	cfg := &config.Config{}
	cfg.Audit.Backend = config.AuditMemory
	cfg.App.SeedDemo = seedDemo
	cfg.Auth.Secret = "secret"

	return cfg
}

func TestNew_Seeded(t *testing.T) {
	ctx := context.Background()

	a, err := app.New(ctx, memoryConfig(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	m, err := a.Reports.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(800), m.PlatformBalance)
	assert.Equal(t, 5, m.Bookings)

	history, err := a.Audit.History(ctx, "helpers", 1)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestNew_Empty(t *testing.T) {
	ctx := context.Background()

	a, err := app.New(ctx, memoryConfig(false))
	require.NoError(t, err)

	helpers, err := a.Helpers.List(ctx, helper.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, helpers)
}

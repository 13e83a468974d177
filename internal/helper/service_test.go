package helper_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/helper"
	"github.com/MrJamesThe3rd/betawi/internal/seed"
	"github.com/MrJamesThe3rd/betawi/internal/store"
)

func seeded(t *testing.T) *helper.Service {
	t.Helper()

	st := store.New(nil)
	require.NoError(t, seed.Load(context.Background(), st))

	return helper.NewService(st.Helpers)
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		params  helper.CreateParams
		wantErr bool
	}{
		{name: "Valid", params: helper.CreateParams{Name: "Hana Tesfaye", Age: 30, Type: helper.TypeNanny}},
		{name: "MissingName", params: helper.CreateParams{Age: 30, Type: helper.TypeNanny}, wantErr: true},
		{name: "ZeroAge", params: helper.CreateParams{Name: "Hana", Type: helper.TypeNanny}, wantErr: true},
		{name: "UnknownType", params: helper.CreateParams{Name: "Hana", Age: 30, Type: "Gardener"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := seeded(t)

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr {
				assert.ErrorIs(t, err, errs.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 5, got.ID)
			assert.False(t, got.Verified)
		})
	}
}

func TestService_IDsFollowHighestRemaining(t *testing.T) {
	ctx := context.Background()
	svc := seeded(t)

	require.NoError(t, svc.Delete(ctx, 4))

	got, err := svc.Create(ctx, helper.CreateParams{Name: "Hana", Age: 30, Type: helper.TypePartTime})
	require.NoError(t, err)
	assert.Equal(t, 4, got.ID)

	err = svc.Delete(ctx, 42)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_Verify(t *testing.T) {
	ctx := context.Background()
	svc := seeded(t)

	got, err := svc.Verify(ctx, 3)
	require.NoError(t, err)
	assert.True(t, got.Verified)

	again, err := svc.Verify(ctx, 3)
	require.NoError(t, err)
	assert.True(t, again.Verified)

	unverified, err := svc.List(ctx, helper.ListFilter{Verified: new(false)})
	require.NoError(t, err)
	assert.Empty(t, unverified)
}

func TestService_UpdateKeepsVerification(t *testing.T) {
	ctx := context.Background()
	svc := seeded(t)

	got, err := svc.Update(ctx, 1, helper.UpdateParams{Age: new(29), Strengths: new("Cooking")})
	require.NoError(t, err)
	assert.Equal(t, 29, got.Age)
	assert.Equal(t, "Cooking", got.Strengths)
	assert.Equal(t, "Amara Hassan", got.Name)
	assert.True(t, got.Verified)

	_, err = svc.Update(ctx, 1, helper.UpdateParams{Age: new(0)})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestService_ListByType(t *testing.T) {
	svc := seeded(t)

	nannies, err := svc.List(context.Background(), helper.ListFilter{Type: new(helper.TypeNanny)})
	require.NoError(t, err)
	require.Len(t, nannies, 1)
	assert.Equal(t, "Leila Ahmed", nannies[0].Name)
}

package household_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/household"
	"github.com/MrJamesThe3rd/betawi/internal/store"
)

func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		params  household.CreateParams
		wantErr error
	}{
		{
			name:   "SplitMatchesResidents",
			params: household.CreateParams{Name: "Bekele Family", TotalResidents: 4, MaleCount: 2, FemaleCount: 2, NumberOfRooms: 3},
		},
		{
			name:   "NoSplitGiven",
			params: household.CreateParams{Name: "Bekele Family", TotalResidents: 4, NumberOfRooms: 3},
		},
		{
			name:    "SplitDoesNotAddUp",
			params:  household.CreateParams{Name: "Bekele Family", TotalResidents: 4, MaleCount: 1, FemaleCount: 2, NumberOfRooms: 3},
			wantErr: errs.ErrValidation,
		},
		{
			name:    "NoResidents",
			params:  household.CreateParams{Name: "Bekele Family", NumberOfRooms: 3},
			wantErr: errs.ErrValidation,
		},
		{
			name:    "UnknownHouseSize",
			params:  household.CreateParams{Name: "Bekele Family", TotalResidents: 1, NumberOfRooms: 1, HouseSize: "Huge"},
			wantErr: errs.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := household.NewService(store.New(nil).Households)

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 1, got.ID)
			assert.False(t, got.Verified)
			assert.Equal(t, "3 Bedroom", got.RoomSize)
			assert.Equal(t, household.HouseSizeMedium, got.HouseSize)
			assert.Equal(t, household.PaymentPending, got.PaymentStatus)
		})
	}
}

func TestService_VerifyAndFilter(t *testing.T) {
	ctx := context.Background()
	svc := household.NewService(store.New(nil).Households)

	for _, name := range []string{"A", "B"} {
		_, err := svc.Create(ctx, household.CreateParams{Name: name, TotalResidents: 1, NumberOfRooms: 1, PaymentStatus: household.PaymentPaid})
		require.NoError(t, err)
	}

	_, err := svc.Verify(ctx, 2)
	require.NoError(t, err)

	verified, err := svc.List(ctx, household.ListFilter{Verified: new(true)})
	require.NoError(t, err)
	require.Len(t, verified, 1)
	assert.Equal(t, "B", verified[0].Name)

	got, err := svc.Update(ctx, 2, household.UpdateParams{PaymentStatus: new(household.PaymentPending)})
	require.NoError(t, err)
	assert.True(t, got.Verified)

	pending, err := svc.List(ctx, household.ListFilter{PaymentStatus: new(household.PaymentPending)})
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = svc.Verify(ctx, 9)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

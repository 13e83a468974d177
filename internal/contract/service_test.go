package contract_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/betawi/internal/contract"
	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := contract.NewService(store.New(nil).Contracts)

	c, err := svc.Create(ctx, contract.CreateParams{
		HelperID:    1,
		HouseholdID: 1,
		ServiceType: "Childcare",
		StartDate:   date(2025, 1, 1),
		EndDate:     date(2025, 6, 1),
		MonthlyRate: 3000,
	})
	require.NoError(t, err)
	assert.Equal(t, contract.StatusPending, c.Status)

	value, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(15000), value)

	_, err = svc.Complete(ctx, c.ID)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	c, err = svc.Activate(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.StatusActive, c.Status)

	c, err = svc.Complete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.StatusCompleted, c.Status)

	_, err = svc.Activate(ctx, c.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		params  contract.CreateParams
		wantErr bool
	}{
		{
			name:   "CreatedActive",
			params: contract.CreateParams{HelperID: 1, HouseholdID: 1, ServiceType: "Nanny", StartDate: date(2025, 2, 1), EndDate: date(2025, 8, 1), MonthlyRate: 4000, Status: contract.StatusActive},
		},
		{
			name:    "EndBeforeStart",
			params:  contract.CreateParams{HelperID: 1, HouseholdID: 1, ServiceType: "Nanny", StartDate: date(2025, 8, 1), EndDate: date(2025, 2, 1), MonthlyRate: 4000},
			wantErr: true,
		},
		{
			name:    "ZeroRate",
			params:  contract.CreateParams{HelperID: 1, HouseholdID: 1, ServiceType: "Nanny", StartDate: date(2025, 2, 1), EndDate: date(2025, 8, 1)},
			wantErr: true,
		},
		{
			name:    "UnknownStatus",
			params:  contract.CreateParams{HelperID: 1, HouseholdID: 1, ServiceType: "Nanny", StartDate: date(2025, 2, 1), EndDate: date(2025, 8, 1), MonthlyRate: 4000, Status: "Cancelled"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := contract.NewService(store.New(nil).Contracts)

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr {
				assert.ErrorIs(t, err, errs.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.params.Status, got.Status)

			months, err := got.Months()
			require.NoError(t, err)
			assert.Equal(t, int64(6), months)
		})
	}
}

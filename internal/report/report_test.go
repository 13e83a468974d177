package report_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/betawi/internal/report"
	"github.com/MrJamesThe3rd/betawi/internal/seed"
	"github.com/MrJamesThe3rd/betawi/internal/store"
)

func sources(st *store.Store) report.Sources {
	return report.Sources{
		Helpers:      st.Helpers,
		Households:   st.Households,
		Bookings:     st.Bookings,
		Contracts:    st.Contracts,
		Transactions: st.Transactions,
		Accounts:     st.Accounts,
		Reviews:      st.Reviews,
		Messages:     st.Messages,
	}
}

func TestService_MetricsSeeded(t *testing.T) {
	ctx := context.Background()
	st := store.New(nil)
	require.NoError(t, seed.Load(ctx, st))

	got, err := report.NewService(sources(st)).Metrics(ctx)
	require.NoError(t, err)

	assert.Equal(t, report.Metrics{
		PlatformBalance:   800,
		TotalIncome:       8000,
		TotalCommission:   800,
		TotalPayouts:      7200,
		PendingPayouts:    10500,
		AverageRating:     3.8,
		Helpers:           4,
		VerifiedHelpers:   3,
		Households:        4,
		Bookings:          5,
		PendingBookings:   1,
		CompletedBookings: 2,
		ActiveContracts:   2,
		Reviews:           5,
		FlaggedReviews:    2,
		UnreadMessages:    1,
	}, got)
}

func TestService_MetricsEmpty(t *testing.T) {
	got, err := report.NewService(sources(store.New(nil))).Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.Metrics{}, got)
}

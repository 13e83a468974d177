package report_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/betawi/internal/account"
	"github.com/MrJamesThe3rd/betawi/internal/audit"
	"github.com/MrJamesThe3rd/betawi/internal/booking"
	"github.com/MrJamesThe3rd/betawi/internal/helper"
	"github.com/MrJamesThe3rd/betawi/internal/report"
	"github.com/MrJamesThe3rd/betawi/internal/review"
	"github.com/MrJamesThe3rd/betawi/internal/seed"
	"github.com/MrJamesThe3rd/betawi/internal/store"
)

func TestService_Activity(t *testing.T) {
	ctx := context.Background()
	log := audit.NewLog()
	st := store.New(log)
	require.NoError(t, seed.Load(ctx, st))

	_, err := booking.NewService(st.Bookings).Approve(ctx, 3)
	require.NoError(t, err)

	_, err = review.NewService(st.Reviews).Flag(ctx, 2)
	require.NoError(t, err)

	_, err = helper.NewService(st.Helpers).Verify(ctx, 3)
	require.NoError(t, err)

	_, err = account.NewService(st.Accounts, st.Transactions).ProcessPayout(ctx, 1)
	require.NoError(t, err)

	src := sources(st)
	src.Changes = log

	feed, err := report.NewService(src).Activity(ctx, 5)
	require.NoError(t, err)

	type entry struct {
		Level   report.Level
		Title   string
		Message string
	}

	got := make([]entry, len(feed))
	for i, a := range feed {
		got[i] = entry{a.Level, a.Title, a.Message}
	}

	assert.Equal(t, []entry{
		{report.LevelSuccess, "Payout Processed", "5000 ETB paid out to Amara Hassan."},
		{report.LevelInfo, "Account Updated", "Account #1 was updated."},
		{report.LevelSuccess, "Verified", "Zainab Ibrahim is now verified."},
		{report.LevelAlert, "Review Flagged", "Review #2 is now flagged."},
		{report.LevelSuccess, "Booking Approved", "Booking #3 is now Approved."},
	}, got)

	assert.Equal(t, store.TransactionsName, feed[0].Collection)
	assert.Equal(t, 3, feed[4].EntityID)
	assert.False(t, feed[0].At.Before(feed[4].At))
}

func TestService_ActivityWithoutFeed(t *testing.T) {
	feed, err := report.NewService(sources(store.New(nil))).Activity(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

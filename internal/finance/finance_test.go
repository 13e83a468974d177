package finance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/finance"
	"github.com/MrJamesThe3rd/betawi/internal/ledger"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}

	return t
}

func TestCommission(t *testing.T) {
	tests := []struct {
		amount int64
		want   int64
	}{
		{amount: 5000, want: 500},
		{amount: 2500, want: 250},
		{amount: 2505, want: 251},
		{amount: 2504, want: 250},
		{amount: 0, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, finance.Commission(tt.amount), "amount %d", tt.amount)
	}
}

func TestLedgerTotals(t *testing.T) {
	txs := []*ledger.Transaction{
		{Type: ledger.TypeIncome, Amount: 5000, Commission: 500, Status: ledger.StatusCompleted},
		{Type: ledger.TypePayout, Amount: 4500, Status: ledger.StatusCompleted},
		{Type: ledger.TypeIncome, Amount: 3000, Commission: 300, Status: ledger.StatusCompleted},
		{Type: ledger.TypePayout, Amount: 2700, Status: ledger.StatusCompleted},
		{Type: ledger.TypeIncome, Amount: 2500, Commission: 250, Status: ledger.StatusPending},
		{Type: ledger.TypePayout, Amount: 900, Status: ledger.StatusFailed},
	}

	assert.Equal(t, int64(8000), finance.TotalIncome(txs))
	assert.Equal(t, int64(7200), finance.TotalPayouts(txs))
	assert.Equal(t, int64(800), finance.TotalCommission(txs))
	assert.Equal(t, int64(800), finance.PlatformBalance(txs))
}

func TestPlatformBalance_Empty(t *testing.T) {
	assert.Zero(t, finance.PlatformBalance(nil))
	assert.Zero(t, finance.PlatformBalance([]*ledger.Transaction{}))
	assert.Zero(t, finance.TotalCommission(nil))
}

func TestPlatformBalance_CanGoNegative(t *testing.T) {
	txs := []*ledger.Transaction{
		{Type: ledger.TypePayout, Amount: 1200, Status: ledger.StatusCompleted},
	}

	assert.Equal(t, int64(-1200), finance.PlatformBalance(txs))
}

func TestContractValue(t *testing.T) {
	tests := []struct {
		name    string
		rate    int64
		start   string
		end     string
		want    int64
		wantErr bool
	}{
		{name: "FiveMonths", rate: 3000, start: "2025-01-01", end: "2025-06-01", want: 15000},
		{name: "SeedChildcare", rate: 3000, start: "2025-01-15", end: "2025-06-15", want: 15000},
		{name: "SeedCleaning", rate: 1500, start: "2025-01-10", end: "2025-12-31", want: 18000},
		{name: "HalfMonthRoundsUp", rate: 1000, start: "2025-01-01", end: "2025-01-16", want: 1000},
		{name: "UnderHalfRoundsDown", rate: 1000, start: "2025-01-01", end: "2025-01-15", want: 0},
		{name: "SameDay", rate: 4000, start: "2025-02-01", end: "2025-02-01", want: 0},
		{name: "EndBeforeStart", rate: 4000, start: "2025-02-01", end: "2025-01-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := finance.ContractValue(tt.rate, date(tt.start), date(tt.end))
			if tt.wantErr {
				assert.ErrorIs(t, err, errs.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDurationDays_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(151), finance.DurationDays(start, end))
}

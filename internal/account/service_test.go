package account_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/betawi/internal/account"
	"github.com/MrJamesThe3rd/betawi/internal/audit"
	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/ledger"
	"github.com/MrJamesThe3rd/betawi/internal/seed"
	"github.com/MrJamesThe3rd/betawi/internal/store"
)

var fixedNow = time.Date(2025, 3, 4, 15, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestService_ProcessPayout(t *testing.T) {
	type testCase struct {
		name      string
		current   account.HelperAccount
		setupMock func(l *account.MockLedger)
		updates   int
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "Success",
			current: account.HelperAccount{HelperID: 1, Name: "Amara Hassan", PendingPayout: 5000, Status: account.StatusActive},
			setupMock: func(l *account.MockLedger) {
				l.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
						tx.ID = 6
						return nil
					})
			},
		},
		{
			name:    "NothingPending",
			current: account.HelperAccount{PendingPayout: 0, Status: account.StatusActive},
			wantErr: account.ErrNothingToPay,
		},
		{
			name:    "Inactive",
			current: account.HelperAccount{PendingPayout: 100, Status: account.StatusInactive},
			wantErr: account.ErrAccountInactive,
		},
		{
			name:    "LedgerError",
			current: account.HelperAccount{PendingPayout: 100, Status: account.StatusActive},
			setupMock: func(l *account.MockLedger) {
				l.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			updates: 2,
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			updates := max(tt.updates, 1)

			accounts := account.NewMockRepository(ctrl)
			accounts.EXPECT().
				Update(gomock.Any(), 1, gomock.Any()).
				DoAndReturn(func(_ context.Context, id int, patch func(*account.HelperAccount) error) (*account.HelperAccount, error) {
					a := tt.current
					a.ID = id

					if err := patch(&a); err != nil {
						return nil, err
					}

					return &a, nil
				}).
				Times(updates)

			l := account.NewMockLedger(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(l)
			}

			svc := account.NewService(accounts, l, account.WithClock(clock))
			got, err := svc.ProcessPayout(context.Background(), 1)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				if errors.Is(tt.wantErr, errs.ErrConflict) {
					assert.ErrorIs(t, err, tt.wantErr)
					assert.ErrorIs(t, err, errs.ErrConflict)
				}

				return
			}

			require.NoError(t, err)
			assert.Zero(t, got.Account.PendingPayout)
			assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), got.Account.LastPayout)
			assert.Equal(t, ledger.TypePayout, got.Transaction.Type)
			assert.Equal(t, ledger.StatusCompleted, got.Transaction.Status)
			assert.Equal(t, int64(5000), got.Transaction.Amount)
			assert.Zero(t, got.Transaction.Commission)
			assert.Equal(t, 6, got.Transaction.ID)
		})
	}
}

func TestService_RecordIncome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l := account.NewMockLedger(ctrl)
	l.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	svc := account.NewService(account.NewMockRepository(ctrl), l, account.WithClock(clock))

	tx, err := svc.RecordIncome(context.Background(), account.IncomeParams{
		HelperID: 2,
		From:     "Fatima Ali",
		Amount:   3000,
		Date:     fixedNow,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(300), tx.Commission)
	assert.Equal(t, ledger.StatusPending, tx.Status)
	assert.Equal(t, ledger.TypeIncome, tx.Type)

	_, err = svc.RecordIncome(context.Background(), account.IncomeParams{HelperID: 2, From: "Fatima Ali", Date: fixedNow})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestService_SeededPayouts(t *testing.T) {
	ctx := context.Background()
	st := store.New(nil)
	require.NoError(t, seed.Load(ctx, st))

	svc := account.NewService(st.Accounts, st.Transactions, account.WithClock(clock))

	before, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, account.Summary{TotalIncome: 8000, TotalCommission: 800, TotalPayouts: 7200, PlatformBalance: 800}, before)

	payout, err := svc.ProcessPayout(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, payout.Account.PendingPayout)
	assert.Equal(t, 6, payout.Transaction.ID)
	assert.Equal(t, 1, payout.Transaction.HelperID)

	_, err = svc.ProcessPayout(ctx, 1)
	require.ErrorIs(t, err, account.ErrNothingToPay)

	_, err = svc.ProcessPayout(ctx, 4)
	require.ErrorIs(t, err, account.ErrNothingToPay)

	payouts, err := svc.Transactions(ctx, account.TransactionFilter{Type: new(ledger.TypePayout), HelperID: new(1)})
	require.NoError(t, err)
	assert.Len(t, payouts, 2)

	after, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12200), after.TotalPayouts)
	assert.Equal(t, int64(800), after.PlatformBalance)
}

var errAuditDown = errors.New("audit db down")

// brokenRecorder rejects every change to one collection.
type brokenRecorder struct {
	collection string
}

func (r brokenRecorder) Record(_ context.Context, c audit.Change) error {
	if c.Collection == r.collection {
		return errAuditDown
	}

	return nil
}

func TestService_ProcessPayoutRestoresAccount(t *testing.T) {
	ctx := context.Background()
	st := store.New(brokenRecorder{collection: store.TransactionsName})

	lastPayout := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.Accounts.Create(ctx, &account.HelperAccount{
		HelperID:      1,
		Name:          "Amara Hassan",
		PendingPayout: 5000,
		LastPayout:    lastPayout,
		BankAccount:   "****1234",
		Status:        account.StatusActive,
	}))

	svc := account.NewService(st.Accounts, st.Transactions, account.WithClock(clock))

	_, err := svc.ProcessPayout(ctx, 1)
	require.ErrorIs(t, err, errAuditDown)

	a, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), a.PendingPayout)
	assert.Equal(t, lastPayout, a.LastPayout)

	txs, err := svc.Transactions(ctx, account.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/filter"
	"github.com/MrJamesThe3rd/betawi/internal/finance"
	"github.com/MrJamesThe3rd/betawi/internal/ledger"
	"github.com/MrJamesThe3rd/betawi/internal/validate"
)

var (
	ErrNothingToPay    = fmt.Errorf("no pending payout: %w", errs.ErrConflict)
	ErrAccountInactive = fmt.Errorf("account inactive: %w", errs.ErrConflict)
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	Create(ctx context.Context, a *HelperAccount) error
	Get(ctx context.Context, id int) (*HelperAccount, error)
	Update(ctx context.Context, id int, patch func(*HelperAccount) error) (*HelperAccount, error)
	List(ctx context.Context) ([]*HelperAccount, error)
}

// Ledger is append-only: there is no update or delete.
type Ledger interface {
	Create(ctx context.Context, t *ledger.Transaction) error
	List(ctx context.Context) ([]*ledger.Transaction, error)
}

type Service struct {
	accounts Repository
	ledger   Ledger
	now      func() time.Time
}

type Option func(*Service)

// WithClock overrides the clock used to stamp payouts.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(accounts Repository, l Ledger, opts ...Option) *Service {
	s := &Service{accounts: accounts, ledger: l, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type OpenParams struct {
	HelperID    int    `validate:"required"`
	Name        string `validate:"required"`
	BankAccount string `validate:"required"`
}

// Open creates an empty, active account for a helper.
func (s *Service) Open(ctx context.Context, params OpenParams) (*HelperAccount, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	a := &HelperAccount{
		HelperID:    params.HelperID,
		Name:        params.Name,
		BankAccount: params.BankAccount,
		Status:      StatusActive,
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("opening account: %w", err)
	}

	return a, nil
}

// Payout is the result of settling an account.
type Payout struct {
	Account     *HelperAccount
	Transaction *ledger.Transaction
}

// ProcessPayout settles the pending balance of an account: pending drops to zero,
// the last payout date becomes today and a completed Payout entry is appended to
// the ledger. If the ledger entry cannot be written the account is restored.
func (s *Service) ProcessPayout(ctx context.Context, id int) (*Payout, error) {
	today := s.today()

	var (
		settled  int64
		previous time.Time
	)

	a, err := s.accounts.Update(ctx, id, func(a *HelperAccount) error {
		if a.Status != StatusActive {
			return ErrAccountInactive
		}

		if a.PendingPayout <= 0 {
			return ErrNothingToPay
		}

		settled = a.PendingPayout
		previous = a.LastPayout
		a.PendingPayout = 0
		a.LastPayout = today

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("processing payout for account %d: %w", id, err)
	}

	tx := &ledger.Transaction{
		Type:        ledger.TypePayout,
		HelperID:    a.HelperID,
		From:        a.Name,
		Amount:      settled,
		Date:        today,
		Status:      ledger.StatusCompleted,
		Description: "Payout to helper",
	}
	if err := s.ledger.Create(ctx, tx); err != nil {
		_, rerr := s.accounts.Update(ctx, id, func(a *HelperAccount) error {
			a.PendingPayout += settled
			a.LastPayout = previous

			return nil
		})
		if rerr != nil {
			err = errors.Join(err, fmt.Errorf("restoring account: %w", rerr))
		}

		return nil, fmt.Errorf("recording payout for account %d: %w", id, err)
	}

	return &Payout{Account: a, Transaction: tx}, nil
}

type IncomeParams struct {
	HelperID    int           `validate:"required"`
	From        string        `validate:"required"`
	Amount      int64         `validate:"gt=0"`
	Date        time.Time     `validate:"required"`
	Status      ledger.Status `validate:"omitempty,oneof=Completed Pending Failed"`
	Description string
}

// RecordIncome appends a household payment to the ledger with the platform
// commission derived from the amount.
func (s *Service) RecordIncome(ctx context.Context, params IncomeParams) (*ledger.Transaction, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	tx := &ledger.Transaction{
		Type:        ledger.TypeIncome,
		HelperID:    params.HelperID,
		From:        params.From,
		Amount:      params.Amount,
		Commission:  finance.Commission(params.Amount),
		Date:        params.Date,
		Status:      params.Status,
		Description: params.Description,
	}

	if tx.Status == "" {
		tx.Status = ledger.StatusPending
	}

	if err := s.ledger.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("recording income: %w", err)
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id int) (*HelperAccount, error) {
	return s.accounts.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, status *Status) ([]*HelperAccount, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	if status != nil {
		accounts = filter.ByStatus(accounts, *status)
	}

	return accounts, nil
}

type TransactionFilter struct {
	Type     *ledger.Type
	Status   *ledger.Status
	HelperID *int
}

func (s *Service) Transactions(ctx context.Context, f TransactionFilter) ([]*ledger.Transaction, error) {
	txs, err := s.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	if f.Type != nil {
		txs = filter.ByType(txs, *f.Type)
	}

	if f.Status != nil {
		txs = filter.ByStatus(txs, *f.Status)
	}

	if f.HelperID != nil {
		txs = filter.Where(txs, func(t *ledger.Transaction) bool { return t.HelperID == *f.HelperID })
	}

	return txs, nil
}

// Summary is the platform-level money view.
type Summary struct {
	TotalIncome     int64
	TotalCommission int64
	TotalPayouts    int64
	PlatformBalance int64
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	txs, err := s.ledger.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("listing transactions: %w", err)
	}

	return Summary{
		TotalIncome:     finance.TotalIncome(txs),
		TotalCommission: finance.TotalCommission(txs),
		TotalPayouts:    finance.TotalPayouts(txs),
		PlatformBalance: finance.PlatformBalance(txs),
	}, nil
}

func (s *Service) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

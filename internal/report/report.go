// Package report computes the dashboard figures. Nothing here is cached; every
// call reads the current collections.
package report

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/betawi/internal/account"
	"github.com/MrJamesThe3rd/betawi/internal/audit"
	"github.com/MrJamesThe3rd/betawi/internal/booking"
	"github.com/MrJamesThe3rd/betawi/internal/contract"
	"github.com/MrJamesThe3rd/betawi/internal/filter"
	"github.com/MrJamesThe3rd/betawi/internal/finance"
	"github.com/MrJamesThe3rd/betawi/internal/helper"
	"github.com/MrJamesThe3rd/betawi/internal/household"
	"github.com/MrJamesThe3rd/betawi/internal/ledger"
	"github.com/MrJamesThe3rd/betawi/internal/message"
	"github.com/MrJamesThe3rd/betawi/internal/review"
)

type Lister[T any] interface {
	List(ctx context.Context) ([]*T, error)
}

// Sources are the collections the dashboard reads from.
type Sources struct {
	Helpers      Lister[helper.Helper]
	Households   Lister[household.Household]
	Bookings     Lister[booking.Booking]
	Contracts    Lister[contract.Contract]
	Transactions Lister[ledger.Transaction]
	Accounts     Lister[account.HelperAccount]
	Reviews      Lister[review.Review]
	Messages     Lister[message.Message]

	// Changes feeds Activity. Without it the feed is empty.
	Changes audit.Feed
}

type Metrics struct {
	PlatformBalance int64
	TotalIncome     int64
	TotalCommission int64
	TotalPayouts    int64
	PendingPayouts  int64
	AverageRating   float64

	Helpers           int
	VerifiedHelpers   int
	Households        int
	Bookings          int
	PendingBookings   int
	CompletedBookings int
	ActiveContracts   int
	Reviews           int
	FlaggedReviews    int
	UnreadMessages    int
}

type Service struct {
	src Sources
}

func NewService(src Sources) *Service {
	return &Service{src: src}
}

func (s *Service) Metrics(ctx context.Context) (Metrics, error) {
	helpers, err := s.src.Helpers.List(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("listing helpers: %w", err)
	}

	households, err := s.src.Households.List(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("listing households: %w", err)
	}

	bookings, err := s.src.Bookings.List(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("listing bookings: %w", err)
	}

	contracts, err := s.src.Contracts.List(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("listing contracts: %w", err)
	}

	txs, err := s.src.Transactions.List(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("listing transactions: %w", err)
	}

	accounts, err := s.src.Accounts.List(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("listing accounts: %w", err)
	}

	reviews, err := s.src.Reviews.List(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("listing reviews: %w", err)
	}

	messages, err := s.src.Messages.List(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("listing messages: %w", err)
	}

	var pending int64
	for _, a := range accounts {
		pending += a.PendingPayout
	}

	return Metrics{
		PlatformBalance: finance.PlatformBalance(txs),
		TotalIncome:     finance.TotalIncome(txs),
		TotalCommission: finance.TotalCommission(txs),
		TotalPayouts:    finance.TotalPayouts(txs),
		PendingPayouts:  pending,
		AverageRating:   review.AverageRating(reviews),

		Helpers:           len(helpers),
		VerifiedHelpers:   len(filter.Where(helpers, func(h *helper.Helper) bool { return h.Verified })),
		Households:        len(households),
		Bookings:          len(bookings),
		PendingBookings:   len(filter.ByStatus(bookings, booking.StatusPending)),
		CompletedBookings: len(filter.ByStatus(bookings, booking.StatusCompleted)),
		ActiveContracts:   len(filter.ByStatus(contracts, contract.StatusActive)),
		Reviews:           len(reviews),
		FlaggedReviews:    len(filter.ByStatus(reviews, review.StatusFlagged)),
		UnreadMessages:    len(filter.Where(messages, func(m *message.Message) bool { return !m.Read })),
	}, nil
}

package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/betawi/internal/booking"
	"github.com/MrJamesThe3rd/betawi/internal/filter"
	"github.com/MrJamesThe3rd/betawi/internal/helper"
)

// OthersName labels the bucket of helpers beyond the top ranks.
const OthersName = "Others"

// MonthTrend counts the bookings starting in one calendar month.
type MonthTrend struct {
	Month          time.Time
	Bookings       int
	Completed      int
	Pending        int
	CompletionRate float64
}

// HelperRank is a helper's booking count. The Others bucket has HelperID 0.
type HelperRank struct {
	HelperID int
	Name     string
	Bookings int
}

type ServiceShare struct {
	ServiceType string
	Bookings    int
	Percent     float64
}

type Analytics struct {
	Bookings       int
	Completed      int
	CompletionRate float64
	Trend          []MonthTrend
	TopHelpers     []HelperRank
	ServiceMix     []ServiceShare
}

// Analytics breaks bookings down by start month, helper and service type. top
// limits the helper ranking; the rest are folded into an Others entry.
func (s *Service) Analytics(ctx context.Context, top int) (Analytics, error) {
	bookings, err := s.src.Bookings.List(ctx)
	if err != nil {
		return Analytics{}, fmt.Errorf("listing bookings: %w", err)
	}

	helpers, err := s.src.Helpers.List(ctx)
	if err != nil {
		return Analytics{}, fmt.Errorf("listing helpers: %w", err)
	}

	completed := len(filter.ByStatus(bookings, booking.StatusCompleted))

	return Analytics{
		Bookings:       len(bookings),
		Completed:      completed,
		CompletionRate: percent(completed, len(bookings)),
		Trend:          monthlyTrend(bookings),
		TopHelpers:     topHelpers(bookings, helpers, top),
		ServiceMix:     serviceMix(bookings),
	}, nil
}

func monthlyTrend(bookings []*booking.Booking) []MonthTrend {
	byMonth := map[time.Time][]*booking.Booking{}

	for _, b := range bookings {
		y, m, _ := b.StartDate.UTC().Date()
		month := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		byMonth[month] = append(byMonth[month], b)
	}

	trend := make([]MonthTrend, 0, len(byMonth))

	for month, group := range byMonth {
		completed := len(filter.ByStatus(group, booking.StatusCompleted))
		trend = append(trend, MonthTrend{
			Month:          month,
			Bookings:       len(group),
			Completed:      completed,
			Pending:        len(filter.ByStatus(group, booking.StatusPending)),
			CompletionRate: percent(completed, len(group)),
		})
	}

	slices.SortFunc(trend, func(a, b MonthTrend) int { return a.Month.Compare(b.Month) })

	return trend
}

func topHelpers(bookings []*booking.Booking, helpers []*helper.Helper, top int) []HelperRank {
	counts := map[int]int{}
	for _, b := range bookings {
		counts[b.HelperID]++
	}

	names := make(map[int]string, len(helpers))
	for _, h := range helpers {
		names[h.ID] = h.Name
	}

	ranks := make([]HelperRank, 0, len(counts))

	for id, n := range counts {
		name, ok := names[id]
		if !ok {
			name = fmt.Sprintf("Helper #%d", id)
		}

		ranks = append(ranks, HelperRank{HelperID: id, Name: name, Bookings: n})
	}

	slices.SortFunc(ranks, func(a, b HelperRank) int {
		return cmp.Or(cmp.Compare(b.Bookings, a.Bookings), cmp.Compare(a.HelperID, b.HelperID))
	})

	if top <= 0 || len(ranks) <= top {
		return ranks
	}

	others := HelperRank{Name: OthersName}
	for _, r := range ranks[top:] {
		others.Bookings += r.Bookings
	}

	return append(ranks[:top:top], others)
}

func serviceMix(bookings []*booking.Booking) []ServiceShare {
	counts := map[string]int{}
	for _, b := range bookings {
		counts[b.ServiceType]++
	}

	mix := make([]ServiceShare, 0, len(counts))
	for service, n := range counts {
		mix = append(mix, ServiceShare{ServiceType: service, Bookings: n, Percent: percent(n, len(bookings))})
	}

	slices.SortFunc(mix, func(a, b ServiceShare) int {
		return cmp.Or(cmp.Compare(b.Bookings, a.Bookings), cmp.Compare(a.ServiceType, b.ServiceType))
	})

	return mix
}

// percent is part/whole as a percentage rounded to one decimal place, 0 for an empty whole.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}

	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(whole)), 1).
		InexactFloat64()
}

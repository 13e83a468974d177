package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/filter"
	"github.com/MrJamesThe3rd/betawi/internal/finance"
	"github.com/MrJamesThe3rd/betawi/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=booking
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id int) (*Booking, error)
	Update(ctx context.Context, id int, patch func(*Booking) error) (*Booking, error)
	List(ctx context.Context) ([]*Booking, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// DefaultServiceType is used when a booking is created without one.
const DefaultServiceType = "Childcare"

type CreateParams struct {
	HouseholdID int `validate:"required"`
	HelperID    int `validate:"required"`
	ServiceType string
	StartDate   time.Time `validate:"required"`
	EndDate     time.Time `validate:"required"`
	Location    string
}

type ListFilter struct {
	Status      *Status
	HelperID    *int
	HouseholdID *int
}

// Create books a helper for a household. New bookings always start Pending and
// their dates are stored as UTC midnight.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Booking, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	start, end := finance.DateOnly(params.StartDate), finance.DateOnly(params.EndDate)
	if end.Before(start) {
		return nil, errs.Invalid("endDate", "must not be before startDate")
	}

	b := &Booking{
		HouseholdID: params.HouseholdID,
		HelperID:    params.HelperID,
		ServiceType: strings.TrimSpace(params.ServiceType),
		StartDate:   start,
		EndDate:     end,
		Location:    params.Location,
		Status:      StatusPending,
	}

	if b.ServiceType == "" {
		b.ServiceType = DefaultServiceType
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	return b, nil
}

// Transition moves a booking to the target status if the table allows it.
func (s *Service) Transition(ctx context.Context, id int, to Status) (*Booking, error) {
	if !Machine.Valid(to) {
		return nil, errs.Invalid("status", fmt.Sprintf("unknown booking status %q", to))
	}

	b, err := s.repo.Update(ctx, id, func(b *Booking) error {
		if err := Machine.Transition(b.Status, to); err != nil {
			return err
		}

		b.Status = to

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("booking %d: %w", id, err)
	}

	return b, nil
}

func (s *Service) Approve(ctx context.Context, id int) (*Booking, error) {
	return s.Transition(ctx, id, StatusApproved)
}

func (s *Service) Complete(ctx context.Context, id int) (*Booking, error) {
	return s.Transition(ctx, id, StatusCompleted)
}

func (s *Service) Get(ctx context.Context, id int) (*Booking, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]*Booking, error) {
	bookings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}

	if f.Status != nil {
		bookings = filter.ByStatus(bookings, *f.Status)
	}

	if f.HelperID != nil {
		bookings = filter.Where(bookings, func(b *Booking) bool { return b.HelperID == *f.HelperID })
	}

	if f.HouseholdID != nil {
		bookings = filter.Where(bookings, func(b *Booking) bool { return b.HouseholdID == *f.HouseholdID })
	}

	return bookings, nil
}

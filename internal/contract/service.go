package contract

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/filter"
	"github.com/MrJamesThe3rd/betawi/internal/validate"
)

type Repository interface {
	Create(ctx context.Context, c *Contract) error
	Get(ctx context.Context, id int) (*Contract, error)
	Update(ctx context.Context, id int, patch func(*Contract) error) (*Contract, error)
	List(ctx context.Context) ([]*Contract, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	HelperID        int       `validate:"required"`
	HouseholdID     int       `validate:"required"`
	ServiceType     string    `validate:"required"`
	StartDate       time.Time `validate:"required"`
	EndDate         time.Time `validate:"required"`
	MonthlyRate     int64     `validate:"gt=0"`
	Status          Status    `validate:"omitempty,oneof=Pending Active Completed"`
	Terms           string
	PaymentSchedule string
}

// Create stores a contract in the requested status, Pending when none is given.
// An end date before the start date is rejected so the value can never go negative.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Contract, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	if params.EndDate.Before(params.StartDate) {
		return nil, errs.Invalid("endDate", "must not be before startDate")
	}

	c := &Contract{
		HelperID:        params.HelperID,
		HouseholdID:     params.HouseholdID,
		ServiceType:     params.ServiceType,
		StartDate:       params.StartDate,
		EndDate:         params.EndDate,
		MonthlyRate:     params.MonthlyRate,
		Status:          params.Status,
		Terms:           params.Terms,
		PaymentSchedule: params.PaymentSchedule,
	}

	if c.Status == "" {
		c.Status = StatusPending
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating contract: %w", err)
	}

	return c, nil
}

func (s *Service) Transition(ctx context.Context, id int, to Status) (*Contract, error) {
	if !Machine.Valid(to) {
		return nil, errs.Invalid("status", fmt.Sprintf("unknown contract status %q", to))
	}

	c, err := s.repo.Update(ctx, id, func(c *Contract) error {
		if err := Machine.Transition(c.Status, to); err != nil {
			return err
		}

		c.Status = to

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("contract %d: %w", id, err)
	}

	return c, nil
}

func (s *Service) Activate(ctx context.Context, id int) (*Contract, error) {
	return s.Transition(ctx, id, StatusActive)
}

func (s *Service) Complete(ctx context.Context, id int) (*Contract, error) {
	return s.Transition(ctx, id, StatusCompleted)
}

func (s *Service) Get(ctx context.Context, id int) (*Contract, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, status *Status) ([]*Contract, error) {
	contracts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}

	if status != nil {
		contracts = filter.ByStatus(contracts, *status)
	}

	return contracts, nil
}

package household

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/filter"
	"github.com/MrJamesThe3rd/betawi/internal/validate"
)

type Repository interface {
	Create(ctx context.Context, h *Household) error
	Get(ctx context.Context, id int) (*Household, error)
	Update(ctx context.Context, id int, patch func(*Household) error) (*Household, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]*Household, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name           string `validate:"required"`
	Children       int    `validate:"gte=0"`
	ChildrenAges   string
	TotalResidents int `validate:"gt=0"`
	MaleCount      int `validate:"gte=0"`
	FemaleCount    int `validate:"gte=0"`
	HouseType      string
	RoomSize       string
	NumberOfRooms  int           `validate:"gt=0"`
	HouseSize      HouseSize     `validate:"omitempty,oneof=Small Medium Large"`
	PaymentStatus  PaymentStatus `validate:"omitempty,oneof=Paid Pending"`
}

type UpdateParams struct {
	Name          *string `validate:"omitnil,min=1"`
	ChildrenAges  *string
	HouseType     *string
	HouseSize     *HouseSize     `validate:"omitnil,oneof=Small Medium Large"`
	PaymentStatus *PaymentStatus `validate:"omitnil,oneof=Paid Pending"`
}

type ListFilter struct {
	Verified      *bool
	PaymentStatus *PaymentStatus
}

// Create registers an unverified household. Room size defaults to "<rooms> Bedroom",
// house size to Medium and payment status to Pending.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Household, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	if err := checkOccupancy(params.TotalResidents, params.MaleCount, params.FemaleCount); err != nil {
		return nil, err
	}

	h := &Household{
		Name:           params.Name,
		Children:       params.Children,
		ChildrenAges:   params.ChildrenAges,
		TotalResidents: params.TotalResidents,
		MaleCount:      params.MaleCount,
		FemaleCount:    params.FemaleCount,
		HouseType:      params.HouseType,
		RoomSize:       params.RoomSize,
		NumberOfRooms:  params.NumberOfRooms,
		HouseSize:      params.HouseSize,
		PaymentStatus:  params.PaymentStatus,
	}

	if h.RoomSize == "" {
		h.RoomSize = fmt.Sprintf("%d Bedroom", h.NumberOfRooms)
	}

	if h.HouseSize == "" {
		h.HouseSize = HouseSizeMedium
	}

	if h.PaymentStatus == "" {
		h.PaymentStatus = PaymentPending
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("creating household: %w", err)
	}

	return h, nil
}

func (s *Service) Update(ctx context.Context, id int, params UpdateParams) (*Household, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	h, err := s.repo.Update(ctx, id, func(h *Household) error {
		if params.Name != nil {
			h.Name = *params.Name
		}

		if params.ChildrenAges != nil {
			h.ChildrenAges = *params.ChildrenAges
		}

		if params.HouseType != nil {
			h.HouseType = *params.HouseType
		}

		if params.HouseSize != nil {
			h.HouseSize = *params.HouseSize
		}

		if params.PaymentStatus != nil {
			h.PaymentStatus = *params.PaymentStatus
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("updating household: %w", err)
	}

	return h, nil
}

// Verify marks a household as verified. It is one-way; verifying twice is a no-op.
func (s *Service) Verify(ctx context.Context, id int) (*Household, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("verifying household: %w", err)
	}

	if current.Verified {
		return current, nil
	}

	h, err := s.repo.Update(ctx, id, func(h *Household) error {
		h.Verified = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("verifying household: %w", err)
	}

	return h, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Household, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting household: %w", err)
	}

	return nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]*Household, error) {
	households, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing households: %w", err)
	}

	if f.PaymentStatus != nil {
		households = filter.ByStatus(households, *f.PaymentStatus)
	}

	if f.Verified != nil {
		households = filter.Where(households, func(h *Household) bool { return h.Verified == *f.Verified })
	}

	return households, nil
}

// checkOccupancy requires the male/female split, when given, to add up to the resident count.
func checkOccupancy(total, male, female int) error {
	if male+female == 0 || male+female == total {
		return nil
	}

	return errs.Invalid("maleCount", fmt.Sprintf("male (%d) and female (%d) counts must add up to totalResidents (%d)", male, female, total))
}

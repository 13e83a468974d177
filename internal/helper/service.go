package helper

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/betawi/internal/filter"
	"github.com/MrJamesThe3rd/betawi/internal/validate"
)

type Repository interface {
	Create(ctx context.Context, h *Helper) error
	Get(ctx context.Context, id int) (*Helper, error)
	Update(ctx context.Context, id int, patch func(*Helper) error) (*Helper, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]*Helper, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name        string `validate:"required"`
	Age         int    `validate:"gt=0"`
	Type        Type   `validate:"required,oneof=Live-in Part-time On-demand Nanny"`
	MedicalInfo string
	Strengths   string
	Weaknesses  string
	FaydaID     string
	KebeleID    string
	Picture     string
}

// UpdateParams carries the fields to change; nil fields are left alone.
type UpdateParams struct {
	Name        *string `validate:"omitnil,min=1"`
	Age         *int    `validate:"omitnil,gt=0"`
	Type        *Type   `validate:"omitnil,oneof=Live-in Part-time On-demand Nanny"`
	MedicalInfo *string
	Strengths   *string
	Weaknesses  *string
	FaydaID     *string
	KebeleID    *string
	Picture     *string
}

type ListFilter struct {
	Verified *bool
	Type     *Type
}

// Create registers a helper. New helpers always start unverified.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Helper, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	h := &Helper{
		Name:        params.Name,
		Age:         params.Age,
		Type:        params.Type,
		MedicalInfo: params.MedicalInfo,
		Strengths:   params.Strengths,
		Weaknesses:  params.Weaknesses,
		FaydaID:     params.FaydaID,
		KebeleID:    params.KebeleID,
		Picture:     params.Picture,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("creating helper: %w", err)
	}

	return h, nil
}

// Update edits a helper's details. Verification is kept as is.
func (s *Service) Update(ctx context.Context, id int, params UpdateParams) (*Helper, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	h, err := s.repo.Update(ctx, id, func(h *Helper) error {
		setIf(&h.Name, params.Name)
		setIf(&h.Age, params.Age)
		setIf(&h.Type, params.Type)
		setIf(&h.MedicalInfo, params.MedicalInfo)
		setIf(&h.Strengths, params.Strengths)
		setIf(&h.Weaknesses, params.Weaknesses)
		setIf(&h.FaydaID, params.FaydaID)
		setIf(&h.KebeleID, params.KebeleID)
		setIf(&h.Picture, params.Picture)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("updating helper: %w", err)
	}

	return h, nil
}

// Verify marks a helper as verified. It is one-way; verifying twice is a no-op.
func (s *Service) Verify(ctx context.Context, id int) (*Helper, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("verifying helper: %w", err)
	}

	if current.Verified {
		return current, nil
	}

	h, err := s.repo.Update(ctx, id, func(h *Helper) error {
		h.Verified = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("verifying helper: %w", err)
	}

	return h, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Helper, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting helper: %w", err)
	}

	return nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]*Helper, error) {
	helpers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing helpers: %w", err)
	}

	if f.Type != nil {
		helpers = filter.ByType(helpers, *f.Type)
	}

	if f.Verified != nil {
		helpers = filter.Where(helpers, func(h *Helper) bool { return h.Verified == *f.Verified })
	}

	return helpers, nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

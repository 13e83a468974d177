package review

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/betawi/internal/filter"
	"github.com/MrJamesThe3rd/betawi/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=review
type Repository interface {
	Create(ctx context.Context, r *Review) error
	Get(ctx context.Context, id int) (*Review, error)
	Update(ctx context.Context, id int, patch func(*Review) error) (*Review, error)
	List(ctx context.Context) ([]*Review, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	HouseholdID int `validate:"required"`
	HelperID    int `validate:"required"`
	Rating      int `validate:"gte=1,lte=5"`
	Comment     string
	Date        time.Time `validate:"required"`
}

// Create records a review awaiting moderation.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Review, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	r := &Review{
		HouseholdID: params.HouseholdID,
		HelperID:    params.HelperID,
		Rating:      params.Rating,
		Comment:     params.Comment,
		Date:        params.Date,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("creating review: %w", err)
	}

	return r, nil
}

func (s *Service) Resolve(ctx context.Context, id int) (*Review, error) {
	return s.moveTo(ctx, id, StatusResolved)
}

// Flag escalates a pending review. Resolved and already flagged reviews are rejected.
func (s *Service) Flag(ctx context.Context, id int) (*Review, error) {
	return s.moveTo(ctx, id, StatusFlagged)
}

func (s *Service) moveTo(ctx context.Context, id int, to Status) (*Review, error) {
	r, err := s.repo.Update(ctx, id, func(r *Review) error {
		if err := Machine.Transition(r.Status, to); err != nil {
			return err
		}

		r.Status = to

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("review %d: %w", id, err)
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Review, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, status *Status) ([]*Review, error) {
	reviews, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}

	if status != nil {
		reviews = filter.ByStatus(reviews, *status)
	}

	return reviews, nil
}

// Stats summarises the moderation queue.
type Stats struct {
	Total         int
	AverageRating float64
	Pending       int
	Flagged       int
	Resolved      int
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	reviews, err := s.repo.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("listing reviews: %w", err)
	}

	return Stats{
		Total:         len(reviews),
		AverageRating: AverageRating(reviews),
		Pending:       len(filter.ByStatus(reviews, StatusPending)),
		Flagged:       len(filter.ByStatus(reviews, StatusFlagged)),
		Resolved:      len(filter.ByStatus(reviews, StatusResolved)),
	}, nil
}

package contact

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/betawi/internal/filter"
	"github.com/MrJamesThe3rd/betawi/internal/validate"
)

type Repository interface {
	Create(ctx context.Context, c *Contact) error
	Get(ctx context.Context, id int) (*Contact, error)
	Update(ctx context.Context, id int, patch func(*Contact) error) (*Contact, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]*Contact, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Params is used for both create and full replace on update.
type Params struct {
	Name             string `validate:"required"`
	Type             Type   `validate:"required,oneof=Helper Household"`
	Phone            string `validate:"required"`
	Email            string `validate:"required,email"`
	Address          string
	City             string
	EmergencyContact string
	EmergencyPhone   string
}

func (p Params) apply(c *Contact) {
	c.Name = p.Name
	c.Type = p.Type
	c.Phone = p.Phone
	c.Email = p.Email
	c.Address = p.Address
	c.City = p.City
	c.EmergencyContact = p.EmergencyContact
	c.EmergencyPhone = p.EmergencyPhone
}

func (s *Service) Create(ctx context.Context, params Params) (*Contact, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	c := &Contact{}
	params.apply(c)

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	return c, nil
}

func (s *Service) Update(ctx context.Context, id int, params Params) (*Contact, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	c, err := s.repo.Update(ctx, id, func(c *Contact) error {
		params.apply(c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("updating contact: %w", err)
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id int) (*Contact, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, kind *Type) ([]*Contact, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}

	if kind != nil {
		contacts = filter.ByType(contacts, *kind)
	}

	return contacts, nil
}

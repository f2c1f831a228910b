package usecase

import (
	"context"
	"net/mail"
	"strings"

	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
	"github.com/polkiloo/gopos/internal/domain/model"
	"github.com/polkiloo/gopos/internal/domain/repository"
)

// CustomerUseCase maintains the loyalty customer directory.
type CustomerUseCase struct {
	customers repository.CustomerRepository
}

// NewCustomerUseCase constructs CustomerUseCase.
func NewCustomerUseCase(customers repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customers: customers}
}

// List returns customers with their loyalty balance, ordered by name.
func (u *CustomerUseCase) List(ctx context.Context, search string) ([]model.Customer, error) {
	return u.customers.List(ctx, strings.TrimSpace(search))
}

func (u *CustomerUseCase) Get(ctx context.Context, id string) (*model.Customer, error) {
	return u.customers.GetByID(ctx, id)
}

// Create registers a customer with a zero balance.
func (u *CustomerUseCase) Create(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	if err := normalizeCustomer(&customer); err != nil {
		return nil, err
	}
	customer.ID = ""
	customer.LoyaltyPoints = 0
	return u.customers.Create(ctx, customer)
}

// Update rewrites contact details of an existing customer.
func (u *CustomerUseCase) Update(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	if strings.TrimSpace(customer.ID) == "" {
		return nil, domainErrors.NewValidationError("id", "is required")
	}
	if err := normalizeCustomer(&customer); err != nil {
		return nil, err
	}
	return u.customers.Update(ctx, customer)
}

func normalizeCustomer(c *model.Customer) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)

	if c.Name == "" {
		return domainErrors.NewValidationError("name", "is required")
	}
	if c.Email != "" {
		if addr, err := mail.ParseAddress(c.Email); err != nil || addr.Address != c.Email {
			return domainErrors.NewValidationError("email", "is not a valid address")
		}
	}
	return nil
}

// LocationUseCase lists the places a sale can be rung up at.
type LocationUseCase struct {
	locations repository.LocationRepository
}

// NewLocationUseCase constructs LocationUseCase.
func NewLocationUseCase(locations repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locations: locations}
}

func (u *LocationUseCase) List(ctx context.Context) ([]model.Location, error) {
	return u.locations.List(ctx)
}

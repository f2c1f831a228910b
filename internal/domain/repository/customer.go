package repository

import (
	"context"

	"github.com/polkiloo/gopos/internal/domain/model"
)

// CustomerRepository stores loyalty customers.
type CustomerRepository interface {
	// List returns customers ordered by name. A non-empty search matches name, email or phone.
	List(ctx context.Context, search string) ([]model.Customer, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	Create(ctx context.Context, customer model.Customer) (*model.Customer, error)
	// Update rewrites contact details. The loyalty balance is only changed by settlement.
	Update(ctx context.Context, customer model.Customer) (*model.Customer, error)
}

// LocationRepository lists store locations.
type LocationRepository interface {
	List(ctx context.Context) ([]model.Location, error)
}

package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
	"github.com/polkiloo/gopos/internal/domain/model"
	"github.com/polkiloo/gopos/internal/domain/repository"
)

const (
	defaultOrderLimit = 100
	maxOrderLimit     = 500
)

// OrderUseCase exposes the order ledger to back-office screens.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// ListRecent returns newest orders first. Non-positive limits select the default page size.
func (u *OrderUseCase) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	switch {
	case limit <= 0:
		limit = defaultOrderLimit
	case limit > maxOrderLimit:
		limit = maxOrderLimit
	}
	return u.orders.ListRecent(ctx, limit)
}

// Get returns an order with its line items and payments.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// UpdateStatus moves an order to another status. Orders are never deleted.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	return u.orders.UpdateStatus(ctx, id, status)
}

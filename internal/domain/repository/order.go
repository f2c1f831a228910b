package repository

import (
	"context"

	"github.com/polkiloo/gopos/internal/domain/model"
)

// OrderRepository describes read and status operations on the order ledger.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
}

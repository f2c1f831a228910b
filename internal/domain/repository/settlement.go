package repository

import (
	"context"

	"github.com/polkiloo/gopos/internal/domain/model"
)

// SettlementTx is the set of writes a settlement performs inside one unit of work.
type SettlementTx interface {
	LocationExists(ctx context.Context, locationID string) (bool, error)
	// LockCustomerPoints returns the balance and holds the row until commit.
	LockCustomerPoints(ctx context.Context, customerID string) (int64, error)
	NextOrderSequence(ctx context.Context) (int64, error)
	InsertOrder(ctx context.Context, order *model.Order) error
	InsertLineItems(ctx context.Context, items []model.LineItem) error
	InsertPayments(ctx context.Context, payments []model.Payment) error
	// DecrementStock fails with InsufficientStockError when the level is missing or too low.
	DecrementStock(ctx context.Context, variantID, locationID string, quantity int) error
	SetCustomerPoints(ctx context.Context, customerID string, points int64) error
	EnqueueEvent(ctx context.Context, event model.OutboxEvent) error
}

// UnitOfWork runs fn inside a transaction that commits only when fn returns nil.
type UnitOfWork interface {
	WithinSettlement(ctx context.Context, fn func(tx SettlementTx) error) error
}

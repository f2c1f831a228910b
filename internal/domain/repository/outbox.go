package repository

import (
	"context"

	"github.com/polkiloo/gopos/internal/domain/model"
)

// OutboxRepository feeds the notification dispatcher.
type OutboxRepository interface {
	ClaimPending(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64) error
}

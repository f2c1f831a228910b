// Package notify delivers settlement events to downstream consumers.
package notify

import (
	"context"
	"log/slog"

	"github.com/polkiloo/gopos/internal/domain/model"
)

// Publisher sends one outbox event.
type Publisher interface {
	Publish(ctx context.Context, event model.OutboxEvent) error
	Close() error
}

// LogPublisher writes events to the structured log when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher constructs LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event model.OutboxEvent) error {
	p.logger.InfoContext(ctx, "event published",
		slog.String("event_id", event.EventID),
		slog.String("type", event.Type),
		slog.String("key", event.Key),
		slog.String("payload", string(event.Payload)),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }

package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/gopos/internal/domain/model"
	"github.com/polkiloo/gopos/internal/domain/repository"
)

// Publisher delivers one event to the outside world.
type Publisher interface {
	Publish(ctx context.Context, event model.OutboxEvent) error
}

// DispatchObserver is told how each event was handled.
type DispatchObserver interface {
	ObserveDispatch(result string)
}

// Dispatch results reported to DispatchObserver.
const (
	DispatchSent   = "sent"
	DispatchFailed = "failed"
)

type nopDispatchObserver struct{}

func (nopDispatchObserver) ObserveDispatch(string) {}

// OutboxDispatcher polls the outbox and publishes pending events concurrently.
type OutboxDispatcher struct {
	outbox       repository.OutboxRepository
	publisher    Publisher
	observer     DispatchObserver
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.OutboxEvent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOutboxDispatcher constructs the dispatcher worker pool. A nil observer is allowed.
func NewOutboxDispatcher(outbox repository.OutboxRepository, publisher Publisher, observer DispatchObserver,
	pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *OutboxDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	if observer == nil {
		observer = nopDispatchObserver{}
	}
	return &OutboxDispatcher{
		outbox:       outbox,
		publisher:    publisher,
		observer:     observer,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
	}
}

// Start launches background processing.
func (d *OutboxDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.jobs = make(chan model.OutboxEvent, d.batchSize*d.workers)

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}

	d.wg.Add(1)
	go d.poll(runCtx)
}

// Stop waits for in-flight events to finish.
func (d *OutboxDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *OutboxDispatcher) poll(ctx context.Context) {
	defer d.wg.Done()
	defer close(d.jobs)
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.claimAndDispatch(ctx)
		}
	}
}

func (d *OutboxDispatcher) claimAndDispatch(ctx context.Context) {
	events, err := d.outbox.ClaimPending(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("claim outbox events failed", slog.String("error", err.Error()))
		return
	}
	for _, event := range events {
		select {
		case <-ctx.Done():
			return
		case d.jobs <- event:
		}
	}
}

func (d *OutboxDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-d.jobs:
			if !ok {
				return
			}
			d.handle(ctx, event)
		}
	}
}

func (d *OutboxDispatcher) handle(ctx context.Context, event model.OutboxEvent) {
	if err := d.publisher.Publish(ctx, event); err != nil {
		d.observer.ObserveDispatch(DispatchFailed)
		d.logger.Warn("publish event failed",
			slog.String("event_id", event.EventID),
			slog.Int("attempts", event.Attempts+1),
			slog.String("error", err.Error()),
		)
		if err := d.outbox.MarkFailed(ctx, event.ID); err != nil {
			d.logger.Error("mark event failed", slog.Int64("id", event.ID), slog.String("error", err.Error()))
		}
		return
	}

	d.observer.ObserveDispatch(DispatchSent)
	if err := d.outbox.MarkSent(ctx, event.ID); err != nil {
		d.logger.Error("mark event sent", slog.Int64("id", event.ID), slog.String("error", err.Error()))
	}
}

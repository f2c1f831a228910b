package postgres

import (
	"context"
	"sort"

	"github.com/polkiloo/gopos/internal/domain/model"
)

// ClaimPending leases unsent events for 30 seconds so concurrent dispatchers skip them.
func (r *outboxRepository) ClaimPending(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	const query = `UPDATE outbox SET locked_until = NOW() + INTERVAL '30 seconds'
                   WHERE id IN (
                       SELECT id FROM outbox
                       WHERE sent_at IS NULL AND (locked_until IS NULL OR locked_until < NOW())
                       ORDER BY id
                       LIMIT $1
                       FOR UPDATE SKIP LOCKED
                   )
                   RETURNING id, event_id, event_type, event_key, payload::text, attempts, created_at`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.OutboxEvent
	for rows.Next() {
		var (
			e       model.OutboxEvent
			payload string
		)
		if err := rows.Scan(&e.ID, &e.EventID, &e.Type, &e.Key, &payload, &e.Attempts, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Payload = []byte(payload)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id int64) error {
	const query = `UPDATE outbox SET sent_at = NOW(), locked_until = NULL WHERE id=$1`
	_, err := r.storage.pool.Exec(ctx, query, id)
	return err
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id int64) error {
	const query = `UPDATE outbox SET attempts = attempts + 1, locked_until = NULL WHERE id=$1`
	_, err := r.storage.pool.Exec(ctx, query, id)
	return err
}

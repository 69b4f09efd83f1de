package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessagingSystem tags the broker an outbox message is destined for.
type MessagingSystem string

const MessagingSystemRabbitMQ MessagingSystem = "rabbitmq"

// OutboxMessage is a durably staged integration event. The id doubles as
// the event id and therefore as the consumer-side idempotency key.
type OutboxMessage struct {
	ID              uuid.UUID       `json:"id"`
	AggregateID     uuid.UUID       `json:"aggregate_id"`
	MessagingSystem MessagingSystem `json:"messaging_system"`
	Target          string          `json:"target"`
	Payload         []byte          `json:"payload"`
}

// DefaultOutboxBucketingWindow is deliberately small: outbox buckets group
// messages staged within the same sub-second window.
const DefaultOutboxBucketingWindow = 100 * time.Millisecond

// OutboxRepository stages integration events in time-bucketed rows, written
// inside the same transaction as the aggregate save. Draining removes the
// single earliest bucket and hands back its messages in insertion order.
type OutboxRepository struct {
	pool   *pgxpool.Pool
	window time.Duration
	newID  func() uuid.UUID
	now    func() time.Time
}

func NewOutboxRepository(pool *pgxpool.Pool, window time.Duration) *OutboxRepository {
	return &OutboxRepository{
		pool:   pool,
		window: window,
		newID:  uuid.New,
		now:    time.Now,
	}
}

const appendOutboxSQL = `
	INSERT INTO outbox_messages (id, time, bucket)
	VALUES ($1, $2, jsonb_build_array($3::jsonb))
	ON CONFLICT (time) DO UPDATE SET bucket = outbox_messages.bucket || EXCLUDED.bucket
`

func (r *OutboxRepository) Save(ctx context.Context, msg OutboxMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox message: %w", err)
	}
	window := fitIntoBucketingWindow(r.now(), r.window)
	if _, err := querier(ctx, r.pool).Exec(ctx, appendOutboxSQL, r.newID(), window, payload); err != nil {
		return fmt.Errorf("failed to save outbox message: %w", err)
	}
	return nil
}

const drainOutboxSQL = `
	DELETE FROM outbox_messages
	WHERE id = (
		SELECT id FROM outbox_messages
		ORDER BY time ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	)
	RETURNING bucket
`

// FindAndRemove drains the earliest bucket. The delete only becomes
// permanent when the enclosing transaction commits, so a failed publishing
// pass leaves the bucket in place for the next tick.
func (r *OutboxRepository) FindAndRemove(ctx context.Context) ([]OutboxMessage, error) {
	var raw []byte
	err := querier(ctx, r.pool).QueryRow(ctx, drainOutboxSQL).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to drain outbox: %w", err)
	}
	var msgs []OutboxMessage
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode outbox bucket: %w", err)
	}
	return msgs, nil
}

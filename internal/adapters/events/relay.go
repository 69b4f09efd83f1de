package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/outbidhq/auction-service/internal/adapters/database"
	"github.com/outbidhq/auction-service/internal/app"
	"github.com/outbidhq/auction-service/internal/observability"
)

// DefaultRelayInterval is the fixed delay between publishing passes.
const DefaultRelayInterval = 100 * time.Millisecond

// OutboxSource drains staged integration events.
type OutboxSource interface {
	FindAndRemove(ctx context.Context) ([]database.OutboxMessage, error)
}

// BrokerPublisher hands a payload to a message broker.
type BrokerPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// OutboxRelay polls the outbox and publishes each drained bucket to the
// broker, batched per messaging system. Drain and publish happen in one
// transaction: a broker failure rolls the drain back and the bucket is
// retried on the next pass, forever. Consumers must therefore tolerate
// duplicates.
type OutboxRelay struct {
	outbox    OutboxSource
	publisher BrokerPublisher
	tx        app.TransactionManager
	metrics   *observability.Metrics
	interval  time.Duration
	logger    *slog.Logger
}

func NewOutboxRelay(
	outbox OutboxSource,
	publisher BrokerPublisher,
	tx app.TransactionManager,
	metrics *observability.Metrics,
	interval time.Duration,
	logger *slog.Logger,
) *OutboxRelay {
	return &OutboxRelay{
		outbox:    outbox,
		publisher: publisher,
		tx:        tx,
		metrics:   metrics,
		interval:  interval,
		logger:    logger,
	}
}

// Run polls with a fixed delay between passes (a slow pass does not cause
// a burst of catch-up passes) until the context is cancelled.
func (r *OutboxRelay) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			if err := r.processBatch(ctx); err != nil {
				r.logger.Error("failed to publish outbox batch", "error", err)
			}
			timer.Reset(r.interval)
		}
	}
}

func (r *OutboxRelay) processBatch(ctx context.Context) error {
	var published int
	err := r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		msgs, err := r.outbox.FindAndRemove(ctx)
		if err != nil {
			return err
		}
		for system, batch := range groupByMessagingSystem(msgs) {
			if err := r.sendBatch(ctx, system, batch); err != nil {
				return err
			}
		}
		published = len(msgs)
		return nil
	})
	if err != nil {
		r.metrics.OutboxPublishFail.Inc()
		return err
	}
	if published > 0 {
		r.metrics.OutboxPublishSuccess.Add(float64(published))
		r.logger.Debug("published outbox batch", "count", published)
	}
	return nil
}

func (r *OutboxRelay) sendBatch(ctx context.Context, system database.MessagingSystem, batch []database.OutboxMessage) error {
	switch system {
	case database.MessagingSystemRabbitMQ:
		for _, msg := range batch {
			if err := r.publisher.Publish(ctx, msg.Target, msg.Payload); err != nil {
				return fmt.Errorf("failed to publish message %s: %w", msg.ID, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown messaging system %q", system)
	}
}

// groupByMessagingSystem preserves the drained order within each system.
func groupByMessagingSystem(msgs []database.OutboxMessage) map[database.MessagingSystem][]database.OutboxMessage {
	groups := make(map[database.MessagingSystem][]database.OutboxMessage, 1)
	for _, msg := range msgs {
		groups[msg.MessagingSystem] = append(groups[msg.MessagingSystem], msg)
	}
	return groups
}

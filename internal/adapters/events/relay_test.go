package events

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outbidhq/auction-service/internal/adapters/database"
	"github.com/outbidhq/auction-service/internal/observability"
)

type fakeOutboxSource struct {
	msgs []database.OutboxMessage
	err  error
}

func (f *fakeOutboxSource) FindAndRemove(context.Context) ([]database.OutboxMessage, error) {
	return f.msgs, f.err
}

type fakeBroker struct {
	published []string
	err       error
}

func (f *fakeBroker) Publish(_ context.Context, routingKey string, _ []byte) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, routingKey)
	return nil
}

// inlineTxManager runs the unit of work without a real transaction and
// records whether it would have committed.
type inlineTxManager struct {
	committed bool
}

func (m *inlineTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	m.committed = true
	return nil
}

func rabbitMessage(target string) database.OutboxMessage {
	return database.OutboxMessage{
		ID:              uuid.New(),
		AggregateID:     uuid.New(),
		MessagingSystem: database.MessagingSystemRabbitMQ,
		Target:          target,
		Payload:         []byte(`{}`),
	}
}

func TestOutboxRelay_processBatch(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	newRelay := func(source *fakeOutboxSource, broker *fakeBroker, tx *inlineTxManager, metrics *observability.Metrics) *OutboxRelay {
		return NewOutboxRelay(source, broker, tx, metrics, time.Millisecond, logger)
	}

	t.Run("publishes the drained bucket and counts successes", func(t *testing.T) {
		metrics := observability.NewMetricsWithRegistry(prometheus.NewRegistry())
		source := &fakeOutboxSource{msgs: []database.OutboxMessage{rabbitMessage("public.auctions"), rabbitMessage("public.auctions")}}
		broker := &fakeBroker{}
		tx := &inlineTxManager{}

		err := newRelay(source, broker, tx, metrics).processBatch(context.Background())

		require.NoError(t, err)
		assert.True(t, tx.committed)
		assert.Equal(t, []string{"public.auctions", "public.auctions"}, broker.published)
		assert.Equal(t, 2.0, testutil.ToFloat64(metrics.OutboxPublishSuccess))
		assert.Equal(t, 0.0, testutil.ToFloat64(metrics.OutboxPublishFail))
	})

	t.Run("an empty outbox is a quiet no-op", func(t *testing.T) {
		metrics := observability.NewMetricsWithRegistry(prometheus.NewRegistry())
		source := &fakeOutboxSource{}
		broker := &fakeBroker{}
		tx := &inlineTxManager{}

		err := newRelay(source, broker, tx, metrics).processBatch(context.Background())

		require.NoError(t, err)
		assert.Empty(t, broker.published)
		assert.Equal(t, 0.0, testutil.ToFloat64(metrics.OutboxPublishSuccess))
	})

	t.Run("a broker failure aborts the transaction and counts a failure", func(t *testing.T) {
		metrics := observability.NewMetricsWithRegistry(prometheus.NewRegistry())
		source := &fakeOutboxSource{msgs: []database.OutboxMessage{rabbitMessage("public.auctions")}}
		broker := &fakeBroker{err: errors.New("broker down")}
		tx := &inlineTxManager{}

		err := newRelay(source, broker, tx, metrics).processBatch(context.Background())

		assert.Error(t, err)
		assert.False(t, tx.committed)
		assert.Equal(t, 0.0, testutil.ToFloat64(metrics.OutboxPublishSuccess))
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.OutboxPublishFail))
	})

	t.Run("keeps the drained order within a system's batch", func(t *testing.T) {
		metrics := observability.NewMetricsWithRegistry(prometheus.NewRegistry())
		source := &fakeOutboxSource{msgs: []database.OutboxMessage{
			rabbitMessage("public.auctions"),
			rabbitMessage("public.auto-bids"),
			rabbitMessage("public.auctions"),
		}}
		broker := &fakeBroker{}
		tx := &inlineTxManager{}

		err := newRelay(source, broker, tx, metrics).processBatch(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"public.auctions", "public.auto-bids", "public.auctions"}, broker.published)
		assert.Equal(t, 3.0, testutil.ToFloat64(metrics.OutboxPublishSuccess))
	})

	t.Run("an unknown messaging system aborts the batch", func(t *testing.T) {
		metrics := observability.NewMetricsWithRegistry(prometheus.NewRegistry())
		msg := rabbitMessage("public.auctions")
		msg.MessagingSystem = "kafka"
		source := &fakeOutboxSource{msgs: []database.OutboxMessage{msg}}
		broker := &fakeBroker{}
		tx := &inlineTxManager{}

		err := newRelay(source, broker, tx, metrics).processBatch(context.Background())

		assert.Error(t, err)
		assert.False(t, tx.committed)
		assert.Empty(t, broker.published)
	})
}

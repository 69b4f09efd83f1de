package events

import (
	"context"

	"github.com/outbidhq/auction-service/internal/domain/auction"
	"github.com/outbidhq/auction-service/internal/observability"
)

// PublishMetrics counts every domain event by type.
type PublishMetrics struct {
	metrics *observability.Metrics
}

func NewPublishMetrics(metrics *observability.Metrics) *PublishMetrics {
	return &PublishMetrics{metrics: metrics}
}

func (h *PublishMetrics) Handle(_ context.Context, event auction.DomainEvent) error {
	h.metrics.DomainEvents.WithLabelValues(event.Name()).Inc()
	return nil
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the auction service.
type Metrics struct {
	// Domain outcomes
	DomainEvents *prometheus.CounterVec
	DomainErrors *prometheus.CounterVec
	Crashes      *prometheus.CounterVec

	// Outbox publishing
	OutboxPublishSuccess prometheus.Counter
	OutboxPublishFail    prometheus.Counter
}

// NewMetrics registers all metrics with the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry registers metrics with a custom registry (useful
// for testing).
func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DomainEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_domain_events_total",
				Help: "Total number of domain events produced",
			},
			[]string{"type"},
		),
		DomainErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_domain_errors_total",
				Help: "Total number of expected domain errors",
			},
			[]string{"type", "use_case"},
		),
		Crashes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_crashes_total",
				Help: "Total number of unexpected use-case failures",
			},
			[]string{"use_case"},
		),
		OutboxPublishSuccess: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "auction_outbox_publish_success_total",
				Help: "Total number of outbox messages published to the broker",
			},
		),
		OutboxPublishFail: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "auction_outbox_publish_fail_total",
				Help: "Total number of failed outbox publishing passes",
			},
		),
	}
}

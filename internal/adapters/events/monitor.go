package events

import (
	"log/slog"

	"github.com/outbidhq/auction-service/internal/domain/auction"
	"github.com/outbidhq/auction-service/internal/observability"
)

// MonitorErrors reports use-case outcomes. Domain errors are expected
// business answers and log at warn; crashes are bugs or infrastructure
// failures and log at error.
type MonitorErrors struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewMonitorErrors(logger *slog.Logger, metrics *observability.Metrics) *MonitorErrors {
	return &MonitorErrors{logger: logger, metrics: metrics}
}

func (m *MonitorErrors) ReportError(err *auction.Error, useCase string) {
	m.logger.Warn("domain error", "type", err.Code(), "use_case", useCase, "error", err)
	m.metrics.DomainErrors.WithLabelValues(err.Code(), useCase).Inc()
}

func (m *MonitorErrors) ReportCrash(err error, useCase string) {
	m.logger.Error("use case crashed", "use_case", useCase, "error", err)
	m.metrics.Crashes.WithLabelValues(useCase).Inc()
}

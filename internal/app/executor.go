package app

import (
	"context"
	"errors"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

// UseCaseExecutor is the single envelope around every use-case invocation.
// It guarantees that persisting the aggregate and fanning the resulting
// event out to handlers (outbox write included) happen in one transaction:
// if the transaction commits, both happened; if it aborts, neither is
// visible.
type UseCaseExecutor struct {
	tx        TransactionManager
	publisher EventPublisher
	monitor   Monitor
}

func NewUseCaseExecutor(tx TransactionManager, publisher EventPublisher, monitor Monitor) *UseCaseExecutor {
	return &UseCaseExecutor{tx: tx, publisher: publisher, monitor: monitor}
}

// Execute runs op inside a transaction scope. A domain error is an expected
// outcome: it is reported, returned untouched, and does not abort the
// transaction (op short-circuits before writing anything). Any other error
// is a crash: reported, and returned after the transaction rolls back.
func (x *UseCaseExecutor) Execute(ctx context.Context, useCase string, op func(ctx context.Context) (auction.DomainEvent, error)) error {
	var domainErr *auction.Error
	err := x.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		event, err := op(ctx)
		if err != nil {
			if errors.As(err, &domainErr) {
				x.monitor.ReportError(domainErr, useCase)
				return nil
			}
			return err
		}
		return x.publisher.Publish(ctx, event)
	})
	if err != nil {
		x.monitor.ReportCrash(err, useCase)
		return err
	}
	if domainErr != nil {
		return domainErr
	}
	return nil
}

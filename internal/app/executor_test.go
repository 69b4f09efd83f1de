package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

func TestUseCaseExecutor_Execute(t *testing.T) {
	event := auction.AuctionOpened{}

	t.Run("publishes the event on success", func(t *testing.T) {
		publisher := new(MockPublisher)
		publisher.On("Publish", mock.Anything, event).Return(nil)
		monitor := new(MockMonitor)
		tx := &stubTxManager{}
		executor := NewUseCaseExecutor(tx, publisher, monitor)

		err := executor.Execute(context.Background(), "OpenAuction", func(ctx context.Context) (auction.DomainEvent, error) {
			return event, nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, tx.calls)
		publisher.AssertExpectations(t)
		monitor.AssertNotCalled(t, "ReportError", mock.Anything, mock.Anything)
		monitor.AssertNotCalled(t, "ReportCrash", mock.Anything, mock.Anything)
	})

	t.Run("reports a domain error and returns it without publishing", func(t *testing.T) {
		publisher := new(MockPublisher)
		monitor := new(MockMonitor)
		monitor.On("ReportError", auction.ErrTooEarlyToOpen, "OpenAuction").Return()
		executor := NewUseCaseExecutor(&stubTxManager{}, publisher, monitor)

		err := executor.Execute(context.Background(), "OpenAuction", func(ctx context.Context) (auction.DomainEvent, error) {
			return nil, auction.ErrTooEarlyToOpen
		})

		assert.ErrorIs(t, err, auction.ErrTooEarlyToOpen)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		monitor.AssertExpectations(t)
	})

	t.Run("reports any other error as a crash", func(t *testing.T) {
		boom := errors.New("connection reset")
		publisher := new(MockPublisher)
		monitor := new(MockMonitor)
		monitor.On("ReportCrash", boom, "OpenAuction").Return()
		executor := NewUseCaseExecutor(&stubTxManager{}, publisher, monitor)

		err := executor.Execute(context.Background(), "OpenAuction", func(ctx context.Context) (auction.DomainEvent, error) {
			return nil, boom
		})

		assert.ErrorIs(t, err, boom)
		monitor.AssertExpectations(t)
	})

	t.Run("treats a handler failure as a crash", func(t *testing.T) {
		boom := errors.New("outbox unavailable")
		publisher := new(MockPublisher)
		publisher.On("Publish", mock.Anything, event).Return(boom)
		monitor := new(MockMonitor)
		monitor.On("ReportCrash", boom, "OpenAuction").Return()
		executor := NewUseCaseExecutor(&stubTxManager{}, publisher, monitor)

		err := executor.Execute(context.Background(), "OpenAuction", func(ctx context.Context) (auction.DomainEvent, error) {
			return event, nil
		})

		assert.ErrorIs(t, err, boom)
		monitor.AssertExpectations(t)
	})
}

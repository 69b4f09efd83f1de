package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/outbidhq/auction-service/internal/adapters/database"
	"github.com/outbidhq/auction-service/internal/app"
)

// DefaultPollInterval is the fixed delay between polling passes.
const DefaultPollInterval = 200 * time.Millisecond

type OpenTaskSource interface {
	FindPendingToOpenAndRemove(ctx context.Context) ([]database.OpenAuctionTask, error)
}

type EndTaskSource interface {
	FindPendingToEndAndRemove(ctx context.Context) ([]database.EndAuctionTask, error)
}

type AuctionOpener interface {
	OpenAuction(ctx context.Context, cmd app.OpenAuctionCommand) error
}

type AuctionEnder interface {
	EndAuction(ctx context.Context, cmd app.EndAuctionCommand) error
}

// OpenTaskPoller drains due open-task buckets and triggers the open use
// case for each task. Each pass runs in one transaction: the drain only
// commits together with the task invocations, so a crash mid-pass rolls
// the bucket back for the next tick. Within a completed pass, failures
// are isolated per task and logged; those tasks are not retried.
type OpenTaskPoller struct {
	tasks    OpenTaskSource
	opener   AuctionOpener
	tx       app.TransactionManager
	interval time.Duration
	logger   *slog.Logger
}

func NewOpenTaskPoller(tasks OpenTaskSource, opener AuctionOpener, tx app.TransactionManager, interval time.Duration, logger *slog.Logger) *OpenTaskPoller {
	return &OpenTaskPoller{tasks: tasks, opener: opener, tx: tx, interval: interval, logger: logger}
}

func (p *OpenTaskPoller) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			p.poll(ctx)
			timer.Reset(p.interval)
		}
	}
}

func (p *OpenTaskPoller) poll(ctx context.Context) {
	err := p.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		tasks, err := p.tasks.FindPendingToOpenAndRemove(ctx)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			if err := p.opener.OpenAuction(ctx, app.OpenAuctionCommand{AuctionID: task.AuctionID}); err != nil {
				p.logger.Warn("open auction task failed", "auction_id", task.AuctionID, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		p.logger.Error("open task pass failed", "error", err)
	}
}

// EndTaskPoller drains due end-task buckets and triggers the end use case,
// with the same one-transaction-per-pass scope as the open poller. Every
// bid schedules a fresh end task without cancelling the previous ones, so
// stale tasks are routine: they surface as TooEarlyToEnd or
// AuctionIsNotOpened domain errors, which are logged and dropped.
type EndTaskPoller struct {
	tasks    EndTaskSource
	ender    AuctionEnder
	tx       app.TransactionManager
	interval time.Duration
	logger   *slog.Logger
}

func NewEndTaskPoller(tasks EndTaskSource, ender AuctionEnder, tx app.TransactionManager, interval time.Duration, logger *slog.Logger) *EndTaskPoller {
	return &EndTaskPoller{tasks: tasks, ender: ender, tx: tx, interval: interval, logger: logger}
}

func (p *EndTaskPoller) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			p.poll(ctx)
			timer.Reset(p.interval)
		}
	}
}

func (p *EndTaskPoller) poll(ctx context.Context) {
	err := p.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		tasks, err := p.tasks.FindPendingToEndAndRemove(ctx)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			if err := p.ender.EndAuction(ctx, app.EndAuctionCommand{AuctionID: task.AuctionID}); err != nil {
				p.logger.Warn("end auction task failed", "auction_id", task.AuctionID, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		p.logger.Error("end task pass failed", "error", err)
	}
}

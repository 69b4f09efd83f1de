package events

import (
	"context"

	"github.com/outbidhq/auction-service/internal/adapters/database"
	"github.com/outbidhq/auction-service/internal/domain/auction"
)

// TaskStore persists scheduled auction lifecycle tasks.
type TaskStore interface {
	Save(ctx context.Context, task database.AuctionTask) error
}

// ScheduleAuctionTask keeps the task queues in step with the auction's
// lifecycle: a created auction gets an open task at its opening time, and
// every event that (re)establishes an end time gets an end task. Bids
// push the end time forward, so each raise schedules a fresh end task; the
// end-task poller tolerates the stale ones.
type ScheduleAuctionTask struct {
	tasks TaskStore
}

func NewScheduleAuctionTask(tasks TaskStore) *ScheduleAuctionTask {
	return &ScheduleAuctionTask{tasks: tasks}
}

func (h *ScheduleAuctionTask) Handle(ctx context.Context, event auction.DomainEvent) error {
	switch e := event.(type) {
	case auction.AuctionCreated:
		return h.tasks.Save(ctx, database.OpenAuctionTask{
			OpeningAt: e.Auction.OpeningAt,
			AuctionID: e.Auction.ID,
		})
	case auction.AuctionOpened:
		return h.scheduleEnd(ctx, e.Auction)
	case auction.BidPlaced:
		return h.scheduleEnd(ctx, e.Auction)
	case auction.AutoBidPlaced:
		return h.scheduleEnd(ctx, e.Auction)
	default:
		return nil
	}
}

func (h *ScheduleAuctionTask) scheduleEnd(ctx context.Context, a auction.Auction) error {
	return h.tasks.Save(ctx, database.EndAuctionTask{
		EndAt:     a.EndAt,
		AuctionID: a.ID,
	})
}

package events

import (
	"context"
	"log/slog"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

// WriteLogs emits one structured log line per domain event.
type WriteLogs struct {
	logger *slog.Logger
}

func NewWriteLogs(logger *slog.Logger) *WriteLogs {
	return &WriteLogs{logger: logger}
}

func (h *WriteLogs) Handle(ctx context.Context, event auction.DomainEvent) error {
	attrs := []any{"event", event.Name()}
	switch e := event.(type) {
	case auction.AuctionCreated:
		attrs = append(attrs, "auction_id", e.Auction.ID, "opening_at", e.Auction.OpeningAt)
	case auction.AuctionOpened:
		attrs = append(attrs, "auction_id", e.Auction.ID, "end_at", e.Auction.EndAt)
	case auction.BidPlaced:
		attrs = append(attrs, "auction_id", e.Auction.ID, "bidder_id", e.Auction.CurrentBid.BidderID, "amount", e.Auction.CurrentBid.Amount)
	case auction.AuctionEnded:
		attrs = append(attrs, "auction_id", e.Auction.ID, "status", e.Auction.Status)
	case auction.AutoBidCreated:
		attrs = append(attrs, "auction_id", e.Auction.ID, "auto_bid_id", e.AutoBid.ID)
	case auction.AutoBidPlaced:
		attrs = append(attrs, "auction_id", e.Auction.ID, "auto_bid_id", e.AutoBid.ID, "amount", e.Auction.CurrentBid.Amount)
	case auction.AutoBidDisabled:
		attrs = append(attrs, "auction_id", e.Auction.ID, "auto_bid_id", e.AutoBid.ID)
	}
	h.logger.InfoContext(ctx, "domain event", attrs...)
	return nil
}

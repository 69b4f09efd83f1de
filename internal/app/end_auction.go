package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

type EndAuctionFn func(a auction.Auction, now time.Time) (auction.AuctionEnded, error)

type EndAuctionCommand struct {
	AuctionID uuid.UUID
}

type EndAuctionService struct {
	auctions AuctionRepository
	executor *UseCaseExecutor
	now      func() time.Time
	end      EndAuctionFn
}

func NewEndAuctionService(auctions AuctionRepository, executor *UseCaseExecutor) *EndAuctionService {
	return &EndAuctionService{
		auctions: auctions,
		executor: executor,
		now:      time.Now,
		end:      auction.End,
	}
}

func (s *EndAuctionService) EndAuction(ctx context.Context, cmd EndAuctionCommand) error {
	return s.executor.Execute(ctx, "EndAuction", func(ctx context.Context) (auction.DomainEvent, error) {
		a, err := s.auctions.Find(ctx, cmd.AuctionID)
		if err != nil {
			return nil, err
		}
		ended, err := s.end(a, s.now())
		if err != nil {
			return nil, err
		}
		if err := s.auctions.Save(ctx, ended.Auction); err != nil {
			return nil, err
		}
		return ended, nil
	})
}

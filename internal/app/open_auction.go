package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

type OpenAuctionFn func(a auction.Auction, now time.Time) (auction.AuctionOpened, error)

type OpenAuctionCommand struct {
	AuctionID uuid.UUID
}

type OpenAuctionService struct {
	auctions AuctionRepository
	executor *UseCaseExecutor
	now      func() time.Time
	open     OpenAuctionFn
}

func NewOpenAuctionService(auctions AuctionRepository, executor *UseCaseExecutor) *OpenAuctionService {
	return &OpenAuctionService{
		auctions: auctions,
		executor: executor,
		now:      time.Now,
		open:     auction.Open,
	}
}

func (s *OpenAuctionService) OpenAuction(ctx context.Context, cmd OpenAuctionCommand) error {
	return s.executor.Execute(ctx, "OpenAuction", func(ctx context.Context) (auction.DomainEvent, error) {
		a, err := s.auctions.Find(ctx, cmd.AuctionID)
		if err != nil {
			return nil, err
		}
		opened, err := s.open(a, s.now())
		if err != nil {
			return nil, err
		}
		if err := s.auctions.Save(ctx, opened.Auction); err != nil {
			return nil, err
		}
		return opened, nil
	})
}

package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

type PlaceBidFn func(a auction.Auction, amount decimal.Decimal, bidderID uuid.UUID, currentBidCounter int64, now time.Time) (auction.BidPlaced, error)

type PlaceBidCommand struct {
	AuctionID         uuid.UUID
	BidderID          uuid.UUID
	Amount            decimal.Decimal
	CurrentBidCounter int64
}

type PlaceBidService struct {
	auctions AuctionRepository
	users    UserFinder
	executor *UseCaseExecutor
	now      func() time.Time
	placeBid PlaceBidFn
}

func NewPlaceBidService(auctions AuctionRepository, users UserFinder, executor *UseCaseExecutor) *PlaceBidService {
	return &PlaceBidService{
		auctions: auctions,
		users:    users,
		executor: executor,
		now:      time.Now,
		placeBid: auction.PlaceBid,
	}
}

func (s *PlaceBidService) PlaceBid(ctx context.Context, cmd PlaceBidCommand) error {
	return s.executor.Execute(ctx, "PlaceBid", func(ctx context.Context) (auction.DomainEvent, error) {
		a, err := s.auctions.Find(ctx, cmd.AuctionID)
		if err != nil {
			return nil, err
		}
		bidder, err := s.users.FindUser(ctx, cmd.BidderID)
		if err != nil {
			return nil, err
		}
		placed, err := s.placeBid(a, cmd.Amount, bidder.ID, cmd.CurrentBidCounter, s.now())
		if err != nil {
			return nil, err
		}
		if err := s.auctions.Save(ctx, placed.Auction); err != nil {
			return nil, err
		}
		return placed, nil
	})
}

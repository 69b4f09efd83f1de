package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

type PlaceAutoBidFn func(autoBid auction.AutoBid, a auction.Auction, now time.Time) (auction.AutoBidPlaced, error)

type PlaceAutoBidCommand struct {
	AutoBidID uuid.UUID
}

type PlaceAutoBidService struct {
	autoBids     AutoBidRepository
	auctions     AuctionRepository
	executor     *UseCaseExecutor
	now          func() time.Time
	placeAutoBid PlaceAutoBidFn
}

func NewPlaceAutoBidService(autoBids AutoBidRepository, auctions AuctionRepository, executor *UseCaseExecutor) *PlaceAutoBidService {
	return &PlaceAutoBidService{
		autoBids:     autoBids,
		auctions:     auctions,
		executor:     executor,
		now:          time.Now,
		placeAutoBid: auction.PlaceAutoBid,
	}
}

// PlaceAutoBid saves the auction only: the raise changes the auction, not
// the auto-bid policy.
func (s *PlaceAutoBidService) PlaceAutoBid(ctx context.Context, cmd PlaceAutoBidCommand) error {
	return s.executor.Execute(ctx, "PlaceAutoBid", func(ctx context.Context) (auction.DomainEvent, error) {
		autoBid, err := s.autoBids.Find(ctx, cmd.AutoBidID)
		if err != nil {
			return nil, err
		}
		a, err := s.auctions.Find(ctx, autoBid.AuctionID)
		if err != nil {
			return nil, err
		}
		placed, err := s.placeAutoBid(autoBid, a, s.now())
		if err != nil {
			return nil, err
		}
		if err := s.auctions.Save(ctx, placed.Auction); err != nil {
			return nil, err
		}
		return placed, nil
	})
}

package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

type DisableAutoBidFn func(autoBid auction.AutoBid, a auction.Auction) (auction.AutoBidDisabled, error)

type DisableAutoBidCommand struct {
	AutoBidID uuid.UUID
}

type DisableAutoBidService struct {
	autoBids AutoBidRepository
	auctions AuctionRepository
	executor *UseCaseExecutor
	disable  DisableAutoBidFn
}

func NewDisableAutoBidService(autoBids AutoBidRepository, auctions AuctionRepository, executor *UseCaseExecutor) *DisableAutoBidService {
	return &DisableAutoBidService{
		autoBids: autoBids,
		auctions: auctions,
		executor: executor,
		disable:  auction.DisableAutoBid,
	}
}

func (s *DisableAutoBidService) DisableAutoBid(ctx context.Context, cmd DisableAutoBidCommand) error {
	return s.executor.Execute(ctx, "DisableAutoBid", func(ctx context.Context) (auction.DomainEvent, error) {
		autoBid, err := s.autoBids.Find(ctx, cmd.AutoBidID)
		if err != nil {
			return nil, err
		}
		a, err := s.auctions.Find(ctx, autoBid.AuctionID)
		if err != nil {
			return nil, err
		}
		disabled, err := s.disable(autoBid, a)
		if err != nil {
			return nil, err
		}
		if err := s.autoBids.Save(ctx, disabled.AutoBid); err != nil {
			return nil, err
		}
		return disabled, nil
	})
}

package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

type CreateAutoBidFn func(id uuid.UUID, user auction.User, a auction.Auction, amount, limit decimal.Decimal) (auction.AutoBidCreated, error)

type CreateAutoBidCommand struct {
	AuctionID uuid.UUID
	UserID    uuid.UUID
	Bid       decimal.Decimal
	Limit     decimal.Decimal
}

type CreateAutoBidService struct {
	users    UserFinder
	auctions AuctionRepository
	autoBids AutoBidRepository
	executor *UseCaseExecutor
	newID    func() uuid.UUID
	create   CreateAutoBidFn
}

func NewCreateAutoBidService(users UserFinder, auctions AuctionRepository, autoBids AutoBidRepository, executor *UseCaseExecutor) *CreateAutoBidService {
	return &CreateAutoBidService{
		users:    users,
		auctions: auctions,
		autoBids: autoBids,
		executor: executor,
		newID:    uuid.New,
		create:   auction.CreateAutoBid,
	}
}

// CreateAutoBid saves the auto-bid only: creating the policy does not
// mutate the auction.
func (s *CreateAutoBidService) CreateAutoBid(ctx context.Context, cmd CreateAutoBidCommand) error {
	return s.executor.Execute(ctx, "CreateAutoBid", func(ctx context.Context) (auction.DomainEvent, error) {
		user, err := s.users.FindUser(ctx, cmd.UserID)
		if err != nil {
			return nil, err
		}
		a, err := s.auctions.Find(ctx, cmd.AuctionID)
		if err != nil {
			return nil, err
		}
		created, err := s.create(s.newID(), user, a, cmd.Bid, cmd.Limit)
		if err != nil {
			return nil, err
		}
		if err := s.autoBids.Save(ctx, created.AutoBid); err != nil {
			return nil, err
		}
		return created, nil
	})
}

package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

// CreateAuctionFn builds a new auction on preview. Defaults to
// auction.Create; substitutable in tests.
type CreateAuctionFn func(auction.CreateParams) (auction.AuctionCreated, error)

type CreateAuctionCommand struct {
	SellerID    uuid.UUID
	ItemID      uuid.UUID
	OpeningBid  decimal.Decimal
	MinimalBid  decimal.Decimal
	OpeningDate time.Time
}

type CreateAuctionService struct {
	users                  UserFinder
	items                  ItemFinder
	auctions               AuctionRepository
	executor               *UseCaseExecutor
	expirationPeriod       time.Duration
	sellToHighestBidPeriod time.Duration
	now                    func() time.Time
	newID                  func() uuid.UUID
	create                 CreateAuctionFn
}

func NewCreateAuctionService(
	users UserFinder,
	items ItemFinder,
	auctions AuctionRepository,
	executor *UseCaseExecutor,
	expirationPeriod time.Duration,
	sellToHighestBidPeriod time.Duration,
) *CreateAuctionService {
	return &CreateAuctionService{
		users:                  users,
		items:                  items,
		auctions:               auctions,
		executor:               executor,
		expirationPeriod:       expirationPeriod,
		sellToHighestBidPeriod: sellToHighestBidPeriod,
		now:                    time.Now,
		newID:                  uuid.New,
		create:                 auction.Create,
	}
}

func (s *CreateAuctionService) CreateAuction(ctx context.Context, cmd CreateAuctionCommand) error {
	return s.executor.Execute(ctx, "CreateAuction", func(ctx context.Context) (auction.DomainEvent, error) {
		user, err := s.users.FindUser(ctx, cmd.SellerID)
		if err != nil {
			return nil, err
		}
		item, err := s.items.FindItem(ctx, cmd.ItemID)
		if err != nil {
			return nil, err
		}
		created, err := s.create(auction.CreateParams{
			NewID:                  s.newID(),
			User:                   user,
			Item:                   item,
			OpeningBid:             cmd.OpeningBid,
			MinimalBid:             cmd.MinimalBid,
			OpeningDate:            cmd.OpeningDate,
			ExpirationPeriod:       s.expirationPeriod,
			SellToHighestBidPeriod: s.sellToHighestBidPeriod,
			Now:                    s.now(),
		})
		if err != nil {
			return nil, err
		}
		if err := s.auctions.Save(ctx, created.Auction); err != nil {
			return nil, err
		}
		return created, nil
	})
}

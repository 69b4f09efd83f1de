package app

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

func TestCreateAuctionService_CreateAuction(t *testing.T) {
	now := time.Date(2007, 12, 3, 10, 15, 30, 0, time.UTC)
	sellerID := uuid.New()
	itemID := uuid.New()
	newID := uuid.New()

	cmd := CreateAuctionCommand{
		SellerID:    sellerID,
		ItemID:      itemID,
		OpeningBid:  decimal.NewFromInt(100),
		MinimalBid:  decimal.NewFromInt(10),
		OpeningDate: now.Add(8 * 24 * time.Hour),
	}

	t.Run("saves a new auction on preview", func(t *testing.T) {
		users := new(MockUserFinder)
		users.On("FindUser", mock.Anything, sellerID).Return(auction.User{ID: sellerID}, nil)
		items := new(MockItemFinder)
		items.On("FindItem", mock.Anything, itemID).Return(auction.Item{ID: itemID, Status: auction.ItemStatusAvailable, SellerID: sellerID}, nil)
		auctions := new(MockAuctionRepository)
		auctions.On("Save", mock.Anything, mock.MatchedBy(func(a auction.Auction) bool {
			return a.ID == newID && a.Status == auction.StatusOnPreview
		})).Return(nil)

		svc := NewCreateAuctionService(users, items, auctions, newTestExecutor(), 15*24*time.Hour, 15*time.Minute)
		svc.now = func() time.Time { return now }
		svc.newID = func() uuid.UUID { return newID }

		err := svc.CreateAuction(context.Background(), cmd)

		assert.NoError(t, err)
		auctions.AssertExpectations(t)
	})

	t.Run("returns the not-found answer for an unknown seller", func(t *testing.T) {
		users := new(MockUserFinder)
		users.On("FindUser", mock.Anything, sellerID).Return(auction.User{}, auction.ErrUserNotFound)
		items := new(MockItemFinder)
		auctions := new(MockAuctionRepository)

		svc := NewCreateAuctionService(users, items, auctions, newTestExecutor(), 15*24*time.Hour, 15*time.Minute)

		err := svc.CreateAuction(context.Background(), cmd)

		assert.ErrorIs(t, err, auction.ErrUserNotFound)
		auctions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPlaceBidService_PlaceBid(t *testing.T) {
	now := time.Date(2007, 12, 3, 10, 15, 30, 0, time.UTC)
	auctionID := uuid.New()
	bidderID := uuid.New()

	opened := auction.Auction{
		ID:                     auctionID,
		SellerID:               uuid.New(),
		ItemID:                 uuid.New(),
		OpeningAmount:          auction.RestoreAmount(decimal.NewFromInt(100)),
		MinimalAmount:          auction.RestoreAmount(decimal.NewFromInt(10)),
		Status:                 auction.StatusOpened,
		EndAt:                  now.Add(time.Hour),
		SellToHighestBidPeriod: 15 * time.Minute,
	}

	t.Run("saves the auction with the new bid", func(t *testing.T) {
		auctions := new(MockAuctionRepository)
		auctions.On("Find", mock.Anything, auctionID).Return(opened, nil)
		auctions.On("Save", mock.Anything, mock.MatchedBy(func(a auction.Auction) bool {
			return a.CurrentBid != nil && a.CurrentBid.BidderID == bidderID && a.BidsCounter == 1
		})).Return(nil)
		users := new(MockUserFinder)
		users.On("FindUser", mock.Anything, bidderID).Return(auction.User{ID: bidderID}, nil)

		svc := NewPlaceBidService(auctions, users, newTestExecutor())
		svc.now = func() time.Time { return now }

		err := svc.PlaceBid(context.Background(), PlaceBidCommand{
			AuctionID:         auctionID,
			BidderID:          bidderID,
			Amount:            decimal.NewFromInt(10),
			CurrentBidCounter: 0,
		})

		assert.NoError(t, err)
		auctions.AssertExpectations(t)
	})

	t.Run("returns the conflict answer on a stale counter", func(t *testing.T) {
		auctions := new(MockAuctionRepository)
		auctions.On("Find", mock.Anything, auctionID).Return(opened, nil)
		users := new(MockUserFinder)
		users.On("FindUser", mock.Anything, bidderID).Return(auction.User{ID: bidderID}, nil)

		svc := NewPlaceBidService(auctions, users, newTestExecutor())
		svc.now = func() time.Time { return now }

		err := svc.PlaceBid(context.Background(), PlaceBidCommand{
			AuctionID:         auctionID,
			BidderID:          bidderID,
			Amount:            decimal.NewFromInt(10),
			CurrentBidCounter: 7,
		})

		assert.ErrorIs(t, err, auction.ErrHighestBidHasChanged)
		auctions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestDisableAutoBidService_DisableAutoBid(t *testing.T) {
	auctionID := uuid.New()
	autoBidID := uuid.New()

	a := auction.Auction{ID: auctionID, Status: auction.StatusOpened}
	autoBid := auction.AutoBid{
		ID:        autoBidID,
		AuctionID: auctionID,
		UserID:    uuid.New(),
		Amount:    auction.RestoreAmount(decimal.NewFromInt(10)),
		Limit:     auction.RestoreAmount(decimal.NewFromInt(100)),
		Enabled:   true,
	}

	t.Run("saves the disabled auto-bid", func(t *testing.T) {
		autoBids := new(MockAutoBidRepository)
		autoBids.On("Find", mock.Anything, autoBidID).Return(autoBid, nil)
		autoBids.On("Save", mock.Anything, mock.MatchedBy(func(ab auction.AutoBid) bool {
			return ab.ID == autoBidID && !ab.Enabled
		})).Return(nil)
		auctions := new(MockAuctionRepository)
		auctions.On("Find", mock.Anything, auctionID).Return(a, nil)

		svc := NewDisableAutoBidService(autoBids, auctions, newTestExecutor())

		err := svc.DisableAutoBid(context.Background(), DisableAutoBidCommand{AutoBidID: autoBidID})

		assert.NoError(t, err)
		autoBids.AssertExpectations(t)
	})

	t.Run("returns the already-disabled answer untouched", func(t *testing.T) {
		disabled := autoBid
		disabled.Enabled = false
		autoBids := new(MockAutoBidRepository)
		autoBids.On("Find", mock.Anything, autoBidID).Return(disabled, nil)
		auctions := new(MockAuctionRepository)
		auctions.On("Find", mock.Anything, auctionID).Return(a, nil)

		svc := NewDisableAutoBidService(autoBids, auctions, newTestExecutor())

		err := svc.DisableAutoBid(context.Background(), DisableAutoBidCommand{AutoBidID: autoBidID})

		assert.ErrorIs(t, err, auction.ErrAutoBidAlreadyDisabled)
		autoBids.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

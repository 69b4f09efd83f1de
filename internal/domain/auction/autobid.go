package auction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AutoBid is a per-user automatic bidding policy on one auction: every time
// somebody outbids the user, the policy raises by Amount until the recorded
// bid would reach Limit.
type AutoBid struct {
	ID        uuid.UUID
	AuctionID uuid.UUID
	UserID    uuid.UUID
	Amount    Amount
	Limit     Amount
	Enabled   bool
}

func autoBidLimitReached(a Auction, amount, limit decimal.Decimal) bool {
	return a.CurrentBid != nil && a.CurrentBid.Amount.Value().Add(amount).GreaterThanOrEqual(limit)
}

// CreateAutoBid registers an enabled auto-bid against an unfinished auction.
func CreateAutoBid(id uuid.UUID, user User, a Auction, amount, limit decimal.Decimal) (AutoBidCreated, error) {
	if a.Status == StatusExpired || a.Status == StatusItemSold {
		return AutoBidCreated{}, ErrAuctionHasFinished
	}
	if autoBidLimitReached(a, amount, limit) {
		return AutoBidCreated{}, ErrAutoBidLimitReached
	}
	bidAmount, err := NewAmount(amount)
	if err != nil {
		return AutoBidCreated{}, err
	}
	bidLimit, err := NewAmount(limit)
	if err != nil {
		return AutoBidCreated{}, err
	}
	return AutoBidCreated{
		Auction: a,
		AutoBid: AutoBid{
			ID:        id,
			AuctionID: a.ID,
			UserID:    user.ID,
			Amount:    bidAmount,
			Limit:     bidLimit,
			Enabled:   true,
		},
	}, nil
}

// PlaceAutoBid raises the auction on behalf of the auto-bid's owner,
// delegating the actual raise to PlaceBid with the auction's own bid
// counter. Any PlaceBid error propagates unchanged.
func PlaceAutoBid(autoBid AutoBid, a Auction, now time.Time) (AutoBidPlaced, error) {
	switch {
	case a.CurrentBid == nil:
		return AutoBidPlaced{}, ErrNoBidToAutoBid
	case autoBidLimitReached(a, autoBid.Amount.Value(), autoBid.Limit.Value()):
		return AutoBidPlaced{}, ErrAutoBidLimitReached
	case a.ID != autoBid.AuctionID:
		return AutoBidPlaced{}, ErrAuctionNotMatching
	case !autoBid.Enabled:
		return AutoBidPlaced{}, ErrAutoBidIsDisabled
	}
	placed, err := PlaceBid(a, autoBid.Amount.Value(), autoBid.UserID, a.BidsCounter, now)
	if err != nil {
		return AutoBidPlaced{}, err
	}
	return AutoBidPlaced{Auction: placed.Auction, AutoBid: autoBid}, nil
}

// DisableAutoBid switches an enabled auto-bid off.
func DisableAutoBid(autoBid AutoBid, a Auction) (AutoBidDisabled, error) {
	if !autoBid.Enabled {
		return AutoBidDisabled{}, ErrAutoBidAlreadyDisabled
	}
	if autoBid.AuctionID != a.ID {
		return AutoBidDisabled{}, ErrAuctionNotMatching
	}
	autoBid.Enabled = false
	return AutoBidDisabled{Auction: a, AutoBid: autoBid}, nil
}

package auction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an auction. Expired and ItemSold are
// terminal.
type Status string

const (
	StatusOnPreview Status = "ON_PREVIEW"
	StatusOpened    Status = "OPENED"
	StatusExpired   Status = "EXPIRED"
	StatusItemSold  Status = "ITEM_SOLD"
)

// minOpeningDateLead is the minimum notice between creating an auction and
// its opening date. Could be parametrized.
const minOpeningDateLead = 7 * 24 * time.Hour

// Bid is the current highest bid on an auction.
type Bid struct {
	BidderID uuid.UUID
	Amount   Amount
	Ts       time.Time
}

// Auction is the aggregate root. Transition functions never mutate their
// receiver argument; they return a fresh copy wrapped in the resulting
// domain event. All I/O lives behind the repositories.
type Auction struct {
	ID                     uuid.UUID
	SellerID               uuid.UUID
	ItemID                 uuid.UUID
	OpeningAmount          Amount
	MinimalAmount          Amount
	OpeningAt              time.Time
	CreatedAt              time.Time
	Status                 Status
	Version                int64
	BidsCounter            int64
	CurrentBid             *Bid
	EndAt                  time.Time
	SellToHighestBidPeriod time.Duration
}

// Winner reports the buyer of a sold auction.
func (a Auction) Winner() (uuid.UUID, bool) {
	if a.Status != StatusItemSold || a.CurrentBid == nil {
		return uuid.Nil, false
	}
	return a.CurrentBid.BidderID, true
}

// CreateParams carries everything needed to put a new auction on preview.
type CreateParams struct {
	NewID                  uuid.UUID
	User                   User
	Item                   Item
	OpeningBid             decimal.Decimal
	MinimalBid             decimal.Decimal
	OpeningDate            time.Time
	ExpirationPeriod       time.Duration
	SellToHighestBidPeriod time.Duration
	Now                    time.Time
}

// Create validates ownership, availability, the opening date and both
// amounts, and returns a new auction on preview with version 0.
func Create(p CreateParams) (AuctionCreated, error) {
	if !p.Item.IsOwnedBy(p.User) {
		return AuctionCreated{}, ErrItemDoesNotBelongToTheSeller
	}
	if !p.Item.IsAvailable() {
		return AuctionCreated{}, ErrItemNotAvailable
	}
	if p.OpeningDate.Sub(p.Now) <= minOpeningDateLead {
		return AuctionCreated{}, ErrInvalidOpeningDate
	}
	openingAmount, err := NewAmount(p.OpeningBid)
	if err != nil {
		return AuctionCreated{}, err
	}
	minimalAmount, err := NewAmount(p.MinimalBid)
	if err != nil {
		return AuctionCreated{}, err
	}
	return AuctionCreated{Auction: Auction{
		ID:                     p.NewID,
		SellerID:               p.User.ID,
		ItemID:                 p.Item.ID,
		OpeningAmount:          openingAmount,
		MinimalAmount:          minimalAmount,
		OpeningAt:              p.OpeningDate,
		CreatedAt:              p.Now,
		Status:                 StatusOnPreview,
		Version:                0,
		BidsCounter:            0,
		CurrentBid:             nil,
		EndAt:                  p.OpeningDate.Add(p.ExpirationPeriod),
		SellToHighestBidPeriod: p.SellToHighestBidPeriod,
	}}, nil
}

// Open moves an auction from preview to opened once its opening time has
// been reached.
func Open(a Auction, now time.Time) (AuctionOpened, error) {
	switch a.Status {
	case StatusOnPreview:
	case StatusOpened:
		return AuctionOpened{}, ErrAuctionAlreadyOpened
	case StatusExpired, StatusItemSold:
		return AuctionOpened{}, ErrAuctionHasFinished
	}
	if now.Before(a.OpeningAt) {
		return AuctionOpened{}, ErrTooEarlyToOpen
	}
	a.Status = StatusOpened
	return AuctionOpened{Auction: a}, nil
}

// PlaceBid places a raise on an opened auction. The amount is an increment
// on top of the current bid, not an absolute bid: the recorded bid total is
// currentBid + amount (or the amount itself for the first bid). The caller's
// view of the bid counter guards against racing bidders; the floor for the
// raw amount is the auction's minimal amount.
func PlaceBid(a Auction, amount decimal.Decimal, bidderID uuid.UUID, currentBidCounter int64, now time.Time) (BidPlaced, error) {
	if a.BidsCounter != currentBidCounter {
		return BidPlaced{}, ErrHighestBidHasChanged
	}
	if a.Status != StatusOpened {
		return BidPlaced{}, ErrAuctionIsNotOpened
	}
	increment, err := NewAmountWithFloor(amount, a.MinimalAmount.Value())
	if err != nil {
		return BidPlaced{}, err
	}
	total := increment
	if a.CurrentBid != nil {
		total = a.CurrentBid.Amount.Plus(increment)
	}
	bid := Bid{BidderID: bidderID, Amount: total, Ts: now}
	a.CurrentBid = &bid
	a.BidsCounter++
	a.EndAt = bid.Ts.Add(a.SellToHighestBidPeriod)
	return BidPlaced{Auction: a}, nil
}

// End closes an opened auction whose end time has passed: sold to the
// current bidder when there is one, expired otherwise.
func End(a Auction, now time.Time) (AuctionEnded, error) {
	if a.EndAt.After(now) {
		return AuctionEnded{}, ErrTooEarlyToEnd
	}
	if a.Status != StatusOpened {
		return AuctionEnded{}, ErrAuctionIsNotOpened
	}
	if a.CurrentBid == nil {
		a.Status = StatusExpired
	} else {
		a.Status = StatusItemSold
	}
	return AuctionEnded{Auction: a}, nil
}

// IncreaseVersion bumps the optimistic-concurrency token. Repositories call
// it right before writing; use cases never do.
func IncreaseVersion(a Auction) Auction {
	a.Version++
	return a
}

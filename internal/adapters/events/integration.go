package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

// Wire tags for the integration event envelope. Consumers dispatch on
// event_type; these values are part of the public contract and must not
// change.
const (
	TypeAuctionCreated  = "auction_created_event"
	TypeAuctionOpened   = "auction_opened_event"
	TypeBidPlaced       = "bid_placed_event"
	TypeAuctionEnded    = "auction_ended_event"
	TypeAutoBidCreated  = "auto_bid_created_event"
	TypeAutoBidPlaced   = "auto_bid_placed_event"
	TypeAutoBidDisabled = "auto_bid_disabled_event"
)

// IntegrationEvent is the JSON envelope staged in the outbox and published
// to the broker. EventID doubles as the consumer-side idempotency key.
type IntegrationEvent struct {
	EventType  string      `json:"event_type"`
	EventID    uuid.UUID   `json:"event_id"`
	OccurredOn time.Time   `json:"occurred_on"`
	Auction    AuctionDTO  `json:"auction"`
	AutoBid    *AutoBidDTO `json:"auto_bid,omitempty"`
}

type AuctionDTO struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	ItemID     uuid.UUID       `json:"item_id"`
	OpeningBid decimal.Decimal `json:"opening_bid"`
	MinimalBid decimal.Decimal `json:"minimal_bid"`
	OpeningAt  time.Time       `json:"opening_at"`
	CreatedAt  time.Time       `json:"created_at"`
	CurrentBid *BidDTO         `json:"current_bid"`
	Status     string          `json:"status"`
}

type BidDTO struct {
	BidderID uuid.UUID       `json:"bidder_id"`
	Amount   decimal.Decimal `json:"amount"`
	Ts       time.Time       `json:"ts"`
}

type AutoBidDTO struct {
	AutoBidID uuid.UUID       `json:"auto_bid_id"`
	UserID    uuid.UUID       `json:"user_id"`
	AuctionID uuid.UUID       `json:"auction_id"`
	Amount    decimal.Decimal `json:"amount"`
	Limit     decimal.Decimal `json:"limit"`
}

// NewIntegrationEvent translates a domain event into its wire envelope.
func NewIntegrationEvent(event auction.DomainEvent, eventID uuid.UUID, occurredOn time.Time) (IntegrationEvent, error) {
	envelope := IntegrationEvent{EventID: eventID, OccurredOn: occurredOn}
	switch e := event.(type) {
	case auction.AuctionCreated:
		envelope.EventType = TypeAuctionCreated
		envelope.Auction = newAuctionDTO(e.Auction)
	case auction.AuctionOpened:
		envelope.EventType = TypeAuctionOpened
		envelope.Auction = newAuctionDTO(e.Auction)
	case auction.BidPlaced:
		envelope.EventType = TypeBidPlaced
		envelope.Auction = newAuctionDTO(e.Auction)
	case auction.AuctionEnded:
		envelope.EventType = TypeAuctionEnded
		envelope.Auction = newAuctionDTO(e.Auction)
	case auction.AutoBidCreated:
		envelope.EventType = TypeAutoBidCreated
		envelope.Auction = newAuctionDTO(e.Auction)
		envelope.AutoBid = newAutoBidDTO(e.AutoBid)
	case auction.AutoBidPlaced:
		envelope.EventType = TypeAutoBidPlaced
		envelope.Auction = newAuctionDTO(e.Auction)
		envelope.AutoBid = newAutoBidDTO(e.AutoBid)
	case auction.AutoBidDisabled:
		envelope.EventType = TypeAutoBidDisabled
		envelope.Auction = newAuctionDTO(e.Auction)
		envelope.AutoBid = newAutoBidDTO(e.AutoBid)
	default:
		return IntegrationEvent{}, fmt.Errorf("unknown domain event %q", event.Name())
	}
	return envelope, nil
}

func newAuctionDTO(a auction.Auction) AuctionDTO {
	dto := AuctionDTO{
		ID:         a.ID,
		UserID:     a.SellerID,
		ItemID:     a.ItemID,
		OpeningBid: a.OpeningAmount.Value(),
		MinimalBid: a.MinimalAmount.Value(),
		OpeningAt:  a.OpeningAt,
		CreatedAt:  a.CreatedAt,
		Status:     string(a.Status),
	}
	if a.CurrentBid != nil {
		dto.CurrentBid = &BidDTO{
			BidderID: a.CurrentBid.BidderID,
			Amount:   a.CurrentBid.Amount.Value(),
			Ts:       a.CurrentBid.Ts,
		}
	}
	return dto
}

func newAutoBidDTO(ab auction.AutoBid) *AutoBidDTO {
	return &AutoBidDTO{
		AutoBidID: ab.ID,
		UserID:    ab.UserID,
		AuctionID: ab.AuctionID,
		Amount:    ab.Amount.Value(),
		Limit:     ab.Limit.Value(),
	}
}

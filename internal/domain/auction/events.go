package auction

// DomainEvent is the closed set of facts a use case can produce. Exactly one
// event comes out of every successful use-case invocation; events are never
// mutated.
type DomainEvent interface {
	// Name is the event's stable tag, used for logging and metrics.
	Name() string

	isDomainEvent()
}

type AuctionCreated struct{ Auction Auction }

type AuctionOpened struct{ Auction Auction }

type BidPlaced struct{ Auction Auction }

type AuctionEnded struct{ Auction Auction }

type AutoBidCreated struct {
	Auction Auction
	AutoBid AutoBid
}

type AutoBidPlaced struct {
	Auction Auction
	AutoBid AutoBid
}

type AutoBidDisabled struct {
	Auction Auction
	AutoBid AutoBid
}

func (AuctionCreated) Name() string  { return "AuctionCreated" }
func (AuctionOpened) Name() string   { return "AuctionOpened" }
func (BidPlaced) Name() string       { return "BidPlaced" }
func (AuctionEnded) Name() string    { return "AuctionEnded" }
func (AutoBidCreated) Name() string  { return "AutoBidCreated" }
func (AutoBidPlaced) Name() string   { return "AutoBidPlaced" }
func (AutoBidDisabled) Name() string { return "AutoBidDisabled" }

func (AuctionCreated) isDomainEvent()  {}
func (AuctionOpened) isDomainEvent()   {}
func (BidPlaced) isDomainEvent()       {}
func (AuctionEnded) isDomainEvent()    {}
func (AutoBidCreated) isDomainEvent()  {}
func (AutoBidPlaced) isDomainEvent()   {}
func (AutoBidDisabled) isDomainEvent() {}

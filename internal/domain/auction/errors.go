package auction

// Error is a domain error: an expected business outcome, returned rather than
// propagated as a failure. The set of values below is closed; new outcomes
// require a new sentinel here.
type Error struct {
	code string
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Code returns a stable identifier used for metric tags and HTTP mapping.
func (e *Error) Code() string { return e.code }

// Not-found outcomes.
var (
	ErrUserNotFound    = &Error{"UserNotFound", "user not found"}
	ErrItemNotFound    = &Error{"ItemNotFound", "item not found"}
	ErrAuctionNotFound = &Error{"AuctionNotFound", "auction not found"}
	ErrAutoBidNotFound = &Error{"AutoBidNotFound", "auto bid not found"}
)

// Validation outcomes.
var (
	ErrTooLowAmount                 = &Error{"TooLowAmount", "too low amount"}
	ErrInvalidOpeningDate           = &Error{"InvalidOpeningDate", "invalid opening date"}
	ErrItemNotAvailable             = &Error{"ItemNotAvailable", "item is not available"}
	ErrItemDoesNotBelongToTheSeller = &Error{"ItemDoesNotBelongToTheSeller", "item does not belong to the seller"}
)

// State-conflict outcomes.
var (
	ErrAuctionAlreadyOpened   = &Error{"AuctionAlreadyOpened", "auction already opened"}
	ErrAuctionHasFinished     = &Error{"AuctionHasFinished", "auction has finished"}
	ErrTooEarlyToOpen         = &Error{"TooEarlyToOpen", "too early to open the auction"}
	ErrTooEarlyToEnd          = &Error{"TooEarlyToEnd", "too early to end the auction"}
	ErrAuctionIsNotOpened     = &Error{"AuctionIsNotOpened", "auction is not opened"}
	ErrHighestBidHasChanged   = &Error{"HighestBidHasChanged", "highest bid has changed"}
	ErrAutoBidAlreadyExists   = &Error{"AutoBidAlreadyExists", "auto bid already exists"}
	ErrAutoBidAlreadyDisabled = &Error{"AutoBidAlreadyDisabled", "auto bid already disabled"}
	ErrAutoBidLimitReached    = &Error{"AutoBidLimitReached", "auto bid limit reached"}
	ErrAuctionNotMatching     = &Error{"AuctionNotMatching", "auction does not match the auto bid"}
	ErrAutoBidIsDisabled      = &Error{"AutoBidIsDisabled", "auto bid is disabled"}
	ErrNoBidToAutoBid         = &Error{"NoBidToAutoBid", "no bid to auto bid on"}
)

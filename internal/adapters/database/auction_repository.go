package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

// OptimisticLockError signals that another writer advanced the stored
// aggregate between this unit of work's read and its save. It is not a
// domain error: it aborts the enclosing transaction.
type OptimisticLockError struct {
	AuctionID uuid.UUID
}

func (e *OptimisticLockError) Error() string {
	return fmt.Sprintf("concurrent access to auction aggregate %q", e.AuctionID)
}

// AuctionRepository persists auctions with two independent concurrency
// tokens: the version column guards storage-level races on save, while the
// bids counter inside the aggregate guards business-level bidding races.
type AuctionRepository struct {
	pool *pgxpool.Pool
}

func NewAuctionRepository(pool *pgxpool.Pool) *AuctionRepository {
	return &AuctionRepository{pool: pool}
}

const saveAuctionSQL = `
	INSERT INTO auctions (
		id, seller_id, item_id, opening_bid, minimal_bid, opening_at, created_at,
		status, version, bids_counter, current_bidder_id, current_bid_amount,
		current_bid_ts, end_at, sell_to_highest_bid_period_ms
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (id) DO UPDATE SET
		status = EXCLUDED.status,
		version = EXCLUDED.version,
		bids_counter = EXCLUDED.bids_counter,
		current_bidder_id = EXCLUDED.current_bidder_id,
		current_bid_amount = EXCLUDED.current_bid_amount,
		current_bid_ts = EXCLUDED.current_bid_ts,
		end_at = EXCLUDED.end_at
	WHERE auctions.version = $16
`

// Save bumps the version and upserts. The conditional update only matches
// when the stored version equals the version the in-memory aggregate had
// before the bump; zero affected rows therefore means a concurrent writer
// got there first.
func (r *AuctionRepository) Save(ctx context.Context, a auction.Auction) error {
	next := auction.IncreaseVersion(a)

	var bidderID *uuid.UUID
	var bidAmount decimal.NullDecimal
	var bidTs *time.Time
	if next.CurrentBid != nil {
		bidderID = &next.CurrentBid.BidderID
		bidAmount = decimal.NullDecimal{Decimal: next.CurrentBid.Amount.Value(), Valid: true}
		bidTs = &next.CurrentBid.Ts
	}

	tag, err := querier(ctx, r.pool).Exec(ctx, saveAuctionSQL,
		next.ID,
		next.SellerID,
		next.ItemID,
		next.OpeningAmount.Value(),
		next.MinimalAmount.Value(),
		next.OpeningAt,
		next.CreatedAt,
		statusToDB(next.Status),
		next.Version,
		next.BidsCounter,
		bidderID,
		bidAmount,
		bidTs,
		next.EndAt,
		next.SellToHighestBidPeriod.Milliseconds(),
		a.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to save auction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &OptimisticLockError{AuctionID: a.ID}
	}
	return nil
}

const findAuctionSQL = `
	SELECT id, seller_id, item_id, opening_bid, minimal_bid, opening_at, created_at,
	       status, version, bids_counter, current_bidder_id, current_bid_amount,
	       current_bid_ts, end_at, sell_to_highest_bid_period_ms
	FROM auctions
	WHERE id = $1
`

func (r *AuctionRepository) Find(ctx context.Context, id uuid.UUID) (auction.Auction, error) {
	var (
		a         auction.Auction
		opening   decimal.Decimal
		minimal   decimal.Decimal
		status    string
		bidderID  *uuid.UUID
		bidAmount decimal.NullDecimal
		bidTs     *time.Time
		periodMs  int64
	)
	err := querier(ctx, r.pool).QueryRow(ctx, findAuctionSQL, id).Scan(
		&a.ID,
		&a.SellerID,
		&a.ItemID,
		&opening,
		&minimal,
		&a.OpeningAt,
		&a.CreatedAt,
		&status,
		&a.Version,
		&a.BidsCounter,
		&bidderID,
		&bidAmount,
		&bidTs,
		&a.EndAt,
		&periodMs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auction.Auction{}, auction.ErrAuctionNotFound
		}
		return auction.Auction{}, fmt.Errorf("failed to find auction: %w", err)
	}
	a.OpeningAmount = auction.RestoreAmount(opening)
	a.MinimalAmount = auction.RestoreAmount(minimal)
	a.Status = statusFromDB(status)
	a.SellToHighestBidPeriod = time.Duration(periodMs) * time.Millisecond
	if bidderID != nil {
		a.CurrentBid = &auction.Bid{
			BidderID: *bidderID,
			Amount:   auction.RestoreAmount(bidAmount.Decimal),
			Ts:       *bidTs,
		}
	}
	return a, nil
}

// ENDED is kept as the stored name for sold auctions; the winner is always
// recoverable from the current bid.
func statusToDB(s auction.Status) string {
	if s == auction.StatusItemSold {
		return "ENDED"
	}
	return string(s)
}

func statusFromDB(s string) auction.Status {
	if s == "ENDED" {
		return auction.StatusItemSold
	}
	return auction.Status(s)
}

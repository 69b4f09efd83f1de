package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

const uniqueViolation = "23505"

// AutoBidRepository persists auto-bid policies. One user gets at most one
// policy per auction, enforced by a unique index.
type AutoBidRepository struct {
	pool *pgxpool.Pool
}

func NewAutoBidRepository(pool *pgxpool.Pool) *AutoBidRepository {
	return &AutoBidRepository{pool: pool}
}

const saveAutoBidSQL = `
	INSERT INTO auto_bids (id, auction_id, user_id, amount, bid_limit, enabled)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET enabled = EXCLUDED.enabled
`

func (r *AutoBidRepository) Save(ctx context.Context, ab auction.AutoBid) error {
	_, err := querier(ctx, r.pool).Exec(ctx, saveAutoBidSQL,
		ab.ID,
		ab.AuctionID,
		ab.UserID,
		ab.Amount.Value(),
		ab.Limit.Value(),
		ab.Enabled,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auction.ErrAutoBidAlreadyExists
		}
		return fmt.Errorf("failed to save auto bid: %w", err)
	}
	return nil
}

const findAutoBidSQL = `
	SELECT id, auction_id, user_id, amount, bid_limit, enabled
	FROM auto_bids
	WHERE id = $1
`

func (r *AutoBidRepository) Find(ctx context.Context, id uuid.UUID) (auction.AutoBid, error) {
	row := querier(ctx, r.pool).QueryRow(ctx, findAutoBidSQL, id)
	ab, err := scanAutoBid(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auction.AutoBid{}, auction.ErrAutoBidNotFound
		}
		return auction.AutoBid{}, fmt.Errorf("failed to find auto bid: %w", err)
	}
	return ab, nil
}

const findAutoBidsByAuctionSQL = `
	SELECT id, auction_id, user_id, amount, bid_limit, enabled
	FROM auto_bids
	WHERE auction_id = $1
`

func (r *AutoBidRepository) FindByAuction(ctx context.Context, auctionID uuid.UUID) ([]auction.AutoBid, error) {
	rows, err := querier(ctx, r.pool).Query(ctx, findAutoBidsByAuctionSQL, auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query auto bids: %w", err)
	}
	defer rows.Close()

	var result []auction.AutoBid
	for rows.Next() {
		ab, err := scanAutoBid(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auto bid: %w", err)
		}
		result = append(result, ab)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating auto bids: %w", err)
	}
	return result, nil
}

func scanAutoBid(row pgx.Row) (auction.AutoBid, error) {
	var (
		ab     auction.AutoBid
		amount decimal.Decimal
		limit  decimal.Decimal
	)
	if err := row.Scan(&ab.ID, &ab.AuctionID, &ab.UserID, &amount, &limit, &ab.Enabled); err != nil {
		return auction.AutoBid{}, err
	}
	ab.Amount = auction.RestoreAmount(amount)
	ab.Limit = auction.RestoreAmount(limit)
	return ab, nil
}

package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

// TransactionManager scopes a unit of work. A nested call reuses the
// transaction already carried by the context instead of opening a new one,
// so event handlers invoked during a use case write into the same
// transaction as the triggering aggregate save.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuctionRepository persists the auction aggregate. Save owns the version
// bump and must fail when a concurrent writer advanced the stored aggregate.
type AuctionRepository interface {
	Find(ctx context.Context, id uuid.UUID) (auction.Auction, error)
	Save(ctx context.Context, a auction.Auction) error
}

// AutoBidRepository persists auto-bid aggregates.
type AutoBidRepository interface {
	Find(ctx context.Context, id uuid.UUID) (auction.AutoBid, error)
	FindByAuction(ctx context.Context, auctionID uuid.UUID) ([]auction.AutoBid, error)
	Save(ctx context.Context, ab auction.AutoBid) error
}

// UserFinder looks a user up in the users service.
type UserFinder interface {
	FindUser(ctx context.Context, id uuid.UUID) (auction.User, error)
}

// ItemFinder looks an item up in the catalog service.
type ItemFinder interface {
	FindItem(ctx context.Context, id uuid.UUID) (auction.Item, error)
}

// EventPublisher fans a domain event out to the registered handlers,
// synchronously and within the caller's unit of work.
type EventPublisher interface {
	Publish(ctx context.Context, event auction.DomainEvent) error
}

// Monitor reports use-case outcomes: expected domain errors and crashes.
type Monitor interface {
	ReportError(err *auction.Error, useCase string)
	ReportCrash(err error, useCase string)
}

package events

import (
	"context"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

// Handler reacts to one domain event. Handlers run synchronously, in
// registration order, inside the publishing use case's transaction.
type Handler interface {
	Handle(ctx context.Context, event auction.DomainEvent) error
}

// Bus is the in-memory event dispatcher. A handler error stops the chain
// and propagates, rolling back the whole unit of work.
type Bus struct {
	handlers []Handler
}

func NewBus(handlers ...Handler) *Bus {
	return &Bus{handlers: handlers}
}

func (b *Bus) Publish(ctx context.Context, event auction.DomainEvent) error {
	for _, h := range b.handlers {
		if err := h.Handle(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

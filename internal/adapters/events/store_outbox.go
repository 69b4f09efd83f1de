package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/outbidhq/auction-service/internal/adapters/database"
	"github.com/outbidhq/auction-service/internal/domain/auction"
)

// ErrNonActiveTransaction signals an outbox write attempted outside a unit
// of work. Staging a message that could outlive a rolled-back aggregate
// save (or vice versa) would break the outbox guarantee, so this is a
// programming error, not a recoverable condition.
var ErrNonActiveTransaction = errors.New("outbox message must be stored within an active transaction")

// OutboxStore stages integration events durably.
type OutboxStore interface {
	Save(ctx context.Context, msg database.OutboxMessage) error
}

// StoreOutboxMessage translates every domain event into an integration
// event and stages it in the outbox, inside the triggering use case's
// transaction.
type StoreOutboxMessage struct {
	outbox        OutboxStore
	stream        string
	inTransaction func(ctx context.Context) bool
	newEventID    func() uuid.UUID
	now           func() time.Time
}

func NewStoreOutboxMessage(outbox OutboxStore, stream string) *StoreOutboxMessage {
	return &StoreOutboxMessage{
		outbox:        outbox,
		stream:        stream,
		inTransaction: database.InTransaction,
		newEventID:    uuid.New,
		now:           time.Now,
	}
}

func (h *StoreOutboxMessage) Handle(ctx context.Context, event auction.DomainEvent) error {
	if !h.inTransaction(ctx) {
		return ErrNonActiveTransaction
	}
	envelope, err := NewIntegrationEvent(event, h.newEventID(), h.now())
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal integration event: %w", err)
	}
	return h.outbox.Save(ctx, database.OutboxMessage{
		ID:              envelope.EventID,
		AggregateID:     envelope.Auction.ID,
		MessagingSystem: database.MessagingSystemRabbitMQ,
		Target:          h.stream,
		Payload:         payload,
	})
}

package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/outbidhq/auction-service/internal/adapters/events"
	"github.com/outbidhq/auction-service/internal/app"
	"github.com/outbidhq/auction-service/internal/domain/auction"
)

// AutoBidSource lists the auto-bids registered against one auction.
type AutoBidSource interface {
	FindByAuction(ctx context.Context, auctionID uuid.UUID) ([]auction.AutoBid, error)
}

type AutoBidPlacer interface {
	PlaceAutoBid(ctx context.Context, cmd app.PlaceAutoBidCommand) error
}

type AutoBidDisabler interface {
	DisableAutoBid(ctx context.Context, cmd app.DisableAutoBidCommand) error
}

// BidPlacedConsumer drives the auto-bid reaction: whenever a bid lands on
// an auction, every registered auto-bid tries to raise, and any auto-bid
// that fails with a business answer is switched off. Delivery is
// at-least-once; idempotency comes from the aggregate gates (bid counter,
// enabled flag), not from deduplication.
type BidPlacedConsumer struct {
	conn     *amqp.Connection
	exchange string
	queue    string
	autoBids AutoBidSource
	placer   AutoBidPlacer
	disabler AutoBidDisabler
	logger   *slog.Logger
}

func NewBidPlacedConsumer(
	conn *amqp.Connection,
	exchange string,
	queue string,
	autoBids AutoBidSource,
	placer AutoBidPlacer,
	disabler AutoBidDisabler,
	logger *slog.Logger,
) *BidPlacedConsumer {
	return &BidPlacedConsumer{
		conn:     conn,
		exchange: exchange,
		queue:    queue,
		autoBids: autoBids,
		placer:   placer,
		disabler: disabler,
		logger:   logger,
	}
}

// Run consumes until the context is cancelled. A processing error nacks
// with requeue, leaving the retry to the broker.
func (c *BidPlacedConsumer) Run(ctx context.Context, routingKey string) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		c.queue, // name
		true,    // durable
		false,   // auto-delete
		false,   // exclusive
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, routingKey, c.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx,
		q.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			if err := c.Handle(ctx, d.Body); err != nil {
				c.logger.Error("failed to process delivery", "error", err)
				if err := d.Nack(false, true); err != nil {
					c.logger.Error("failed to nack delivery", "error", err)
				}
				continue
			}
			if err := d.Ack(false); err != nil {
				c.logger.Error("failed to ack delivery", "error", err)
			}
		}
	}
}

// Handle processes one delivery body. Only bid_placed_event triggers the
// saga; every other event type is a no-op.
func (c *BidPlacedConsumer) Handle(ctx context.Context, body []byte) error {
	var envelope events.IntegrationEvent
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode integration event: %w", err)
	}
	if envelope.EventType != events.TypeBidPlaced {
		return nil
	}

	autoBids, err := c.autoBids.FindByAuction(ctx, envelope.Auction.ID)
	if err != nil {
		return fmt.Errorf("failed to load auto-bids for auction %s: %w", envelope.Auction.ID, err)
	}

	for _, autoBid := range autoBids {
		err := c.placer.PlaceAutoBid(ctx, app.PlaceAutoBidCommand{AutoBidID: autoBid.ID})
		if err == nil {
			continue
		}
		var domainErr *auction.Error
		if !errors.As(err, &domainErr) {
			return fmt.Errorf("failed to place auto-bid %s: %w", autoBid.ID, err)
		}
		// The policy could not raise (limit reached, auction finished,
		// already disabled, ...): switch it off so it stops reacting.
		c.logger.Info("disabling auto-bid", "auto_bid_id", autoBid.ID, "reason", domainErr.Code())
		if err := c.disabler.DisableAutoBid(ctx, app.DisableAutoBidCommand{AutoBidID: autoBid.ID}); err != nil {
			if errors.As(err, &domainErr) {
				continue
			}
			return fmt.Errorf("failed to disable auto-bid %s: %w", autoBid.ID, err)
		}
	}
	return nil
}

package events

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQPublisher publishes integration events to a single topic
// exchange, declared up front so publishing cannot race the topology.
type RabbitMQPublisher struct {
	channel  *amqp.Channel
	exchange string
}

func NewRabbitMQPublisher(conn *amqp.Connection, exchange string) (*RabbitMQPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	durable, autoDelete, internal, noWait := true, false, false, false
	if err := ch.ExchangeDeclare(exchange, "topic", durable, autoDelete, internal, noWait, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchange, err)
	}

	return &RabbitMQPublisher{channel: ch, exchange: exchange}, nil
}

func (p *RabbitMQPublisher) Close() error {
	return p.channel.Close()
}

// Publish routes the body through the publisher's exchange.
func (p *RabbitMQPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	mandatory, immediate := false, false
	return p.channel.PublishWithContext(ctx, p.exchange, routingKey, mandatory, immediate, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

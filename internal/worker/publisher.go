package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// Publisher sends job status updates
type Publisher interface {
	Publish(ctx context.Context, u Update) error
}

// AMQPPublisher publishes updates to the UpdatesExchange topic exchange
type AMQPPublisher struct {
	conn *amqp.Connection
}

// NewAMQPPublisher declares the updates exchange on conn
func NewAMQPPublisher(conn *amqp.Connection) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.ExchangeDeclare(
		UpdatesExchange, // name
		"topic",         // kind
		true,            // durable
		false,           // auto-delete
		false,           // internal
		false,           // no-wait
		nil,             // arguments
	); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", UpdatesExchange, err)
	}
	return &AMQPPublisher{conn: conn}, nil
}

// Publish sends u with routing key analysis.<id>. Channels are not shared between
// goroutines, so each publish opens its own.
func (p *AMQPPublisher) Publish(_ context.Context, u Update) error {
	body, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	return ch.Publish(
		UpdatesExchange,
		RoutingKey(u.AnalysisID),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    u.Timestamp,
			Body:         body,
		},
	)
}

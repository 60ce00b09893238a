// Package rabbitmq publishes order transitions to a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const routingKeyPrefix = "fulfillment.order."

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

var _ ports.EventPublisher = (*Publisher)(nil)

type Publisher struct {
	channel  Channel
	exchange string
	conn     *amqp.Connection
	ch       *amqp.Channel
}

// TransitionMessage is the JSON body of every published transition.
type TransitionMessage struct {
	OrderID  string    `json:"orderId"`
	StoreID  string    `json:"storeId"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	WorkerID string    `json:"workerId,omitempty"`
	At       time.Time `json:"at"`
}

func NewPublisher(channel Channel, exchange string) *Publisher {
	return &Publisher{channel: channel, exchange: exchange}
}

// Dial connects to url and declares exchange as a durable topic exchange.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	p := NewPublisher(ch, exchange)
	p.conn = conn
	p.ch = ch
	return p, nil
}

func (p *Publisher) PublishTransition(ctx context.Context, transition order.Transition) error {
	msg := TransitionMessage{
		OrderID: transition.OrderID.String(),
		StoreID: transition.StoreID.String(),
		From:    transition.From.String(),
		To:      transition.To.String(),
		At:      transition.At.UTC(),
	}
	if transition.WorkerID != nil {
		msg.WorkerID = transition.WorkerID.String()
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode transition: %w", err)
	}

	key := RoutingKey(transition.To)
	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    msg.At,
			Body:         body,
			Headers: amqp.Table{
				"order_id": msg.OrderID,
				"store_id": msg.StoreID,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}

// Close releases the channel and connection opened by Dial.
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// RoutingKey names the topic for a transition into status,
// e.g. fulfillment.order.readytoassemble.
func RoutingKey(status order.Status) string {
	return routingKeyPrefix + strings.ToLower(status.String())
}

var _ ports.EventPublisher = NopPublisher{}

// NopPublisher drops every transition. It stands in when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishTransition(context.Context, order.Transition) error {
	return nil
}

package ticket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	Exchange = "pos.tickets"
	// publish waits at most this long for the broker confirm
	publishTimeout = 5 * time.Second
)

// RoutingKey is the topic a ticket of kind k is published on.
func RoutingKey(k Kind) string { return "ticket." + string(k) }

// AMQPDispatcher publishes tickets to a topic exchange with publisher
// confirms. Print stations bind queues to ticket.receipt or ticket.kitchen.
type AMQPDispatcher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	mu   sync.Mutex
	log  *zap.Logger
}

// confirmation is the broker's answer to one publish, matched by delivery tag.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

func DialAMQP(url string, log *zap.Logger) (*AMQPDispatcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &AMQPDispatcher{conn: conn, ch: ch, log: log.Named("amqp")}, nil
}

func (d *AMQPDispatcher) Dispatch(ctx context.Context, t Ticket) error {
	body, err := json.Marshal(t)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	d.mu.Lock()
	dc, err := d.ch.PublishWithDeferredConfirmWithContext(ctx, Exchange, RoutingKey(t.Kind), false, false, amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		MessageId:     fmt.Sprintf("%s-%s-%d", t.OrderID, t.Kind, t.RenderedAt.UnixNano()),
		CorrelationId: t.OrderID,
		Timestamp:     t.RenderedAt,
		Headers:       amqp.Table{"kind": string(t.Kind)},
		Body:          body,
	})
	d.mu.Unlock()
	if err != nil {
		return err
	}
	if dc == nil {
		return errors.New("channel is not in confirm mode")
	}

	if err := awaitConfirm(ctx, dc); err != nil {
		return err
	}
	d.log.Debug("ticket published", zap.String("order_id", t.OrderID), zap.String("kind", string(t.Kind)))
	return nil
}

func awaitConfirm(ctx context.Context, c confirmation) error {
	ack, err := c.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !ack {
		return errors.New("publish NACK from broker")
	}
	return nil
}

// Ping reports whether the broker connection is still open.
func (d *AMQPDispatcher) Ping() error {
	if d.conn == nil || d.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

func (d *AMQPDispatcher) Close() {
	if d.ch != nil {
		_ = d.ch.Close()
	}
	if d.conn != nil {
		_ = d.conn.Close()
	}
}

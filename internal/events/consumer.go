package events

import (
	"context"
	"errors"
	"fmt"

	"turfbook/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PaymentRecorderFunc applies a confirmed full payment to a booking.
// It must be idempotent.
type PaymentRecorderFunc func(ctx context.Context, bookingID int) error

type ConsumerConfig struct {
	URL      string
	Exchange string
	Queue    string
	Prefetch int
}

type Consumer struct {
	cfg    ConsumerConfig
	record PaymentRecorderFunc

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg ConsumerConfig, record PaymentRecorderFunc) *Consumer {
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 8
	}
	return &Consumer{cfg: cfg, record: record}
}

func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	fail := func(step string, err error) error {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("%s: %w", step, err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fail("declare exchange", err)
	}
	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil)
	if err != nil {
		return fail("declare queue", err)
	}
	if err := ch.QueueBind(q.Name, RKPaymentFullPaid, c.cfg.Exchange, false, nil); err != nil {
		return fail("bind queue", err)
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return fail("set qos", err)
	}

	c.conn = conn
	c.ch = ch
	return nil
}

// Run consumes until ctx is cancelled or the delivery channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, "turfbook", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			c.settle(d, c.handle(ctx, d.RoutingKey, d.Body))
		}
	}
}

type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (c *Consumer) settle(d acknowledger, err error) {
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, ErrDiscard):
		logger.WithError(err).Warn("dropping event")
		_ = d.Nack(false, false)
	default:
		logger.WithError(err).Error("event handling failed, requeueing")
		_ = d.Nack(false, true)
	}
}

func (c *Consumer) handle(ctx context.Context, key string, body []byte) error {
	switch key {
	case RKPaymentFullPaid:
		ev, err := Unmarshal[PaymentFullPaid](body)
		if err != nil {
			return fmt.Errorf("%w: decode %s: %v", ErrDiscard, key, err)
		}
		if ev.BookingID <= 0 {
			return fmt.Errorf("%w: %s without booking_id", ErrDiscard, key)
		}
		return c.record(ctx, ev.BookingID)
	default:
		logger.Warn("skip unknown routing key", "routing_key", key)
		return nil
	}
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

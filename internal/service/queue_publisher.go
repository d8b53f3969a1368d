// Package queue_publisher publishes listing events to RabbitMQ.  Errors are
// logged and returned so callers can ignore failures without interrupting
// the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/labstack/echo/v4"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/fyyur/internal/config"
	q "github.com/iliyamo/fyyur/internal/queue"
)

// Publisher sends listing events to the broker.
type Publisher interface {
	Publish(ctx context.Context, ev q.ListingEvent) error
}

// New returns an AMQP publisher when the queue is enabled and a no-op
// publisher otherwise.
func New(cfg config.QueueConfig, logger echo.Logger) Publisher {
	if !cfg.Enabled {
		return Nop{}
	}
	return &AMQPPublisher{cfg: cfg, log: logger}
}

// Nop drops every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, q.ListingEvent) error { return nil }

// AMQPPublisher opens a short-lived connection per event.  Writes are rare
// compared to reads, so no connection is held between requests.
type AMQPPublisher struct {
	cfg config.QueueConfig
	log echo.Logger
}

// Publish sends ev to the configured queue as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, ev q.ListingEvent) error {
	conn, err := amqp.DialConfig(p.cfg.URL, amqp.Config{Dial: amqp.DefaultDial(p.cfg.DialTimeout)})
	if err != nil {
		p.log.Warnf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warnf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.cfg.Queue, // name
		true,        // durable
		false,       // autoDelete
		false,       // exclusive
		false,       // noWait
		nil,         // args
	); err != nil {
		p.log.Warnf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	pub, err := NewPublishing(ev)
	if err != nil {
		p.log.Errorf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	if err := ch.PublishWithContext(ctx,
		"",          // default exchange
		p.cfg.Queue, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		pub,
	); err != nil {
		p.log.Warnf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}

// NewPublishing encodes ev as a persistent JSON message.
func NewPublishing(ev q.ListingEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Type:         ev.Type,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}, nil
}

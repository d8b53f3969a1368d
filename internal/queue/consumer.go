// Package queue contains the background consumer that listens to the
// listing events queue and appends one line per event to the activity log.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/fyyur/internal/config"
)

// ActivityConsumer drains the listing events queue into a log file.
type ActivityConsumer struct {
	cfg config.QueueConfig
	log echo.Logger
}

// NewActivityConsumer builds a consumer for cfg.Queue writing to
// cfg.ActivityLog.
func NewActivityConsumer(cfg config.QueueConfig, logger echo.Logger) *ActivityConsumer {
	return &ActivityConsumer{cfg: cfg, log: logger}
}

// Run connects to RabbitMQ, declares the queue (durable) and consumes
// until ctx is cancelled.  Dial failures back off exponentially up to 30s;
// a dropped connection is re-established after a short pause.  Run only
// returns once ctx is done.
func (c *ActivityConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.DialConfig(c.cfg.URL, amqp.Config{Dial: amqp.DefaultDial(c.cfg.DialTimeout)})
		if err != nil {
			c.log.Warnf("activity-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warnf("activity-consumer: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *ActivityConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.cfg.ConsumerQoS, 0, false); err != nil {
		c.log.Warnf("activity-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.ConsumeWithContext(ctx, c.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := c.handleMessage(d.Body); err != nil {
			c.log.Errorf("activity-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func (c *ActivityConsumer) handleMessage(body []byte) error {
	var ev ListingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" {
		return errors.New("event without type")
	}
	if err := os.MkdirAll(filepath.Dir(c.cfg.ActivityLog), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(c.cfg.ActivityLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatActivity(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatActivity renders ev as a single newline-terminated log line.
func FormatActivity(ev ListingEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", ev.OccurredAt, ev.Type)
	if ev.VenueID != 0 {
		fmt.Fprintf(&b, " | venue_id=%d", ev.VenueID)
	}
	if ev.ArtistID != 0 {
		fmt.Fprintf(&b, " | artist_id=%d", ev.ArtistID)
	}
	if ev.Name != "" {
		fmt.Fprintf(&b, " | name=%q", ev.Name)
	}
	if ev.StartTime != "" {
		fmt.Fprintf(&b, " | start_time=%s", ev.StartTime)
	}
	b.WriteByte('\n')
	return b.String()
}

package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Publisher sends audit events to RabbitMQ. It dials per publish so a
// broker restart never leaves the API holding a dead connection; audit
// traffic is low-volume enough that this stays cheap. An empty URL
// disables publishing entirely.
type Publisher struct {
	url string
	log zerolog.Logger
}

func NewPublisher(url string, log zerolog.Logger) *Publisher {
	return &Publisher{url: url, log: log}
}

// PublishAudit sends one audit event to the entity.audit queue. Errors
// are logged and returned so callers can ignore them: a broker outage
// must never fail the write that already committed.
func (p *Publisher) PublishAudit(ctx context.Context, ev AuditEvent) error {
	if p == nil || p.url == "" {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(AuditQueue, true, false, false, false, nil); err != nil {
		p.log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", AuditQueue, false, false, pub); err != nil {
		p.log.Warn().Err(err).Str("entity", ev.Entity).Str("action", ev.Action).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}

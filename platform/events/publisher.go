package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ChangeType names a change to an event record.
type ChangeType string

const (
	ChangeEventCreated ChangeType = "event.created"
	ChangeEventDeleted ChangeType = "event.deleted"
)

// ChangeEvent is the message written to the change feed topic.
type ChangeEvent struct {
	Type       ChangeType `json:"type"`
	EventID    string     `json:"eventId"`
	UserID     string     `json:"userId"`
	Title      string     `json:"title,omitempty"`
	OccurredAt time.Time  `json:"occurredAt"`
}

// Publisher writes change events to Kafka, keyed by event id so a record's changes stay ordered.
type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewPublisher configures a writer that waits for all in-sync replicas.
func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  3,
			WriteTimeout: 10 * time.Second,
			BatchTimeout: 10 * time.Millisecond,
		},
		logger: logger.With(zap.String("component", "publisher"), zap.String("topic", topic)),
	}
}

// Publish writes one change event.
func (p *Publisher) Publish(ctx context.Context, e ChangeEvent) error {
	msg, err := message(e)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	p.logger.Debug("change event published",
		zap.String("type", string(e.Type)),
		zap.String("event_id", e.EventID),
	)
	return nil
}

// Close flushes pending writes.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func message(e ChangeEvent) (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal change event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(e.EventID),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	}, nil
}

// NopPublisher drops every change event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ChangeEvent) error { return nil }
func (NopPublisher) Close() error                              { return nil }

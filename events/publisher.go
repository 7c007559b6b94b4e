package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"food-delivery/models"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes order events as JSON, keyed by order id so one order's events
// stay on one partition.
type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, evt models.OrderEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.OrderID.Hex()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(evt.Type)},
		},
		Time: evt.OccurredAt,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}

// LogPublisher only logs events. It is used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) PublishOrderEvent(_ context.Context, evt models.OrderEvent) error {
	log.Printf("event %s order=%s status=%s", evt.Type, evt.OrderID.Hex(), evt.Status)
	return nil
}

func (LogPublisher) Close() error { return nil }

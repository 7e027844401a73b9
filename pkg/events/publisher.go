package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"parq/pkg/logger"
)

var ErrPublisherClosed = errors.New("event publisher is closed")

// Publisher delivers lifecycle events. Delivery is best-effort: callers
// treat a publish failure as a logged non-event, never as an operation
// failure.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// KafkaPublisher writes events to a single topic, partitioned by event
// key so per-spot ordering survives.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *logger.Logger
	mu     sync.Mutex
	closed bool
}

func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("kafka writer error", "detail", msg)
		}),
	}

	return &KafkaPublisher{writer: writer, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPublisherClosed
	}
	p.mu.Unlock()

	value, err := e.encode()
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(e.Key),
		Value: value,
		Time:  e.At,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(e.ID)},
			{Key: HeaderEventType, Value: []byte(e.Type)},
			{Key: HeaderSource, Value: []byte(e.Source)},
			{Key: HeaderTimestamp, Value: []byte(e.At.Format(time.RFC3339))},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, e Event) error { return nil }
func (NopPublisher) Close() error                               { return nil }

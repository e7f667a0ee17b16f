// Package kafka streams stock events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"inventory-tracker/internal/config"
	"inventory-tracker/internal/events"
)

const eventVersion = "1"

// Writer is the subset of *kafka.Writer the producer needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer buffers events and writes them from a single goroutine so
// publishing never blocks a request.
type Producer struct {
	w       Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
	log     *slog.Logger
}

func NewProducer(cfg config.Kafka, log *slog.Logger) *Producer {
	return NewProducerWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}, 256, log)
}

func NewProducerWithWriter(w Writer, buf int, log *slog.Logger) *Producer {
	return &Producer{
		w:       w,
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
		log:     log,
	}
}

// Start runs the write loop. On ctx cancellation pending messages are
// flushed before the writer is closed.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for {
			select {
			case <-ctx.Done():
				p.drain()
				return
			case m := <-p.inbox:
				p.write(m)
			}
		}
	}()
}

func (p *Producer) drain() {
	for {
		select {
		case m := <-p.inbox:
			p.write(m)
		default:
			if err := p.w.Close(); err != nil {
				p.log.Warn("Close kafka writer", slog.Any("error", err))
			}
			return
		}
	}
}

func (p *Producer) write(m kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.w.WriteMessages(ctx, m); err != nil {
		p.log.Error("Write kafka message", slog.String("key", string(m.Key)), slog.Any("error", err))
	}
}

// WaitClosed blocks until the write loop has flushed and exited.
func (p *Producer) WaitClosed() { <-p.closeCh }

// Publish implements events.Publisher. Events are keyed by product id so a
// product's history stays ordered within one partition.
func (p *Producer) Publish(_ context.Context, evt events.Event) error {
	b, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	m := kafka.Message{
		Key:   []byte(evt.ProductID.String()),
		Value: b,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(evt.Type)},
			{Key: "x-event-version", Value: []byte(eventVersion)},
		},
	}
	select {
	case p.inbox <- m:
		return nil
	default:
		return fmt.Errorf("kafka inbox full, dropped %s", evt.Type)
	}
}

package kafka_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-tracker/internal/events"
	kafkax "inventory-tracker/internal/kafka"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func TestProducer(t *testing.T) {
	w := &fakeWriter{}
	p := kafkax.NewProducerWithWriter(w, 8, slog.New(slog.NewTextHandler(io.Discard, nil)))

	productID := uuid.New()
	evt := events.New(events.IssuanceCreated, productID, "Pen", 7)

	// Queue before starting so the flush on shutdown is exercised.
	require.NoError(t, p.Publish(context.Background(), evt))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Start(ctx)
	p.WaitClosed()

	w.mu.Lock()
	defer w.mu.Unlock()
	require.Len(t, w.msgs, 1)
	assert.True(t, w.closed)

	m := w.msgs[0]
	assert.Equal(t, productID.String(), string(m.Key))
	assert.Equal(t, "x-event-type", m.Headers[0].Key)
	assert.Equal(t, string(events.IssuanceCreated), string(m.Headers[0].Value))

	var got events.Event
	require.NoError(t, json.Unmarshal(m.Value, &got))
	assert.Equal(t, evt.ID, got.ID)
	assert.Equal(t, 7, got.Quantity)
}

func TestProducerInboxFull(t *testing.T) {
	p := kafkax.NewProducerWithWriter(&fakeWriter{}, 1, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, p.Publish(context.Background(), events.New(events.StockAdjusted, uuid.New(), "", 1)))
	assert.Error(t, p.Publish(context.Background(), events.New(events.StockAdjusted, uuid.New(), "", 1)))
}

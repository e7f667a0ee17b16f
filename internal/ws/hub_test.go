package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-tracker/internal/events"
)

func TestHubPublish(t *testing.T) {
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	evt := events.New(events.StockLow, uuid.New(), "Toner", 2)

	require.NoError(t, h.Publish(context.Background(), evt))

	var msg Message
	require.NoError(t, json.Unmarshal(<-h.Broadcast, &msg))
	assert.Equal(t, "stock_update", msg.Type)
	assert.Equal(t, events.StockLow, msg.Event.Type)
	assert.Equal(t, "Toner", msg.Event.ProductName)
}

func TestHubPublishDropsWhenFull(t *testing.T) {
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	for i := 0; i < cap(h.Broadcast); i++ {
		require.NoError(t, h.Publish(context.Background(), events.New(events.StockAdjusted, uuid.New(), "", 1)))
	}

	err := h.Publish(context.Background(), events.New(events.StockAdjusted, uuid.New(), "", 1))
	assert.Error(t, err)
}

func TestHubRunStopsOnCancel(t *testing.T) {
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	cancel()
	<-done
	assert.Zero(t, h.ClientCount())
}

func TestHubSendsReturnAfterStop(t *testing.T) {
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	cancel()
	<-stopped

	returned := make(chan bool)
	go func() {
		h.unregister(nil)
		returned <- h.register(nil)
	}()

	select {
	case ok := <-returned:
		assert.False(t, ok, "a stopped hub accepts no new clients")
	case <-time.After(time.Second):
		t.Fatal("client handoff blocked after the hub stopped")
	}
}

// Package events carries stock notifications from services to the outside
// world after a transaction commits.
package events

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	ProductCreated  Type = "product.created"
	ProductUpdated  Type = "product.updated"
	ProductDeleted  Type = "product.deleted"
	StockAdjusted   Type = "stock.adjusted"
	StockLow        Type = "stock.low"
	StockRejected   Type = "stock.rejected"
	IssuanceCreated Type = "issuance.created"
	IssuanceDeleted Type = "issuance.deleted"
)

// AffectsStock reports whether the event changes dashboard figures.
func (t Type) AffectsStock() bool {
	return t != StockRejected
}

type Actor struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type Event struct {
	ID          uuid.UUID  `json:"id"`
	Type        Type       `json:"type"`
	ProductID   uuid.UUID  `json:"product_id"`
	ProductName string     `json:"product_name,omitempty"`
	Quantity    int        `json:"quantity"`
	Delta       int        `json:"delta,omitempty"`
	IssuanceID  *uuid.UUID `json:"issuance_id,omitempty"`
	Actor       Actor      `json:"actor"`
	Message     string     `json:"message"`
	OccurredAt  time.Time  `json:"occurred_at"`
}

// New stamps an event with a fresh id and the current UTC time.
func New(t Type, productID uuid.UUID, productName string, quantity int) Event {
	return Event{
		ID:          uuid.New(),
		Type:        t,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		OccurredAt:  time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, evt Event) error

func (f PublisherFunc) Publish(ctx context.Context, evt Event) error { return f(ctx, evt) }

// Nop drops every event.
var Nop Publisher = PublisherFunc(func(context.Context, Event) error { return nil })

// Fanout delivers each event to every subscriber. A failing subscriber is
// logged and does not stop delivery to the rest.
type Fanout struct {
	subscribers []Publisher
	log         *slog.Logger
}

func NewFanout(log *slog.Logger, subscribers ...Publisher) *Fanout {
	return &Fanout{subscribers: subscribers, log: log}
}

func (f *Fanout) Subscribe(p Publisher) {
	f.subscribers = append(f.subscribers, p)
}

func (f *Fanout) Publish(ctx context.Context, evt Event) error {
	var errs []error
	for _, s := range f.subscribers {
		if err := s.Publish(ctx, evt); err != nil {
			f.log.WarnContext(ctx, "Publish event",
				slog.String("type", string(evt.Type)),
				slog.String("event_id", evt.ID.String()),
				slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

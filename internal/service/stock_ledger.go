package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inventory-tracker/internal/apperr"
	"inventory-tracker/internal/events"
	"inventory-tracker/internal/model"
	"inventory-tracker/internal/repository"
)

// StockChange is the outcome of a ledger write. Product carries the new
// quantity.
type StockChange struct {
	Product     *model.Product
	OldQuantity int
	NewQuantity int
}

func (c StockChange) Delta() int { return c.NewQuantity - c.OldQuantity }

// StockLedger is the only writer of product quantities driven by stock
// movement. Every write is conditional on the quantity it read.
type StockLedger struct {
	products repository.ProductRepository
}

func NewStockLedger(products repository.ProductRepository) *StockLedger {
	return &StockLedger{products: products}
}

// ApplyDelta adds delta to the product's quantity inside tx. It fails with
// InsufficientStock when the result would be negative, returning the
// unchanged product alongside the error, and with a stock conflict when
// another writer changed the row since it was read.
func (l *StockLedger) ApplyDelta(ctx context.Context, tx *gorm.DB, actor model.Actor, productID uuid.UUID, delta int) (*StockChange, error) {
	products := l.products.WithTx(tx)

	product, err := products.FindByID(ctx, productID)
	if err != nil {
		return nil, lookup(err, apperr.ErrProductNotFound, "find product")
	}

	current := product.Quantity
	next := current + delta
	if next < 0 {
		return &StockChange{Product: product, OldQuantity: current, NewQuantity: current},
			apperr.InsufficientStock(current, -delta)
	}

	ok, err := products.UpdateQuantity(ctx, productID, current, next, actor.AuditName())
	if err != nil {
		return nil, fmt.Errorf("update quantity: %w", err)
	}
	if !ok {
		return nil, apperr.ErrStockConflict
	}

	product.Quantity = next
	product.UpdatedBy = actor.AuditName()
	return &StockChange{Product: product, OldQuantity: current, NewQuantity: next}, nil
}

type AdjustStockRequest struct {
	Delta int    `json:"delta"`
	Note  string `json:"note" validate:"max=500"`
}

// StockService exposes the ledger directly for restocking and corrections.
type StockService interface {
	AdjustStock(ctx context.Context, actor model.Actor, productID uuid.UUID, req AdjustStockRequest) (*model.ProductResponse, error)
}

type stockService struct {
	db     *gorm.DB
	ledger *StockLedger
	events events.Publisher
}

func NewStockService(db *gorm.DB, ledger *StockLedger, pub events.Publisher) StockService {
	return &stockService{db: db, ledger: ledger, events: pub}
}

func (s *stockService) AdjustStock(ctx context.Context, actor model.Actor, productID uuid.UUID, req AdjustStockRequest) (*model.ProductResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.Delta == 0 {
		return nil, apperr.ErrInvalidStockDelta
	}

	var change *StockChange
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		change, err = s.ledger.ApplyDelta(ctx, tx, actor, productID, req.Delta)
		return err
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInsufficientStock && change != nil {
			publish(ctx, s.events, stockEvent(events.StockRejected, actor, change.Product, req.Delta, err.Error()))
		}
		return nil, err
	}

	p := change.Product
	msg := fmt.Sprintf("%s adjusted '%s' by %+d", actor.Name, p.Name, req.Delta)
	if req.Note != "" {
		msg += ": " + req.Note
	}
	evts := []events.Event{stockEvent(events.StockAdjusted, actor, p, change.Delta(), msg)}
	if crossedLow(change.OldQuantity, p) {
		evts = append(evts, stockEvent(events.StockLow, actor, p, change.Delta(),
			fmt.Sprintf("'%s' is low on stock (%d left)", p.Name, p.Quantity)))
	}
	publish(ctx, s.events, evts...)

	res := p.ToResponse()
	return &res, nil
}


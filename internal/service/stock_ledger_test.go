package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"inventory-tracker/internal/apperr"
	"inventory-tracker/internal/events"
	"inventory-tracker/internal/repository"
	"inventory-tracker/internal/service"
)

// staleRepo simulates a concurrent writer: every conditional update misses.
type staleRepo struct {
	repository.ProductRepository
}

func (r staleRepo) WithTx(tx *gorm.DB) repository.ProductRepository {
	return staleRepo{r.ProductRepository.WithTx(tx)}
}

func (staleRepo) UpdateQuantity(context.Context, uuid.UUID, int, int, string) (bool, error) {
	return false, nil
}

func TestStockLedgerApplyDelta(t *testing.T) {
	ctx := context.Background()

	t.Run("Should apply positive and negative deltas", func(t *testing.T) {
		e := newEnv(t)
		p := e.fx.CreateProduct(t, e.db, "Bolt", 10)

		err := e.db.Transaction(func(tx *gorm.DB) error {
			change, err := e.ledger.ApplyDelta(ctx, tx, e.fx.Actor(), p.ID, -4)
			require.NoError(t, err)
			assert.Equal(t, 6, change.NewQuantity)
			assert.Equal(t, -4, change.Delta())

			change, err = e.ledger.ApplyDelta(ctx, tx, e.fx.Actor(), p.ID, 9)
			require.NoError(t, err)
			assert.Equal(t, 15, change.NewQuantity)
			return nil
		})
		require.NoError(t, err)

		got, err := e.products.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 15, got.Quantity)
	})

	t.Run("Should refuse to go negative", func(t *testing.T) {
		e := newEnv(t)
		p := e.fx.CreateProduct(t, e.db, "Nut", 2)

		err := e.db.Transaction(func(tx *gorm.DB) error {
			_, err := e.ledger.ApplyDelta(ctx, tx, e.fx.Actor(), p.ID, -3)
			return err
		})
		assert.Equal(t, apperr.KindInsufficientStock, apperr.KindOf(err))
	})

	t.Run("Should report a missing product", func(t *testing.T) {
		e := newEnv(t)
		err := e.db.Transaction(func(tx *gorm.DB) error {
			_, err := e.ledger.ApplyDelta(ctx, tx, e.fx.Actor(), uuid.New(), 1)
			return err
		})
		assert.ErrorIs(t, err, apperr.ErrProductNotFound)
	})

	t.Run("Should report a lost conditional update as a conflict", func(t *testing.T) {
		e := newEnv(t)
		p := e.fx.CreateProduct(t, e.db, "Washer", 10)
		ledger := service.NewStockLedger(staleRepo{e.products})

		err := e.db.Transaction(func(tx *gorm.DB) error {
			_, err := ledger.ApplyDelta(ctx, tx, e.fx.Actor(), p.ID, -1)
			return err
		})
		assert.ErrorIs(t, err, apperr.ErrStockConflict)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

		got, err := e.products.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, got.Quantity)
	})
}

func TestIssuanceRollsBackOnConflict(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	p := e.fx.CreateProduct(t, e.db, "Gasket", 10)

	stale := staleRepo{e.products}
	svc := service.NewIssuanceService(e.db, service.NewStockLedger(stale), stale, e.users, e.issuances, e.events)

	_, err := svc.CreateIssuance(ctx, e.fx.Actor(), issueReq(p.ID, 2))
	assert.ErrorIs(t, err, apperr.ErrStockConflict)

	n, err := e.issuances.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, e.events.Types())
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Should restock and publish", func(t *testing.T) {
		e := newEnv(t)
		svc := service.NewStockService(e.db, e.ledger, e.events)
		p := e.fx.CreateProduct(t, e.db, "Glue", 5)

		res, err := svc.AdjustStock(ctx, e.fx.Actor(), p.ID, service.AdjustStockRequest{Delta: 20, Note: "delivery"})
		require.NoError(t, err)
		assert.Equal(t, 25, res.Quantity)
		assert.False(t, res.LowStock)

		assert.Equal(t, events.StockAdjusted, e.events.Last().Type)
		assert.Contains(t, e.events.Last().Message, "delivery")
	})

	t.Run("Should reject a zero delta", func(t *testing.T) {
		e := newEnv(t)
		svc := service.NewStockService(e.db, e.ledger, e.events)
		p := e.fx.CreateProduct(t, e.db, "Tape", 5)

		_, err := svc.AdjustStock(ctx, e.fx.Actor(), p.ID, service.AdjustStockRequest{})
		assert.ErrorIs(t, err, apperr.ErrInvalidStockDelta)
	})

	t.Run("Should publish low stock when crossing the reorder level", func(t *testing.T) {
		e := newEnv(t)
		svc := service.NewStockService(e.db, e.ledger, e.events)
		p := e.fx.CreateProduct(t, e.db, "Ink", 15)

		_, err := svc.AdjustStock(ctx, e.fx.Actor(), p.ID, service.AdjustStockRequest{Delta: -6})
		require.NoError(t, err)
		assert.Equal(t, []events.Type{events.StockAdjusted, events.StockLow}, e.events.Types())
	})
}

package service_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"gorm.io/gorm"

	"inventory-tracker/internal/repository"
	"inventory-tracker/internal/service"
	"inventory-tracker/internal/testutil"
)

type env struct {
	db         *gorm.DB
	fx         testutil.Fixture
	events     *testutil.Recorder
	products   repository.ProductRepository
	issuances  repository.IssuanceRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	ledger     *service.StockLedger
	clock      *clock
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func (c *clock) set(day string) {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	c.now = t.Add(9 * time.Hour)
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	products := repository.NewProductRepo(db)
	return &env{
		db:         db,
		fx:         testutil.NewFixture(t, db),
		events:     &testutil.Recorder{},
		products:   products,
		issuances:  repository.NewIssuanceRepo(db),
		users:      repository.NewUserRepo(db),
		categories: repository.NewCategoryRepo(db),
		suppliers:  repository.NewSupplierRepo(db),
		ledger:     service.NewStockLedger(products),
		clock:      &clock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)},
	}
}

func (e *env) issuanceService() service.IssuanceService {
	return service.NewIssuanceService(e.db, e.ledger, e.products, e.users, e.issuances, e.events,
		service.WithClock(e.clock.Now))
}

func (e *env) productService() service.ProductService {
	return service.NewProductService(e.db, e.products, e.categories, e.suppliers, e.issuances, e.events)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventory-tracker/internal/model"
	"inventory-tracker/pkg/database"
)

// NewDB returns a migrated in-memory SQLite database private to t. The pool
// holds a single connection, so code under test must not touch the root
// handle while a transaction is open.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// Fixture is a minimal catalog: one user, one category, one supplier.
type Fixture struct {
	User     model.User
	Category model.Category
	Supplier model.Supplier
}

func (f Fixture) Actor() model.Actor {
	return model.Actor{UserID: f.User.ID, Email: f.User.Email, Name: f.User.FullName}
}

func NewFixture(t *testing.T, db *gorm.DB) Fixture {
	t.Helper()

	user := model.User{Email: "clerk@example.com", FullName: "Stock Clerk", IsActive: true}
	require.NoError(t, user.SetPassword("secret1"))
	require.NoError(t, db.Create(&user).Error)

	category := model.Category{Name: "Office Supplies"}
	require.NoError(t, db.Create(&category).Error)

	supplier := model.Supplier{Name: "Acme Stationery", Contact: "+254700000000"}
	require.NoError(t, db.Create(&supplier).Error)

	return Fixture{User: user, Category: category, Supplier: supplier}
}

// CreateProduct inserts a product with the given stock level.
func (f Fixture) CreateProduct(t *testing.T, db *gorm.DB, name string, quantity int) model.Product {
	t.Helper()

	p := model.Product{
		Name:         name,
		CategoryID:   f.Category.ID,
		SupplierID:   f.Supplier.ID,
		Quantity:     quantity,
		UnitPrice:    decimal.RequireFromString("12.50"),
		ReorderLevel: model.DefaultReorderLevel,
	}
	require.NoError(t, db.WithContext(context.Background()).Omit("Category", "Supplier").Create(&p).Error)
	return p
}

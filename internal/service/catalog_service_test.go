package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-tracker/internal/apperr"
	"inventory-tracker/internal/service"
)

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.calls++
	return nil
}

func TestCatalogCategories(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	stats := &countingInvalidator{}
	svc := service.NewCatalogService(e.categories, e.suppliers, e.products, stats)

	c, err := svc.CreateCategory(ctx, e.fx.Actor(), service.CategoryRequest{Name: "Furniture"})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.calls)

	_, err = svc.CreateCategory(ctx, e.fx.Actor(), service.CategoryRequest{Name: "furniture"})
	assert.ErrorIs(t, err, apperr.ErrCategoryExists)
	assert.Equal(t, 1, stats.calls, "rejected create keeps cached stats")

	updated, err := svc.UpdateCategory(ctx, e.fx.Actor(), c.ID, service.CategoryRequest{Name: "Furniture", Description: "Desks"})
	require.NoError(t, err)
	assert.Equal(t, "Desks", updated.Description)

	_, err = svc.UpdateCategory(ctx, e.fx.Actor(), c.ID, service.CategoryRequest{Name: e.fx.Category.Name})
	assert.ErrorIs(t, err, apperr.ErrCategoryExists)

	t.Run("Should refuse to delete a category in use", func(t *testing.T) {
		e.fx.CreateProduct(t, e.db, "Pencil", 10)
		err := svc.DeleteCategory(ctx, e.fx.Actor(), e.fx.Category.ID)
		assert.ErrorIs(t, err, apperr.ErrCategoryInUse)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("Should delete an unused category", func(t *testing.T) {
		require.NoError(t, svc.DeleteCategory(ctx, e.fx.Actor(), c.ID))
		assert.Equal(t, 2, stats.calls)
		_, err := svc.GetCategory(ctx, c.ID)
		assert.ErrorIs(t, err, apperr.ErrCategoryNotFound)
	})
}

func TestCatalogSuppliers(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	stats := &countingInvalidator{}
	svc := service.NewCatalogService(e.categories, e.suppliers, e.products, stats)

	s, err := svc.CreateSupplier(ctx, e.fx.Actor(), service.SupplierRequest{
		Name: "Globex", Contact: "Hank", Email: " Sales@Globex.test ",
	})
	require.NoError(t, err)
	require.NotNil(t, s.Email)
	assert.Equal(t, "sales@globex.test", *s.Email)

	_, err = svc.CreateSupplier(ctx, e.fx.Actor(), service.SupplierRequest{
		Name: "Globex 2", Contact: "Hank", Email: "sales@globex.test",
	})
	assert.ErrorIs(t, err, apperr.ErrSupplierExists)

	noEmail, err := svc.CreateSupplier(ctx, e.fx.Actor(), service.SupplierRequest{Name: "Initech", Contact: "Bill"})
	require.NoError(t, err)
	assert.Nil(t, noEmail.Email)

	_, err = svc.CreateSupplier(ctx, e.fx.Actor(), service.SupplierRequest{Name: "Bad", Contact: "x", Email: "not-an-email"})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	e.fx.CreateProduct(t, e.db, "Widget", 3)
	assert.ErrorIs(t, svc.DeleteSupplier(ctx, e.fx.Actor(), e.fx.Supplier.ID), apperr.ErrSupplierInUse)
	require.NoError(t, svc.DeleteSupplier(ctx, e.fx.Actor(), s.ID))

	list, err := svc.ListSuppliers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 3, stats.calls, "two creates and one delete")

	t.Run("Should normalize a padded email on update", func(t *testing.T) {
		updated, err := svc.UpdateSupplier(ctx, e.fx.Actor(), noEmail.ID, service.SupplierRequest{
			Name: "Initech", Contact: "Bill", Email: "  Bill@Initech.TEST ",
		})
		require.NoError(t, err)
		require.NotNil(t, updated.Email)
		assert.Equal(t, "bill@initech.test", *updated.Email)
	})
}

package seed_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-tracker/internal/config"
	"inventory-tracker/internal/model"
	"inventory-tracker/internal/repository"
	"inventory-tracker/internal/seed"
	"inventory-tracker/internal/testutil"
)

func TestSeederRun(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	s := seed.New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))

	cfg := config.Seed{
		AdminEmail:    " Admin@Example.com ",
		AdminPassword: "admin123",
		AdminName:     "Administrator",
		SampleData:    true,
	}
	require.NoError(t, s.Run(ctx, cfg))
	require.NoError(t, s.Run(ctx, cfg), "second run is a no-op")

	admin, err := repository.NewUserRepo(db).FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.RoleCode())
	assert.Len(t, admin.GetPrivilegeCodes(), len(model.DefaultPrivileges))
	assert.True(t, admin.CheckPassword("admin123"))

	viewer, err := repository.NewRoleRepo(db).FindByCode(ctx, model.RoleViewer)
	require.NoError(t, err)
	for _, p := range viewer.Privileges {
		assert.Contains(t, p.Code, ":view")
		assert.NotEqual(t, model.PrivUserView, p.Code)
	}

	n, err := repository.NewCategoryRepo(db).Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	low, err := repository.NewProductRepo(db).FindLowStock(ctx)
	require.NoError(t, err)
	assert.Len(t, low, 2)
}

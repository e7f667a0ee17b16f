package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-tracker/internal/model"
	"inventory-tracker/internal/repository"
	"inventory-tracker/internal/testutil"
)

func TestCategoryRepo_ExistsByName(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewCategoryRepo(db)

	c := model.Category{Name: "Cleaning"}
	require.NoError(t, repo.Create(ctx, &c))

	exists, err := repo.ExistsByName(ctx, "cleaning", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(ctx, "Cleaning", c.ID)
	require.NoError(t, err)
	assert.False(t, exists, "a category does not clash with itself")
}

func TestSupplierRepo_ExistsByEmail(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewSupplierRepo(db)

	email := "sales@acme.test"
	s := model.Supplier{Name: "Acme", Contact: "Jane", Email: &email}
	require.NoError(t, repo.Create(ctx, &s))

	exists, err := repo.ExistsByEmail(ctx, email, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, s.ID, "admin"))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRoleRepo_SeedDefaults(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	privRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	require.NoError(t, privRepo.SeedDefaults(ctx))
	require.NoError(t, privRepo.SeedDefaults(ctx))
	require.NoError(t, roleRepo.SeedDefaults(ctx))

	privileges, err := privRepo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, privileges, len(model.DefaultPrivileges))

	viewer, err := roleRepo.FindByCode(ctx, model.RoleViewer)
	require.NoError(t, err)

	views, err := privRepo.FindByCodes(ctx, []string{model.PrivProductView, model.PrivIssuanceView})
	require.NoError(t, err)
	require.NoError(t, roleRepo.ReplacePrivileges(ctx, viewer, views))

	viewer, err = roleRepo.FindByCode(ctx, model.RoleViewer)
	require.NoError(t, err)
	assert.Len(t, viewer.Privileges, 2)
}

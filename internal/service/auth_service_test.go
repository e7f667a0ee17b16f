package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-tracker/internal/apperr"
	"inventory-tracker/internal/model"
	"inventory-tracker/internal/repository"
	"inventory-tracker/internal/service"
	"inventory-tracker/pkg/jwt"
)

func seedRoles(t *testing.T, e *env) repository.RoleRepository {
	t.Helper()
	ctx := context.Background()
	privileges := repository.NewPrivilegeRepo(e.db)
	roles := repository.NewRoleRepo(e.db)
	require.NoError(t, privileges.SeedDefaults(ctx))
	require.NoError(t, roles.SeedDefaults(ctx))

	all, err := privileges.FindAll(ctx)
	require.NoError(t, err)
	list, err := roles.FindAll(ctx)
	require.NoError(t, err)
	for i := range list {
		var granted []model.Privilege
		for _, p := range all {
			if model.RoleGrants(list[i].Code, p.Code) {
				granted = append(granted, p)
			}
		}
		require.NoError(t, roles.ReplacePrivileges(ctx, &list[i], granted))
	}
	return roles
}

func TestUserAndAuthFlow(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	roles := seedRoles(t, e)

	users := service.NewUserService(e.users, roles)
	auth := service.NewAuthService(e.users, jwt.NewManager("secret", time.Hour, "test"), time.Hour)

	created, err := users.CreateUser(ctx, e.fx.Actor(), service.CreateUserRequest{
		Email:    " Viewer@Example.com",
		Password: "viewer123",
		FullName: "Read Only",
		RoleCode: "viewer",
	})
	require.NoError(t, err)
	assert.Equal(t, "viewer@example.com", created.Email)
	assert.Equal(t, model.RoleViewer, created.Role)
	assert.Contains(t, created.Privileges, model.PrivProductView)
	assert.NotContains(t, created.Privileges, model.PrivIssuanceCreate)

	_, err = users.CreateUser(ctx, e.fx.Actor(), service.CreateUserRequest{
		Email: "viewer@example.com", Password: "another1", FullName: "Dup", RoleCode: model.RoleViewer,
	})
	assert.ErrorIs(t, err, apperr.ErrEmailExists)

	_, err = users.CreateUser(ctx, e.fx.Actor(), service.CreateUserRequest{
		Email: "x@example.com", Password: "another1", FullName: "Nobody", RoleCode: "WIZARD",
	})
	assert.ErrorIs(t, err, apperr.ErrRoleNotFound)

	t.Run("Login issues a token that authenticates", func(t *testing.T) {
		res, err := auth.Login(ctx, service.LoginRequest{Email: "VIEWER@example.com ", Password: "viewer123"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, model.RoleViewer, res.User.Role)
		assert.NotNil(t, res.User.LastLoginAt)

		principal, err := auth.Authenticate(ctx, res.Token)
		require.NoError(t, err)
		assert.Equal(t, created.ID, principal.Actor.UserID)
		assert.Equal(t, "Read Only", principal.Actor.Name)
		assert.True(t, principal.Has(model.PrivProductView))
		assert.False(t, principal.Has(model.PrivUserManage))
	})

	t.Run("Wrong password is rejected", func(t *testing.T) {
		_, err := auth.Login(ctx, service.LoginRequest{Email: "viewer@example.com", Password: "nope"})
		assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

		_, err = auth.Login(ctx, service.LoginRequest{Email: "ghost@example.com", Password: "nope"})
		assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	})

	t.Run("A second login expires the first token", func(t *testing.T) {
		first, err := auth.Login(ctx, service.LoginRequest{Email: "viewer@example.com", Password: "viewer123"})
		require.NoError(t, err)
		_, err = auth.Login(ctx, service.LoginRequest{Email: "viewer@example.com", Password: "viewer123"})
		require.NoError(t, err)

		_, err = auth.ValidateToken(ctx, first.Token)
		assert.ErrorIs(t, err, apperr.ErrSessionExpired)
	})

	t.Run("Reset password rotates the session", func(t *testing.T) {
		session, err := auth.Login(ctx, service.LoginRequest{Email: "viewer@example.com", Password: "viewer123"})
		require.NoError(t, err)

		err = auth.ResetPassword(ctx, service.ResetPasswordRequest{
			Email: "viewer@example.com", OldPassword: "wrong", NewPassword: "fresh123",
		})
		assert.ErrorIs(t, err, apperr.ErrWrongPassword)

		require.NoError(t, auth.ResetPassword(ctx, service.ResetPasswordRequest{
			Email: "viewer@example.com", OldPassword: "viewer123", NewPassword: "fresh123",
		}))

		_, err = auth.Authenticate(ctx, session.Token)
		assert.ErrorIs(t, err, apperr.ErrSessionExpired)

		_, err = auth.Login(ctx, service.LoginRequest{Email: "viewer@example.com", Password: "fresh123"})
		assert.NoError(t, err)
	})

	t.Run("Inactive users cannot log in", func(t *testing.T) {
		inactive := false
		_, err := users.UpdateUser(ctx, e.fx.Actor(), created.ID, service.UpdateUserRequest{
			Email: "viewer@example.com", FullName: "Read Only", RoleCode: model.RoleViewer, IsActive: &inactive,
		})
		require.NoError(t, err)

		_, err = auth.Login(ctx, service.LoginRequest{Email: "viewer@example.com", Password: "fresh123"})
		assert.ErrorIs(t, err, apperr.ErrUserInactive)
	})

	t.Run("Garbage tokens are unauthorized", func(t *testing.T) {
		_, err := auth.Authenticate(ctx, "not-a-jwt")
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("Users cannot delete themselves", func(t *testing.T) {
		self := model.Actor{UserID: created.ID}
		err := users.DeleteUser(ctx, self, created.ID)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

		require.NoError(t, users.DeleteUser(ctx, e.fx.Actor(), created.ID))
		_, err = users.GetUserByID(ctx, created.ID)
		assert.ErrorIs(t, err, apperr.ErrUserNotFound)

		assert.ErrorIs(t, users.DeleteUser(ctx, e.fx.Actor(), uuid.New()), apperr.ErrUserNotFound)
	})
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	users := service.NewUserService(e.users, seedRoles(t, e))

	res, err := users.RegisterUser(ctx, service.RegisterRequest{
		Email: "Walk.In@Example.com ", Password: "walkin1", FullName: "Walk In",
	})
	require.NoError(t, err)
	assert.Equal(t, "walk.in@example.com", res.Email)
	assert.Equal(t, model.RoleViewer, res.Role)
	assert.NotContains(t, res.Privileges, model.PrivIssuanceCreate)

	_, err = users.RegisterUser(ctx, service.RegisterRequest{Email: "short@example.com", Password: "12345", FullName: "Short"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

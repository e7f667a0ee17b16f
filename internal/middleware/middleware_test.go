package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-tracker/internal/apperr"
	"inventory-tracker/internal/handler"
	"inventory-tracker/internal/middleware"
	"inventory-tracker/internal/model"
	"inventory-tracker/internal/service"
)

// stubAuth accepts the single token "good".
type stubAuth struct {
	service.AuthService
	principal *service.Principal
}

func (s stubAuth) Authenticate(_ context.Context, token string) (*service.Principal, error) {
	if token != "good" {
		return nil, apperr.ErrInvalidToken
	}
	return s.principal, nil
}

func newApp(log *slog.Logger, privileges ...string) *fiber.App {
	auth := stubAuth{principal: &service.Principal{
		Actor:      model.Actor{UserID: uuid.New(), Name: "Clerk"},
		Privileges: privileges,
	}}

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler(log)})
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log))
	app.Get("/open", middleware.RequireAuth(auth), func(c *fiber.Ctx) error {
		return c.SendString(middleware.Actor(c).Name)
	})
	app.Post("/guarded", middleware.RequireAuth(auth),
		middleware.RequireAnyPrivilege(model.PrivStockAdjust, model.PrivProductUpdate),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	return app
}

func send(t *testing.T, app *fiber.App, method, path, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireAuth(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(slog.New(slog.NewJSONHandler(&buf, nil)))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"bad token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
		{"scheme is case-insensitive", "bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, send(t, app, http.MethodGet, "/open", tt.header))
		})
	}
}

func TestRequireAnyPrivilege(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	t.Run("Should allow any listed privilege", func(t *testing.T) {
		app := newApp(log, model.PrivProductUpdate)
		assert.Equal(t, http.StatusNoContent, send(t, app, http.MethodPost, "/guarded", "Bearer good"))
	})

	t.Run("Should forbid without a listed privilege", func(t *testing.T) {
		app := newApp(log, model.PrivProductView)
		assert.Equal(t, http.StatusForbidden, send(t, app, http.MethodPost, "/guarded", "Bearer good"))
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.Equal(t, http.StatusUnauthorized, send(t, app, http.MethodGet, "/open", ""))

	out := buf.String()
	assert.Contains(t, out, `"msg":"HTTP request"`)
	assert.Contains(t, out, `"status":401`)
	assert.Contains(t, out, `"request_id":"`)
}

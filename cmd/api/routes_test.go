package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-shopkeeper/internal/handler"
	"go-shopkeeper/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T, rateLimit int) *fiber.App {
	t.Helper()
	tokens, err := jwt.NewManager("routes-secret", time.Hour)
	require.NoError(t, err)

	log := zerolog.Nop()
	h := handlers{
		auth:      handler.NewAuthHandler(nil, log),
		shop:      handler.NewShopHandler(nil, log),
		item:      handler.NewItemHandler(nil, log),
		customer:  handler.NewCustomerHandler(nil, log),
		bill:      handler.NewBillHandler(nil, log),
		dashboard: handler.NewDashboardHandler(nil, log),
		ws:        handler.NewWSHandler(nil, nil, log),
		health:    handler.NewHealthHandler(func(context.Context) error { return nil }, "test"),
	}
	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler(log)})
	registerRoutes(app, h, tokens, rateLimit)
	return app
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := testApp(t, 100)
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/shop"},
		{http.MethodPost, "/api/shop"},
		{http.MethodGet, "/api/homepage"},
		{http.MethodGet, "/api/items"},
		{http.MethodPost, "/api/create-items"},
		{http.MethodPut, "/api/items/00000000-0000-0000-0000-000000000001"},
		{http.MethodDelete, "/api/items/00000000-0000-0000-0000-000000000001"},
		{http.MethodPatch, "/api/items/00000000-0000-0000-0000-000000000001/stock"},
		{http.MethodGet, "/api/start-bills"},
		{http.MethodPost, "/api/start-bills"},
		{http.MethodGet, "/api/customer-prices?phone_number=9876543210"},
		{http.MethodPost, "/api/create-bill"},
		{http.MethodGet, "/api/bills"},
		{http.MethodGet, "/api/bills/00000000-0000-0000-0000-000000000001"},
		{http.MethodGet, "/api/customers"},
		{http.MethodPost, "/api/customers"},
		{http.MethodPut, "/api/customers/00000000-0000-0000-0000-000000000001"},
		{http.MethodDelete, "/api/customers/00000000-0000-0000-0000-000000000001"},
		{http.MethodGet, "/api/dashboard/stats"},
		{http.MethodGet, "/api/dashboard/sales"},
	}
	for _, r := range routes {
		resp, err := app.Test(httptest.NewRequest(r.method, r.path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s", r.method, r.path)
	}
}

func TestHealthz(t *testing.T) {
	resp, err := testApp(t, 100).Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	app := testApp(t, 2)
	var last int
	for i := 0; i < 3; i++ {
		// malformed JSON is rejected before the (nil) service is reached
		req := httptest.NewRequest(http.MethodPost, "/api/otp", nil)
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		last = resp.StatusCode
	}
	assert.Equal(t, fiber.StatusTooManyRequests, last)
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	resp, err := testApp(t, 100).Test(httptest.NewRequest(http.MethodGet, "/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

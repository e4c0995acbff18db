package main

import (
	"time"

	"go-shopkeeper/internal/handler"
	"go-shopkeeper/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type handlers struct {
	auth      *handler.AuthHandler
	shop      *handler.ShopHandler
	item      *handler.ItemHandler
	customer  *handler.CustomerHandler
	bill      *handler.BillHandler
	dashboard *handler.DashboardHandler
	ws        *handler.WSHandler
	health    *handler.HealthHandler
}

func registerRoutes(app *fiber.App, h handlers, tokens middleware.TokenValidator, authRateLimit int) {
	app.Get("/healthz", h.health.Health)

	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	authLimit := limiter.New(limiter.Config{
		Max:        authRateLimit,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests, try again later"})
		},
	})
	api.Post("/check-user", authLimit, h.auth.CheckUser)
	api.Post("/otp", authLimit, h.auth.IssueOTP)
	api.Post("/session", authLimit, h.auth.CreateSession)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(tokens))

	protected.Post("/shop", h.shop.CreateShop)
	protected.Get("/shop", h.shop.GetShop)
	protected.Get("/homepage", h.shop.Homepage)

	protected.Get("/items", h.item.ListItems)
	protected.Post("/create-items", h.item.CreateItem)
	protected.Put("/items/:id", h.item.UpdateItem)
	protected.Delete("/items/:id", h.item.DeleteItem)
	protected.Patch("/items/:id/stock", h.item.AdjustStock)

	protected.Get("/start-bills", h.bill.StartBill)
	protected.Post("/start-bills", h.bill.StartBill)
	protected.Get("/customer-prices", h.bill.CustomerPrices)
	protected.Post("/create-bill", h.bill.CreateBill)
	protected.Get("/bills", h.bill.ListBills)
	protected.Get("/bills/:id", h.bill.GetBill)

	protected.Get("/customers", h.customer.List)
	protected.Post("/customers", h.customer.Create)
	protected.Put("/customers/:id", h.customer.Update)
	protected.Delete("/customers/:id", h.customer.Delete)

	protected.Get("/dashboard/stats", h.dashboard.GetDashboardStats)
	protected.Get("/dashboard/sales", h.dashboard.GetSales)

	// WebSocket Route
	app.Get("/ws", middleware.RequireWebSocket(tokens), h.ws.Resolve, h.ws.Serve())
}

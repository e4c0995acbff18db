package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger is satisfied by anything that can check its backing store.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	ping    Pinger
	appName string
}

func NewHealthHandler(ping Pinger, appName string) *HealthHandler {
	return &HealthHandler{ping: ping, appName: appName}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "app": h.appName})
	}
	return c.JSON(fiber.Map{"status": "ok", "app": h.appName})
}

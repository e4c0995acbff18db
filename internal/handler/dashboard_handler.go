package handler

import (
	"go-shopkeeper/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type DashboardHandler struct {
	service service.DashboardService
	log     zerolog.Logger
}

func NewDashboardHandler(s service.DashboardService, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{service: s, log: log}
}

// GetSales returns daily billed and collected totals for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetSales(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	days := service.ClampDays(c.QueryInt("days", service.DefaultSalesDays))

	data, err := h.service.GetSales(c.UserContext(), accountID, days)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	stats, err := h.service.GetDashboardStats(c.UserContext(), accountID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{"stats": stats})
}

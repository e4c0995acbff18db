package handler

import (
	"go-shopkeeper/internal/model"
	"go-shopkeeper/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type ItemHandler struct {
	service service.ItemService
	log     zerolog.Logger
}

func NewItemHandler(s service.ItemService, log zerolog.Logger) *ItemHandler {
	return &ItemHandler{service: s, log: log}
}

type StockRequest struct {
	Action service.StockAction `json:"action"`
}

func catalog(items []model.Item) []model.CatalogItem {
	out := make([]model.CatalogItem, 0, len(items))
	for i := range items {
		out = append(out, items[i].ToCatalogItem())
	}
	return out
}

func (h *ItemHandler) ListItems(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	items, err := h.service.ListItems(c.UserContext(), accountID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"items": catalog(items)})
}

func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req service.ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	item, err := h.service.CreateItem(c.UserContext(), accountID, &req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Item created successfully", "item": item.ToCatalogItem()})
}

func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	itemID, err := paramID(c, "Invalid item ID")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req service.ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	item, err := h.service.UpdateItem(c.UserContext(), accountID, itemID, &req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Item updated successfully", "item": item.ToCatalogItem()})
}

func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	itemID, err := paramID(c, "Invalid item ID")
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.service.DeleteItem(c.UserContext(), accountID, itemID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted successfully"})
}

// AdjustStock moves stock by one unit
// PATCH /api/items/:id/stock {"action": "increment"|"decrement"}
func (h *ItemHandler) AdjustStock(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	itemID, err := paramID(c, "Invalid item ID")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req StockRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	stock, err := h.service.AdjustStock(c.UserContext(), accountID, itemID, req.Action)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Stock updated successfully", "new_stock_quantity": stock})
}

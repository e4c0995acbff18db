package handler

import (
	"go-shopkeeper/internal/apperr"
	"go-shopkeeper/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type ShopHandler struct {
	service service.ShopService
	log     zerolog.Logger
}

func NewShopHandler(s service.ShopService, log zerolog.Logger) *ShopHandler {
	return &ShopHandler{service: s, log: log}
}

func (h *ShopHandler) CreateShop(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req service.CreateShopRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	shop, err := h.service.CreateShop(c.UserContext(), accountID, &req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Shop created successfully", "shop_id": shop.ID})
}

func (h *ShopHandler) GetShop(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	shop, err := h.service.GetShop(c.UserContext(), accountID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"shop": shop.ToResponse()})
}

// Homepage returns the shop name; clients use the 404 to route to shop registration.
func (h *ShopHandler) Homepage(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	shop, err := h.service.GetShop(c.UserContext(), accountID)
	if apperr.Is(err, apperr.KindNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"shopName": nil,
			"message":  "No shop associated with this user.Please register your shop",
		})
	}
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"shopName": shop.Name})
}

package handler

import (
	"go-shopkeeper/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type BillHandler struct {
	service service.BillingService
	log     zerolog.Logger
}

func NewBillHandler(s service.BillingService, log zerolog.Logger) *BillHandler {
	return &BillHandler{service: s, log: log}
}

// StartBill returns the catalog a new bill is picked from
// GET|POST /api/start-bills
func (h *BillHandler) StartBill(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	items, err := h.service.PrepareBill(c.UserContext(), accountID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

// CustomerPrices
// GET /api/customer-prices?phone_number=
func (h *BillHandler) CustomerPrices(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	prices, err := h.service.CustomerPrices(c.UserContext(), accountID, c.Query("phone_number"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(prices)
}

func (h *BillHandler) CreateBill(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req service.CreateBillRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	bill, err := h.service.CreateBill(c.UserContext(), accountID, &req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Bill created successfully", "bill_id": bill.ID})
}

func (h *BillHandler) ListBills(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	bills, err := h.service.ListBills(c.UserContext(), accountID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"bills": bills})
}

func (h *BillHandler) GetBill(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	billID, err := paramID(c, "Invalid bill ID")
	if err != nil {
		return respondError(c, h.log, err)
	}
	detail, err := h.service.GetBill(c.UserContext(), accountID, billID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(detail)
}

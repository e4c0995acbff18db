package handler

import (
	"go-shopkeeper/internal/model"
	"go-shopkeeper/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type CustomerHandler struct {
	service service.CustomerService
	log     zerolog.Logger
}

func NewCustomerHandler(s service.CustomerService, log zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{service: s, log: log}
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	customers, err := h.service.ListCustomers(c.UserContext(), accountID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]model.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, customers[i].ToResponse())
	}
	return c.JSON(fiber.Map{"customers": out})
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req service.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	customer, err := h.service.CreateCustomer(c.UserContext(), accountID, &req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Customer created successfully", "id": customer.ID})
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	customerID, err := paramID(c, "Invalid customer ID")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req service.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	if _, err := h.service.UpdateCustomer(c.UserContext(), accountID, customerID, &req); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Customer updated successfully"})
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	customerID, err := paramID(c, "Invalid customer ID")
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.service.DeleteCustomer(c.UserContext(), accountID, customerID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Customer deleted successfully"})
}

package handler

import (
	"go-shopkeeper/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type AuthHandler struct {
	authService service.AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// PhoneRequest is the body of check-user and otp
type PhoneRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// CheckUser reports whether an account exists for the phone number
// POST /api/check-user
func (h *AuthHandler) CheckUser(c *fiber.Ctx) error {
	var req PhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	exists, err := h.authService.CheckUser(c.UserContext(), req.PhoneNumber)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"exists": exists})
}

// IssueOTP sends a one-time code to the phone number
// POST /api/otp
func (h *AuthHandler) IssueOTP(c *fiber.Ctx) error {
	var req PhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	if err := h.authService.IssueOTP(c.UserContext(), req.PhoneNumber); err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "OTP sent"})
}

// CreateSession logs in, registering the account on first use
// POST /api/session
func (h *AuthHandler) CreateSession(c *fiber.Ctx) error {
	var req service.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	resp, err := h.authService.CreateSession(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}

package handler

import (
	"errors"

	"go-shopkeeper/internal/apperr"
	"go-shopkeeper/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// respondError maps a service error to its status and a client-safe {error} body.
// Internal failures are logged with their cause and never leak it.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status := apperr.Status(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{"error": apperr.Message(err)})
}

// ErrorHandler covers whatever escapes a handler, including recovered panics.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		return respondError(c, log, err)
	}
}

func currentAccount(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.AccountID(c)
	if !ok {
		return uuid.Nil, apperr.Authentication("Unauthorized")
	}
	return id, nil
}

func paramID(c *fiber.Ctx, msg string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperr.Validation(msg)
	}
	return id, nil
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
}

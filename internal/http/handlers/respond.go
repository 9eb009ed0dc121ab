package handlers

import (
	"database/sql"
	"errors"

	applog "glaneur/internal/log"
	"glaneur/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondErr translates the service error taxonomy into HTTP statuses:
// validation 400, not-found 404, policy rejection 422, anything else a logged
// generic 500.
func respondErr(c *fiber.Ctx, action string, err error) error {
	var ve *services.ValidationError
	var pe *services.PolicyError
	switch {
	case errors.Is(err, services.ErrNotFound) || errors.Is(err, sql.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error()})
	case errors.As(err, &pe):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": pe.Error()})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

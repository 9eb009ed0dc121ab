package handlers

import (
	"glaneur/internal/services"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	Stats      *services.StatsService
	BusinessID string
}

func (h *StatsHandler) Summary(c *fiber.Ctx) error {
	sum, err := h.Stats.Summary(h.BusinessID)
	if err != nil {
		return respondErr(c, "stats.summary", err)
	}
	return c.JSON(sum)
}

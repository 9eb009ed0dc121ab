package handlers

import (
	"time"

	"glaneur/internal/domain"
	applog "glaneur/internal/log"
	"glaneur/internal/repos"
	"glaneur/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ClosureHandler struct {
	Closures   *repos.ClosureRepo
	BusinessID string
}

type closureInput struct {
	Date        string `json:"date"`
	Reason      string `json:"reason"`
	IsEmergency bool   `json:"isEmergency"`
}

func (h *ClosureHandler) List(c *fiber.Ctx) error {
	closures, err := h.Closures.ListByBusiness(h.BusinessID)
	if err != nil {
		return respondErr(c, "closures.list", err)
	}
	if closures == nil {
		closures = []domain.Closure{}
	}
	return c.JSON(closures)
}

func (h *ClosureHandler) Create(c *fiber.Ctx) error {
	var in closureInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed JSON body")
	}
	date, ok := validate.Date(in.Date)
	if !ok {
		return badRequest(c, "date must be YYYY-MM-DD")
	}

	cl := domain.Closure{
		ID:          uuid.NewString(),
		BusinessID:  h.BusinessID,
		Date:        date,
		Reason:      in.Reason,
		IsEmergency: in.IsEmergency,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Closures.Create(cl); err != nil {
		return respondErr(c, "closures.create", err)
	}
	applog.Audit(c, "closures.create", map[string]any{"id": cl.ID, "date": cl.Date, "emergency": cl.IsEmergency})
	return c.Status(fiber.StatusCreated).JSON(cl)
}

func (h *ClosureHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	found, err := h.Closures.Delete(id)
	if err != nil {
		return respondErr(c, "closures.delete", err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	applog.Audit(c, "closures.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

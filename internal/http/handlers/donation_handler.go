package handlers

import (
	"time"

	"glaneur/internal/domain"
	applog "glaneur/internal/log"
	"glaneur/internal/services"
	"glaneur/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type DonationHandler struct {
	Donations  *services.DonationService
	BusinessID string
}

func (h *DonationHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && !validate.Status(status) {
		return badRequest(c, "status must be active, paused or completed")
	}
	donations, err := h.Donations.List(h.BusinessID, status, time.Now())
	if err != nil {
		return respondErr(c, "donations.list", err)
	}
	if donations == nil {
		donations = []domain.Donation{}
	}
	return c.JSON(donations)
}

func (h *DonationHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	d, err := h.Donations.Get(id, time.Now())
	if err != nil {
		return respondErr(c, "donations.get", err)
	}
	return c.JSON(d)
}

func (h *DonationHandler) Create(c *fiber.Ctx) error {
	var in services.DonationInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed JSON body")
	}
	d, err := h.Donations.Create(h.BusinessID, in)
	if err != nil {
		return respondErr(c, "donations.create", err)
	}
	applog.Audit(c, "donations.create", map[string]any{"id": d.ID, "value": d.TaxBenefitValue})
	return c.Status(fiber.StatusCreated).JSON(d)
}

func (h *DonationHandler) Patch(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	var patch services.DonationPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "malformed JSON body")
	}
	d, err := h.Donations.Update(id, patch)
	if err != nil {
		return respondErr(c, "donations.patch", err)
	}
	applog.Audit(c, "donations.update", map[string]any{"id": d.ID})
	return c.JSON(d)
}

func (h *DonationHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	found, err := h.Donations.Delete(id)
	if err != nil {
		return respondErr(c, "donations.delete", err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	applog.Audit(c, "donations.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

package handlers

import (
	applog "glaneur/internal/log"
	"glaneur/internal/repos"
	"glaneur/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type BusinessHandler struct {
	Businesses *repos.BusinessRepo
	BusinessID string
}

type businessPatch struct {
	Name                   *string `json:"name"`
	Type                   *string `json:"type"`
	Description            *string `json:"description"`
	Address                *string `json:"address"`
	PhotoURL               *string `json:"photoUrl"`
	CollectionInstructions *string `json:"collectionInstructions"`
	IsActive               *bool   `json:"isActive"`
}

func (h *BusinessHandler) Get(c *fiber.Ctx) error {
	b, err := h.Businesses.Get(h.BusinessID)
	if err != nil {
		return respondErr(c, "business.get", err)
	}
	return c.JSON(b)
}

func (h *BusinessHandler) Patch(c *fiber.Ctx) error {
	var patch businessPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "malformed JSON body")
	}

	b, err := h.Businesses.Get(h.BusinessID)
	if err != nil {
		return respondErr(c, "business.patch", err)
	}

	if patch.Name != nil {
		name, ok := validate.Name(*patch.Name)
		if !ok {
			return badRequest(c, "invalid name")
		}
		b.Name = name
	}
	if patch.Type != nil {
		b.Type = *patch.Type
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.Address != nil {
		b.Address = *patch.Address
	}
	if patch.PhotoURL != nil {
		b.PhotoURL = *patch.PhotoURL
	}
	if patch.CollectionInstructions != nil {
		b.CollectionInstructions = *patch.CollectionInstructions
	}
	if patch.IsActive != nil {
		b.IsActive = *patch.IsActive
	}

	found, err := h.Businesses.Save(b)
	if err != nil {
		return respondErr(c, "business.patch", err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	applog.Audit(c, "business.update", map[string]any{"id": b.ID})
	return c.JSON(b)
}

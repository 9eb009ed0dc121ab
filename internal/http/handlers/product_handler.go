package handlers

import (
	"time"

	"glaneur/internal/domain"
	applog "glaneur/internal/log"
	"glaneur/internal/repos"
	"glaneur/internal/services"
	"glaneur/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	Products   *repos.ProductRepo
	Stats      *services.StatsService
	BusinessID string
}

type productInput struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	UnitPrice    string `json:"unitPrice"`
	CurrentStock int    `json:"currentStock"`
	ExpiryDate   string `json:"expiryDate"`
	PhotoURL     string `json:"photoUrl"`
}

type productPatch struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	UnitPrice    *string `json:"unitPrice"`
	CurrentStock *int    `json:"currentStock"`
	ExpiryDate   *string `json:"expiryDate"`
	PhotoURL     *string `json:"photoUrl"`
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Products.ListByBusiness(h.BusinessID)
	if err != nil {
		return respondErr(c, "products.list", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(products)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in productInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed JSON body")
	}

	name, ok := validate.Name(in.Name)
	if !ok {
		return badRequest(c, "invalid name")
	}
	category, ok := validate.Category(in.Category)
	if !ok {
		return badRequest(c, "invalid category")
	}
	price, ok := validate.Price(in.UnitPrice)
	if !ok {
		return badRequest(c, "unitPrice must be a non-negative decimal")
	}
	if in.CurrentStock < 0 {
		return badRequest(c, "currentStock must not be negative")
	}
	expiry := ""
	if in.ExpiryDate != "" {
		t, ok := validate.Timestamp(in.ExpiryDate)
		if !ok {
			return badRequest(c, "expiryDate must be RFC3339")
		}
		expiry = t.UTC().Format(time.RFC3339)
	}

	p := domain.Product{
		ID:           uuid.NewString(),
		BusinessID:   h.BusinessID,
		Name:         name,
		Description:  in.Description,
		Category:     category,
		UnitPrice:    price,
		CurrentStock: in.CurrentStock,
		ExpiryDate:   expiry,
		PhotoURL:     in.PhotoURL,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Products.Create(p); err != nil {
		return respondErr(c, "products.create", err)
	}
	applog.Audit(c, "products.create", map[string]any{"id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) Patch(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	var patch productPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "malformed JSON body")
	}

	p, err := h.Products.Get(id)
	if err != nil {
		return respondErr(c, "products.patch", err)
	}

	if patch.Name != nil {
		name, ok := validate.Name(*patch.Name)
		if !ok {
			return badRequest(c, "invalid name")
		}
		p.Name = name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		category, ok := validate.Category(*patch.Category)
		if !ok {
			return badRequest(c, "invalid category")
		}
		p.Category = category
	}
	if patch.UnitPrice != nil {
		price, ok := validate.Price(*patch.UnitPrice)
		if !ok {
			return badRequest(c, "unitPrice must be a non-negative decimal")
		}
		p.UnitPrice = price
	}
	if patch.CurrentStock != nil {
		if *patch.CurrentStock < 0 {
			return badRequest(c, "currentStock must not be negative")
		}
		p.CurrentStock = *patch.CurrentStock
	}
	if patch.ExpiryDate != nil {
		if *patch.ExpiryDate == "" {
			p.ExpiryDate = ""
		} else {
			t, ok := validate.Timestamp(*patch.ExpiryDate)
			if !ok {
				return badRequest(c, "expiryDate must be RFC3339")
			}
			p.ExpiryDate = t.UTC().Format(time.RFC3339)
		}
	}
	if patch.PhotoURL != nil {
		p.PhotoURL = *patch.PhotoURL
	}

	found, err := h.Products.Save(p)
	if err != nil {
		return respondErr(c, "products.patch", err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	applog.Audit(c, "products.update", map[string]any{"id": p.ID})
	return c.JSON(p)
}

// Delete removes the product only; donations referencing it stay untouched.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	found, err := h.Products.Delete(id)
	if err != nil {
		return respondErr(c, "products.delete", err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	applog.Audit(c, "products.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProductHandler) Expiring(c *fiber.Ctx) error {
	products, err := h.Stats.ExpiringProducts(h.BusinessID, time.Now())
	if err != nil {
		return respondErr(c, "products.expiring", err)
	}
	return c.JSON(products)
}

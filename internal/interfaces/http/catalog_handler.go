package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexvolt/evretail-api/internal/application/dto"
	"github.com/nexvolt/evretail-api/internal/application/usecase"
)

// CatalogHandler handles the vehicle-model and spare-part registries (admin writes,
// any authenticated role reads).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler builds the handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateVehicle registers a vehicle model.
// POST /api/catalog/vehicles
func (h *CatalogHandler) CreateVehicle(c *fiber.Ctx) error {
	var in dto.CreateVehicleModelRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	m, err := h.uc.CreateVehicleModel(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// GetVehicle returns one vehicle model.
// GET /api/catalog/vehicles/:id
func (h *CatalogHandler) GetVehicle(c *fiber.Ctx) error {
	m, err := h.uc.GetVehicleModel(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(m)
}

// UpdateVehicle patches a vehicle model.
// PUT /api/catalog/vehicles/:id
func (h *CatalogHandler) UpdateVehicle(c *fiber.Ctx) error {
	var in dto.UpdateVehicleModelRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	m, err := h.uc.UpdateVehicleModel(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(m)
}

// ListVehicles pages through the vehicle catalog.
// GET /api/catalog/vehicles
func (h *CatalogHandler) ListVehicles(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, err := h.uc.ListVehicleModels(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// DeleteVehicle removes a vehicle model.
// DELETE /api/catalog/vehicles/:id
func (h *CatalogHandler) DeleteVehicle(c *fiber.Ctx) error {
	if err := h.uc.DeleteVehicleModel(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreatePart registers a spare part.
// POST /api/catalog/parts
func (h *CatalogHandler) CreatePart(c *fiber.Ctx) error {
	var in dto.CreateSparePartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.CreateSparePart(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GetPart returns one spare part.
// GET /api/catalog/parts/:id
func (h *CatalogHandler) GetPart(c *fiber.Ctx) error {
	p, err := h.uc.GetSparePart(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// UpdatePart patches a spare part.
// PUT /api/catalog/parts/:id
func (h *CatalogHandler) UpdatePart(c *fiber.Ctx) error {
	var in dto.UpdateSparePartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.UpdateSparePart(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// ListParts pages through the spare-part catalog.
// GET /api/catalog/parts
func (h *CatalogHandler) ListParts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, err := h.uc.ListSpareParts(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// DeletePart removes a spare part.
// DELETE /api/catalog/parts/:id
func (h *CatalogHandler) DeletePart(c *fiber.Ctx) error {
	if err := h.uc.DeleteSparePart(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

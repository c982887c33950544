package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexvolt/evretail-api/internal/application/dto"
	"github.com/nexvolt/evretail-api/internal/application/usecase"
)

// BranchHandler handles the branch registry (admin).
type BranchHandler struct {
	uc *usecase.BranchUseCase
}

// NewBranchHandler builds the handler.
func NewBranchHandler(uc *usecase.BranchUseCase) *BranchHandler {
	return &BranchHandler{uc: uc}
}

// Create registers a branch.
// POST /api/branches
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	branch, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(branch)
}

// GetByCode returns one branch.
// GET /api/branches/:code
func (h *BranchHandler) GetByCode(c *fiber.Ctx) error {
	branch, err := h.uc.GetByCode(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(branch)
}

// Update patches a branch.
// PUT /api/branches/:code
func (h *BranchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	branch, err := h.uc.Update(c.Params("code"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(branch)
}

// List pages through branches.
// GET /api/branches
func (h *BranchHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Delete removes a branch.
// DELETE /api/branches/:code
func (h *BranchHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("code")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

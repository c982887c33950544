package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexvolt/evretail-api/internal/application/dto"
	"github.com/nexvolt/evretail-api/internal/application/usecase"
)

// UserHandler handles admin user management and the referral team views.
type UserHandler struct {
	userUC *usecase.UserUseCase
	teamUC *usecase.TeamUseCase
}

// NewUserHandler builds the handler.
func NewUserHandler(userUC *usecase.UserUseCase, teamUC *usecase.TeamUseCase) *UserHandler {
	return &UserHandler{userUC: userUC, teamUC: teamUC}
}

// List pages through users (admin).
// GET /api/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, err := h.userUC.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": list, "page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// GetByID returns one user (admin).
// GET /api/users/:id
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.userUC.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// SetStatus moves a user between active, inactive and suspended (admin).
// PUT /api/users/:id/status
func (h *UserHandler) SetStatus(c *fiber.Ctx) error {
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.userUC.SetStatus(c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// Team returns the caller's direct referrals.
// GET /api/team
func (h *UserHandler) Team(c *fiber.Ctx) error {
	team, err := h.teamUC.DirectReferrals(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(team)
}

// TeamTree returns the caller's full downline, breadth-first.
// GET /api/team/tree
func (h *UserHandler) TeamTree(c *fiber.Ctx) error {
	team, err := h.teamUC.Downline(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(team)
}

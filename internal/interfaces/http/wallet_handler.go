package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexvolt/evretail-api/internal/application/dto"
	"github.com/nexvolt/evretail-api/internal/application/usecase"
	"github.com/nexvolt/evretail-api/internal/domain/entity"
)

// WalletHandler handles wallet balances and the payment-request flow.
type WalletHandler struct {
	uc *usecase.WalletUseCase
}

// NewWalletHandler builds the handler.
func NewWalletHandler(uc *usecase.WalletUseCase) *WalletHandler {
	return &WalletHandler{uc: uc}
}

// GetWallet returns the caller's wallet.
// GET /api/wallet
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	wallet, err := h.uc.GetWallet(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(wallet)
}

// CreatePaymentRequest files a pending top-up request for the caller.
// POST /api/payment-requests
func (h *WalletHandler) CreatePaymentRequest(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	pr, err := h.uc.CreatePaymentRequest(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pr)
}

// ListPaymentRequests lists the caller's own requests; admins can pass ?status= to
// page through the review queue instead.
// GET /api/payment-requests
func (h *WalletHandler) ListPaymentRequests(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	if status := c.Query("status"); status != "" && GetRole(c) == entity.RoleAdmin {
		list, err := h.uc.ListByStatus(status, page.Limit, page.Offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	}
	list, err := h.uc.ListMyRequests(GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Approve credits the requester's wallet and flips the request to APPROVED (admin).
// POST /api/payment-requests/:id/approve
func (h *WalletHandler) Approve(c *fiber.Ctx) error {
	pr, err := h.uc.Approve(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pr)
}

// Reject flips the request to REJECTED without touching the wallet (admin).
// POST /api/payment-requests/:id/reject
func (h *WalletHandler) Reject(c *fiber.Ctx) error {
	pr, err := h.uc.Reject(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pr)
}

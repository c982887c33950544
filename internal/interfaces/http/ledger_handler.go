package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nexvolt/evretail-api/internal/application/dto"
	"github.com/nexvolt/evretail-api/internal/application/ledger"
	"github.com/nexvolt/evretail-api/internal/domain"
	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

// LedgerHandler handles the stock ledger (admin, dealer). Dealers are confined to
// their own branch.
type LedgerHandler struct {
	uc *ledger.UseCase
}

// NewLedgerHandler builds the handler.
func NewLedgerHandler(uc *ledger.UseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// scopeLocation resolves the effective location for a dealer: an empty request means
// the dealer's own branch, any other branch is forbidden. Admins pass through.
func scopeLocation(c *fiber.Ctx, requested string) (string, error) {
	if GetRole(c) != entity.RoleDealer {
		return requested, nil
	}
	own := GetBranchCode(c)
	if requested == "" {
		return own, nil
	}
	if requested != own {
		return "", domain.ErrForbidden
	}
	return requested, nil
}

// CurrentStock returns the closing stock of the latest ledger record for the pair.
// GET /api/stock/current?kind=&location_code=&item_name=
func (h *LedgerHandler) CurrentStock(c *fiber.Ctx) error {
	kind := c.Query("kind")
	itemName := c.Query("item_name")
	locationCode, err := scopeLocation(c, c.Query("location_code"))
	if err != nil {
		return respondError(c, err)
	}
	stock, err := h.uc.CurrentStock(c.Context(), kind, locationCode, itemName)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CurrentStockResponse{
		Kind:         kind,
		LocationCode: locationCode,
		ItemName:     itemName,
		CurrentStock: stock,
	})
}

// StockIn appends a stock-in record.
// POST /api/stock/entries
func (h *LedgerHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	locationCode, err := scopeLocation(c, in.LocationCode)
	if err != nil {
		return respondError(c, err)
	}
	in.LocationCode = locationCode
	rec, err := h.uc.AppendStockIn(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ledger.ToRecordResponse(rec))
}

// Sale appends a standalone SALE record (no invoice).
// POST /api/stock/sales
func (h *LedgerHandler) Sale(c *fiber.Ctx) error {
	var in struct {
		Kind         string `json:"kind"`
		LocationCode string `json:"location_code"`
		ItemName     string `json:"item_name"`
		Quantity     int64  `json:"quantity"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	locationCode, err := scopeLocation(c, in.LocationCode)
	if err != nil {
		return respondError(c, err)
	}
	rec, err := h.uc.AppendSale(c.Context(), GetUserID(c), in.Kind, locationCode, in.ItemName, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ledger.ToRecordResponse(rec))
}

// Report appends a manual stock report.
// POST /api/stock/reports
func (h *LedgerHandler) Report(c *fiber.Ctx) error {
	var in dto.StockReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	locationCode, err := scopeLocation(c, in.LocationCode)
	if err != nil {
		return respondError(c, err)
	}
	in.LocationCode = locationCode
	rec, err := h.uc.AppendReport(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ledger.ToRecordResponse(rec))
}

// Ledger pages through ledger records, newest first.
// GET /api/stock/ledger?kind=&location_code=&item_name=&limit=&offset=
func (h *LedgerHandler) Ledger(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	locationCode, err := scopeLocation(c, c.Query("location_code"))
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.Ledger(c.Context(), repository.StockFilter{
		Kind:         c.Query("kind"),
		LocationCode: locationCode,
		ItemName:     c.Query("item_name"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockRecordResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, ledger.ToRecordResponse(rec))
	}
	return c.JSON(dto.LedgerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// DeleteRecord hard-removes a ledger record (admin).
// DELETE /api/stock/entries/:kind/:serial
func (h *LedgerHandler) DeleteRecord(c *fiber.Ctx) error {
	serial, err := strconv.ParseInt(c.Params("serial"), 10, 64)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	if err := h.uc.DeleteRecord(c.Context(), c.Params("kind"), serial); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

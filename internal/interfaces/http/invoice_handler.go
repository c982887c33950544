package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexvolt/evretail-api/internal/application/billing"
	"github.com/nexvolt/evretail-api/internal/application/dto"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

// InvoiceHandler handles invoice issuance, lookup and PDF rendering (admin, dealer).
type InvoiceHandler struct {
	issueUC *billing.IssueInvoiceUseCase
	pdfUC   *billing.PDFUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(issueUC *billing.IssueInvoiceUseCase, pdfUC *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{issueUC: issueUC, pdfUC: pdfUC}
}

// Issue issues an invoice and appends the SALE ledger record atomically.
// POST /api/invoices
func (h *InvoiceHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	locationCode, err := scopeLocation(c, in.LocationCode)
	if err != nil {
		return respondError(c, err)
	}
	in.LocationCode = locationCode
	inv, err := h.issueUC.IssueInvoice(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GetByID returns one invoice.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.issueUC.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// List pages through invoices, newest first.
// GET /api/invoices?kind=&location_code=&limit=&offset=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	locationCode, err := scopeLocation(c, c.Query("location_code"))
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.issueUC.ListInvoices(c.Context(), repository.InvoiceFilter{
		Kind:         c.Query("kind"),
		LocationCode: locationCode,
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// PDF renders the printable invoice document.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	data, err := h.pdfUC.RenderInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="invoice.pdf"`)
	return c.Send(data)
}

package billing

import (
	"context"

	"github.com/nexvolt/evretail-api/internal/domain"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

// PDFUseCase renders the printable document for an issued invoice.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	branchRepo  repository.BranchRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, branchRepo repository.BranchRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, branchRepo: branchRepo, generator: generator}
}

// RenderInvoicePDF fetches the invoice and its issuing branch and returns the PDF
// bytes. The branch may have been deleted since issuance; the generator falls back to
// the bare location code in that case.
func (uc *PDFUseCase) RenderInvoicePDF(ctx context.Context, invoiceID string) ([]byte, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	seller, err := uc.branchRepo.GetByCode(inv.LocationCode)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateInvoicePDF(ctx, inv, seller)
}

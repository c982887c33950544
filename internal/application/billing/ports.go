package billing

import (
	"context"
	"time"

	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

// BillingTxRunner executes a function inside a transaction spanning the stock ledger
// and the invoice collection, so a sale append and its invoice commit or roll back
// together — the two collections can never diverge.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		recordRepo repository.StockRecordRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// LedgerUseCase is the port billing uses to append the sale record inside its own
// transaction. An ErrOutOfStock return aborts the transaction: no invoice is created.
type LedgerUseCase interface {
	AppendSaleInTx(
		recordRepo repository.StockRecordRepository,
		kind, locationCode, itemName string,
		quantity int64,
		chassisNo string,
		now time.Time,
		userID string,
	) (*entity.StockRecord, error)
}

// InvoicePDFGenerator renders the printable invoice document. seller may be nil when
// the issuing branch has since been deleted from the registry.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, seller *entity.Branch) ([]byte, error)
}

package ledger

import (
	"context"

	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

// TxRunner executes a function inside a database transaction, handing it a stock
// record repository bound to that transaction. Guarantees the append runs against a
// row-locked read of the ledger, so concurrent appends for the same (kind, location,
// item) pair serialize instead of both reading stale stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(recordRepo repository.StockRecordRepository) error) error
}

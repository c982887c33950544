package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexvolt/evretail-api/internal/application/billing"
	"github.com/nexvolt/evretail-api/internal/application/ledger"
	"github.com/nexvolt/evretail-api/internal/application/usecase"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

// Ensure TxRunner implements the application tx ports.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)
var _ usecase.WalletTxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, runs fn with a ledger repo bound to it and commits, or
// rolls back on error.
func (r *TxRunner) Run(ctx context.Context, fn func(recordRepo repository.StockRecordRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRecordRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling begins a transaction with ledger and invoice repos bound to it, for the
// atomic sale-append plus invoice-insert.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	recordRepo repository.StockRecordRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRecordRepository(tx), NewInvoiceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunWallet begins a transaction with wallet and payment-request repos bound to it,
// for the atomic approve-and-credit flow.
func (r *TxRunner) RunWallet(ctx context.Context, fn func(
	walletRepo repository.WalletRepository,
	paymentRepo repository.PaymentRequestRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewWalletRepository(tx), NewPaymentRequestRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

var _ repository.WalletRepository = (*WalletRepo)(nil)

// WalletRepo WalletRepository over PostgreSQL (usable with pool or tx).
type WalletRepo struct {
	q Querier
}

// NewWalletRepository builds the wallet adapter. Pass a pool or a tx (Querier).
func NewWalletRepository(q Querier) *WalletRepo {
	return &WalletRepo{q: q}
}

// Get returns the user's wallet; users never credited get a zero-balance wallet.
func (r *WalletRepo) Get(userID string) (*entity.Wallet, error) {
	return r.get(userID, false)
}

// GetForUpdate is Get with the row locked. Only meaningful inside a transaction.
// A user without a wallet row gets the zero wallet back unlocked; the subsequent
// Upsert creates the row.
func (r *WalletRepo) GetForUpdate(userID string) (*entity.Wallet, error) {
	return r.get(userID, true)
}

func (r *WalletRepo) get(userID string, lock bool) (*entity.Wallet, error) {
	query := `SELECT user_id, balance, updated_at FROM wallets WHERE user_id = $1`
	if lock {
		query += " FOR UPDATE"
	}
	var w entity.Wallet
	err := r.q.QueryRow(context.Background(), query, userID).Scan(&w.UserID, &w.Balance, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Wallet{UserID: userID, Balance: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return &w, nil
}

// Upsert inserts or rewrites the user's wallet row.
func (r *WalletRepo) Upsert(w *entity.Wallet) error {
	query := `
		INSERT INTO wallets (user_id, balance, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET balance = EXCLUDED.balance, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query, w.UserID, w.Balance, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert wallet: %w", err)
	}
	return nil
}

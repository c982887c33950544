package repository

import "github.com/nexvolt/evretail-api/internal/domain/entity"

// WalletRepository is the persistence port for wallets.
type WalletRepository interface {
	// Get returns the wallet, or a zero-balance wallet when the user has none yet.
	Get(userID string) (*entity.Wallet, error)
	// GetForUpdate is Get with the row locked. Only meaningful inside a transaction.
	GetForUpdate(userID string) (*entity.Wallet, error)
	Upsert(w *entity.Wallet) error
}

// PaymentRequestRepository is the persistence port for wallet top-up requests.
type PaymentRequestRepository interface {
	Create(pr *entity.PaymentRequest) error
	GetByID(id string) (*entity.PaymentRequest, error)
	// GetByIDForUpdate locks the row so two admins cannot decide the same request twice.
	GetByIDForUpdate(id string) (*entity.PaymentRequest, error)
	Update(pr *entity.PaymentRequest) error
	ListByUser(userID string, limit, offset int) ([]*entity.PaymentRequest, error)
	ListByStatus(status string, limit, offset int) ([]*entity.PaymentRequest, error)
}

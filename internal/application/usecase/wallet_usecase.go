package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexvolt/evretail-api/internal/application/dto"
	"github.com/nexvolt/evretail-api/internal/domain"
	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

// WalletTxRunner runs fn inside a transaction with wallet and payment-request
// repositories bound to it. Approval must flip the request and credit the wallet
// atomically.
type WalletTxRunner interface {
	RunWallet(ctx context.Context, fn func(walletRepo repository.WalletRepository, paymentRepo repository.PaymentRequestRepository) error) error
}

// WalletUseCase wallet balances and the payment-request approval flow.
type WalletUseCase struct {
	txRunner    WalletTxRunner
	walletRepo  repository.WalletRepository
	paymentRepo repository.PaymentRequestRepository
	userRepo    repository.UserRepository
}

// NewWalletUseCase builds the use case.
func NewWalletUseCase(txRunner WalletTxRunner, walletRepo repository.WalletRepository, paymentRepo repository.PaymentRequestRepository, userRepo repository.UserRepository) *WalletUseCase {
	return &WalletUseCase{txRunner: txRunner, walletRepo: walletRepo, paymentRepo: paymentRepo, userRepo: userRepo}
}

// GetWallet returns the user's wallet; users who were never credited see a zero balance.
func (uc *WalletUseCase) GetWallet(userID string) (*dto.WalletResponse, error) {
	w, err := uc.walletRepo.Get(userID)
	if err != nil {
		return nil, err
	}
	return &dto.WalletResponse{UserID: w.UserID, Balance: w.Balance, UpdatedAt: w.UpdatedAt}, nil
}

// CreatePaymentRequest files a pending top-up request for the calling user.
func (uc *WalletUseCase) CreatePaymentRequest(userID string, in dto.CreatePaymentRequestRequest) (*dto.PaymentRequestResponse, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	pr := &entity.PaymentRequest{
		ID:        uuid.New().String(),
		UserID:    userID,
		Amount:    in.Amount,
		Note:      in.Note,
		Status:    entity.PaymentPending,
		CreatedAt: time.Now(),
	}
	if err := uc.paymentRepo.Create(pr); err != nil {
		return nil, err
	}
	return toPaymentRequestResponse(pr), nil
}

// Approve flips a pending request to APPROVED and credits the requester's wallet in
// one transaction. Deciding an already-decided request returns ErrConflict.
func (uc *WalletUseCase) Approve(ctx context.Context, requestID, adminID string) (*dto.PaymentRequestResponse, error) {
	var approved *entity.PaymentRequest
	err := uc.txRunner.RunWallet(ctx, func(walletRepo repository.WalletRepository, paymentRepo repository.PaymentRequestRepository) error {
		pr, err := uc.takePending(paymentRepo, requestID)
		if err != nil {
			return err
		}
		wallet, err := walletRepo.GetForUpdate(pr.UserID)
		if err != nil {
			return err
		}
		wallet.UserID = pr.UserID
		wallet.Balance = wallet.Balance.Add(pr.Amount)
		wallet.UpdatedAt = time.Now()
		if err := walletRepo.Upsert(wallet); err != nil {
			return err
		}
		uc.decide(pr, entity.PaymentApproved, adminID)
		if err := paymentRepo.Update(pr); err != nil {
			return err
		}
		approved = pr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPaymentRequestResponse(approved), nil
}

// Reject flips a pending request to REJECTED. The wallet is untouched.
func (uc *WalletUseCase) Reject(ctx context.Context, requestID, adminID string) (*dto.PaymentRequestResponse, error) {
	var rejected *entity.PaymentRequest
	err := uc.txRunner.RunWallet(ctx, func(walletRepo repository.WalletRepository, paymentRepo repository.PaymentRequestRepository) error {
		pr, err := uc.takePending(paymentRepo, requestID)
		if err != nil {
			return err
		}
		uc.decide(pr, entity.PaymentRejected, adminID)
		if err := paymentRepo.Update(pr); err != nil {
			return err
		}
		rejected = pr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPaymentRequestResponse(rejected), nil
}

// ListMyRequests pages through the calling user's requests, newest first.
func (uc *WalletUseCase) ListMyRequests(userID string, limit, offset int) (*dto.PaymentRequestListResponse, error) {
	list, err := uc.paymentRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toPaymentRequestList(list, limit, offset), nil
}

// ListByStatus pages through requests in one state, for the admin review queue.
func (uc *WalletUseCase) ListByStatus(status string, limit, offset int) (*dto.PaymentRequestListResponse, error) {
	if status != entity.PaymentPending && status != entity.PaymentApproved && status != entity.PaymentRejected {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.paymentRepo.ListByStatus(status, limit, offset)
	if err != nil {
		return nil, err
	}
	return toPaymentRequestList(list, limit, offset), nil
}

// takePending loads the request under a row lock and verifies it is still pending.
func (uc *WalletUseCase) takePending(paymentRepo repository.PaymentRequestRepository, requestID string) (*entity.PaymentRequest, error) {
	pr, err := paymentRepo.GetByIDForUpdate(requestID)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, domain.ErrNotFound
	}
	if pr.Status != entity.PaymentPending {
		return nil, domain.ErrConflict
	}
	return pr, nil
}

func (uc *WalletUseCase) decide(pr *entity.PaymentRequest, status, adminID string) {
	now := time.Now()
	pr.Status = status
	pr.DecidedBy = adminID
	pr.DecidedAt = &now
}

func toPaymentRequestResponse(pr *entity.PaymentRequest) *dto.PaymentRequestResponse {
	return &dto.PaymentRequestResponse{
		ID:        pr.ID,
		UserID:    pr.UserID,
		Amount:    pr.Amount,
		Note:      pr.Note,
		Status:    pr.Status,
		DecidedBy: pr.DecidedBy,
		DecidedAt: pr.DecidedAt,
		CreatedAt: pr.CreatedAt,
	}
}

func toPaymentRequestList(list []*entity.PaymentRequest, limit, offset int) *dto.PaymentRequestListResponse {
	items := make([]dto.PaymentRequestResponse, 0, len(list))
	for _, pr := range list {
		items = append(items, *toPaymentRequestResponse(pr))
	}
	return &dto.PaymentRequestListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
